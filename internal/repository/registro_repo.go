package repository

import (
	"context"
	"fmt"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tablasRestaurables whitelists the tables the generic restore may touch.
// The table name reaches the SQL builder verbatim, so anything outside this
// set is rejected before building the query.
var tablasRestaurables = map[string]bool{
	"sucursales":           true,
	"cajas":                true,
	"clientes_proveedores": true,
	"metodos_pago":         true,
	"productos":            true,
	"usuarios":             true,
}

// RegistroRepository implements the lifecycle operations that are generic
// across entity tables: the table-name-parameterized restore and the
// audit-attribution row written by every soft delete.
type RegistroRepository interface {
	// Restaurar resets activo=true on one row and touches nothing else.
	// It cannot resurrect physically deleted rows.
	Restaurar(ctx context.Context, tabla string, id uuid.UUID) error
	RegistrarAuditoria(ctx context.Context, tabla string, registroID uuid.UUID, accion string, idUsuario *uuid.UUID) error
}

type registroRepo struct{ db *gorm.DB }

func NewRegistroRepository(db *gorm.DB) RegistroRepository { return &registroRepo{db: db} }

func (r *registroRepo) Restaurar(ctx context.Context, tabla string, id uuid.UUID) error {
	if !tablasRestaurables[tabla] {
		return fmt.Errorf("tabla no restaurable: %q", tabla)
	}
	res := r.db.WithContext(ctx).Table(tabla).Where("id = ?", id).Update("activo", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *registroRepo) RegistrarAuditoria(ctx context.Context, tabla string, registroID uuid.UUID, accion string, idUsuario *uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&model.Auditoria{
		Tabla:      tabla,
		RegistroID: registroID,
		Accion:     accion,
		IDUsuario:  idUsuario,
	}).Error
}
