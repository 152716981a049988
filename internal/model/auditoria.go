package model

import (
	"time"

	"github.com/google/uuid"
)

// Auditoria records who performed a lifecycle action on which row.
// IDUsuario is nullable: attribution is best-effort, a missing acting user
// never blocks the operation itself.
type Auditoria struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tabla      string     `gorm:"index;not null"`
	RegistroID uuid.UUID  `gorm:"column:registro_id;type:uuid;index;not null"`
	Accion     string     `gorm:"type:varchar(20);not null"` // desactivar | eliminar
	IDUsuario  *uuid.UUID `gorm:"column:id_usuario;type:uuid"`
	CreatedAt  time.Time
}

func (Auditoria) TableName() string { return "auditorias" }
