package repository

import (
	"context"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteProveedorRepository interface {
	Create(ctx context.Context, cp *model.ClienteProveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ClienteProveedor, error)
	List(ctx context.Context, idEmpresa uuid.UUID, tipo string) ([]model.ClienteProveedor, error)
	// Buscar is a case-insensitive substring match on nombre. An empty
	// buscador matches every active row (same set as List).
	Buscar(ctx context.Context, idEmpresa uuid.UUID, tipo, buscador string) ([]model.ClienteProveedor, error)
	Update(ctx context.Context, cp *model.ClienteProveedor) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type clienteProveedorRepo struct{ db *gorm.DB }

func NewClienteProveedorRepository(db *gorm.DB) ClienteProveedorRepository {
	return &clienteProveedorRepo{db: db}
}

func (r *clienteProveedorRepo) Create(ctx context.Context, cp *model.ClienteProveedor) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *clienteProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ClienteProveedor, error) {
	var cp model.ClienteProveedor
	err := r.db.WithContext(ctx).First(&cp, id).Error
	return &cp, err
}

func (r *clienteProveedorRepo) List(ctx context.Context, idEmpresa uuid.UUID, tipo string) ([]model.ClienteProveedor, error) {
	return r.Buscar(ctx, idEmpresa, tipo, "")
}

func (r *clienteProveedorRepo) Buscar(ctx context.Context, idEmpresa uuid.UUID, tipo, buscador string) ([]model.ClienteProveedor, error) {
	q := r.db.WithContext(ctx).
		Where("id_empresa = ? AND activo = true", idEmpresa)
	if tipo != "" {
		q = q.Where("tipo = ?", tipo)
	}
	if buscador != "" {
		q = q.Where("nombre ILIKE ?", "%"+buscador+"%")
	}
	var registros []model.ClienteProveedor
	err := q.Order("nombre ASC").Find(&registros).Error
	return registros, err
}

func (r *clienteProveedorRepo) Update(ctx context.Context, cp *model.ClienteProveedor) error {
	return r.db.WithContext(ctx).Save(cp).Error
}

func (r *clienteProveedorRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ClienteProveedor{}).Where("id = ?", id).Update("activo", false).Error
}
