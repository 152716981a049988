package repository

import (
	"context"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MetodoPagoRepository interface {
	Create(ctx context.Context, m *model.MetodoPago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error)
	ListByEmpresa(ctx context.Context, idEmpresa uuid.UUID) ([]model.MetodoPago, error)
	Update(ctx context.Context, m *model.MetodoPago) error
	// UpdateIcono is the second phase of the icon flow: it attaches the
	// public URL of an already-stored asset to the row.
	UpdateIcono(ctx context.Context, id uuid.UUID, url string) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ListIconos returns every icon URL currently referenced by a row,
	// active or not — input for the orphan reconciliation pass.
	ListIconos(ctx context.Context) ([]string, error)
}

type metodoPagoRepo struct{ db *gorm.DB }

func NewMetodoPagoRepository(db *gorm.DB) MetodoPagoRepository { return &metodoPagoRepo{db: db} }

func (r *metodoPagoRepo) Create(ctx context.Context, m *model.MetodoPago) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *metodoPagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MetodoPago, error) {
	var m model.MetodoPago
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *metodoPagoRepo) ListByEmpresa(ctx context.Context, idEmpresa uuid.UUID) ([]model.MetodoPago, error) {
	var metodos []model.MetodoPago
	err := r.db.WithContext(ctx).
		Where("id_empresa = ? AND activo = true", idEmpresa).
		Order("nombre ASC").Find(&metodos).Error
	return metodos, err
}

func (r *metodoPagoRepo) Update(ctx context.Context, m *model.MetodoPago) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *metodoPagoRepo) UpdateIcono(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).Model(&model.MetodoPago{}).Where("id = ?", id).Update("icono", url).Error
}

func (r *metodoPagoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MetodoPago{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *metodoPagoRepo) ListIconos(ctx context.Context) ([]string, error) {
	var urls []string
	err := r.db.WithContext(ctx).Model(&model.MetodoPago{}).
		Where("icono IS NOT NULL").Pluck("icono", &urls).Error
	return urls, err
}
