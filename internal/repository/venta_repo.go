package repository

import (
	"context"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	ListByEmpresa(ctx context.Context, idEmpresa uuid.UUID) ([]model.Venta, error)
	NextNumeroTicket(ctx context.Context, tx *gorm.DB) (int64, error)
	// CountItemsByProducto counts venta_items rows that reference a product.
	// This is the Deletion Guard's data source.
	CountItemsByProducto(ctx context.Context, idProducto uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) ListByEmpresa(ctx context.Context, idEmpresa uuid.UUID) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("id_empresa = ?", idEmpresa).
		Order("created_at DESC").Limit(200).
		Preload("Items").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) NextNumeroTicket(ctx context.Context, tx *gorm.DB) (int64, error) {
	// Uses a PostgreSQL sequence for atomic ticket number generation
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('ventas_numero_ticket_seq')").Scan(&num).Error
	return num, err
}

func (r *ventaRepo) CountItemsByProducto(ctx context.Context, idProducto uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VentaItem{}).
		Where("id_producto = ?", idProducto).Count(&count).Error
	return count, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
