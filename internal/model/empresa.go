package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Empresa is the tenancy root: every other entity is owned by exactly one
// company (directly via IDEmpresa, or through its Sucursal for cajas).
type Empresa struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"not null"`
	RUC         string    `gorm:"column:ruc;uniqueIndex;not null"`
	Direccion   *string
	Telefono    *string
	Moneda      string          `gorm:"not null;default:'PEN'"`
	ImpuestoPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	Logo        *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Empresa) TableName() string { return "empresas" }
