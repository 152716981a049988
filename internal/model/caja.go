package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is a physical cash register. Owner scope is the branch, not the company.
type Caja struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDSucursal uuid.UUID `gorm:"column:id_sucursal;type:uuid;index;not null"`
	Nombre     string    `gorm:"not null"`
	Activo     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Caja) TableName() string { return "cajas" }

// SesionCaja tracks one apertura → cierre cycle of a register.
// Estado: "abierta" | "cerrada"
type SesionCaja struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDCaja        uuid.UUID       `gorm:"column:id_caja;type:uuid;index;not null"`
	IDUsuario     uuid.UUID       `gorm:"column:id_usuario;type:uuid;not null"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// MontoCierre is what the cashier counted; MontoEsperado is apertura + ventas.
	// A mismatch on cierre triggers a discrepancy alert.
	MontoCierre   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoEsperado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado        string           `gorm:"type:varchar(10);not null;default:'abierta'"`
	FechaApertura time.Time        `gorm:"not null"`
	FechaCierre   *time.Time
}

func (SesionCaja) TableName() string { return "sesiones_caja" }
