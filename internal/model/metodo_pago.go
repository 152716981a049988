package model

import (
	"time"

	"github.com/google/uuid"
)

// MetodoPago is a tenant-defined payment method (efectivo, yape, tarjeta…).
// Icono holds the public URL of an uploaded icon asset; it is attached in a
// second update after the asset is stored, so it may lag the row itself.
type MetodoPago struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEmpresa uuid.UUID `gorm:"column:id_empresa;type:uuid;index;not null"`
	Nombre    string    `gorm:"not null"`
	Icono     *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (MetodoPago) TableName() string { return "metodos_pago" }
