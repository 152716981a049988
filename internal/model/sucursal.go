package model

import (
	"time"

	"github.com/google/uuid"
)

// Sucursal is a branch of a company. Cajas hang off sucursales, not empresas.
type Sucursal struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEmpresa uuid.UUID `gorm:"column:id_empresa;type:uuid;index;not null"`
	Nombre    string    `gorm:"not null"`
	Direccion *string
	Telefono  *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cajas []Caja `gorm:"foreignKey:IDSucursal"`
}

func (Sucursal) TableName() string { return "sucursales" }
