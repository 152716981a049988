package model

import (
	"time"

	"github.com/google/uuid"
)

// ClienteProveedor stores clients and suppliers in a single table,
// discriminated by Tipo: "cliente" | "proveedor".
// TipoDocumento: "dni" (8 digits) | "ruc" (11 digits)
type ClienteProveedor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEmpresa       uuid.UUID `gorm:"column:id_empresa;type:uuid;index;not null"`
	Tipo            string    `gorm:"type:varchar(10);index;not null"`
	Nombre          string    `gorm:"index;not null"`
	TipoDocumento   string    `gorm:"type:varchar(5)"`
	NumeroDocumento string    `gorm:"index"`
	Telefono        *string
	Email           *string
	Direccion       *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ClienteProveedor) TableName() string { return "clientes_proveedores" }
