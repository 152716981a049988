package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "cajero" | "supervisor" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEmpresa    uuid.UUID `gorm:"column:id_empresa;type:uuid;index;not null"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Modulos []Modulo `gorm:"many2many:usuario_modulos;joinForeignKey:IDUsuario;joinReferences:IDModulo"`
}

// Modulo is a navigable section of the application (ventas, inventario, caja…).
// Access is granted per user through UsuarioModulo rows.
type Modulo struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`
	Ruta   string    `gorm:"not null"`
	Activo bool      `gorm:"not null;default:true"`
}

func (Modulo) TableName() string { return "modulos" }

// UsuarioModulo grants one user access to one module.
type UsuarioModulo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDUsuario uuid.UUID `gorm:"column:id_usuario;type:uuid;uniqueIndex:idx_usuario_modulo;not null"`
	IDModulo  uuid.UUID `gorm:"column:id_modulo;type:uuid;uniqueIndex:idx_usuario_modulo;not null"`
	CreatedAt time.Time
}

func (UsuarioModulo) TableName() string { return "usuario_modulos" }
