package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is a completed sale. Estado: "completada" | "anulada".
type Venta struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDEmpresa          uuid.UUID  `gorm:"column:id_empresa;type:uuid;index;not null"`
	IDSucursal         uuid.UUID  `gorm:"column:id_sucursal;type:uuid;index;not null"`
	IDCaja             *uuid.UUID `gorm:"column:id_caja;type:uuid;index"`
	IDUsuario          uuid.UUID  `gorm:"column:id_usuario;type:uuid;not null"`
	IDClienteProveedor *uuid.UUID `gorm:"column:id_cliente_proveedor;type:uuid"`
	IDMetodoPago       *uuid.UUID `gorm:"column:id_metodo_pago;type:uuid"`
	NumeroTicket       int64      `gorm:"uniqueIndex;not null"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuesto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado             string          `gorm:"type:varchar(15);not null;default:'completada'"`
	CreatedAt          time.Time

	Items []VentaItem `gorm:"foreignKey:IDVenta"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one product line of a sale. These rows are what blocks
// physical deletion of a product.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IDVenta        uuid.UUID       `gorm:"column:id_venta;type:uuid;index;not null"`
	IDProducto     uuid.UUID       `gorm:"column:id_producto;type:uuid;index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:IDProducto"`
}

func (VentaItem) TableName() string { return "venta_items" }
