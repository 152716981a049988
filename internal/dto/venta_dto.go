package dto

import "github.com/shopspring/decimal"

type VentaItemInput struct {
	IDProducto string `json:"id_producto" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,gt=0"`
}

// RegistrarVentaRequest carries an optional id_caja: sales rung up at a
// register are stamped with it so the cierre de caja only counts its own.
type RegistrarVentaRequest struct {
	IDEmpresa          string           `json:"id_empresa"           validate:"required,uuid"`
	IDSucursal         string           `json:"id_sucursal"          validate:"required,uuid"`
	IDCaja             *string          `json:"id_caja"              validate:"omitempty,uuid"`
	IDClienteProveedor *string          `json:"id_cliente_proveedor" validate:"omitempty,uuid"`
	IDMetodoPago       *string          `json:"id_metodo_pago"       validate:"omitempty,uuid"`
	Items              []VentaItemInput `json:"items"                validate:"required,min=1,dive"`
}

type VentaItemResponse struct {
	IDProducto     string          `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	NumeroTicket int64               `json:"numero_ticket"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Impuesto     decimal.Decimal     `json:"impuesto"`
	Total        decimal.Decimal     `json:"total"`
	Estado       string              `json:"estado"`
	Items        []VentaItemResponse `json:"items"`
}
