package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	IDEmpresa    string          `json:"id_empresa"    validate:"required,uuid"`
	CodigoBarras string          `json:"codigo_barras" validate:"required,min=4,max=18"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    string          `json:"categoria"     validate:"required"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"required"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required"`
	StockActual  int             `json:"stock_actual"  validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
	UnidadMedida string          `json:"unidad_medida"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Descripcion  *string          `json:"descripcion"`
	Categoria    *string          `json:"categoria"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	StockMinimo  *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	UnidadMedida *string          `json:"unidad_medida"`
}

type ProductoFilter struct {
	IDEmpresa string `form:"id_empresa" validate:"required,uuid"`
	Buscador  string `form:"buscador"`
	Categoria string `form:"categoria"`
}

type ProductoResponse struct {
	ID           string          `json:"id"`
	IDEmpresa    string          `json:"id_empresa"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    string          `json:"categoria"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	StockActual  int             `json:"stock_actual"`
	StockMinimo  int             `json:"stock_minimo"`
	UnidadMedida string          `json:"unidad_medida"`
	Activo       bool            `json:"activo"`
}
