package dto

import "github.com/shopspring/decimal"

type CrearEmpresaRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2"`
	RUC         string          `json:"ruc"          validate:"required,len=11,numeric"`
	Direccion   *string         `json:"direccion"`
	Telefono    *string         `json:"telefono"`
	Moneda      string          `json:"moneda"`
	ImpuestoPct decimal.Decimal `json:"impuesto_pct" validate:"min=0"`
}

type ActualizarEmpresaRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2"`
	Direccion   *string          `json:"direccion"`
	Telefono    *string          `json:"telefono"`
	Moneda      *string          `json:"moneda"`
	ImpuestoPct *decimal.Decimal `json:"impuesto_pct"`
	Logo        *string          `json:"logo"`
}

type EmpresaResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	RUC         string          `json:"ruc"`
	Direccion   *string         `json:"direccion"`
	Telefono    *string         `json:"telefono"`
	Moneda      string          `json:"moneda"`
	ImpuestoPct decimal.Decimal `json:"impuesto_pct"`
	Logo        *string         `json:"logo"`
	Activo      bool            `json:"activo"`
}
