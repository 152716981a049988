package dto

import "github.com/shopspring/decimal"

type CrearCajaRequest struct {
	IDSucursal string `json:"id_sucursal" validate:"required,uuid"`
	Nombre     string `json:"nombre"      validate:"required,min=2"`
}

type ActualizarCajaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=2"`
}

type CajaResponse struct {
	ID         string `json:"id"`
	IDSucursal string `json:"id_sucursal"`
	Nombre     string `json:"nombre"`
	Activo     bool   `json:"activo"`
}

type AbrirCajaRequest struct {
	IDCaja        string          `json:"id_caja"        validate:"required,uuid"`
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
}

type CerrarCajaRequest struct {
	MontoCierre decimal.Decimal `json:"monto_cierre" validate:"min=0"`
}

type SesionCajaResponse struct {
	ID            string           `json:"id"`
	IDCaja        string           `json:"id_caja"`
	IDUsuario     string           `json:"id_usuario"`
	MontoApertura decimal.Decimal  `json:"monto_apertura"`
	MontoCierre   *decimal.Decimal `json:"monto_cierre,omitempty"`
	MontoEsperado *decimal.Decimal `json:"monto_esperado,omitempty"`
	Estado        string           `json:"estado"`
	Discrepancia  *decimal.Decimal `json:"discrepancia,omitempty"`
}
