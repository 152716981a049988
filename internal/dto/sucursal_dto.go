package dto

type CrearSucursalRequest struct {
	IDEmpresa string  `json:"id_empresa" validate:"required,uuid"`
	Nombre    string  `json:"nombre"     validate:"required,min=2"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

type ActualizarSucursalRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

type SucursalResponse struct {
	ID        string  `json:"id"`
	IDEmpresa string  `json:"id_empresa"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Activo    bool    `json:"activo"`
}
