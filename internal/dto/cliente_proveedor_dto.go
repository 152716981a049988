package dto

type CrearClienteProveedorRequest struct {
	IDEmpresa       string  `json:"id_empresa"       validate:"required,uuid"`
	Tipo            string  `json:"tipo"             validate:"required,oneof=cliente proveedor"`
	Nombre          string  `json:"nombre"           validate:"required,min=2"`
	TipoDocumento   string  `json:"tipo_documento"   validate:"omitempty,oneof=dni ruc"`
	NumeroDocumento string  `json:"numero_documento"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
}

type ActualizarClienteProveedorRequest struct {
	Nombre          *string `json:"nombre"           validate:"omitempty,min=2"`
	TipoDocumento   *string `json:"tipo_documento"   validate:"omitempty,oneof=dni ruc"`
	NumeroDocumento *string `json:"numero_documento"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	Direccion       *string `json:"direccion"`
}

// BuscarFilter is shared by the search endpoints: owner scope plus an
// optional tipo discriminator and a free-text Buscador. An empty Buscador
// matches everything (same set as a plain list).
type BuscarFilter struct {
	IDEmpresa string `form:"id_empresa" validate:"required,uuid"`
	Tipo      string `form:"tipo"       validate:"omitempty,oneof=cliente proveedor"`
	Buscador  string `form:"buscador"`
}

type ClienteProveedorResponse struct {
	ID              string  `json:"id"`
	IDEmpresa       string  `json:"id_empresa"`
	Tipo            string  `json:"tipo"`
	Nombre          string  `json:"nombre"`
	TipoDocumento   string  `json:"tipo_documento"`
	NumeroDocumento string  `json:"numero_documento"`
	Telefono        *string `json:"telefono"`
	Email           *string `json:"email"`
	Direccion       *string `json:"direccion"`
	Activo          bool    `json:"activo"`
}
