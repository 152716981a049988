package dto

// Icono carries raw image bytes (base64 over the wire via gin's binding).
// When present, the gateway stores the asset after the row write and then
// attaches the public URL in a second update.
type CrearMetodoPagoRequest struct {
	IDEmpresa   string `json:"id_empresa" validate:"required,uuid"`
	Nombre      string `json:"nombre"     validate:"required,min=2"`
	Icono       []byte `json:"icono,omitempty"`
	IconoNombre string `json:"icono_nombre,omitempty"`
}

type ActualizarMetodoPagoRequest struct {
	Nombre      *string `json:"nombre" validate:"omitempty,min=2"`
	Icono       []byte  `json:"icono,omitempty"`
	IconoNombre string  `json:"icono_nombre,omitempty"`
}

type MetodoPagoResponse struct {
	ID        string  `json:"id"`
	IDEmpresa string  `json:"id_empresa"`
	Nombre    string  `json:"nombre"`
	Icono     *string `json:"icono"`
	Activo    bool    `json:"activo"`
}
