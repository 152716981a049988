package dto

// ConsultarDocumentoRequest is the input of the document lookup relay.
// Tipo: "dni" (8 digits) | "ruc" (11 digits). Length is validated before
// anything leaves the process.
type ConsultarDocumentoRequest struct {
	Tipo   string `json:"tipo"   validate:"required,oneof=dni ruc"`
	Numero string `json:"numero" validate:"required,numeric"`
}

// DocumentoData is the reshaped payload from the national registry.
type DocumentoData struct {
	Numero    string `json:"numero"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Estado    string `json:"estado,omitempty"`
	Condicion string `json:"condicion,omitempty"`
}

type ConsultarDocumentoResponse struct {
	Success bool           `json:"success"`
	Data    *DocumentoData `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}
