package service

import (
	"context"
	"errors"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
)

// ErrDocumentoInvalido marks a lookup request that fails local validation.
// These never reach the upstream registry.
var ErrDocumentoInvalido = errors.New("documento invalido")

type DocumentoService interface {
	// Consultar relays a DNI/RUC lookup. A *infra.UpstreamError carries the
	// registry's HTTP status so the handler can pass it through.
	Consultar(ctx context.Context, req dto.ConsultarDocumentoRequest) (*dto.ConsultarDocumentoResponse, error)
}

type documentoService struct {
	client *infra.DocumentoClient
	cb     *infra.CircuitBreaker
}

func NewDocumentoService(client *infra.DocumentoClient, cb *infra.CircuitBreaker) DocumentoService {
	return &documentoService{client: client, cb: cb}
}

// validarNumero enforces the per-type length before any network call.
func validarNumero(tipo, numero string) error {
	var esperado int
	switch tipo {
	case "dni":
		esperado = 8
	case "ruc":
		esperado = 11
	default:
		return ErrDocumentoInvalido
	}
	if len(numero) != esperado {
		return ErrDocumentoInvalido
	}
	for _, c := range numero {
		if c < '0' || c > '9' {
			return ErrDocumentoInvalido
		}
	}
	return nil
}

func (s *documentoService) Consultar(ctx context.Context, req dto.ConsultarDocumentoRequest) (*dto.ConsultarDocumentoResponse, error) {
	if err := validarNumero(req.Tipo, req.Numero); err != nil {
		return nil, err
	}

	var result *infra.DocumentoResponse
	err := s.cb.Execute(func() error {
		var err error
		result, err = s.client.Consultar(ctx, req.Tipo, req.Numero)
		return err
	})
	if err != nil {
		return nil, err
	}

	data := &dto.DocumentoData{
		Numero:    result.Numero,
		Direccion: result.Direccion,
		Estado:    result.Estado,
		Condicion: result.Condicion,
	}
	// DNI lookups carry a person name; RUC lookups a business name.
	if req.Tipo == "dni" {
		data.Nombre = result.NombreCompleto
	} else {
		data.Nombre = result.RazonSocial
	}
	return &dto.ConsultarDocumentoResponse{Success: true, Data: data}, nil
}
