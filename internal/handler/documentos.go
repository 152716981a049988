package handler

import (
	"errors"
	"net/http"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/infra"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

// DocumentosHandler relays DNI/RUC lookups against the national registry.
// Malformed input never leaves the process; upstream failures map onto the
// relay's own response with the upstream status passed through.
type DocumentosHandler struct{ svc service.DocumentoService }

func NewDocumentosHandler(svc service.DocumentoService) *DocumentosHandler {
	return &DocumentosHandler{svc: svc}
}

func (h *DocumentosHandler) Consultar(c *gin.Context) {
	req := dto.ConsultarDocumentoRequest{
		Tipo:   c.Param("tipo"),
		Numero: c.Param("numero"),
	}

	resp, err := h.svc.Consultar(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentoInvalido):
			c.JSON(http.StatusBadRequest, dto.ConsultarDocumentoResponse{
				Success: false,
				Message: "Numero de documento invalido: DNI requiere 8 digitos, RUC requiere 11",
			})
		case errors.Is(err, infra.ErrCircuitOpen):
			c.JSON(http.StatusServiceUnavailable, dto.ConsultarDocumentoResponse{
				Success: false,
				Message: "Servicio de consulta temporalmente no disponible",
			})
		default:
			var upstream *infra.UpstreamError
			if errors.As(err, &upstream) {
				c.JSON(upstream.Status, dto.ConsultarDocumentoResponse{
					Success: false,
					Message: upstream.Message,
				})
				return
			}
			c.JSON(http.StatusBadGateway, dto.ConsultarDocumentoResponse{
				Success: false,
				Message: "No se pudo consultar el documento",
			})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}
