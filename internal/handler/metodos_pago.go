package handler

import (
	"net/http"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/apierror"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MetodosPagoHandler struct{ svc service.MetodoPagoService }

func NewMetodosPagoHandler(svc service.MetodoPagoService) *MetodosPagoHandler {
	return &MetodosPagoHandler{svc: svc}
}

func (h *MetodosPagoHandler) Crear(c *gin.Context) {
	var req dto.CrearMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MetodosPagoHandler) Listar(c *gin.Context) {
	idEmpresa, err := uuid.Parse(c.Query("id_empresa"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id_empresa invalido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), idEmpresa)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar metodos de pago"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MetodosPagoHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MetodosPagoHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resultado, err := h.svc.Desactivar(c.Request.Context(), id, actorID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resultado)
}

func (h *MetodosPagoHandler) Restaurar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Restaurar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ResultadoOperacion{Exito: true, Mensaje: "Método de pago restaurado"})
}
