package handler

import (
	"net/http"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/apierror"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajasHandler struct{ svc service.CajaService }

func NewCajasHandler(svc service.CajaService) *CajasHandler {
	return &CajasHandler{svc: svc}
}

func (h *CajasHandler) Crear(c *gin.Context) {
	var req dto.CrearCajaRequest
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

func (h *CajasHandler) Listar(c *gin.Context) {
	idSucursal, err := uuid.Parse(c.Query("id_sucursal"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id_sucursal invalido"))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), idSucursal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cajas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCajaRequest
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

func (h *CajasHandler) Desactivar(c *gin.Context) {
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

func (h *CajasHandler) Restaurar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Restaurar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ResultadoOperacion{Exito: true, Mensaje: "Caja restaurada"})
}

func (h *CajasHandler) Abrir(c *gin.Context) {
	usuario := actorID(c)
	if usuario == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
		return
	}
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), *usuario, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CajasHandler) Cerrar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
