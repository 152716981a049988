package handler

import (
	"net/http"

	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/apierror"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/dto"
	"github.com/DazzleEaglePe/GESTION-DE-VENTAS-POS-sub002/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesProveedoresHandler struct{ svc service.ClienteProveedorService }

func NewClientesProveedoresHandler(svc service.ClienteProveedorService) *ClientesProveedoresHandler {
	return &ClientesProveedoresHandler{svc: svc}
}

func (h *ClientesProveedoresHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteProveedorRequest
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

// Buscar serves both the plain listing and the free-text search: an empty
// buscador returns the same set as the list.
func (h *ClientesProveedoresHandler) Buscar(c *gin.Context) {
	var filter dto.BuscarFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar registros"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientesProveedoresHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarClienteProveedorRequest
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

func (h *ClientesProveedoresHandler) Desactivar(c *gin.Context) {
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

func (h *ClientesProveedoresHandler) Restaurar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Restaurar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, dto.ResultadoOperacion{Exito: true, Mensaje: "Registro restaurado"})
}
