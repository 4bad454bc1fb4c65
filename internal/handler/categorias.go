package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
	"catalogo/internal/service"
)

type CategoriasHandler struct{ svc service.CategoriaService }

func NewCategoriasHandler(svc service.CategoriaService) *CategoriasHandler {
	return &CategoriasHandler{svc: svc}
}

// Listar GET /api/categories/?include_products=true
func (h *CategoriasHandler) Listar(c *gin.Context) {
	docs, err := h.svc.Listar(c.Request.Context(), flagConsulta(c, "include_products"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sinNulos(docs))
}

// Crear POST /api/categories/
func (h *CategoriasHandler) Crear(c *gin.Context) {
	data, ok := bindDocumento(c)
	if !ok {
		return
	}
	doc, err := h.svc.Crear(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ObtenerPorID GET /api/categories/:id?include_products=true
func (h *CategoriasHandler) ObtenerPorID(c *gin.Context) {
	doc, err := h.svc.ObtenerPorID(c.Request.Context(), c.Param("id"), flagConsulta(c, "include_products"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Actualizar PUT /api/categories/:id
func (h *CategoriasHandler) Actualizar(c *gin.Context) {
	data, ok := bindDocumento(c)
	if !ok {
		return
	}
	doc, err := h.svc.Actualizar(c.Request.Context(), c.Param("id"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Eliminar DELETE /api/categories/:id responds with the reassignment stats.
func (h *CategoriasHandler) Eliminar(c *gin.Context) {
	resultado, err := h.svc.Eliminar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultado)
}

// CambiarEstado PATCH /api/categories/:id/estado
func (h *CategoriasHandler) CambiarEstado(c *gin.Context) {
	var req estadoRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Estado != model.EstadoActivo && req.Estado != model.EstadoInactivo) {
		c.JSON(http.StatusBadRequest, apierror.Respuesta{Error: `Estado inválido, debe ser "activo" o "inactivo"`})
		return
	}
	doc, err := h.svc.CambiarEstado(c.Request.Context(), c.Param("id"), req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
