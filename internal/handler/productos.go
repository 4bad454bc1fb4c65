package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
	"catalogo/internal/schema"
	"catalogo/internal/service"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Listar GET /api/products/?include_category=true
func (h *ProductosHandler) Listar(c *gin.Context) {
	docs, err := h.svc.Listar(c.Request.Context(), flagConsulta(c, "include_category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sinNulos(docs))
}

// Crear POST /api/products/
//
// Unlike batch and seed, direct creation rejects an unknown category here at
// the route instead of repointing it; the service would otherwise silently
// fall back to "uncategorized". Field errors are reported before the
// category lookup.
func (h *ProductosHandler) Crear(c *gin.Context) {
	data, ok := bindDocumento(c)
	if !ok {
		return
	}
	if _, err := schema.ValidarProducto(data); err != nil {
		respondError(c, err)
		return
	}
	if categoriaID, ok := data["category_id"].(string); ok {
		existe, err := h.svc.CategoriaExiste(c.Request.Context(), categoriaID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !existe {
			c.JSON(http.StatusBadRequest, apierror.Respuesta{
				Error: fmt.Sprintf("La categoría '%s' no existe. Por favor, crea la categoría antes de asignarla a un producto.", categoriaID),
			})
			return
		}
	}
	doc, err := h.svc.Crear(c.Request.Context(), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// ObtenerPorID GET /api/products/:id?include_category=true
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	doc, err := h.svc.ObtenerPorID(c.Request.Context(), c.Param("id"), flagConsulta(c, "include_category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Actualizar PUT /api/products/:id
func (h *ProductosHandler) Actualizar(c *gin.Context) {
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

// Eliminar DELETE /api/products/:id
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado"})
}

// CrearLote POST /api/products/batch
func (h *ProductosHandler) CrearLote(c *gin.Context) {
	var lista []model.Documento
	if err := c.ShouldBindJSON(&lista); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Respuesta{Error: "Se esperaba una lista de productos"})
		return
	}
	creados, err := h.svc.CrearLote(c.Request.Context(), lista)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("%d productos creados", len(creados)),
		"products": sinNulos(creados),
	})
}

// Seed POST /api/products/seed. Demo convenience, unauthenticated.
func (h *ProductosHandler) Seed(c *gin.Context) {
	creados, err := h.svc.CrearLote(c.Request.Context(), h.svc.ProductosDeMuestra())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("%d productos creados", len(creados)),
		"products": sinNulos(creados),
	})
}

type estadoRequest struct {
	Estado string `json:"estado"`
}

// CambiarEstado PATCH /api/products/:id/estado
func (h *ProductosHandler) CambiarEstado(c *gin.Context) {
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
