package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
)

// respondError maps a service error to its status code with the uniform
// {"error": "..."} envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(apierror.Status(err), apierror.Envelope(err))
}

// bindDocumento binds a JSON object body into a raw document map.
// Returns false after writing the error response if the body is not a
// non-empty JSON object; the caller should return immediately.
func bindDocumento(c *gin.Context) (model.Documento, bool) {
	var data model.Documento
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Respuesta{Error: "Se esperaba un JSON"})
		return nil, false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, apierror.Respuesta{Error: "Datos vacíos o formato incorrecto"})
		return nil, false
	}
	return data, true
}

// sinNulos guards list responses: a nil slice must serialize as [] and not
// null.
func sinNulos(docs []model.Documento) []model.Documento {
	if docs == nil {
		return []model.Documento{}
	}
	return docs
}

// flagConsulta reads a boolean query parameter ("true" enables, anything
// else does not).
func flagConsulta(c *gin.Context, nombre string) bool {
	return c.DefaultQuery(nombre, "false") == "true"
}
