package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogo/internal/repository"
)

// Health reports liveness plus document-store reachability via a cheap read.
func Health(migraciones repository.MigracionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		estadoStore := "up"
		if _, err := migraciones.Ejecutadas(c.Request.Context()); err != nil {
			estadoStore = "down"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": estadoStore})
	}
}
