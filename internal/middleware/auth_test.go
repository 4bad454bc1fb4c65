package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/config"
	"catalogo/internal/repository/memoria"
	"catalogo/internal/service"
)

func TestJWTAuthAdjuntaClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	auth := service.NewAuthService(memoria.NewAlmacen().Usuarios(), &config.Config{
		JWTSecret:            "secreto-de-prueba",
		JWTExpirationSeconds: 3600,
	})
	_, err := auth.Registrar(ctx, "ana@example.com", "clave123")
	require.NoError(t, err)
	token, err := auth.Login(ctx, "ana@example.com", "clave123")
	require.NoError(t, err)

	var visto *service.Claims
	r := gin.New()
	r.GET("/privado", JWTAuth(auth), func(c *gin.Context) {
		visto = GetClaims(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.NotNil(t, visto)
	assert.Equal(t, "ana@example.com", visto.Email)
}

func TestGetClaimsSinGuardia(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))
}
