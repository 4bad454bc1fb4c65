package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"catalogo/internal/apierror"
	"catalogo/internal/service"
)

const ClaimsKey = "claims"

// JWTAuth validates the Bearer token on every protected route and attaches
// the decoded claims to the request context.
func JWTAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Respuesta{Error: "Token requerido"})
			return
		}

		claims, err := auth.VerificarToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			// "Token expirado" and "Token inválido" stay distinct on the wire.
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Envelope(err))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims retrieves the typed claims attached by JWTAuth, or nil on
// unauthenticated routes.
func GetClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}
