package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
)

func productoValido() model.Documento {
	return model.Documento{
		"name":        "Laptop",
		"price":       999.99,
		"category_id": "electronics",
	}
}

func TestValidarProductoRequeridosEnOrden(t *testing.T) {
	casos := []struct {
		quitar  string
		mensaje string
	}{
		{"name", "Campo requerido faltante: name"},
		{"price", "Campo requerido faltante: price"},
		{"category_id", "Campo requerido faltante: category_id"},
	}
	for _, c := range casos {
		data := productoValido()
		delete(data, c.quitar)
		_, err := ValidarProducto(data)
		require.Error(t, err)
		assert.Equal(t, c.mensaje, err.Error())
		assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
	}

	// With several fields missing the first in declaration order wins.
	_, err := ValidarProducto(model.Documento{"description": "x"})
	require.Error(t, err)
	assert.Equal(t, "Campo requerido faltante: name", err.Error())
}

func TestValidarProductoPrecio(t *testing.T) {
	for _, precio := range []any{0, 0.0, -10.5, "99.99", nil, true} {
		data := productoValido()
		data["price"] = precio
		_, err := ValidarProducto(data)
		require.Error(t, err, "price=%v", precio)
		assert.Equal(t, "Precio debe ser número positivo", err.Error())
	}

	// Decoded JSON bodies carry float64, but int literals from internal
	// callers are accepted too.
	data := productoValido()
	data["price"] = 25
	_, err := ValidarProducto(data)
	assert.NoError(t, err)
}

func TestValidarProductoLimites(t *testing.T) {
	data := productoValido()
	data["name"] = string(make([]byte, MaxNombreProducto+1))
	_, err := ValidarProducto(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 100")

	data = productoValido()
	data["description"] = string(make([]byte, MaxDescripcionProducto+1))
	_, err = ValidarProducto(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 500")
}

func TestValidarProductoLimitesEnCaracteres(t *testing.T) {
	// Accented input: the limits count characters, not UTF-8 bytes.
	data := productoValido()
	data["name"] = strings.Repeat("ñ", MaxNombreProducto)
	_, err := ValidarProducto(data)
	assert.NoError(t, err)

	data = productoValido()
	data["name"] = strings.Repeat("ñ", MaxNombreProducto+1)
	_, err = ValidarProducto(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 100")

	data = productoValido()
	data["description"] = strings.Repeat("é", MaxDescripcionProducto)
	_, err = ValidarProducto(data)
	assert.NoError(t, err)
}

func TestValidarProductoPassThrough(t *testing.T) {
	data := productoValido()
	data["warehouse"] = "central"
	data["sku"] = "LP-001"

	validado, err := ValidarProducto(data)
	require.NoError(t, err)

	// Unknown fields survive into the sanitized copy.
	assert.Equal(t, "central", validado["warehouse"])
	assert.Equal(t, "LP-001", validado["sku"])

	assert.Equal(t, model.EstadoActivo, validado["estado"])
	assert.True(t, model.EsServerTimestamp(validado["created_at"]))
	assert.True(t, model.EsServerTimestamp(validado["updated_at"]))

	// The caller's map stays untouched.
	_, presente := data["estado"]
	assert.False(t, presente)
}

func TestValidarProductoEstadoExplicito(t *testing.T) {
	data := productoValido()
	data["estado"] = model.EstadoInactivo
	validado, err := ValidarProducto(data)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoInactivo, validado["estado"])
}

func TestValidarCategoriaNombreObligatorio(t *testing.T) {
	_, err := ValidarCategoria(model.Documento{"description": "sin nombre"})
	require.Error(t, err)
	assert.Equal(t, "El campo 'name' es obligatorio", err.Error())

	data := model.Documento{"name": string(make([]byte, MaxNombreCategoria+1))}
	_, err = ValidarCategoria(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 50")
}

func TestValidarCategoriaLimitesEnCaracteres(t *testing.T) {
	// 50 accented characters exceed 50 bytes but are within the limit.
	_, err := ValidarCategoria(model.Documento{
		"name":        strings.Repeat("á", MaxNombreCategoria),
		"description": strings.Repeat("í", MaxDescripcionCategoria),
	})
	assert.NoError(t, err)

	_, err = ValidarCategoria(model.Documento{"name": strings.Repeat("á", MaxNombreCategoria+1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max 50")
}

func TestValidarCategoriaListaBlanca(t *testing.T) {
	validado, err := ValidarCategoria(model.Documento{
		"name":        "Books",
		"description": "Libros",
		"color":       "azul",
		"icon":        "book",
	})
	require.NoError(t, err)

	// Fields outside the allow-list are dropped, not rejected.
	assert.NotContains(t, validado, "color")
	assert.NotContains(t, validado, "icon")
	assert.Equal(t, "Books", validado["name"])
	assert.Equal(t, "Libros", validado["description"])
	assert.Equal(t, model.EstadoActivo, validado["estado"])
	assert.True(t, model.EsServerTimestamp(validado["created_at"]))
}

func TestEmailValido(t *testing.T) {
	validos := []string{"user@example.com", "a.b+c@sub.dominio.org", "x_1@e.co"}
	for _, e := range validos {
		assert.True(t, EmailValido(e), e)
	}
	invalidos := []string{"", "sin-arroba", "user@", "@dominio.com", "user@dominio", "user@dominio.c"}
	for _, e := range invalidos {
		assert.False(t, EmailValido(e), e)
	}
}

func TestPasswordFuerte(t *testing.T) {
	assert.True(t, PasswordFuerte("abc123"))
	assert.True(t, PasswordFuerte("Segura99"))

	assert.False(t, PasswordFuerte("ab1"), "demasiado corta")
	assert.False(t, PasswordFuerte("abcdef"), "sin dígito")
	assert.False(t, PasswordFuerte("123456"), "sin letra")

	// Multi-byte characters count once: "ññé1" is 4 characters, 7 bytes.
	assert.False(t, PasswordFuerte("ññé1"), "corta aunque supere 6 bytes")
	assert.True(t, PasswordFuerte("ñandú1"))
}
