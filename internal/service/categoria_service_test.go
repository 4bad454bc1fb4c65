package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/repository/memoria"
)

func nuevoServicioCategorias(t *testing.T) (CategoriaService, ProductoService, *memoria.Almacen) {
	t.Helper()
	alm := memoria.NewAlmacen()
	categorias := NewCategoriaService(alm.Categorias(), alm.Productos())
	productos := NewProductoService(alm.Productos(), alm.Categorias())
	return categorias, productos, alm
}

func TestCategoriaCrear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := nuevoServicioCategorias(t)

	creada, err := svc.Crear(ctx, model.Documento{
		"name":        "Books",
		"description": "Libros",
		"color":       "azul",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, creada["id"])
	assert.Equal(t, "Books", creada["name"])
	assert.Equal(t, model.EstadoActivo, creada["estado"])
	assert.NotContains(t, creada, "color", "campos fuera de la lista blanca se descartan")

	// Re-read after write: timestamps come back resolved, not as sentinels.
	assert.IsType(t, time.Time{}, creada["created_at"])
	assert.IsType(t, time.Time{}, creada["updated_at"])
}

func TestCategoriaListarSinFiltroDeEstado(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := nuevoServicioCategorias(t)

	_, err := svc.Crear(ctx, model.Documento{"name": "Activa"})
	require.NoError(t, err)
	inactiva, err := svc.Crear(ctx, model.Documento{"name": "Inactiva"})
	require.NoError(t, err)
	_, err = svc.CambiarEstado(ctx, inactiva["id"].(string), model.EstadoInactivo)
	require.NoError(t, err)

	// Unlike products, category reads ignore estado.
	docs, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	leida, err := svc.ObtenerPorID(ctx, inactiva["id"].(string), false)
	require.NoError(t, err)
	assert.Equal(t, model.EstadoInactivo, leida.Estado())
}

func TestCategoriaConProductos(t *testing.T) {
	ctx := context.Background()
	svc, productos, _ := nuevoServicioCategorias(t)

	creada, err := svc.Crear(ctx, model.Documento{"name": "Electrónicos"})
	require.NoError(t, err)
	id := creada["id"].(string)

	_, err = productos.Crear(ctx, model.Documento{"name": "Laptop", "price": 999.99, "category_id": id})
	require.NoError(t, err)
	inactivo, err := productos.Crear(ctx, model.Documento{"name": "Mouse", "price": 19.99, "category_id": id})
	require.NoError(t, err)
	_, err = productos.CambiarEstado(ctx, inactivo["id"].(string), model.EstadoInactivo)
	require.NoError(t, err)

	leida, err := svc.ObtenerPorID(ctx, id, true)
	require.NoError(t, err)

	// Embedded products are the active ones only.
	assert.Equal(t, 1, leida["products_count"])
	embebidos := leida["products"].([]model.Documento)
	require.Len(t, embebidos, 1)
	assert.Equal(t, "Laptop", embebidos[0]["name"])
}

func TestCategoriaActualizarInactivaRechazada(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := nuevoServicioCategorias(t)

	creada, err := svc.Crear(ctx, model.Documento{"name": "Ropa"})
	require.NoError(t, err)
	id := creada["id"].(string)

	_, err = svc.CambiarEstado(ctx, id, model.EstadoInactivo)
	require.NoError(t, err)

	_, err = svc.Actualizar(ctx, id, model.Documento{"name": "Ropa v2"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
	assert.Equal(t, "No se puede modificar una categoría inactiva", err.Error())
}

func TestCategoriaEliminarReasignaProductos(t *testing.T) {
	ctx := context.Background()
	svc, productos, alm := nuevoServicioCategorias(t)

	creada, err := svc.Crear(ctx, model.Documento{"name": "Electrónicos"})
	require.NoError(t, err)
	id := creada["id"].(string)

	laptop, err := productos.Crear(ctx, model.Documento{"name": "Laptop", "price": 999.99, "category_id": id})
	require.NoError(t, err)
	mouse, err := productos.Crear(ctx, model.Documento{"name": "Mouse", "price": 19.99, "category_id": id})
	require.NoError(t, err)
	// Inactive products get repointed too.
	_, err = productos.CambiarEstado(ctx, mouse["id"].(string), model.EstadoInactivo)
	require.NoError(t, err)

	resultado, err := svc.Eliminar(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, resultado.ProductosReasignados)
	assert.Equal(t, model.CategoriaSinCategoria, resultado.SinCategoriaID)
	assert.Contains(t, resultado.Mensaje, "2 productos reasignados")

	_, err = alm.Categorias().ObtenerPorID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNoEncontrado)

	repuntado, err := alm.Productos().ObtenerPorID(ctx, laptop["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, model.CategoriaSinCategoria, repuntado["category_id"])

	_, err = alm.Categorias().ObtenerPorID(ctx, model.CategoriaSinCategoria)
	assert.NoError(t, err, "el bucket de respaldo existe tras la eliminación")
}

func TestCategoriaEliminarSinProductos(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := nuevoServicioCategorias(t)

	creada, err := svc.Crear(ctx, model.Documento{"name": "Vacía"})
	require.NoError(t, err)

	resultado, err := svc.Eliminar(ctx, creada["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, 0, resultado.ProductosReasignados)
}

func TestCategoriaNoEncontrada(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := nuevoServicioCategorias(t)

	_, err := svc.ObtenerPorID(ctx, "fantasma", false)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	assert.Equal(t, "Categoría no encontrada", err.Error())

	_, err = svc.Eliminar(ctx, "fantasma")
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
