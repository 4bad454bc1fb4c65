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

func nuevoServicioProductos(t *testing.T) (ProductoService, *memoria.Almacen) {
	t.Helper()
	alm := memoria.NewAlmacen()
	return NewProductoService(alm.Productos(), alm.Categorias()), alm
}

func crearCategoria(t *testing.T, alm *memoria.Almacen, id, nombre string) {
	t.Helper()
	err := alm.Categorias().CrearConID(context.Background(), id, model.Documento{
		"name":       nombre,
		"estado":     model.EstadoActivo,
		"created_at": model.ServerTimestamp,
		"updated_at": model.ServerTimestamp,
	})
	require.NoError(t, err)
}

func TestProductoCrearYObtener(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	creado, err := svc.Crear(ctx, model.Documento{
		"name":        "Laptop",
		"price":       999.99,
		"category_id": "electronics",
		"sku":         "LP-001",
	})
	require.NoError(t, err)

	id, _ := creado["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, model.EstadoActivo, creado["estado"])
	assert.IsType(t, time.Time{}, creado["created_at"])
	require.Contains(t, creado, "category")
	categoria := creado["category"].(model.Documento)
	assert.Equal(t, "Electrónicos", categoria["name"])

	leido, err := svc.ObtenerPorID(ctx, id, false)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", leido["name"])
	assert.Equal(t, "LP-001", leido["sku"], "campos extra llegan al store")
	assert.NotContains(t, leido, "category")

	conCat, err := svc.ObtenerPorID(ctx, id, true)
	require.NoError(t, err)
	assert.Contains(t, conCat, "category")
}

func TestProductoCategoriaInexistenteReapunta(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)

	creado, err := svc.Crear(ctx, model.Documento{
		"name":        "Huérfano",
		"price":       10.0,
		"category_id": "no-existe",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoriaSinCategoria, creado["category_id"])

	// The fallback bucket was created on first need.
	fallback, err := alm.Categorias().ObtenerPorID(ctx, model.CategoriaSinCategoria)
	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", fallback["name"])

	// A second orphan reuses it instead of recreating.
	_, err = svc.Crear(ctx, model.Documento{
		"name":        "Otro",
		"price":       5.0,
		"category_id": "tampoco",
	})
	require.NoError(t, err)
	docs, err := alm.Categorias().Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestProductoInactivoInvisible(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	creado, err := svc.Crear(ctx, model.Documento{
		"name": "Laptop", "price": 999.99, "category_id": "electronics",
	})
	require.NoError(t, err)
	id := creado["id"].(string)

	_, err = svc.CambiarEstado(ctx, id, model.EstadoInactivo)
	require.NoError(t, err)

	_, err = svc.ObtenerPorID(ctx, id, false)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	assert.Equal(t, "Producto no encontrado", err.Error())

	docs, err := svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// Reactivation makes it visible again.
	_, err = svc.CambiarEstado(ctx, id, model.EstadoActivo)
	require.NoError(t, err)
	docs, err = svc.Listar(ctx, false)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestProductoActualizarInactivoRechazado(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	creado, err := svc.Crear(ctx, model.Documento{
		"name": "Laptop", "price": 999.99, "category_id": "electronics",
	})
	require.NoError(t, err)
	id := creado["id"].(string)

	_, err = svc.CambiarEstado(ctx, id, model.EstadoInactivo)
	require.NoError(t, err)

	_, err = svc.Actualizar(ctx, id, model.Documento{
		"name": "Laptop v2", "price": 1099.99, "category_id": "electronics",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))
	assert.Equal(t, "No se puede modificar un producto inactivo", err.Error())
}

func TestProductoActualizar(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	creado, err := svc.Crear(ctx, model.Documento{
		"name": "Laptop", "price": 999.99, "category_id": "electronics",
	})
	require.NoError(t, err)
	id := creado["id"].(string)

	actualizado, err := svc.Actualizar(ctx, id, model.Documento{
		"name": "Laptop Pro", "price": 1299.99, "category_id": "electronics",
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", actualizado["name"])
	assert.Equal(t, 1299.99, actualizado["price"])
	assert.Equal(t, id, actualizado["id"])
}

func TestProductoCrearLoteAtomico(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	_, err := svc.CrearLote(ctx, []model.Documento{
		{"name": "Válido", "price": 10.0, "category_id": "electronics"},
		{"name": "Sin precio", "category_id": "electronics"},
	})
	require.Error(t, err)
	assert.Equal(t, "Producto 2: Campo requerido faltante: price", err.Error())
	assert.Equal(t, apierror.KindInvalid, apierror.KindOf(err))

	// Nothing was written: validation runs before any store operation.
	vacia, err := alm.Productos().Vacia(ctx)
	require.NoError(t, err)
	assert.True(t, vacia)

	creados, err := svc.CrearLote(ctx, []model.Documento{
		{"name": "Uno", "price": 10.0, "category_id": "electronics"},
		{"name": "Dos", "price": 20.0, "category_id": "electronics"},
	})
	require.NoError(t, err)
	require.Len(t, creados, 2)
	for _, doc := range creados {
		assert.NotEmpty(t, doc["id"])
		assert.Equal(t, model.EstadoActivo, doc["estado"])
	}
}

func TestProductoPorCategoria(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")
	crearCategoria(t, alm, "sports", "Deportes")

	_, err := svc.Crear(ctx, model.Documento{"name": "Laptop", "price": 999.99, "category_id": "electronics"})
	require.NoError(t, err)
	inactivo, err := svc.Crear(ctx, model.Documento{"name": "Mouse", "price": 19.99, "category_id": "electronics"})
	require.NoError(t, err)
	_, err = svc.Crear(ctx, model.Documento{"name": "Balón", "price": 29.99, "category_id": "sports"})
	require.NoError(t, err)

	_, err = svc.CambiarEstado(ctx, inactivo["id"].(string), model.EstadoInactivo)
	require.NoError(t, err)

	docs, err := svc.PorCategoria(ctx, "electronics")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Laptop", docs[0]["name"])

	_, err = svc.PorCategoria(ctx, "no-existe")
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}

func TestProductoEliminar(t *testing.T) {
	ctx := context.Background()
	svc, alm := nuevoServicioProductos(t)
	crearCategoria(t, alm, "electronics", "Electrónicos")

	creado, err := svc.Crear(ctx, model.Documento{"name": "Laptop", "price": 999.99, "category_id": "electronics"})
	require.NoError(t, err)
	id := creado["id"].(string)

	require.NoError(t, svc.Eliminar(ctx, id))

	_, err = alm.Productos().ObtenerPorID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNoEncontrado)

	err = svc.Eliminar(ctx, id)
	require.Error(t, err)
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
}
