package service

import (
	"context"
	"errors"
	"fmt"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/schema"
)

// ProductoService implements the product business operations: validation,
// category relationship maintenance and mapping to store operations.
type ProductoService interface {
	Crear(ctx context.Context, data model.Documento) (model.Documento, error)
	Listar(ctx context.Context, incluirCategoria bool) ([]model.Documento, error)
	ObtenerPorID(ctx context.Context, id string, incluirCategoria bool) (model.Documento, error)
	PorCategoria(ctx context.Context, categoriaID string) ([]model.Documento, error)
	Actualizar(ctx context.Context, id string, data model.Documento) (model.Documento, error)
	Eliminar(ctx context.Context, id string) error
	CrearLote(ctx context.Context, lista []model.Documento) ([]model.Documento, error)
	CambiarEstado(ctx context.Context, id, estado string) (model.Documento, error)
	CategoriaExiste(ctx context.Context, categoriaID string) (bool, error)
	ProductosDeMuestra() []model.Documento
}

type productoService struct {
	productos  repository.ProductoRepository
	categorias repository.CategoriaRepository
}

func NewProductoService(productos repository.ProductoRepository, categorias repository.CategoriaRepository) ProductoService {
	return &productoService{productos: productos, categorias: categorias}
}

// asegurarSinCategoria lazily creates the fallback "uncategorized" category.
// Kept as an explicit collaborator instead of a hidden validation side
// effect, but the observable behavior is unchanged: the bucket appears the
// first time an orphaned product needs it.
func asegurarSinCategoria(ctx context.Context, categorias repository.CategoriaRepository) error {
	_, err := categorias.ObtenerPorID(ctx, model.CategoriaSinCategoria)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNoEncontrado) {
		return err
	}
	return categorias.CrearConID(ctx, model.CategoriaSinCategoria, model.Documento{
		"name":        "Uncategorized",
		"description": "Productos sin categoría asignada",
		"created_at":  model.ServerTimestamp,
		"updated_at":  model.ServerTimestamp,
		"estado":      model.EstadoActivo,
	})
}

// validar runs field validation and resolves the category soft reference:
// a payload pointing at a nonexistent category is silently repointed to the
// fallback bucket rather than rejected.
func (s *productoService) validar(ctx context.Context, data model.Documento) (model.Documento, error) {
	validado, err := schema.ValidarProducto(data)
	if err != nil {
		return nil, err
	}
	categoriaID, _ := validado["category_id"].(string)
	_, err = s.categorias.ObtenerPorID(ctx, categoriaID)
	if errors.Is(err, repository.ErrNoEncontrado) {
		if err := asegurarSinCategoria(ctx, s.categorias); err != nil {
			return nil, err
		}
		validado["category_id"] = model.CategoriaSinCategoria
	} else if err != nil {
		return nil, err
	}
	return validado, nil
}

// conCategoria embeds the referenced category document under "category".
// One point lookup per row; missing categories are skipped silently.
func (s *productoService) conCategoria(ctx context.Context, doc model.Documento) model.Documento {
	categoriaID, _ := doc["category_id"].(string)
	categoria, err := s.categorias.ObtenerPorID(ctx, categoriaID)
	if err != nil {
		return doc
	}
	doc = doc.Clonar()
	doc["category"] = categoria
	return doc
}

func (s *productoService) Crear(ctx context.Context, data model.Documento) (model.Documento, error) {
	validado, err := s.validar(ctx, data)
	if err != nil {
		return nil, err
	}
	id, err := s.productos.Crear(ctx, validado)
	if err != nil {
		return nil, err
	}
	return s.conCategoria(ctx, validado.ResolverSentinelas().ConID(id)), nil
}

func (s *productoService) Listar(ctx context.Context, incluirCategoria bool) ([]model.Documento, error) {
	docs, err := s.productos.ListarActivos(ctx)
	if err != nil {
		return nil, err
	}
	if !incluirCategoria {
		return docs, nil
	}
	out := make([]model.Documento, 0, len(docs))
	for _, doc := range docs {
		out = append(out, s.conCategoria(ctx, doc))
	}
	return out, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id string, incluirCategoria bool) (model.Documento, error) {
	doc, err := s.productos.ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	if err != nil {
		return nil, err
	}
	// Inactive products are invisible to reads.
	if doc.Estado() != model.EstadoActivo {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	if incluirCategoria {
		doc = s.conCategoria(ctx, doc)
	}
	return doc, nil
}

func (s *productoService) PorCategoria(ctx context.Context, categoriaID string) ([]model.Documento, error) {
	_, err := s.categorias.ObtenerPorID(ctx, categoriaID)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Categoría no encontrada")
	}
	if err != nil {
		return nil, err
	}
	return s.productos.PorCategoria(ctx, categoriaID, true)
}

func (s *productoService) Actualizar(ctx context.Context, id string, data model.Documento) (model.Documento, error) {
	actual, err := s.productos.ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Producto no encontrado")
	}
	if err != nil {
		return nil, err
	}
	if actual.Estado() == model.EstadoInactivo {
		return nil, apierror.Invalid("No se puede modificar un producto inactivo")
	}

	validado, err := s.validar(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := s.productos.Actualizar(ctx, id, validado); err != nil {
		return nil, err
	}
	actualizado, err := s.productos.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.conCategoria(ctx, actualizado), nil
}

func (s *productoService) Eliminar(ctx context.Context, id string) error {
	if _, err := s.productos.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoEncontrado) {
			return apierror.NotFound("Producto no encontrado")
		}
		return err
	}
	return s.productos.Eliminar(ctx, id)
}

// CrearLote validates every item before any write, then commits one atomic
// batch. A single invalid item aborts the whole operation.
func (s *productoService) CrearLote(ctx context.Context, lista []model.Documento) ([]model.Documento, error) {
	validados := make([]model.Documento, 0, len(lista))
	for i, data := range lista {
		validado, err := s.validar(ctx, data)
		if err != nil {
			return nil, apierror.Invalid(fmt.Sprintf("Producto %d: %s", i+1, err.Error()))
		}
		validados = append(validados, validado)
	}

	ids, err := s.productos.CrearLote(ctx, validados)
	if err != nil {
		return nil, err
	}
	creados := make([]model.Documento, 0, len(validados))
	for i, validado := range validados {
		creados = append(creados, validado.ResolverSentinelas().ConID(ids[i]))
	}
	return creados, nil
}

func (s *productoService) CambiarEstado(ctx context.Context, id, estado string) (model.Documento, error) {
	if _, err := s.productos.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoEncontrado) {
			return nil, apierror.NotFound("Producto no encontrado")
		}
		return nil, err
	}
	err := s.productos.Actualizar(ctx, id, model.Documento{
		"estado":     estado,
		"updated_at": model.ServerTimestamp,
	})
	if err != nil {
		return nil, err
	}
	return model.Documento{"id": id, "estado": estado}, nil
}

func (s *productoService) CategoriaExiste(ctx context.Context, categoriaID string) (bool, error) {
	_, err := s.categorias.ObtenerPorID(ctx, categoriaID)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *productoService) ProductosDeMuestra() []model.Documento {
	return []model.Documento{
		{
			"name":        "Laptop Gamer",
			"price":       1299.99,
			"category_id": "electronics",
			"description": "Laptop de alto rendimiento para gaming",
		},
		{
			"name":        "Smartphone Pro",
			"price":       899.99,
			"category_id": "electronics",
			"description": "Último modelo con triple cámara",
		},
		{
			"name":        "Zapatillas Running",
			"price":       89.99,
			"category_id": "sports",
			"description": "Zapatillas profesionales para correr",
		},
	}
}
