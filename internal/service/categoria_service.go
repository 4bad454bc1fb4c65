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

// ResultadoEliminacion reports a category deletion: every product that
// referenced the category now points at the fallback bucket.
type ResultadoEliminacion struct {
	Mensaje              string `json:"message"`
	ProductosReasignados int    `json:"products_reassigned"`
	SinCategoriaID       string `json:"uncategorized_id"`
}

// CategoriaService implements the category business operations.
type CategoriaService interface {
	Crear(ctx context.Context, data model.Documento) (model.Documento, error)
	Listar(ctx context.Context, incluirProductos bool) ([]model.Documento, error)
	ObtenerPorID(ctx context.Context, id string, incluirProductos bool) (model.Documento, error)
	Actualizar(ctx context.Context, id string, data model.Documento) (model.Documento, error)
	Eliminar(ctx context.Context, id string) (*ResultadoEliminacion, error)
	CambiarEstado(ctx context.Context, id, estado string) (model.Documento, error)
	CategoriasDeMuestra() []model.Documento
}

type categoriaService struct {
	categorias repository.CategoriaRepository
	productos  repository.ProductoRepository
}

func NewCategoriaService(categorias repository.CategoriaRepository, productos repository.ProductoRepository) CategoriaService {
	return &categoriaService{categorias: categorias, productos: productos}
}

func (s *categoriaService) Crear(ctx context.Context, data model.Documento) (model.Documento, error) {
	validado, err := schema.ValidarCategoria(data)
	if err != nil {
		return nil, err
	}
	id, err := s.categorias.Crear(ctx, validado)
	if err != nil {
		return nil, err
	}
	// Re-read so the response carries the store-resolved timestamps.
	return s.categorias.ObtenerPorID(ctx, id)
}

// conProductos embeds the category's active products and their count.
func (s *categoriaService) conProductos(ctx context.Context, doc model.Documento) (model.Documento, error) {
	id, _ := doc["id"].(string)
	productos, err := s.productos.PorCategoria(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if productos == nil {
		productos = []model.Documento{}
	}
	doc = doc.Clonar()
	doc["products"] = productos
	doc["products_count"] = len(productos)
	return doc, nil
}

// Listar returns every category; unlike products there is no estado filter.
func (s *categoriaService) Listar(ctx context.Context, incluirProductos bool) ([]model.Documento, error) {
	docs, err := s.categorias.Listar(ctx)
	if err != nil {
		return nil, err
	}
	if !incluirProductos {
		return docs, nil
	}
	out := make([]model.Documento, 0, len(docs))
	for _, doc := range docs {
		conProds, err := s.conProductos(ctx, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, conProds)
	}
	return out, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id string, incluirProductos bool) (model.Documento, error) {
	doc, err := s.categorias.ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Categoría no encontrada")
	}
	if err != nil {
		return nil, err
	}
	if incluirProductos {
		return s.conProductos(ctx, doc)
	}
	return doc, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id string, data model.Documento) (model.Documento, error) {
	actual, err := s.categorias.ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Categoría no encontrada")
	}
	if err != nil {
		return nil, err
	}
	if actual.Estado() == model.EstadoInactivo {
		return nil, apierror.Invalid("No se puede modificar una categoría inactiva")
	}

	validado, err := schema.ValidarCategoria(data)
	if err != nil {
		return nil, err
	}
	if err := s.categorias.Actualizar(ctx, id, validado); err != nil {
		return nil, err
	}
	return s.categorias.ObtenerPorID(ctx, id)
}

// Eliminar removes a category after atomically repointing every referencing
// product (any estado) to the fallback bucket, which is created first if
// absent. The repoint and the delete commit as one batch.
func (s *categoriaService) Eliminar(ctx context.Context, id string) (*ResultadoEliminacion, error) {
	_, err := s.categorias.ObtenerPorID(ctx, id)
	if errors.Is(err, repository.ErrNoEncontrado) {
		return nil, apierror.NotFound("Categoría no encontrada")
	}
	if err != nil {
		return nil, err
	}

	if err := asegurarSinCategoria(ctx, s.categorias); err != nil {
		return nil, err
	}
	reasignados, err := s.categorias.EliminarYReasignar(ctx, id, model.CategoriaSinCategoria)
	if err != nil {
		return nil, err
	}
	return &ResultadoEliminacion{
		Mensaje:              fmt.Sprintf("Categoría eliminada y %d productos reasignados", reasignados),
		ProductosReasignados: reasignados,
		SinCategoriaID:       model.CategoriaSinCategoria,
	}, nil
}

func (s *categoriaService) CambiarEstado(ctx context.Context, id, estado string) (model.Documento, error) {
	if _, err := s.categorias.ObtenerPorID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNoEncontrado) {
			return nil, apierror.NotFound("Categoría no encontrada")
		}
		return nil, err
	}
	err := s.categorias.Actualizar(ctx, id, model.Documento{
		"estado":     estado,
		"updated_at": model.ServerTimestamp,
	})
	if err != nil {
		return nil, err
	}
	return model.Documento{"id": id, "estado": estado}, nil
}

// CategoriasDeMuestra returns the seed categories; ids are literal so sample
// products can reference them by name.
func (s *categoriaService) CategoriasDeMuestra() []model.Documento {
	return []model.Documento{
		{
			"id":          "electronics",
			"name":        "Electrónicos",
			"description": "Dispositivos electrónicos y gadgets",
		},
		{
			"id":          "sports",
			"name":        "Deportes",
			"description": "Artículos deportivos y fitness",
		},
		{
			"id":          "home",
			"name":        "Hogar",
			"description": "Productos para el hogar",
		},
	}
}
