package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"catalogo/internal/model"
)

type productoRepo struct{ cliente *firestore.Client }

func NewProductoRepository(cliente *firestore.Client) ProductoRepository {
	return &productoRepo{cliente: cliente}
}

func (r *productoRepo) col() *firestore.CollectionRef {
	return r.cliente.Collection(model.ColeccionProductos)
}

func (r *productoRepo) Crear(ctx context.Context, doc model.Documento) (string, error) {
	id := uuid.NewString()
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(doc))
	return id, err
}

func (r *productoRepo) CrearConID(ctx context.Context, id string, doc model.Documento) error {
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(doc))
	return err
}

func (r *productoRepo) ObtenerPorID(ctx context.Context, id string) (model.Documento, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if esNoEncontrado(err) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return model.Documento(snap.Data()).ConID(snap.Ref.ID), nil
}

func (r *productoRepo) ListarActivos(ctx context.Context) ([]model.Documento, error) {
	return recolectar(r.col().Where("estado", "==", model.EstadoActivo).Documents(ctx))
}

func (r *productoRepo) ListarTodos(ctx context.Context) ([]model.Documento, error) {
	return recolectar(r.col().Documents(ctx))
}

func (r *productoRepo) PorCategoria(ctx context.Context, categoriaID string, soloActivos bool) ([]model.Documento, error) {
	q := r.col().Where("category_id", "==", categoriaID)
	if soloActivos {
		q = q.Where("estado", "==", model.EstadoActivo)
	}
	return recolectar(q.Documents(ctx))
}

func (r *productoRepo) Actualizar(ctx context.Context, id string, campos model.Documento) error {
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(campos), firestore.MergeAll)
	if esNoEncontrado(err) {
		return ErrNoEncontrado
	}
	return err
}

func (r *productoRepo) Eliminar(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// CrearLote performs the only write here that must be all-or-nothing: a
// single WriteBatch commit. Sequential individual writes would leave a
// partial batch behind on failure.
func (r *productoRepo) CrearLote(ctx context.Context, docs []model.Documento) ([]string, error) {
	lote := r.cliente.Batch()
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := uuid.NewString()
		lote.Set(r.col().Doc(id), paraEscritura(doc))
		ids = append(ids, id)
	}
	if _, err := lote.Commit(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *productoRepo) Vacia(ctx context.Context) (bool, error) {
	return coleccionVacia(ctx, r.col())
}

// recolectar drains a document iterator into id-injected documents.
func recolectar(iter *firestore.DocumentIterator) ([]model.Documento, error) {
	defer iter.Stop()
	var docs []model.Documento
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, model.Documento(snap.Data()).ConID(snap.Ref.ID))
	}
	return docs, nil
}

func coleccionVacia(ctx context.Context, col *firestore.CollectionRef) (bool, error) {
	iter := col.Limit(1).Documents(ctx)
	defer iter.Stop()
	_, err := iter.Next()
	if err == iterator.Done {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
