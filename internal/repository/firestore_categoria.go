package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"catalogo/internal/model"
)

type categoriaRepo struct{ cliente *firestore.Client }

func NewCategoriaRepository(cliente *firestore.Client) CategoriaRepository {
	return &categoriaRepo{cliente: cliente}
}

func (r *categoriaRepo) col() *firestore.CollectionRef {
	return r.cliente.Collection(model.ColeccionCategorias)
}

func (r *categoriaRepo) Crear(ctx context.Context, doc model.Documento) (string, error) {
	id := uuid.NewString()
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(doc))
	return id, err
}

func (r *categoriaRepo) CrearConID(ctx context.Context, id string, doc model.Documento) error {
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(doc))
	return err
}

func (r *categoriaRepo) ObtenerPorID(ctx context.Context, id string) (model.Documento, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if esNoEncontrado(err) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return model.Documento(snap.Data()).ConID(snap.Ref.ID), nil
}

func (r *categoriaRepo) Listar(ctx context.Context) ([]model.Documento, error) {
	return recolectar(r.col().Documents(ctx))
}

func (r *categoriaRepo) BuscarPorNombre(ctx context.Context, nombre string) (model.Documento, error) {
	iter := r.col().Where("name", "==", nombre).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return model.Documento(snap.Data()).ConID(snap.Ref.ID), nil
}

func (r *categoriaRepo) Actualizar(ctx context.Context, id string, campos model.Documento) error {
	_, err := r.col().Doc(id).Set(ctx, paraEscritura(campos), firestore.MergeAll)
	if esNoEncontrado(err) {
		return ErrNoEncontrado
	}
	return err
}

// EliminarYReasignar repoints every product referencing id to destinoID and
// deletes the category document, all in one WriteBatch commit. The read of
// referencing products is not serialized against concurrent product writes;
// that race is accepted.
func (r *categoriaRepo) EliminarYReasignar(ctx context.Context, id, destinoID string) (int, error) {
	productos := r.cliente.Collection(model.ColeccionProductos)
	iter := productos.Where("category_id", "==", id).Documents(ctx)
	defer iter.Stop()

	lote := r.cliente.Batch()
	reasignados := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, err
		}
		lote.Update(snap.Ref, []firestore.Update{{Path: "category_id", Value: destinoID}})
		reasignados++
	}
	lote.Delete(r.col().Doc(id))
	if _, err := lote.Commit(ctx); err != nil {
		return 0, err
	}
	return reasignados, nil
}

func (r *categoriaRepo) Vacia(ctx context.Context) (bool, error) {
	return coleccionVacia(ctx, r.col())
}
