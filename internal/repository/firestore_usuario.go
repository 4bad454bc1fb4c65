package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"catalogo/internal/model"
)

type usuarioRepo struct{ cliente *firestore.Client }

func NewUsuarioRepository(cliente *firestore.Client) UsuarioRepository {
	return &usuarioRepo{cliente: cliente}
}

func (r *usuarioRepo) col() *firestore.CollectionRef {
	return r.cliente.Collection(model.ColeccionUsuarios)
}

func (r *usuarioRepo) Crear(ctx context.Context, u *model.Usuario) (string, error) {
	id := uuid.NewString()
	if _, err := r.col().Doc(id).Set(ctx, u); err != nil {
		return "", err
	}
	u.ID = id
	return id, nil
}

// BuscarPorEmail is a plain equality query. Uniqueness relies on the caller
// checking before inserting; there is no store-level constraint.
func (r *usuarioRepo) BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error) {
	iter := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()
	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	var u model.Usuario
	if err := snap.DataTo(&u); err != nil {
		return nil, err
	}
	u.ID = snap.Ref.ID
	return &u, nil
}

func (r *usuarioRepo) Vacia(ctx context.Context) (bool, error) {
	return coleccionVacia(ctx, r.col())
}
