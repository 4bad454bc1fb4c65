package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"catalogo/internal/model"
)

type migracionRepo struct{ cliente *firestore.Client }

func NewMigracionRepository(cliente *firestore.Client) MigracionRepository {
	return &migracionRepo{cliente: cliente}
}

func (r *migracionRepo) col() *firestore.CollectionRef {
	return r.cliente.Collection(model.ColeccionMigraciones)
}

func (r *migracionRepo) Ejecutadas(ctx context.Context) (map[string]bool, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()
	ejecutadas := make(map[string]bool)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		ejecutadas[snap.Ref.ID] = true
	}
	return ejecutadas, nil
}

func (r *migracionRepo) Registrar(ctx context.Context, version, descripcion string) error {
	_, err := r.col().Doc(version).Set(ctx, model.RegistroMigracion{
		Descripcion: descripcion,
		ExecutedAt:  time.Now().UTC(),
	})
	return err
}
