// Package migration applies versioned, idempotent schema-evolution steps
// against the document store. Each version executes at most once, in
// ascending version order; applied versions are tracked in the _migrations
// collection.
package migration

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"catalogo/internal/repository"
)

// Deps gives migration bodies access to the store.
type Deps struct {
	Productos  repository.ProductoRepository
	Categorias repository.CategoriaRepository
	Usuarios   repository.UsuarioRepository
	Registros  repository.MigracionRepository
}

// Migracion is one setup step. Up must itself be idempotent: if the record
// write failed after a successful body, a retry re-invokes the body.
type Migracion struct {
	Version     string
	Descripcion string
	Up          func(ctx context.Context, deps Deps) error
}

// Ejecutar runs every pending migration in ascending version order and
// returns how many were applied. The first failure aborts the run: later
// migrations stay unapplied and the failed one unrecorded, so the whole run
// is safe to retry.
func Ejecutar(ctx context.Context, deps Deps) (int, error) {
	return ejecutar(ctx, deps, Todas())
}

func ejecutar(ctx context.Context, deps Deps, migraciones []Migracion) (int, error) {
	ejecutadas, err := deps.Registros.Ejecutadas(ctx)
	if err != nil {
		return 0, fmt.Errorf("leer migraciones ejecutadas: %w", err)
	}

	sort.Slice(migraciones, func(i, j int) bool {
		return migraciones[i].Version < migraciones[j].Version
	})

	aplicadas := 0
	for _, m := range migraciones {
		if ejecutadas[m.Version] {
			continue
		}
		if err := m.Up(ctx, deps); err != nil {
			log.Error().Str("version", m.Version).Err(err).Msg("fallo en migración")
			return aplicadas, fmt.Errorf("migración %s: %w", m.Version, err)
		}
		if err := deps.Registros.Registrar(ctx, m.Version, m.Descripcion); err != nil {
			return aplicadas, fmt.Errorf("registrar migración %s: %w", m.Version, err)
		}
		log.Info().Str("version", m.Version).Msg("migración ejecutada")
		aplicadas++
	}
	return aplicadas, nil
}
