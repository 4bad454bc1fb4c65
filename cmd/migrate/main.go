package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalogo/internal/config"
	"catalogo/internal/migration"
	"catalogo/internal/repository"
)

// Aplica las migraciones pendientes y termina. Útil en pipelines de despliegue
// donde las migraciones corren antes de levantar el servidor.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error cargando configuración")
	}

	ctx := context.Background()

	cliente, err := repository.NewCliente(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error conectando a Firestore")
	}
	defer cliente.Close()

	aplicadas, err := migration.Ejecutar(ctx, migration.Deps{
		Productos:  repository.NewProductoRepository(cliente),
		Categorias: repository.NewCategoriaRepository(cliente),
		Usuarios:   repository.NewUsuarioRepository(cliente),
		Registros:  repository.NewMigracionRepository(cliente),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error ejecutando migraciones")
	}
	if aplicadas == 0 {
		log.Info().Msg("No hay migraciones pendientes")
		return
	}
	log.Info().Int("aplicadas", aplicadas).Msg("Migraciones ejecutadas")
}
