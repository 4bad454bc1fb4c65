package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalogo/internal/config"
	"catalogo/internal/migration"
	"catalogo/internal/repository"
	"catalogo/internal/router"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error cargando configuración")
	}

	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx := context.Background()

	cliente, err := repository.NewCliente(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error conectando a Firestore")
	}
	defer cliente.Close()

	repos := router.Repos{
		Productos:   repository.NewProductoRepository(cliente),
		Categorias:  repository.NewCategoriaRepository(cliente),
		Usuarios:    repository.NewUsuarioRepository(cliente),
		Migraciones: repository.NewMigracionRepository(cliente),
	}

	aplicadas, err := migration.Ejecutar(ctx, migration.Deps{
		Productos:  repos.Productos,
		Categorias: repos.Categorias,
		Usuarios:   repos.Usuarios,
		Registros:  repos.Migraciones,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error ejecutando migraciones")
	}
	log.Info().Int("aplicadas", aplicadas).Msg("Migraciones al día")

	engine := router.New(cfg, repos)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("Servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Error iniciando servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Apagando servidor...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Apagado forzado")
	}
	log.Info().Msg("Servidor detenido")
}
