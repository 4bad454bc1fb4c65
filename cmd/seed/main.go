package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catalogo/internal/config"
	"catalogo/internal/model"
	"catalogo/internal/repository"
	"catalogo/internal/service"
)

// Carga categorías y productos de ejemplo en la base de datos. Pensado para
// entornos de desarrollo y demos, no borra datos existentes.
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

	productos := repository.NewProductoRepository(cliente)
	categorias := repository.NewCategoriaRepository(cliente)

	productoSvc := service.NewProductoService(productos, categorias)
	categoriaSvc := service.NewCategoriaService(categorias, productos)

	for _, cat := range categoriaSvc.CategoriasDeMuestra() {
		id, _ := cat["id"].(string)
		doc := cat.Clonar()
		delete(doc, "id")
		doc["estado"] = model.EstadoActivo
		doc["created_at"] = model.ServerTimestamp
		doc["updated_at"] = model.ServerTimestamp
		if err := categorias.CrearConID(ctx, id, doc); err != nil {
			log.Fatal().Err(err).Str("id", id).Msg("Error creando categoría de ejemplo")
		}
		log.Info().Str("id", id).Msg("Categoría creada")
	}

	creados, err := productoSvc.CrearLote(ctx, productoSvc.ProductosDeMuestra())
	if err != nil {
		log.Fatal().Err(err).Msg("Error creando productos de ejemplo")
	}
	log.Info().Int("productos", len(creados)).Msg("Base de datos poblada")
}
