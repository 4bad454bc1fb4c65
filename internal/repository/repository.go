// Package repository defines the data access contracts for the document
// store and their Firestore implementation. Services depend on these
// interfaces, not on the concrete client, enabling clean unit testing against
// the in-memory store in repository/memoria.
//
// Read operations return documents with their store id injected under "id";
// write operations ignore any "id" key in the payload.
package repository

import (
	"context"

	"catalogo/internal/model"
)

// ProductoRepository is the data access contract for product documents.
type ProductoRepository interface {
	// Crear writes a new document under a generated id and returns it.
	Crear(ctx context.Context, doc model.Documento) (string, error)
	// CrearConID writes a document under a caller-chosen id.
	CrearConID(ctx context.Context, id string, doc model.Documento) error
	ObtenerPorID(ctx context.Context, id string) (model.Documento, error)
	// ListarActivos returns products with estado == "activo".
	ListarActivos(ctx context.Context) ([]model.Documento, error)
	// ListarTodos returns every product regardless of estado.
	ListarTodos(ctx context.Context) ([]model.Documento, error)
	// PorCategoria returns products whose category_id equals categoriaID,
	// optionally restricted to estado == "activo".
	PorCategoria(ctx context.Context, categoriaID string, soloActivos bool) ([]model.Documento, error)
	// Actualizar merges campos into an existing document.
	Actualizar(ctx context.Context, id string, campos model.Documento) error
	Eliminar(ctx context.Context, id string) error
	// CrearLote writes all documents in one atomic batch and returns the
	// generated ids in input order. All-or-nothing: a failure writes nothing.
	CrearLote(ctx context.Context, docs []model.Documento) ([]string, error)
	Vacia(ctx context.Context) (bool, error)
}

// CategoriaRepository is the data access contract for category documents.
type CategoriaRepository interface {
	Crear(ctx context.Context, doc model.Documento) (string, error)
	CrearConID(ctx context.Context, id string, doc model.Documento) error
	ObtenerPorID(ctx context.Context, id string) (model.Documento, error)
	Listar(ctx context.Context) ([]model.Documento, error)
	// BuscarPorNombre returns the first category whose name field equals
	// nombre, or a NotFound error.
	BuscarPorNombre(ctx context.Context, nombre string) (model.Documento, error)
	Actualizar(ctx context.Context, id string, campos model.Documento) error
	// EliminarYReasignar atomically repoints every product referencing id to
	// destinoID and deletes the category document. Returns the number of
	// products repointed.
	EliminarYReasignar(ctx context.Context, id, destinoID string) (int, error)
	Vacia(ctx context.Context) (bool, error)
}

// UsuarioRepository is the data access contract for user accounts.
type UsuarioRepository interface {
	Crear(ctx context.Context, u *model.Usuario) (string, error)
	// BuscarPorEmail runs an equality query; NotFound when no document matches.
	BuscarPorEmail(ctx context.Context, email string) (*model.Usuario, error)
	Vacia(ctx context.Context) (bool, error)
}

// MigracionRepository tracks applied migrations in the _migrations collection.
type MigracionRepository interface {
	// Ejecutadas returns the set of already-applied versions.
	Ejecutadas(ctx context.Context) (map[string]bool, error)
	// Registrar permanently marks a version as applied.
	Registrar(ctx context.Context, version, descripcion string) error
}
