package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"catalogo/internal/model"
	"catalogo/internal/repository"
)

// Todas returns the full migration set. Versions sort ascending as strings.
func Todas() []Migracion {
	return []Migracion{
		{
			Version:     "1.0-initial-schema",
			Descripcion: "Creación de colecciones base",
			Up:          esquemaInicial,
		},
		{
			Version:     "1.1-add-product-fields",
			Descripcion: "Agrega campos requeridos a productos",
			Up:          agregarCamposProducto,
		},
		{
			Version:     "1.2-create-users-collection",
			Descripcion: "Crea la colección de usuarios y un usuario admin de ejemplo",
			Up:          crearColeccionUsuarios,
		},
	}
}

// esquemaInicial drops an _init placeholder into empty base collections and
// inserts the sample categories, guarded by a name lookup so re-runs are
// no-ops.
func esquemaInicial(ctx context.Context, deps Deps) error {
	vacia, err := deps.Productos.Vacia(ctx)
	if err != nil {
		return err
	}
	if vacia {
		err := deps.Productos.CrearConID(ctx, "_init", model.Documento{
			"description": fmt.Sprintf("Colección inicial para %s", model.ColeccionProductos),
			"created_at":  time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}

	vacia, err = deps.Categorias.Vacia(ctx)
	if err != nil {
		return err
	}
	if vacia {
		err := deps.Categorias.CrearConID(ctx, "_init", model.Documento{
			"description": fmt.Sprintf("Colección inicial para %s", model.ColeccionCategorias),
			"created_at":  time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}

	muestras := []model.Documento{
		{"name": "Electrónicos", "description": "Dispositivos electrónicos"},
		{"name": "Ropa", "description": "Prendas de vestir"},
	}
	for _, categoria := range muestras {
		nombre, _ := categoria["name"].(string)
		_, err := deps.Categorias.BuscarPorNombre(ctx, nombre)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNoEncontrado) {
			return err
		}
		if _, err := deps.Categorias.Crear(ctx, categoria); err != nil {
			return err
		}
	}
	return nil
}

// agregarCamposProducto backfills description and created_at on products
// written before those fields existed.
func agregarCamposProducto(ctx context.Context, deps Deps) error {
	productos, err := deps.Productos.ListarTodos(ctx)
	if err != nil {
		return err
	}
	for _, producto := range productos {
		cambios := model.Documento{}
		if _, ok := producto["description"]; !ok {
			cambios["description"] = ""
		}
		if _, ok := producto["created_at"]; !ok {
			cambios["created_at"] = model.ServerTimestamp
		}
		if len(cambios) == 0 {
			continue
		}
		id, _ := producto["id"].(string)
		if err := deps.Productos.Actualizar(ctx, id, cambios); err != nil {
			return err
		}
	}
	return nil
}

// crearColeccionUsuarios seeds the admin account when the users collection
// is empty.
func crearColeccionUsuarios(ctx context.Context, deps Deps) error {
	vacia, err := deps.Usuarios.Vacia(ctx)
	if err != nil {
		return err
	}
	if !vacia {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = deps.Usuarios.Crear(ctx, &model.Usuario{
		Email:        "admin@admin.com",
		PasswordHash: string(hash),
		Rol:          "admin",
		CreatedAt:    time.Now().UTC(),
	})
	return err
}
