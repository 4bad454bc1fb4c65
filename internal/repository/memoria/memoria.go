// Package memoria implements the repository contracts over an in-process
// store. It backs the test suites and local development; semantics mirror the
// Firestore implementation, including server-timestamp resolution and
// all-or-nothing batches.
package memoria

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalogo/internal/model"
	"catalogo/internal/repository"
)

// Almacen is the shared document store. All repositories derived from one
// Almacen see the same collections, which the cross-collection batch
// (EliminarYReasignar) depends on.
type Almacen struct {
	mu          sync.RWMutex
	colecciones map[string]*coleccion
}

type coleccion struct {
	docs  map[string]model.Documento
	orden []string // insertion order, for stable listings
}

func NewAlmacen() *Almacen {
	return &Almacen{colecciones: make(map[string]*coleccion)}
}

func (a *Almacen) Productos() repository.ProductoRepository   { return &productoRepo{a} }
func (a *Almacen) Categorias() repository.CategoriaRepository { return &categoriaRepo{a} }
func (a *Almacen) Usuarios() repository.UsuarioRepository     { return &usuarioRepo{a} }
func (a *Almacen) Migraciones() repository.MigracionRepository {
	return &migracionRepo{a}
}

// coleccion returns the named collection, creating it on demand. Caller must
// hold the write lock.
func (a *Almacen) coleccion(nombre string) *coleccion {
	c, ok := a.colecciones[nombre]
	if !ok {
		c = &coleccion{docs: make(map[string]model.Documento)}
		a.colecciones[nombre] = c
	}
	return c
}

// resuelta strips the "id" key and resolves timestamp sentinels, the same
// translation the Firestore layer performs at write time.
func resuelta(doc model.Documento) model.Documento {
	out := make(model.Documento, len(doc))
	for campo, valor := range doc {
		if campo == "id" {
			continue
		}
		if model.EsServerTimestamp(valor) {
			out[campo] = time.Now().UTC()
			continue
		}
		out[campo] = valor
	}
	return out
}

func (a *Almacen) guardar(nombre, id string, doc model.Documento) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.guardarLocked(nombre, id, doc)
}

func (a *Almacen) guardarLocked(nombre, id string, doc model.Documento) {
	c := a.coleccion(nombre)
	if _, existe := c.docs[id]; !existe {
		c.orden = append(c.orden, id)
	}
	c.docs[id] = resuelta(doc)
}

func (a *Almacen) fusionar(nombre, id string, campos model.Documento) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := a.coleccion(nombre)
	actual, existe := c.docs[id]
	if !existe {
		c.orden = append(c.orden, id)
		actual = make(model.Documento)
	}
	for campo, valor := range resuelta(campos) {
		actual[campo] = valor
	}
	c.docs[id] = actual
}

func (a *Almacen) obtener(nombre, id string) (model.Documento, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.colecciones[nombre]
	if !ok {
		return nil, false
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, false
	}
	return doc.ConID(id), true
}

func (a *Almacen) listar(nombre string, filtro func(model.Documento) bool) []model.Documento {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.colecciones[nombre]
	if !ok {
		return nil
	}
	var docs []model.Documento
	for _, id := range c.orden {
		doc := c.docs[id]
		if filtro == nil || filtro(doc) {
			docs = append(docs, doc.ConID(id))
		}
	}
	return docs
}

func (a *Almacen) eliminar(nombre, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.eliminarLocked(nombre, id)
}

func (a *Almacen) eliminarLocked(nombre, id string) {
	c, ok := a.colecciones[nombre]
	if !ok {
		return
	}
	if _, existe := c.docs[id]; !existe {
		return
	}
	delete(c.docs, id)
	for i, otro := range c.orden {
		if otro == id {
			c.orden = append(c.orden[:i], c.orden[i+1:]...)
			break
		}
	}
}

func (a *Almacen) vacia(nombre string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.colecciones[nombre]
	return !ok || len(c.docs) == 0
}

// ── Productos ────────────────────────────────────────────────────────────────

type productoRepo struct{ a *Almacen }

func (r *productoRepo) Crear(_ context.Context, doc model.Documento) (string, error) {
	id := uuid.NewString()
	r.a.guardar(model.ColeccionProductos, id, doc)
	return id, nil
}

func (r *productoRepo) CrearConID(_ context.Context, id string, doc model.Documento) error {
	r.a.guardar(model.ColeccionProductos, id, doc)
	return nil
}

func (r *productoRepo) ObtenerPorID(_ context.Context, id string) (model.Documento, error) {
	doc, ok := r.a.obtener(model.ColeccionProductos, id)
	if !ok {
		return nil, repository.ErrNoEncontrado
	}
	return doc, nil
}

func (r *productoRepo) ListarActivos(_ context.Context) ([]model.Documento, error) {
	return r.a.listar(model.ColeccionProductos, func(d model.Documento) bool {
		return d.Estado() == model.EstadoActivo
	}), nil
}

func (r *productoRepo) ListarTodos(_ context.Context) ([]model.Documento, error) {
	return r.a.listar(model.ColeccionProductos, nil), nil
}

func (r *productoRepo) PorCategoria(_ context.Context, categoriaID string, soloActivos bool) ([]model.Documento, error) {
	return r.a.listar(model.ColeccionProductos, func(d model.Documento) bool {
		if id, _ := d["category_id"].(string); id != categoriaID {
			return false
		}
		return !soloActivos || d.Estado() == model.EstadoActivo
	}), nil
}

func (r *productoRepo) Actualizar(_ context.Context, id string, campos model.Documento) error {
	if _, ok := r.a.obtener(model.ColeccionProductos, id); !ok {
		return repository.ErrNoEncontrado
	}
	r.a.fusionar(model.ColeccionProductos, id, campos)
	return nil
}

func (r *productoRepo) Eliminar(_ context.Context, id string) error {
	r.a.eliminar(model.ColeccionProductos, id)
	return nil
}

func (r *productoRepo) CrearLote(_ context.Context, docs []model.Documento) ([]string, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := uuid.NewString()
		r.a.guardarLocked(model.ColeccionProductos, id, doc)
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *productoRepo) Vacia(_ context.Context) (bool, error) {
	return r.a.vacia(model.ColeccionProductos), nil
}

// ── Categorías ───────────────────────────────────────────────────────────────

type categoriaRepo struct{ a *Almacen }

func (r *categoriaRepo) Crear(_ context.Context, doc model.Documento) (string, error) {
	id := uuid.NewString()
	r.a.guardar(model.ColeccionCategorias, id, doc)
	return id, nil
}

func (r *categoriaRepo) CrearConID(_ context.Context, id string, doc model.Documento) error {
	r.a.guardar(model.ColeccionCategorias, id, doc)
	return nil
}

func (r *categoriaRepo) ObtenerPorID(_ context.Context, id string) (model.Documento, error) {
	doc, ok := r.a.obtener(model.ColeccionCategorias, id)
	if !ok {
		return nil, repository.ErrNoEncontrado
	}
	return doc, nil
}

func (r *categoriaRepo) Listar(_ context.Context) ([]model.Documento, error) {
	return r.a.listar(model.ColeccionCategorias, nil), nil
}

func (r *categoriaRepo) BuscarPorNombre(_ context.Context, nombre string) (model.Documento, error) {
	docs := r.a.listar(model.ColeccionCategorias, func(d model.Documento) bool {
		n, _ := d["name"].(string)
		return n == nombre
	})
	if len(docs) == 0 {
		return nil, repository.ErrNoEncontrado
	}
	return docs[0], nil
}

func (r *categoriaRepo) Actualizar(_ context.Context, id string, campos model.Documento) error {
	if _, ok := r.a.obtener(model.ColeccionCategorias, id); !ok {
		return repository.ErrNoEncontrado
	}
	r.a.fusionar(model.ColeccionCategorias, id, campos)
	return nil
}

func (r *categoriaRepo) EliminarYReasignar(_ context.Context, id, destinoID string) (int, error) {
	r.a.mu.Lock()
	defer r.a.mu.Unlock()
	productos := r.a.coleccion(model.ColeccionProductos)
	reasignados := 0
	for _, doc := range productos.docs {
		if catID, _ := doc["category_id"].(string); catID == id {
			doc["category_id"] = destinoID
			reasignados++
		}
	}
	r.a.eliminarLocked(model.ColeccionCategorias, id)
	return reasignados, nil
}

func (r *categoriaRepo) Vacia(_ context.Context) (bool, error) {
	return r.a.vacia(model.ColeccionCategorias), nil
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

type usuarioRepo struct{ a *Almacen }

func (r *usuarioRepo) Crear(_ context.Context, u *model.Usuario) (string, error) {
	id := uuid.NewString()
	doc := model.Documento{
		"email":      u.Email,
		"password":   u.PasswordHash,
		"created_at": u.CreatedAt,
	}
	if u.Rol != "" {
		doc["role"] = u.Rol
	}
	r.a.guardar(model.ColeccionUsuarios, id, doc)
	u.ID = id
	return id, nil
}

func (r *usuarioRepo) BuscarPorEmail(_ context.Context, email string) (*model.Usuario, error) {
	docs := r.a.listar(model.ColeccionUsuarios, func(d model.Documento) bool {
		e, _ := d["email"].(string)
		return e == email
	})
	if len(docs) == 0 {
		return nil, repository.ErrNoEncontrado
	}
	doc := docs[0]
	u := &model.Usuario{Email: email}
	u.ID, _ = doc["id"].(string)
	u.PasswordHash, _ = doc["password"].(string)
	u.Rol, _ = doc["role"].(string)
	if t, ok := doc["created_at"].(time.Time); ok {
		u.CreatedAt = t
	}
	return u, nil
}

func (r *usuarioRepo) Vacia(_ context.Context) (bool, error) {
	return r.a.vacia(model.ColeccionUsuarios), nil
}

// ── Migraciones ──────────────────────────────────────────────────────────────

type migracionRepo struct{ a *Almacen }

func (r *migracionRepo) Ejecutadas(_ context.Context) (map[string]bool, error) {
	ejecutadas := make(map[string]bool)
	for _, doc := range r.a.listar(model.ColeccionMigraciones, nil) {
		if id, ok := doc["id"].(string); ok {
			ejecutadas[id] = true
		}
	}
	return ejecutadas, nil
}

func (r *migracionRepo) Registrar(_ context.Context, version, descripcion string) error {
	r.a.guardar(model.ColeccionMigraciones, version, model.Documento{
		"description": descripcion,
		"executed_at": time.Now().UTC(),
	})
	return nil
}
