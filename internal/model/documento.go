package model

import "time"

// Documento is a schemaless store document. Products and categories travel as
// raw field maps end to end: the store has no schema and the product API
// passes unknown fields through to persistence unchanged.
type Documento map[string]any

// Estado values shared by products and categories.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Collection names in the document store.
const (
	ColeccionUsuarios    = "users"
	ColeccionProductos   = "products"
	ColeccionCategorias  = "categories"
	ColeccionMigraciones = "_migrations"
)

// CategoriaSinCategoria is the literal id (and name, lowercased) of the
// fallback category that orphaned products are repointed to. It is created
// lazily on first need.
const CategoriaSinCategoria = "uncategorized"

// sentinela marks a field value to be resolved by the store at write time.
type sentinela int

// ServerTimestamp is the write-time clock placeholder. The Firestore
// repository translates it to the store's native sentinel; the in-memory
// store resolves it to time.Now().
const ServerTimestamp sentinela = iota

// EsServerTimestamp reports whether v is the server-timestamp placeholder.
func EsServerTimestamp(v any) bool {
	s, ok := v.(sentinela)
	return ok && s == ServerTimestamp
}

// Clonar returns a shallow copy so callers can stamp fields without mutating
// the caller's map.
func (d Documento) Clonar() Documento {
	c := make(Documento, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// ConID returns a copy of the document with its id injected under "id",
// the shape every read operation responds with.
func (d Documento) ConID(id string) Documento {
	c := d.Clonar()
	c["id"] = id
	return c
}

// Estado returns the document's estado field, defaulting to "" when absent.
func (d Documento) Estado() string {
	s, _ := d["estado"].(string)
	return s
}

// ResolverSentinelas replaces any remaining server-timestamp placeholder with
// the current time, so an echo-back payload is JSON-serializable before the
// store has resolved the real value.
func (d Documento) ResolverSentinelas() Documento {
	c := d.Clonar()
	for k, v := range c {
		if EsServerTimestamp(v) {
			c[k] = time.Now().UTC()
		}
	}
	return c
}
