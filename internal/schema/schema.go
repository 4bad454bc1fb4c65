// Package schema validates raw document payloads before persistence.
//
// Both validators return a sanitized copy with created_at/updated_at stamped
// with the store's server-timestamp sentinel and estado defaulted to
// "activo". They deliberately differ on unknown fields: product payloads pass
// extra fields through to the store unchanged, while category payloads are
// allow-listed. That asymmetry is part of the public API's observed behavior
// and is kept as-is.
package schema

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"catalogo/internal/apierror"
	"catalogo/internal/model"
)

const (
	MaxNombreProducto       = 100
	MaxDescripcionProducto  = 500
	MaxNombreCategoria      = 50
	MaxDescripcionCategoria = 200
)

var camposRequeridosProducto = []string{"name", "price", "category_id"}

// ValidarProducto checks a product payload. Required fields are reported in
// declaration order, first missing wins.
func ValidarProducto(data model.Documento) (model.Documento, error) {
	for _, campo := range camposRequeridosProducto {
		if _, ok := data[campo]; !ok {
			return nil, apierror.Invalid(fmt.Sprintf("Campo requerido faltante: %s", campo))
		}
	}

	// Limits count characters, not bytes: accented names stay legal.
	nombre, ok := data["name"].(string)
	if !ok || utf8.RuneCountInString(nombre) > MaxNombreProducto {
		return nil, apierror.Invalid(fmt.Sprintf("Nombre debe ser string (max %d caracteres)", MaxNombreProducto))
	}

	precio, ok := comoNumero(data["price"])
	if !ok || precio <= 0 {
		return nil, apierror.Invalid("Precio debe ser número positivo")
	}

	if _, ok := data["category_id"].(string); !ok {
		return nil, apierror.Invalid("category_id debe ser string")
	}

	if desc, presente := data["description"]; presente {
		s, ok := desc.(string)
		if !ok || utf8.RuneCountInString(s) > MaxDescripcionProducto {
			return nil, apierror.Invalid(fmt.Sprintf("Descripción debe ser string (max %d caracteres)", MaxDescripcionProducto))
		}
	}

	// Pass-through: unknown fields survive into the stored document.
	validado := data.Clonar()
	estampar(validado)
	return validado, nil
}

var camposPermitidosCategoria = map[string]bool{
	"name":        true,
	"description": true,
	"estado":      true,
}

// ValidarCategoria checks a category payload. Unlike products, fields outside
// the allow-list are silently dropped.
func ValidarCategoria(data model.Documento) (model.Documento, error) {
	if _, ok := data["name"]; !ok {
		return nil, apierror.Invalid("El campo 'name' es obligatorio")
	}

	nombre, ok := data["name"].(string)
	if !ok || utf8.RuneCountInString(nombre) > MaxNombreCategoria {
		return nil, apierror.Invalid(fmt.Sprintf("Nombre debe ser string (max %d caracteres)", MaxNombreCategoria))
	}

	if desc, presente := data["description"]; presente {
		s, ok := desc.(string)
		if !ok || utf8.RuneCountInString(s) > MaxDescripcionCategoria {
			return nil, apierror.Invalid(fmt.Sprintf("Descripción debe ser string (max %d caracteres)", MaxDescripcionCategoria))
		}
	}

	validado := make(model.Documento, len(data)+3)
	for campo, valor := range data {
		if camposPermitidosCategoria[campo] {
			validado[campo] = valor
		}
	}
	estampar(validado)
	return validado, nil
}

// estampar sets the automatic fields on an already-validated payload.
func estampar(doc model.Documento) {
	doc["created_at"] = model.ServerTimestamp
	doc["updated_at"] = model.ServerTimestamp
	if _, ok := doc["estado"]; !ok {
		doc["estado"] = model.EstadoActivo
	}
}

// comoNumero coerces the numeric types a decoded JSON body may hold.
func comoNumero(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// EmailValido reports whether email has the local@domain.tld shape with a
// TLD of at least two letters.
func EmailValido(email string) bool { return emailRe.MatchString(email) }

// PasswordFuerte requires at least 6 characters, one letter and one digit.
func PasswordFuerte(password string) bool {
	if utf8.RuneCountInString(password) < 6 {
		return false
	}
	var letra, digito bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letra = true
		case unicode.IsDigit(r):
			digito = true
		}
	}
	return letra && digito
}
