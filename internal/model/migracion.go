package model

import "time"

// RegistroMigracion marks an applied migration. Version doubles as the
// document id in the _migrations collection; records are never updated or
// deleted once written.
type RegistroMigracion struct {
	Version     string    `firestore:"-" json:"version"`
	Descripcion string    `firestore:"description" json:"description"`
	ExecutedAt  time.Time `firestore:"executed_at" json:"executed_at"`
}
