package model

import "time"

// Usuario stores registered accounts. PasswordHash is bcrypt and is never
// serialized to clients; Rol is only set for the seeded admin account.
type Usuario struct {
	ID           string    `firestore:"-" json:"id"`
	Email        string    `firestore:"email" json:"email"`
	PasswordHash string    `firestore:"password" json:"-"`
	Rol          string    `firestore:"role,omitempty" json:"role,omitempty"`
	CreatedAt    time.Time `firestore:"created_at" json:"created_at"`
}
