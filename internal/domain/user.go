package domain

import "time"

// User is the domain entity for a registered account.
// PasswordHash is a bcrypt hash, never the plaintext secret.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
