package user

import "time"

// User carries the bcrypt hash, never the plaintext. The hash is exposed
// under the legacy "password" JSON key because clients read it back as the
// stored credential.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}
