package model

import "time"

// User is an admin account. Passwords are stored as bcrypt hashes; the
// login flow additionally requires an emailed one-time code before a token
// is issued.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – login email, unique.
//	PasswordHash – bcrypt hash of the password.
//	Role         – access role, currently always ADMIN.
//	CreatedAt    – creation timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
