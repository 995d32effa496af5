package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password is stored only as a bcrypt hash; the plain text
// never touches the database. Handlers define separate response types
// with JSON tags, so none are attached here.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
