package model

import "time"

// User is a staff account.  Staff members sign in to perform mutating
// operations: creating reservations and tables, seating parties and
// updating reservation statuses.  The role determines nothing beyond
// access today but distinguishes hosts from managers for future
// restrictions.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – normalized (lower-case) sign-in address.
//  PasswordHash – bcrypt hash of the password.
//  Role         – staff role (HOST, MANAGER).
//  IsActive     – whether the account may sign in.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
