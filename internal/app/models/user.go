package models

import "time"

// Role governs which endpoint groups an account may call. It is fixed at
// account creation and never changes afterwards.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// User defines the account model based on the 'users' table.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"student@example.com"` // Stored trimmed and lowercased
	Password  string    `json:"-" db:"password"`                               // Bcrypt hash, excluded from JSON
	Role      Role      `json:"role" db:"role" example:"STUDENT"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`

	// Relation (populated when needed)
	Student *Student `json:"student,omitempty"`
}
