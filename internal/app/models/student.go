package models

import "time"

// Student defines the student profile model based on the 'students' table.
// UserID is nil for roster-only records created by an administrator without
// a linked account.
type Student struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	UserID    *int64    `json:"userId,omitempty" db:"user_id" example:"5"`
	FirstName string    `json:"firstName" db:"first_name" example:"John"`
	LastName  string    `json:"lastName" db:"last_name" example:"Doe"`
	BirthDate time.Time `json:"birthDate" db:"birth_date" example:"2000-01-01T00:00:00Z"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}
