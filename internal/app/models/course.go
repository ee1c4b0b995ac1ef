package models

import "time"

// Course represents a course students can enroll in. Names are globally unique.
type Course struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Name      string    `json:"name" db:"name" example:"Mathematics"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}
