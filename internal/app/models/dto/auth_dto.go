package dto

import "github.com/oguzk/enrollhub/internal/app/models"

// RegisterRequest represents a student self-registration request. BirthDate is
// a plain "yyyy-MM-dd" date.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BirthDate string `json:"birthDate"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful authentication response. User carries
// no password field and, for students, includes the linked profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
