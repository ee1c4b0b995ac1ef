package services

import (
	"strings"
	"time"

	"github.com/oguzk/enrollhub/internal/pkg/apperrors"
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
)

// studentFields is the validated, normalized form of a student profile write.
type studentFields struct {
	FirstName string
	LastName  string
	BirthDate time.Time
}

// validateStudentFields checks the three writable profile fields shared by
// the administrative student endpoints and the self-service profile update.
// Names are trimmed; the birth date must parse and must not be in the future
// (today is accepted).
func validateStudentFields(firstName, lastName, birthDate string) (*studentFields, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, apperrors.NewBadRequest("First name is required")
	}

	lastName = strings.TrimSpace(lastName)
	if lastName == "" {
		return nil, apperrors.NewBadRequest("Last name is required")
	}

	if strings.TrimSpace(birthDate) == "" {
		return nil, apperrors.NewBadRequest("Birth date is required")
	}

	parsed, err := helpers.ParseDate(strings.TrimSpace(birthDate))
	if err != nil {
		return nil, apperrors.NewBadRequest("Birth date is invalid")
	}

	if parsed.After(helpers.Today()) {
		return nil, apperrors.NewBadRequest("Birth date cannot be in the future")
	}

	return &studentFields{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: parsed,
	}, nil
}

// normalizeEmail trims and lowercases an email address. Every lookup and
// every stored value goes through this, which makes the unique index on
// users.email case-insensitive in effect.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
