package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/app/repositories"
	"github.com/oguzk/enrollhub/internal/pkg/apperrors"
	"github.com/oguzk/enrollhub/internal/pkg/auth"
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
	"github.com/rs/zerolog"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates a STUDENT account together with its student profile and
// issues a token. The account and the profile are created in one
// transaction: both rows exist afterwards or neither does.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if email == "" || req.Password == "" || firstName == "" || lastName == "" || strings.TrimSpace(req.BirthDate) == "" {
		return nil, apperrors.NewBadRequest("Missing fields")
	}

	birthDate, err := helpers.ParseDate(strings.TrimSpace(req.BirthDate))
	if err != nil || birthDate.After(helpers.Today()) {
		return nil, apperrors.NewBadRequest("Invalid birthDate")
	}

	// Advisory pre-check for the friendlier message; the unique index on
	// users.email is still the authoritative guard below.
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflict("Email is already in use.")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Role:     models.RoleStudent,
	}
	student := &models.Student{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: birthDate,
	}

	if err := s.userRepo.CreateStudentAccount(ctx, user, student); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.NewConflict("Email is already in use.")
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("Student registered")

	return &dto.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords produce the same failure; the caller can never tell which it was.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthenticated("Invalid credentials")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewUnauthenticated("Invalid credentials")
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &dto.AuthResponse{Token: token, User: user}, nil
}
