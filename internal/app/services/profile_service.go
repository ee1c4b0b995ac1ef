package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/app/repositories"
	"github.com/oguzk/enrollhub/internal/pkg/apperrors"
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
)

// ProfileService serves the authenticated student's own profile.
type ProfileService struct {
	userRepo    repositories.UserRepository
	studentRepo repositories.StudentRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repositories.UserRepository, studentRepo repositories.StudentRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		studentRepo: studentRepo,
	}
}

// Me returns the caller's account and student profile flattened into one view.
func (s *ProfileService) Me(ctx context.Context, accountID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFound("Profile not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	student, err := s.studentRepo.GetByUserID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Profile not found")
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		FirstName: student.FirstName,
		LastName:  student.LastName,
		BirthDate: helpers.FormatDate(student.BirthDate),
	}, nil
}

// UpdateMe updates the caller's student profile fields and returns the
// refreshed flattened view.
func (s *ProfileService) UpdateMe(ctx context.Context, accountID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	fields, err := validateStudentFields(req.FirstName, req.LastName, req.BirthDate)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFound("Profile not found")
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	student, err := s.studentRepo.UpdateByUserID(ctx, accountID, fields.FirstName, fields.LastName, fields.BirthDate)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Profile not found")
		}
		return nil, fmt.Errorf("error updating student profile: %w", err)
	}

	return &dto.ProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		FirstName: student.FirstName,
		LastName:  student.LastName,
		BirthDate: helpers.FormatDate(student.BirthDate),
	}, nil
}
