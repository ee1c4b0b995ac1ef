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
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
)

// StudentService handles administrative student operations.
type StudentService struct {
	studentRepo repositories.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// List returns one page of students, optionally filtered by a
// case-insensitive substring match on first or last name.
func (s *StudentService) List(ctx context.Context, query string, page, pageSize int) (*dto.PagedResponse, error) {
	offset, limit := helpers.OffsetLimit(page, pageSize)

	students, total, err := s.studentRepo.List(ctx, strings.TrimSpace(query), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	if students == nil {
		students = []*models.Student{}
	}

	return &dto.PagedResponse{
		Items:    students,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get returns a student together with their enrollments and courses.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByIDWithEnrollments(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// Create adds a roster-only student record with no linked account.
func (s *StudentService) Create(ctx context.Context, req *dto.StudentRequest) (*models.Student, error) {
	fields, err := validateStudentFields(req.FirstName, req.LastName, req.BirthDate)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		BirthDate: fields.BirthDate,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

// Update rewrites a student's profile fields.
func (s *StudentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	fields, err := validateStudentFields(req.FirstName, req.LastName, req.BirthDate)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	student.FirstName = fields.FirstName
	student.LastName = fields.LastName
	student.BirthDate = fields.BirthDate

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// Delete removes a student; their enrollments cascade away with them.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.NewNotFound("Student not found")
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	return nil
}
