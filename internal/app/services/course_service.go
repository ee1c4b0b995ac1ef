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

// CourseService handles administrative course operations.
type CourseService struct {
	courseRepo repositories.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// List returns one page of courses, optionally filtered by a
// case-insensitive substring match on name.
func (s *CourseService) List(ctx context.Context, query string, page, pageSize int) (*dto.PagedResponse, error) {
	offset, limit := helpers.OffsetLimit(page, pageSize)

	courses, total, err := s.courseRepo.List(ctx, strings.TrimSpace(query), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	if courses == nil {
		courses = []*models.Course{}
	}

	return &dto.PagedResponse{
		Items:    courses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get returns a course together with its roster.
func (s *CourseService) Get(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByIDWithEnrollments(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	detail := &dto.CourseDetailResponse{
		ID:          course.ID,
		Name:        course.Name,
		CreatedAt:   course.CreatedAt,
		Enrollments: []dto.CourseEnrollment{},
	}
	for _, enrollment := range course.Enrollments {
		detail.Enrollments = append(detail.Enrollments, dto.CourseEnrollment{
			ID:        enrollment.ID,
			CreatedAt: enrollment.CreatedAt,
			Student: dto.StudentSummary{
				ID:        enrollment.Student.ID,
				FirstName: enrollment.Student.FirstName,
				LastName:  enrollment.Student.LastName,
			},
		})
	}

	return detail, nil
}

// Create adds a new course with a globally unique name.
func (s *CourseService) Create(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("Course name is required")
	}

	course := &models.Course{Name: name}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCourseName) {
			return nil, apperrors.NewConflict("Unique constraint violated")
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return course, nil
}

// Update renames a course.
func (s *CourseService) Update(ctx context.Context, id int64, req *dto.CourseRequest) (*models.Course, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("Course name is required")
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	course.Name = name
	if err := s.courseRepo.Update(ctx, course); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateCourseName):
			return nil, apperrors.NewConflict("Unique constraint violated")
		case errors.Is(err, repositories.ErrCourseNotFound):
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// Delete removes a course; enrollments referencing it cascade away.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.NewNotFound("Course not found")
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}
