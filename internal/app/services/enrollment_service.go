package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/app/models/dto"
	"github.com/oguzk/enrollhub/internal/app/repositories"
	"github.com/oguzk/enrollhub/internal/pkg/apperrors"
	"github.com/oguzk/enrollhub/internal/pkg/helpers"
)

// EnrollmentService handles administrative enrollment CRUD and student
// self-enrollment.
type EnrollmentService struct {
	enrollmentRepo repositories.EnrollmentRepository
	studentRepo    repositories.StudentRepository
	courseRepo     repositories.CourseRepository
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.EnrollmentRepository,
	studentRepo repositories.StudentRepository,
	courseRepo repositories.CourseRepository,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
	}
}

// List returns one page of enrollments with student and course summaries.
func (s *EnrollmentService) List(ctx context.Context, page, pageSize int) (*dto.PagedResponse, error) {
	offset, limit := helpers.OffsetLimit(page, pageSize)

	enrollments, total, err := s.enrollmentRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}

	items := []dto.EnrollmentResponse{}
	for _, enrollment := range enrollments {
		items = append(items, toEnrollmentResponse(enrollment))
	}

	return &dto.PagedResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Get returns one enrollment with its student and course summaries.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, apperrors.NewNotFound("Enrollment not found")
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

// Create enrolls any student in any course (administrative path). The
// existence checks produce precise 404s; the unique constraint on the pair
// remains the authoritative duplicate guard.
func (s *EnrollmentService) Create(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Student not found")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	enrollment := &models.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateEnrollment):
			return nil, apperrors.NewConflict("This student is already enrolled in the selected course.")
		case errors.Is(err, repositories.ErrStudentNotFound):
			return nil, apperrors.NewNotFound("Student not found")
		case errors.Is(err, repositories.ErrCourseNotFound):
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	enrollment.Student = student
	enrollment.Course = course
	resp := toEnrollmentResponse(enrollment)
	return &resp, nil
}

// Delete removes an enrollment by id.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.NewNotFound("Enrollment not found")
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	return nil
}

// EnrollSelf enrolls the caller's own student profile in a course. The
// explicit pair check produces the self-service message; a concurrent
// duplicate that slips past it is still caught as a constraint violation on
// insert and reported the same way, never as an internal error.
func (s *EnrollmentService) EnrollSelf(ctx context.Context, accountID, courseID int64) (*models.Enrollment, error) {
	student, err := s.resolveProfile(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.NewNotFound("Course not found")
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	_, err = s.enrollmentRepo.GetByPair(ctx, student.ID, courseID)
	if err == nil {
		return nil, apperrors.NewConflict("You are already enrolled in this course.")
	}
	if !errors.Is(err, repositories.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}

	enrollment := &models.Enrollment{StudentID: student.ID, CourseID: courseID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEnrollment) {
			return nil, apperrors.NewConflict("You are already enrolled in this course.")
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// DropSelf removes the caller's enrollment in a course, resolved through the
// (student, course) compound key.
func (s *EnrollmentService) DropSelf(ctx context.Context, accountID, courseID int64) error {
	student, err := s.resolveProfile(ctx, accountID)
	if err != nil {
		return err
	}

	enrollment, err := s.enrollmentRepo.GetByPair(ctx, student.ID, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.NewNotFound("Enrollment not found")
		}
		return fmt.Errorf("error retrieving enrollment: %w", err)
	}

	if err := s.enrollmentRepo.Delete(ctx, enrollment.ID); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return apperrors.NewNotFound("Enrollment not found")
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	return nil
}

// MyCourses returns the courses the caller is enrolled in, most recent
// enrollment first. An account without a profile has no courses.
func (s *EnrollmentService) MyCourses(ctx context.Context, accountID int64) ([]*models.Course, error) {
	student, err := s.studentRepo.GetByUserID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return []*models.Course{}, nil
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	courses, err := s.courseRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}

	return courses, nil
}

// resolveProfile maps an account id to its student profile. ADMIN accounts
// and accounts without a linked profile fail here.
func (s *EnrollmentService) resolveProfile(ctx context.Context, accountID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.NewNotFound("Student profile not found")
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return student, nil
}

func toEnrollmentResponse(enrollment *models.Enrollment) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:        enrollment.ID,
		StudentID: enrollment.StudentID,
		CourseID:  enrollment.CourseID,
		CreatedAt: enrollment.CreatedAt,
	}
	if enrollment.Student != nil {
		resp.Student = &dto.StudentSummary{
			ID:        enrollment.Student.ID,
			FirstName: enrollment.Student.FirstName,
			LastName:  enrollment.Student.LastName,
		}
	}
	if enrollment.Course != nil {
		resp.Course = &dto.CourseSummary{
			ID:   enrollment.Course.ID,
			Name: enrollment.Course.Name,
		}
	}
	return resp
}
