package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/pkg/dberrors"
)

// EnrollmentRepository handles database operations for enrollments.
type EnrollmentRepository interface {
	List(ctx context.Context, offset, limit int) ([]*models.Enrollment, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	// Create inserts the enrollment. The (student, course) unique constraint
	// is the authoritative duplicate guard; violations come back as
	// ErrDuplicateEnrollment regardless of any prior existence check.
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

type enrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) List(ctx context.Context, offset, limit int) ([]*models.Enrollment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM enrollments`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.created_at,
		       s.id, s.first_name, s.last_name,
		       c.id, c.name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		ORDER BY e.id DESC
		OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollmentRow(rows)
		if err != nil {
			return nil, 0, err
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.created_at,
		       s.id, s.first_name, s.last_name,
		       c.id, c.name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		WHERE e.id = $1`,
		id)

	enrollment, err := scanEnrollmentRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

func (r *enrollmentRepository) GetByPair(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, course_id, created_at
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2`,
		studentID, courseID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, course_id)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		enrollment.StudentID, enrollment.CourseID).Scan(&enrollment.ID, &enrollment.CreatedAt)

	if err != nil {
		switch {
		case dberrors.IsUniqueViolation(err, "enrollments_student_id_course_id_key"):
			return ErrDuplicateEnrollment
		case dberrors.IsForeignKeyViolation(err, "enrollments_student_id_fkey"):
			return ErrStudentNotFound
		case dberrors.IsForeignKeyViolation(err, "enrollments_course_id_fkey"):
			return ErrCourseNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}

// scanEnrollmentRow scans an enrollment joined with its student and course.
func scanEnrollmentRow(row pgx.Row) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	var student models.Student
	var course models.Course

	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.CreatedAt,
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&course.ID,
		&course.Name,
	)
	if err != nil {
		return nil, err
	}

	enrollment.Student = &student
	enrollment.Course = &course
	return &enrollment, nil
}
