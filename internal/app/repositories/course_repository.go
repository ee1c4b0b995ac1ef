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

// CourseRepository handles database operations for courses.
type CourseRepository interface {
	List(ctx context.Context, query string, offset, limit int) ([]*models.Course, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Course, error)
	// ListByStudent returns a student's courses ordered by enrollment recency.
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

type courseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) List(ctx context.Context, query string, offset, limit int) ([]*models.Course, int64, error) {
	pattern := "%" + query + "%"

	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM courses
		WHERE $1 = '' OR name ILIKE $2`,
		query, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_at
		FROM courses
		WHERE $1 = '' OR name ILIKE $2
		ORDER BY id DESC
		OFFSET $3 LIMIT $4`,
		query, pattern, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.CreatedAt); err != nil {
			return nil, 0, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_at
		FROM courses
		WHERE id = $1`,
		id).Scan(&course.ID, &course.Name, &course.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

func (r *courseRepository) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.created_at, s.id, s.first_name, s.last_name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.course_id = $1
		ORDER BY e.created_at DESC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course enrollments: %w", err)
	}
	defer rows.Close()

	course.Enrollments = []*models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.Student
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
			&student.ID,
			&student.FirstName,
			&student.LastName,
		); err != nil {
			return nil, err
		}
		enrollment.Student = &student
		course.Enrollments = append(course.Enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return course, nil
}

func (r *courseRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.name, c.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (name)
		VALUES ($1)
		RETURNING id, created_at`,
		course.Name).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "courses_name_key") {
			return ErrDuplicateCourseName
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses
		SET name = $1
		WHERE id = $2`,
		course.Name, course.ID)

	if err != nil {
		if dberrors.IsUniqueViolation(err, "courses_name_key") {
			return ErrDuplicateCourseName
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}
