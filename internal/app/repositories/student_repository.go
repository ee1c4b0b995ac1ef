package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oguzk/enrollhub/internal/app/models"
)

// StudentRepository handles database operations for student profiles.
type StudentRepository interface {
	// List returns one page of students matching the optional name filter,
	// newest first, together with the total match count.
	List(ctx context.Context, query string, offset, limit int) ([]*models.Student, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	UpdateByUserID(ctx context.Context, userID int64, firstName, lastName string, birthDate time.Time) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, query string, offset, limit int) ([]*models.Student, int64, error) {
	pattern := "%" + query + "%"

	var total int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM students
		WHERE $1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2`,
		query, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, first_name, last_name, birth_date, created_at
		FROM students
		WHERE $1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2
		ORDER BY id DESC
		OFFSET $3 LIMIT $4`,
		query, pattern, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.FirstName,
			&student.LastName,
			&student.BirthDate,
			&student.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE user_id = $1`, userID)
}

func (r *studentRepository) getOne(ctx context.Context, where string, arg any) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, first_name, last_name, birth_date, created_at
		FROM students `+where,
		arg).Scan(
		&student.ID,
		&student.UserID,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
		&student.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

func (r *studentRepository) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Student, error) {
	student, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.student_id, e.course_id, e.created_at, c.id, c.name, c.created_at
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.student_id = $1
		ORDER BY e.created_at DESC`,
		id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student enrollments: %w", err)
	}
	defer rows.Close()

	student.Enrollments = []*models.Enrollment{}
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.CreatedAt,
			&course.ID,
			&course.Name,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		enrollment.Course = &course
		student.Enrollments = append(student.Enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (user_id, first_name, last_name, birth_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		student.UserID, student.FirstName, student.LastName, student.BirthDate).Scan(&student.ID, &student.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, birth_date = $3
		WHERE id = $4`,
		student.FirstName, student.LastName, student.BirthDate, student.ID)

	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

func (r *studentRepository) UpdateByUserID(ctx context.Context, userID int64, firstName, lastName string, birthDate time.Time) (*models.Student, error) {
	student := &models.Student{}
	err := r.db.QueryRow(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, birth_date = $3
		WHERE user_id = $4
		RETURNING id, user_id, first_name, last_name, birth_date, created_at`,
		firstName, lastName, birthDate, userID).Scan(
		&student.ID,
		&student.UserID,
		&student.FirstName,
		&student.LastName,
		&student.BirthDate,
		&student.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}
