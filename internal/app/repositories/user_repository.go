package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/db"
	"github.com/oguzk/enrollhub/internal/pkg/dberrors"
)

// UserRepository handles database operations for accounts.
type UserRepository interface {
	// CreateStudentAccount creates an account and its student profile in one
	// transaction; either both rows exist afterwards or neither does.
	CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.PostgresDB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) CreateStudentAccount(ctx context.Context, user *models.User, student *models.Student) error {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (email, password, role)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
			user.Email, user.Password, user.Role).Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err, "users_email_key") {
				return ErrEmailTaken
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO students (user_id, first_name, last_name, birth_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			user.ID, student.FirstName, student.LastName, student.BirthDate).Scan(&student.ID, &student.CreatedAt)
		if err != nil {
			return fmt.Errorf("error creating student profile: %w", err)
		}

		student.UserID = &user.ID
		return nil
	})
	if err != nil {
		return err
	}

	user.Student = student
	return nil
}

// GetByEmail loads the account together with its student profile when one is
// linked, so callers such as login can return the profile without a second
// query.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	var (
		studentID *int64
		firstName *string
		lastName  *string
		birthDate *time.Time
		createdAt *time.Time
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.password, u.role, u.created_at,
		       s.id, s.first_name, s.last_name, s.birth_date, s.created_at
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		WHERE u.email = $1`,
		email).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt,
		&studentID, &firstName, &lastName, &birthDate, &createdAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if studentID != nil {
		user.Student = &models.Student{
			ID:        *studentID,
			UserID:    &user.ID,
			FirstName: *firstName,
			LastName:  *lastName,
			BirthDate: *birthDate,
			CreatedAt: *createdAt,
		}
	}

	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, email, password, role, created_at
		FROM users
		WHERE id = $1`,
		id).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}
