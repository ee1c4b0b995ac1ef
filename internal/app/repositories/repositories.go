package repositories

import (
	"errors"

	"github.com/oguzk/enrollhub/internal/db"
)

// Storage-level error types. Services translate these into the API failure
// taxonomy; repositories never know about HTTP.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already in use")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCourseNotFound      = errors.New("course not found")
	ErrDuplicateCourseName = errors.New("course with this name already exists")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("student is already enrolled in course")
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       UserRepository
	StudentRepository    StudentRepository
	CourseRepository     CourseRepository
	EnrollmentRepository EnrollmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(database),
		StudentRepository:    NewStudentRepository(database.Pool),
		CourseRepository:     NewCourseRepository(database.Pool),
		EnrollmentRepository: NewEnrollmentRepository(database.Pool),
	}
}
