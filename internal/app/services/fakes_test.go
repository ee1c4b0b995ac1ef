package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/app/repositories"
)

// memStore is an in-memory stand-in for the Postgres repositories. It mimics
// the storage-level contracts the services depend on: sentinel errors,
// uniqueness rules and id DESC ordering.
type memStore struct {
	users       []*models.User
	students    []*models.Student
	courses     []*models.Course
	enrollments []*models.Enrollment
	nextID      int64
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) addStudent(firstName, lastName string, userID *int64) *models.Student {
	student := &models.Student{
		ID:        s.id(),
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.Local),
		CreatedAt: time.Now(),
	}
	s.students = append(s.students, student)
	return student
}

func (s *memStore) addCourse(name string) *models.Course {
	course := &models.Course{ID: s.id(), Name: name, CreatedAt: time.Now()}
	s.courses = append(s.courses, course)
	return course
}

func (s *memStore) addEnrollment(studentID, courseID int64) *models.Enrollment {
	enrollment := &models.Enrollment{
		ID:        s.id(),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}
	s.enrollments = append(s.enrollments, enrollment)
	return enrollment
}

// --- user repository ---

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) CreateStudentAccount(_ context.Context, user *models.User, student *models.Student) error {
	for _, u := range r.store.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.ID = r.store.id()
	user.CreatedAt = time.Now()
	r.store.users = append(r.store.users, user)

	student.ID = r.store.id()
	student.UserID = &user.ID
	student.CreatedAt = time.Now()
	r.store.students = append(r.store.students, student)
	user.Student = student
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- student repository ---

type fakeStudentRepo struct{ store *memStore }

func (r *fakeStudentRepo) List(_ context.Context, query string, offset, limit int) ([]*models.Student, int64, error) {
	var matched []*models.Student
	for _, s := range r.store.students {
		if query == "" ||
			strings.Contains(strings.ToLower(s.FirstName), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(s.LastName), strings.ToLower(query)) {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range r.store.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (r *fakeStudentRepo) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Student, error) {
	student, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	student.Enrollments = []*models.Enrollment{}
	for _, e := range r.store.enrollments {
		if e.StudentID == id {
			student.Enrollments = append(student.Enrollments, e)
		}
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range r.store.students {
		if s.UserID != nil && *s.UserID == userID {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (r *fakeStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = r.store.id()
	student.CreatedAt = time.Now()
	r.store.students = append(r.store.students, student)
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student) error {
	existing, err := r.GetByID(ctx, student.ID)
	if err != nil {
		return err
	}
	existing.FirstName = student.FirstName
	existing.LastName = student.LastName
	existing.BirthDate = student.BirthDate
	return nil
}

func (r *fakeStudentRepo) UpdateByUserID(ctx context.Context, userID int64, firstName, lastName string, birthDate time.Time) (*models.Student, error) {
	student, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	student.FirstName = firstName
	student.LastName = lastName
	student.BirthDate = birthDate
	return student, nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id int64) error {
	for i, s := range r.store.students {
		if s.ID == id {
			r.store.students = append(r.store.students[:i], r.store.students[i+1:]...)
			var kept []*models.Enrollment
			for _, e := range r.store.enrollments {
				if e.StudentID != id {
					kept = append(kept, e)
				}
			}
			r.store.enrollments = kept
			return nil
		}
	}
	return repositories.ErrStudentNotFound
}

// --- course repository ---

type fakeCourseRepo struct{ store *memStore }

func (r *fakeCourseRepo) List(_ context.Context, query string, offset, limit int) ([]*models.Course, int64, error) {
	var matched []*models.Course
	for _, c := range r.store.courses {
		if query == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range r.store.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (r *fakeCourseRepo) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Enrollments = []*models.Enrollment{}
	for _, e := range r.store.enrollments {
		if e.CourseID == id {
			enrollment := *e
			for _, s := range r.store.students {
				if s.ID == e.StudentID {
					enrollment.Student = s
				}
			}
			course.Enrollments = append(course.Enrollments, &enrollment)
		}
	}
	return course, nil
}

func (r *fakeCourseRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for i := len(r.store.enrollments) - 1; i >= 0; i-- {
		e := r.store.enrollments[i]
		if e.StudentID != studentID {
			continue
		}
		for _, c := range r.store.courses {
			if c.ID == e.CourseID {
				courses = append(courses, c)
			}
		}
	}
	return courses, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	for _, c := range r.store.courses {
		if c.Name == course.Name {
			return repositories.ErrDuplicateCourseName
		}
	}
	course.ID = r.store.id()
	course.CreatedAt = time.Now()
	r.store.courses = append(r.store.courses, course)
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, course *models.Course) error {
	for _, c := range r.store.courses {
		if c.Name == course.Name && c.ID != course.ID {
			return repositories.ErrDuplicateCourseName
		}
	}
	existing, err := r.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	existing.Name = course.Name
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id int64) error {
	for i, c := range r.store.courses {
		if c.ID == id {
			r.store.courses = append(r.store.courses[:i], r.store.courses[i+1:]...)
			var kept []*models.Enrollment
			for _, e := range r.store.enrollments {
				if e.CourseID != id {
					kept = append(kept, e)
				}
			}
			r.store.enrollments = kept
			return nil
		}
	}
	return repositories.ErrCourseNotFound
}

// --- enrollment repository ---

type fakeEnrollmentRepo struct{ store *memStore }

func (r *fakeEnrollmentRepo) List(_ context.Context, offset, limit int) ([]*models.Enrollment, int64, error) {
	matched := make([]*models.Enrollment, len(r.store.enrollments))
	copy(matched, r.store.enrollments)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	for _, e := range r.store.enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repositories.ErrEnrollmentNotFound
}

func (r *fakeEnrollmentRepo) GetByPair(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range r.store.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, repositories.ErrEnrollmentNotFound
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	for _, e := range r.store.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return repositories.ErrDuplicateEnrollment
		}
	}
	studentExists := false
	for _, s := range r.store.students {
		if s.ID == enrollment.StudentID {
			studentExists = true
		}
	}
	if !studentExists {
		return repositories.ErrStudentNotFound
	}
	courseExists := false
	for _, c := range r.store.courses {
		if c.ID == enrollment.CourseID {
			courseExists = true
		}
	}
	if !courseExists {
		return repositories.ErrCourseNotFound
	}
	enrollment.ID = r.store.id()
	enrollment.CreatedAt = time.Now()
	r.store.enrollments = append(r.store.enrollments, enrollment)
	return nil
}

func (r *fakeEnrollmentRepo) Delete(_ context.Context, id int64) error {
	for i, e := range r.store.enrollments {
		if e.ID == id {
			r.store.enrollments = append(r.store.enrollments[:i], r.store.enrollments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrEnrollmentNotFound
}
