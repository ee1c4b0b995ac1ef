package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzk/enrollhub/internal/app/controllers"
	"github.com/oguzk/enrollhub/internal/app/models"
	"github.com/oguzk/enrollhub/internal/app/repositories"
	"github.com/oguzk/enrollhub/internal/app/services"
	"github.com/oguzk/enrollhub/internal/middleware"
	"github.com/oguzk/enrollhub/internal/pkg/auth"
)

// memRepos is a minimal in-memory implementation of the repository
// interfaces, enough to drive the full HTTP stack in tests.
type memRepos struct {
	users       []*models.User
	students    []*models.Student
	courses     []*models.Course
	enrollments []*models.Enrollment
	nextID      int64
}

func (m *memRepos) id() int64 {
	m.nextID++
	return m.nextID
}

type memUserRepo struct{ m *memRepos }

func (r *memUserRepo) CreateStudentAccount(_ context.Context, user *models.User, student *models.Student) error {
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return repositories.ErrEmailTaken
		}
	}
	user.ID = r.m.id()
	r.m.users = append(r.m.users, user)
	student.ID = r.m.id()
	student.UserID = &user.ID
	r.m.students = append(r.m.students, student)
	user.Student = student
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *memUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memStudentRepo struct{ m *memRepos }

func (r *memStudentRepo) List(_ context.Context, query string, offset, limit int) ([]*models.Student, int64, error) {
	var matched []*models.Student
	for _, s := range r.m.students {
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

func (r *memStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range r.m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (r *memStudentRepo) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Student, error) {
	return r.GetByID(ctx, id)
}

func (r *memStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range r.m.students {
		if s.UserID != nil && *s.UserID == userID {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (r *memStudentRepo) Create(_ context.Context, student *models.Student) error {
	student.ID = r.m.id()
	r.m.students = append(r.m.students, student)
	return nil
}

func (r *memStudentRepo) Update(ctx context.Context, student *models.Student) error {
	existing, err := r.GetByID(ctx, student.ID)
	if err != nil {
		return err
	}
	*existing = *student
	return nil
}

func (r *memStudentRepo) UpdateByUserID(ctx context.Context, userID int64, firstName, lastName string, birthDate time.Time) (*models.Student, error) {
	student, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	student.FirstName = firstName
	student.LastName = lastName
	student.BirthDate = birthDate
	return student, nil
}

func (r *memStudentRepo) Delete(_ context.Context, id int64) error {
	for i, s := range r.m.students {
		if s.ID == id {
			r.m.students = append(r.m.students[:i], r.m.students[i+1:]...)
			return nil
		}
	}
	return repositories.ErrStudentNotFound
}

type memCourseRepo struct{ m *memRepos }

func (r *memCourseRepo) List(_ context.Context, query string, offset, limit int) ([]*models.Course, int64, error) {
	var matched []*models.Course
	for _, c := range r.m.courses {
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

func (r *memCourseRepo) GetByID(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range r.m.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repositories.ErrCourseNotFound
}

func (r *memCourseRepo) GetByIDWithEnrollments(ctx context.Context, id int64) (*models.Course, error) {
	course, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Enrollments = []*models.Enrollment{}
	return course, nil
}

func (r *memCourseRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Course, error) {
	var courses []*models.Course
	for i := len(r.m.enrollments) - 1; i >= 0; i-- {
		e := r.m.enrollments[i]
		if e.StudentID != studentID {
			continue
		}
		for _, c := range r.m.courses {
			if c.ID == e.CourseID {
				courses = append(courses, c)
			}
		}
	}
	return courses, nil
}

func (r *memCourseRepo) Create(_ context.Context, course *models.Course) error {
	for _, c := range r.m.courses {
		if c.Name == course.Name {
			return repositories.ErrDuplicateCourseName
		}
	}
	course.ID = r.m.id()
	r.m.courses = append(r.m.courses, course)
	return nil
}

func (r *memCourseRepo) Update(ctx context.Context, course *models.Course) error {
	existing, err := r.GetByID(ctx, course.ID)
	if err != nil {
		return err
	}
	existing.Name = course.Name
	return nil
}

func (r *memCourseRepo) Delete(_ context.Context, id int64) error {
	for i, c := range r.m.courses {
		if c.ID == id {
			r.m.courses = append(r.m.courses[:i], r.m.courses[i+1:]...)
			return nil
		}
	}
	return repositories.ErrCourseNotFound
}

type memEnrollmentRepo struct{ m *memRepos }

func (r *memEnrollmentRepo) List(_ context.Context, offset, limit int) ([]*models.Enrollment, int64, error) {
	total := int64(len(r.m.enrollments))
	if offset >= len(r.m.enrollments) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(r.m.enrollments) {
		end = len(r.m.enrollments)
	}
	return r.m.enrollments[offset:end], total, nil
}

func (r *memEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	for _, e := range r.m.enrollments {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repositories.ErrEnrollmentNotFound
}

func (r *memEnrollmentRepo) GetByPair(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, e := range r.m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, repositories.ErrEnrollmentNotFound
}

func (r *memEnrollmentRepo) Create(_ context.Context, enrollment *models.Enrollment) error {
	for _, e := range r.m.enrollments {
		if e.StudentID == enrollment.StudentID && e.CourseID == enrollment.CourseID {
			return repositories.ErrDuplicateEnrollment
		}
	}
	enrollment.ID = r.m.id()
	r.m.enrollments = append(r.m.enrollments, enrollment)
	return nil
}

func (r *memEnrollmentRepo) Delete(_ context.Context, id int64) error {
	for i, e := range r.m.enrollments {
		if e.ID == id {
			r.m.enrollments = append(r.m.enrollments[:i], r.m.enrollments[i+1:]...)
			return nil
		}
	}
	return repositories.ErrEnrollmentNotFound
}

// newTestRouter wires the full HTTP stack over the in-memory repositories.
func newTestRouter(t *testing.T) (*gin.Engine, *memRepos, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := &memRepos{}
	userRepo := &memUserRepo{m: m}
	studentRepo := &memStudentRepo{m: m}
	courseRepo := &memCourseRepo{m: m}
	enrollmentRepo := &memEnrollmentRepo{m: m}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "enrollhub.test",
	})
	lgr := zerolog.Nop()

	authService := services.NewAuthService(userRepo, jwtService, lgr)
	studentService := services.NewStudentService(studentRepo)
	courseService := services.NewCourseService(courseRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo)
	profileService := services.NewProfileService(userRepo, studentRepo)

	router := gin.New()
	SetupRouter(router,
		controllers.NewAuthController(authService, lgr),
		controllers.NewStudentController(studentService, lgr),
		controllers.NewCourseController(courseService, lgr),
		controllers.NewEnrollmentController(enrollmentService, lgr),
		controllers.NewProfileController(profileService, enrollmentService, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return router, m, jwtService
}

func doJSON(router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, jwtService *auth.JWTService) string {
	t.Helper()
	token, err := jwtService.GenerateToken(&models.User{ID: 1000, Email: "admin@example.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	return token
}

func registerStudent(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"email":     email,
		"password":  "Password1!",
		"firstName": "Jane",
		"lastName":  "Doe",
		"birthDate": "2000-05-17",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)
	w := doJSON(router, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterLoginMeFlow(t *testing.T) {
	router, _, _ := newTestRouter(t)

	registerStudent(t, router, "jane@example.com")

	w := doJSON(router, "POST", "/api/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "Password1!",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(router, "GET", "/api/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "jane@example.com", profile["email"])
	assert.Equal(t, "STUDENT", profile["role"])
	assert.Equal(t, "2000-05-17", profile["birthDate"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, _, _ := newTestRouter(t)
	registerStudent(t, router, "jane@example.com")

	w := doJSON(router, "POST", "/api/auth/register", "", gin.H{
		"email":     "jane@example.com",
		"password":  "Password1!",
		"firstName": "Jane",
		"lastName":  "Doe",
		"birthDate": "2000-05-17",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"Email is already in use."}`, w.Body.String())
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router, _, jwtService := newTestRouter(t)
	studentTok := registerStudent(t, router, "jane@example.com")

	// No token at all.
	w := doJSON(router, "GET", "/api/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())

	// Student token against an admin route.
	w = doJSON(router, "GET", "/api/students", studentTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Forbidden"}`, w.Body.String())

	// Admin token passes.
	w = doJSON(router, "GET", "/api/students", adminToken(t, jwtService), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStudentRoutesForbidAdmins(t *testing.T) {
	router, _, jwtService := newTestRouter(t)

	w := doJSON(router, "GET", "/api/me", adminToken(t, jwtService), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCourseCRUDOverHTTP(t *testing.T) {
	router, _, jwtService := newTestRouter(t)
	token := adminToken(t, jwtService)

	w := doJSON(router, "POST", "/api/courses", token, gin.H{"name": "Mathematics"})
	require.Equal(t, http.StatusCreated, w.Code)

	var course struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &course))

	// Duplicate name.
	w = doJSON(router, "POST", "/api/courses", token, gin.H{"name": "Mathematics"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"Unique constraint violated"}`, w.Body.String())

	// Blank name.
	w = doJSON(router, "POST", "/api/courses", token, gin.H{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Course name is required"}`, w.Body.String())

	// Invalid path id.
	w = doJSON(router, "GET", "/api/courses/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid id"}`, w.Body.String())

	// Delete then delete again.
	w = doJSON(router, "DELETE", "/api/courses/1", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(router, "DELETE", "/api/courses/1", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Course not found"}`, w.Body.String())
}

func TestAdminEnrollmentValidation(t *testing.T) {
	router, _, jwtService := newTestRouter(t)
	token := adminToken(t, jwtService)

	w := doJSON(router, "POST", "/api/enrollments", token, gin.H{"courseId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"studentId is required"}`, w.Body.String())

	w = doJSON(router, "POST", "/api/enrollments", token, gin.H{"studentId": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"courseId is required"}`, w.Body.String())

	w = doJSON(router, "POST", "/api/enrollments", token, gin.H{"studentId": 1, "courseId": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Student not found"}`, w.Body.String())
}

func TestNonPositiveIDsYieldNotFound(t *testing.T) {
	router, _, jwtService := newTestRouter(t)
	token := adminToken(t, jwtService)

	// Zero and negative ids parse fine and miss the lookup, so the answer is
	// the resource's own 404, not a validation error.
	w := doJSON(router, "GET", "/api/courses/0", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Course not found"}`, w.Body.String())

	w = doJSON(router, "GET", "/api/students/-3", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Student not found"}`, w.Body.String())

	w = doJSON(router, "POST", "/api/enrollments", token, gin.H{"studentId": 0, "courseId": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Student not found"}`, w.Body.String())
}

func TestSelfEnrollFlow(t *testing.T) {
	router, m, _ := newTestRouter(t)
	token := registerStudent(t, router, "jane@example.com")
	m.courses = append(m.courses, &models.Course{ID: m.id(), Name: "Mathematics"})
	courseID := m.courses[0].ID

	// Missing courseId.
	w := doJSON(router, "POST", "/api/me/enroll", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"courseId is required"}`, w.Body.String())

	// Enroll.
	w = doJSON(router, "POST", "/api/me/enroll", token, gin.H{"courseId": courseID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Enrolling twice is a conflict with the self-service message.
	w = doJSON(router, "POST", "/api/me/enroll", token, gin.H{"courseId": courseID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"You are already enrolled in this course."}`, w.Body.String())

	// The course shows up in /me/courses.
	w = doJSON(router, "GET", "/api/me/courses", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Mathematics", list.Items[0].Name)

	// Drop, then drop again.
	dropPath := fmt.Sprintf("/api/me/enroll/%d", courseID)
	w = doJSON(router, "DELETE", dropPath, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(router, "DELETE", dropPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Enrollment not found"}`, w.Body.String())
}

func TestUpdateProfileOverHTTP(t *testing.T) {
	router, _, _ := newTestRouter(t)
	token := registerStudent(t, router, "jane@example.com")

	w := doJSON(router, "PUT", "/api/me", token, gin.H{
		"firstName": "Janet",
		"lastName":  "Doe",
		"birthDate": "1999-01-02",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Janet", profile["firstName"])
	assert.Equal(t, "1999-01-02", profile["birthDate"])

	// Field-named validation error.
	w = doJSON(router, "PUT", "/api/me", token, gin.H{
		"firstName": "",
		"lastName":  "Doe",
		"birthDate": "1999-01-02",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"First name is required"}`, w.Body.String())
}

func TestPaginationEnvelope(t *testing.T) {
	router, m, jwtService := newTestRouter(t)
	token := adminToken(t, jwtService)

	for _, name := range []string{"Mathematics", "Physics", "Programming 101"} {
		m.courses = append(m.courses, &models.Course{ID: m.id(), Name: name})
	}

	w := doJSON(router, "GET", "/api/courses?page=1&pageSize=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items    []interface{} `json:"items"`
		Total    int64         `json:"total"`
		Page     int           `json:"page"`
		PageSize int           `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 2, resp.PageSize)
}
