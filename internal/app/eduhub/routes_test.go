package eduhub

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/eduhub/eduhub/internal/lib/jwt"
	"github.com/eduhub/eduhub/internal/models"
	authservice "github.com/eduhub/eduhub/internal/services/auth"
	courseservice "github.com/eduhub/eduhub/internal/services/course"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
	materialservice "github.com/eduhub/eduhub/internal/services/material"
)

// Заглушки репозиториев: маршрутным тестам важны только коды ответов,
// поэтому методы возвращают минимально корректные значения.

type enrollmentRepoStub struct{}

func (enrollmentRepoStub) CreateEnrollment(_ context.Context, userUID string, courseID int) (*models.Enrollment, error) {
	return &models.Enrollment{ID: 1, UserUID: userUID, CourseID: courseID, Status: models.StatusPending}, nil
}

func (enrollmentRepoStub) UpdateEnrollmentStatus(_ context.Context, id int, status string) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id, Status: status}, nil
}

func (enrollmentRepoStub) RejectEnrollment(_ context.Context, id int, status, message string) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id, Status: status, Message: message}, nil
}

func (enrollmentRepoStub) RemoveEnrollment(_ context.Context, _ int) (int, error) {
	return 1, nil
}

func (enrollmentRepoStub) ReadEnrollment(_ context.Context, id int) (*models.EnrollmentInfo, error) {
	return &models.EnrollmentInfo{Enrollment: models.Enrollment{ID: id, Status: models.StatusPending}}, nil
}

func (enrollmentRepoStub) ListEnrollments(_ context.Context) ([]*models.EnrollmentInfo, error) {
	return []*models.EnrollmentInfo{}, nil
}

func (enrollmentRepoStub) ListEnrollmentsByCourse(_ context.Context, _ int) ([]*models.EnrollmentInfo, error) {
	return []*models.EnrollmentInfo{}, nil
}

func (enrollmentRepoStub) ListEnrollmentsByUser(_ context.Context, _ string) ([]*models.EnrollmentInfo, error) {
	return []*models.EnrollmentInfo{}, nil
}

type userRepoStub struct{}

func (userRepoStub) RegisterUser(_ context.Context, _ models.User) (string, error) {
	return "stub-uid", nil
}

func (userRepoStub) GetUserByEmail(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func (userRepoStub) ExistsUserByEmail(_ context.Context, _ string) (bool, error) { return false, nil }

func (userRepoStub) ExistsUserByUsername(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (userRepoStub) ExistsUserByMobile(_ context.Context, _ string) (bool, error) { return false, nil }

type courseRepoStub struct{}

func (courseRepoStub) CreateCourse(_ context.Context, _ models.Course) (int, error) { return 1, nil }

func (courseRepoStub) ReadCourse(_ context.Context, id int) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

func (courseRepoStub) UpdateCourse(_ context.Context, course models.Course, id int) (*models.Course, error) {
	course.ID = id
	return &course, nil
}

func (courseRepoStub) RemoveCourse(_ context.Context, _ int) (int, error) { return 1, nil }

func (courseRepoStub) ListCourses(_ context.Context, _ models.CourseFilter) ([]*models.Course, int, error) {
	return []*models.Course{}, 0, nil
}

type cacheStub struct{}

func (cacheStub) Get(_ string, _ any) (bool, error)               { return false, nil }
func (cacheStub) Set(_ string, _ any, _ time.Duration) error      { return nil }
func (cacheStub) Invalidate(_ string) error                       { return nil }

type materialRepoStub struct{}

func (materialRepoStub) CreateMaterial(_ context.Context, material models.Material) (*models.Material, error) {
	return &material, nil
}

func (materialRepoStub) ReadMaterial(_ context.Context, id int) (*models.Material, error) {
	return &models.Material{ID: id}, nil
}

func (materialRepoStub) UpdateMaterial(_ context.Context, material models.Material, id int) (*models.Material, error) {
	material.ID = id
	return &material, nil
}

func (materialRepoStub) RemoveMaterial(_ context.Context, _ int) (int, error) { return 1, nil }

func (materialRepoStub) ListMaterials(_ context.Context) ([]*models.MaterialInfo, error) {
	return []*models.MaterialInfo{}, nil
}

func (materialRepoStub) ListMaterialsByCourse(_ context.Context, _ int) ([]*models.Material, error) {
	return []*models.Material{}, nil
}

func newTestRouter(t *testing.T) (chi.Router, jwt.Maker) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	maker := jwt.NewJWTMaker("test_secret_key", time.Hour)

	authSvc := authservice.NewAuthService(userRepoStub{}, maker)
	courseSvc := courseservice.NewCourseService(courseRepoStub{}, cacheStub{}, logger)
	enrollmentSvc := enrollmentservice.NewEnrollmentService(enrollmentRepoStub{}, nil, logger)
	materialSvc := materialservice.NewMaterialService(materialRepoStub{})

	router := chi.NewRouter()
	RegisterRoutes(router, logger, nil, maker, authSvc, courseSvc, enrollmentSvc, materialSvc)
	return router, maker
}

func TestRoutes_RoleGates(t *testing.T) {
	router, maker := newTestRouter(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		role           string // пустая роль — запрос без токена
		expectedStatus int
	}{
		{
			name:           "студент подает заявку",
			method:         http.MethodPost,
			path:           "/api/v1/enrollments",
			body:           `{"courseId": 1}`,
			role:           models.RoleStudent,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "преподаватель не может подать заявку",
			method:         http.MethodPost,
			path:           "/api/v1/enrollments",
			body:           `{"courseId": 1}`,
			role:           models.RoleEducator,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "подача заявки без токена",
			method:         http.MethodPost,
			path:           "/api/v1/enrollments",
			body:           `{"courseId": 1}`,
			role:           "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "список всех заявок закрыт для студента",
			method:         http.MethodGet,
			path:           "/api/v1/enrollments",
			role:           models.RoleStudent,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "список всех заявок доступен преподавателю",
			method:         http.MethodGet,
			path:           "/api/v1/enrollments",
			role:           models.RoleEducator,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "свои заявки доступны студенту",
			method:         http.MethodGet,
			path:           "/api/v1/enrollments/my",
			role:           models.RoleStudent,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "свои заявки доступны преподавателю",
			method:         http.MethodGet,
			path:           "/api/v1/enrollments/my",
			role:           models.RoleEducator,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "отзыв заявки студентом",
			method:         http.MethodDelete,
			path:           "/api/v1/enrollments/1",
			role:           models.RoleStudent,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "решение по заявке закрыто для студента",
			method:         http.MethodPut,
			path:           "/api/v1/enrollments/1/status",
			body:           `{"status": "Approved"}`,
			role:           models.RoleStudent,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "решение по заявке доступно преподавателю",
			method:         http.MethodPut,
			path:           "/api/v1/enrollments/1/status",
			body:           `{"status": "Approved"}`,
			role:           models.RoleEducator,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "создание курса закрыто для студента",
			method:         http.MethodPost,
			path:           "/api/v1/courses",
			body:           `{}`,
			role:           models.RoleStudent,
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.role != "" {
				token, err := maker.GenerateToken("test_user", tt.role, "5f6a1b3c-0000-0000-0000-000000000001")
				assert.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code,
				"unexpected status for %s %s, body: %s", tt.method, tt.path, w.Body.String())
		})
	}
}
