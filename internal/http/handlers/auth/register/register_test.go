package register

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eduhub/eduhub/internal/models"
	authservice "github.com/eduhub/eduhub/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req models.RegisterRequest) (string, *models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	user := &models.User{
		UID:      "5f6a1b3c-0000-0000-0000-000000000001",
		UserName: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleStudent,
	}

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"userName": "alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.MatchedBy(func(req models.RegisterRequest) bool {
					return req.Email == "alice@example.com" && req.UserName == "alice"
				})).Return("some.jwt.token", user, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role":"student"`,
		},
		{
			name:           "некорректный json",
			body:           `{"userName":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "короткий пароль",
			body:           `{"userName": "alice", "email": "alice@example.com", "password": "123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Password`,
		},
		{
			name:           "недопустимая роль",
			body:           `{"userName": "alice", "email": "alice@example.com", "password": "secret123", "role": "admin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `Role`,
		},
		{
			name: "email уже занят",
			body: `{"userName": "alice", "email": "alice@example.com", "password": "secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.Anything).
					Return("", nil, authservice.ErrEmailTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `email already exists`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
