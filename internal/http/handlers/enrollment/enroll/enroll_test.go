package enroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eduhub/eduhub/internal/http/middlewarectx"
	"github.com/eduhub/eduhub/internal/models"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
)

// MockService реализует интерфейс enroll.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Enroll(ctx context.Context, userUID string, courseID int) (*models.Enrollment, error) {
	args := m.Called(ctx, userUID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func TestEnrollHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	userUID := "5f6a1b3c-0000-0000-0000-000000000001"

	tests := []struct {
		name           string
		body           string
		withUser       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная подача заявки",
			body:     `{"courseId": 7}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, userUID, 7).Return(&models.Enrollment{
					ID:       42,
					UserUID:  userUID,
					CourseID: 7,
					Status:   models.StatusPending,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"Pending"`,
		},
		{
			name:           "некорректный json",
			body:           `{"courseId":`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name:           "нет id курса",
			body:           `{}`,
			withUser:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `CourseID`,
		},
		{
			name:           "пользователь не в контексте",
			body:           `{"courseId": 7}`,
			withUser:       false,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `unauthorized`,
		},
		{
			name:     "повторная заявка",
			body:     `{"courseId": 7}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, userUID, 7).
					Return(nil, enrollmentservice.ErrAlreadyEnrolled)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `already enrolled in this course`,
		},
		{
			name:     "ошибка сервиса",
			body:     `{"courseId": 7}`,
			withUser: true,
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, userUID, 7).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create enrollment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(tt.body))
			if tt.withUser {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, userUID))
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
