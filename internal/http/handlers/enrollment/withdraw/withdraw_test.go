package withdraw

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
)

// MockService реализует интерфейс withdraw.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Withdraw(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func TestWithdrawHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный отзыв заявки",
			id:   "123",
			setupMock: func(m *MockService) {
				m.On("Withdraw", mock.Anything, 123).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deleted_id":123`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid id`,
		},
		{
			name: "заявка не найдена",
			id:   "55",
			setupMock: func(m *MockService) {
				m.On("Withdraw", mock.Anything, 55).Return(enrollmentservice.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `enrollment not found`,
		},
		{
			name: "ошибка сервиса",
			id:   "777",
			setupMock: func(m *MockService) {
				m.On("Withdraw", mock.Anything, 777).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not delete enrollment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/enrollments/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
