// Package enroll реализует HTTP-обработчик подачи заявки на курс.
//
// Handler принимает ID курса, берет идентификатор студента из контекста
// проверенного токена и создает заявку в статусе Pending. Повторная заявка
// на тот же курс возвращает 400.
package enroll

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eduhub/eduhub/internal/http/middlewarectx"
	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
)

// Request — входные данные заявки. Студент определяется по токену.
type Request struct {
	CourseID int `json:"courseId" validate:"required,gt=0"`
}

// Handler управляет HTTP-запросами на подачу заявок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис жизненного цикла заявок
	validate *validator.Validate // Валидатор входных данных
}

// Service описывает интерфейс бизнес-логики подачи заявки.
type Service interface {
	Enroll(ctx context.Context, userUID string, courseID int) (*models.Enrollment, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Подать заявку на курс
// @Description Создает заявку текущего студента на курс в статусе Pending. Повторная заявка отклоняется.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param request body Request true "ID курса"
// @Success 200 {object} map[string]any "Созданная заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или заявка на этот курс уже существует"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании заявки"
// @Router /enrollments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.enroll"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int("course_id", req.CourseID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), userUID, req.CourseID)
	if err != nil {
		if errors.Is(err, enrollmentservice.ErrAlreadyEnrolled) {
			log.Warn("duplicate enrollment", slog.String("user_uid", userUID), slog.Int("course_id", req.CourseID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("already enrolled in this course"))
			return
		}
		log.Error("failed to create enrollment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create enrollment"))
		return
	}

	log.Info("success to create enrollment", slog.Int("id", enrollment.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment": enrollment,
	}))
}
