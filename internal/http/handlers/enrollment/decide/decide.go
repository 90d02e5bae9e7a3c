// Package decide реализует HTTP-обработчик решения преподавателя по заявке.
//
// Handler принимает новый статус заявки, делегирует решение сервису
// жизненного цикла и возвращает обновленную заявку. Повторное решение
// по уже рассмотренной заявке перезаписывает статус.
package decide

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
)

// Handler управляет HTTP-запросами решений по заявкам.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики решения по заявке.
type Service interface {
	Decide(ctx context.Context, id int, status string) (*models.Enrollment, error)
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
// @Summary Решение по заявке
// @Description Переводит заявку в указанный статус. Доступно только преподавателям.
// @Tags Enrollments
// @Accept  json
// @Produce  json
// @Param id path int true "ID заявки"
// @Param request body models.DecisionRequest true "Новый статус заявки"
// @Success 200 {object} map[string]any "Обновленная заявка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /enrollments/{id}/status [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.decide"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req models.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("status", req.Status))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	enrollment, err := h.service.Decide(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, enrollmentservice.ErrNotFound) {
			log.Warn("enrollment not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("enrollment not found"))
			return
		}
		log.Error("failed to update enrollment status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update enrollment status"))
		return
	}

	log.Info("success to update enrollment status",
		slog.Int("id", id), slog.String("status", enrollment.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment": enrollment,
	}))
}
