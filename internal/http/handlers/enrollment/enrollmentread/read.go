// Package enrollmentread реализует HTTP-обработчик получения заявки по ID.
//
// Заявка возвращается обогащенной данными студента и курса.
package enrollmentread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
)

// Handler обрабатывает запросы на получение заявки по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения заявки.
type Service interface {
	Get(ctx context.Context, id int) (*models.EnrollmentInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить заявку по ID
// @Tags Enrollments
// @Produce  json
// @Param id path int true "ID заявки"
// @Success 200 {object} map[string]any "Заявка с данными студента и курса"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Заявка не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /enrollments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	enrollment, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, enrollmentservice.ErrNotFound) {
			log.Warn("enrollment not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("enrollment not found"))
			return
		}
		log.Error("failed to read enrollment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read enrollment"))
		return
	}

	log.Info("success to read enrollment", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollment": enrollment,
	}))
}
