// Package enrollmentlist реализует HTTP-обработчик списка всех заявок.
//
// Доступен только преподавателям. Заявки возвращаются обогащенными данными
// студентов и курсов; записи с удаленным студентом или курсом не попадают
// в выборку.
package enrollmentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
)

// Handler обрабатывает запросы на получение списка всех заявок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заявок.
type Service interface {
	ListAll(ctx context.Context) ([]*models.EnrollmentInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список всех заявок
// @Description Возвращает все заявки с данными студентов и курсов. Доступно только преподавателям.
// @Tags Enrollments
// @Produce  json
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list enrollments"))
		return
	}

	log.Info("success to list enrollments", slog.Int("count", len(list)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollments": list,
	}))
}
