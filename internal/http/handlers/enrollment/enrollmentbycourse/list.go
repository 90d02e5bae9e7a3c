// Package enrollmentbycourse реализует HTTP-обработчик списка заявок на курс.
package enrollmentbycourse

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
)

// Handler обрабатывает запросы на получение заявок на указанный курс.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заявок на курс.
type Service interface {
	ListByCourse(ctx context.Context, courseID int) ([]*models.EnrollmentInfo, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Заявки на курс
// @Description Возвращает заявки на указанный курс с данными студентов. Доступно только преподавателям.
// @Tags Enrollments
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Список заявок"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses/{id}/enrollments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.listbycourse"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid course id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	list, err := h.service.ListByCourse(r.Context(), courseID)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list enrollments"))
		return
	}

	log.Info("success to list enrollments",
		slog.Int("course_id", courseID), slog.Int("count", len(list)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"enrollments": list,
	}))
}
