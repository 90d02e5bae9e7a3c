// Package courselist реализует HTTP-обработчик списка курсов.
//
// Handler читает параметры поиска, сортировки, фильтра по уровню и пагинации
// из строки запроса и возвращает страницу курсов.
package courselist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/models"
)

// Handler обрабатывает запросы на получение списка курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка курсов.
type Service interface {
	List(ctx context.Context, filter models.CourseFilter) (*models.CoursePage, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список курсов
// @Description Возвращает страницу курсов с поиском по названию и описанию, фильтром по уровню и сортировкой.
// @Tags Courses
// @Produce  json
// @Param search query string false "Подстрока для поиска"
// @Param sortBy query string false "Поле сортировки: title, courseStartDate, level"
// @Param filter query string false "Уровень курса для точного совпадения"
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Success 200 {object} map[string]any "Страница курсов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /courses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	filter := models.CourseFilter{
		Search: query.Get("search"),
		SortBy: query.Get("sortBy"),
		Filter: query.Get("filter"),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list courses"))
		return
	}

	log.Info("success to list courses", slog.Int("total", result.TotalCourses))
	render.JSON(w, r, response.StatusOKWithData(result))
}
