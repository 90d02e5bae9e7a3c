// Package materialread реализует HTTP-обработчик получения материала по ID.
package materialread

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
	materialservice "github.com/eduhub/eduhub/internal/services/material"
)

// Handler обрабатывает запросы на получение материала по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения материала.
type Service interface {
	Get(ctx context.Context, id int) (*models.Material, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить материал по ID
// @Tags Materials
// @Produce  json
// @Param id path int true "ID материала"
// @Success 200 {object} map[string]any "Данные материала"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Материал не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /materials/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.material.read"

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

	material, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, materialservice.ErrNotFound) {
			log.Warn("material not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("material not found"))
			return
		}
		log.Error("failed to read material", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read material"))
		return
	}

	log.Info("success to read material", slog.Int("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"material": material,
	}))
}
