// Package exists реализует HTTP-обработчики проверки занятости учетных данных.
//
// Используется формами регистрации: по email, имени пользователя или номеру
// телефона сообщает, зарегистрирован ли уже такой пользователь.
package exists

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
	"github.com/eduhub/eduhub/internal/lib/sl"
)

// Handler обрабатывает запросы проверки занятости email, имени и телефона.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс проверки занятости учетных данных.
type Service interface {
	CheckEmail(ctx context.Context, email string) (bool, error)
	CheckUsername(ctx context.Context, username string) (bool, error)
	CheckMobile(ctx context.Context, mobile string) (bool, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// Email godoc
// @Summary Проверить занятость email
// @Tags Auth
// @Produce  json
// @Param email path string true "Email для проверки"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exists/email/{email} [get]
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, "handlers.auth.exists.email", chi.URLParam(r, "email"), h.service.CheckEmail)
}

// Username godoc
// @Summary Проверить занятость имени пользователя
// @Tags Auth
// @Produce  json
// @Param username path string true "Имя пользователя для проверки"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exists/username/{username} [get]
func (h *Handler) Username(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, "handlers.auth.exists.username", chi.URLParam(r, "username"), h.service.CheckUsername)
}

// Mobile godoc
// @Summary Проверить занятость номера телефона
// @Tags Auth
// @Produce  json
// @Param mobile path string true "Номер телефона для проверки"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /exists/mobile/{mobile} [get]
func (h *Handler) Mobile(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, "handlers.auth.exists.mobile", chi.URLParam(r, "mobile"), h.service.CheckMobile)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request, op, value string, fn func(context.Context, string) (bool, error)) {
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if value == "" {
		log.Error("empty value in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("value is required"))
		return
	}

	taken, err := fn(r.Context(), value)
	if err != nil {
		log.Error("failed to check value", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check value"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"exists": taken,
	}))
}
