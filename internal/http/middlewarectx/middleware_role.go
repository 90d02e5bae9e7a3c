package middlewarectx

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/eduhub/eduhub/internal/http/response"
)

// RequireRole возвращает middleware, пропускающий запрос только если роль
// пользователя входит в список разрешенных для маршрута.
//
// Роль берется из контекста, куда её кладет JWTMiddleware из проверенных
// claims токена. Заголовки запроса на решение не влияют.
func RequireRole(log *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("role missing in request context")
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("role not authorized"))
				return
			}

			if !slices.Contains(roles, role) {
				log.Error("role not authorized", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("role not authorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
