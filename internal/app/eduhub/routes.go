// Package eduhub предоставляет маршруты для основного приложения.
package eduhub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/eduhub/eduhub/internal/http/handlers/auth/exists"
	"github.com/eduhub/eduhub/internal/http/handlers/auth/login"
	"github.com/eduhub/eduhub/internal/http/handlers/auth/register"
	"github.com/eduhub/eduhub/internal/http/handlers/course/coursecreate"
	"github.com/eduhub/eduhub/internal/http/handlers/course/courselist"
	"github.com/eduhub/eduhub/internal/http/handlers/course/courseread"
	"github.com/eduhub/eduhub/internal/http/handlers/course/courseremove"
	"github.com/eduhub/eduhub/internal/http/handlers/course/courseupdate"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/decide"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/enroll"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/enrollmentbycourse"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/enrollmentbyuser"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/enrollmentlist"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/enrollmentread"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/reject"
	"github.com/eduhub/eduhub/internal/http/handlers/enrollment/withdraw"
	"github.com/eduhub/eduhub/internal/http/handlers/health"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materialbycourse"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materialcreate"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materiallist"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materialread"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materialremove"
	"github.com/eduhub/eduhub/internal/http/handlers/material/materialupdate"
	"github.com/eduhub/eduhub/internal/http/middlewarectx"
	"github.com/eduhub/eduhub/internal/lib/jwt"
	"github.com/eduhub/eduhub/internal/models"
	authservice "github.com/eduhub/eduhub/internal/services/auth"
	courseservice "github.com/eduhub/eduhub/internal/services/course"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
	materialservice "github.com/eduhub/eduhub/internal/services/material"
	"github.com/eduhub/eduhub/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
//
// Открыты только регистрация, вход, проверка занятости учетных данных
// и health-check. Остальные маршруты требуют валидного JWT; операции
// преподавателя дополнительно закрыты проверкой роли из токена.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage, jwtMaker jwt.Maker,
	authSvc *authservice.AuthService, courseSvc *courseservice.CourseService,
	enrollmentSvc *enrollmentservice.EnrollmentService, materialSvc *materialservice.MaterialService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	existsHandler := exists.New(logger, authSvc)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authSvc).ServeHTTP)
		r.Post("/login", login.New(logger, authSvc).ServeHTTP)
		r.Get("/exists/email/{email}", existsHandler.Email)
		r.Get("/exists/username/{username}", existsHandler.Username)
		r.Get("/exists/mobile/{mobile}", existsHandler.Mobile)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			// Каталог курсов: чтение доступно всем авторизованным
			r.Get("/courses", courselist.New(logger, courseSvc).ServeHTTP)
			r.Get("/courses/{id}", courseread.New(logger, courseSvc).ServeHTTP)
			r.Get("/courses/{id}/materials", materialbycourse.New(logger, materialSvc).ServeHTTP)
			r.Get("/materials", materiallist.New(logger, materialSvc).ServeHTTP)
			r.Get("/materials/{id}", materialread.New(logger, materialSvc).ServeHTTP)

			// Подача заявки: только студент
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleStudent))
				r.Post("/enrollments", enroll.New(logger, enrollmentSvc).ServeHTTP)
			})

			// Заявки: операции, доступные обеим ролям
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleStudent, models.RoleEducator))
				r.Get("/enrollments/my", enrollmentbyuser.New(logger, enrollmentSvc).ServeHTTP)
				r.Delete("/enrollments/{id}", withdraw.New(logger, enrollmentSvc).ServeHTTP)
				r.Get("/enrollments/{id}", enrollmentread.New(logger, enrollmentSvc).ServeHTTP)
			})

			// Операции преподавателя
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleEducator))
				r.Post("/courses", coursecreate.New(logger, courseSvc).ServeHTTP)
				r.Put("/courses/{id}", courseupdate.New(logger, courseSvc).ServeHTTP)
				r.Delete("/courses/{id}", courseremove.New(logger, courseSvc).ServeHTTP)

				r.Get("/enrollments", enrollmentlist.New(logger, enrollmentSvc).ServeHTTP)
				r.Get("/courses/{id}/enrollments", enrollmentbycourse.New(logger, enrollmentSvc).ServeHTTP)
				r.Put("/enrollments/{id}/status", decide.New(logger, enrollmentSvc).ServeHTTP)
				r.Put("/enrollments/{id}/reject", reject.New(logger, enrollmentSvc).ServeHTTP)

				r.Post("/materials", materialcreate.New(logger, materialSvc).ServeHTTP)
				r.Put("/materials/{id}", materialupdate.New(logger, materialSvc).ServeHTTP)
				r.Delete("/materials/{id}", materialremove.New(logger, materialSvc).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
