package eduhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/eduhub/eduhub/internal/cache"
	"github.com/eduhub/eduhub/internal/config"
	"github.com/eduhub/eduhub/internal/lib/jwt"
	rabbitlib "github.com/eduhub/eduhub/internal/lib/rabbitmq"
	"github.com/eduhub/eduhub/internal/lib/sl"
	"github.com/eduhub/eduhub/internal/migrations"
	"github.com/eduhub/eduhub/internal/rabbitmq"
	authservice "github.com/eduhub/eduhub/internal/services/auth"
	courseservice "github.com/eduhub/eduhub/internal/services/course"
	enrollmentservice "github.com/eduhub/eduhub/internal/services/enrollment"
	materialservice "github.com/eduhub/eduhub/internal/services/material"
	"github.com/eduhub/eduhub/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и его зависимости.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
}

// New собирает приложение: подключает базу, применяет миграции, поднимает
// кеш и очередь уведомлений, связывает сервисы с обработчиками.
//
// Очередь уведомлений необязательна: при недоступном брокере приложение
// стартует без публикации событий о решениях.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	var rabbitConn *amqp.Connection
	var publisher *rabbitlib.Publisher
	rabbitConn, err = rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		logger.Warn("rabbitmq is unavailable, decision events will not be published", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(rabbitConn)
		if err != nil {
			return nil, err
		}
		publisher = rabbitlib.NewPublisher(ch, rabbitmq.NotificationsExchange, rabbitmq.DecisionRoutingKey)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authSvc := authservice.NewAuthService(db, jwtMaker)
	courseSvc := courseservice.NewCourseService(db, cacheRedis, logger)
	materialSvc := materialservice.NewMaterialService(db)
	var decisionPublisher enrollmentservice.Publisher
	if publisher != nil {
		decisionPublisher = publisher
	}
	enrollmentSvc := enrollmentservice.NewEnrollmentService(db, decisionPublisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, jwtMaker, authSvc, courseSvc, enrollmentSvc, materialSvc)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		if a.rabbitConn != nil {
			_ = a.rabbitConn.Close()
		}
		return err
	}
}
