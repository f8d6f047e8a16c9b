package clientshub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/ekazakovv/clients-hub/internal/cache"
	"github.com/ekazakovv/clients-hub/internal/config"
	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/lib/jwt"
	"github.com/ekazakovv/clients-hub/internal/lib/rabbitmq"
	"github.com/ekazakovv/clients-hub/internal/migrations"
	"github.com/ekazakovv/clients-hub/internal/models"
	"github.com/ekazakovv/clients-hub/internal/remote"
	authservice "github.com/ekazakovv/clients-hub/internal/services/auth"
	documentsservice "github.com/ekazakovv/clients-hub/internal/services/documents"
	locationservice "github.com/ekazakovv/clients-hub/internal/services/location"
	personservice "github.com/ekazakovv/clients-hub/internal/services/person"
	"github.com/ekazakovv/clients-hub/internal/storage/repository"
)

// App связывает HTTP-сервер и подключения к внешним системам.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   *amqp.Connection
}

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

	amqpConn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, []rabbitmq.QueueConfig{
		{QueueName: "client-logins", RoutingKey: models.EventLogin},
		{QueueName: "client-changes", RoutingKey: models.EventCurrentChanged},
		{QueueName: "client-persons", RoutingKey: models.EventPersonMerged},
		{QueueName: "client-persons", RoutingKey: models.EventPersonArchived},
		{QueueName: "client-removals", RoutingKey: models.EventAccountDeleted},
	})
	if err != nil {
		return nil, err
	}
	dispatcher := events.NewAmqpDispatcher(amqpChannel, logger)

	backend := remote.NewClient(cfg.Backend)
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(backend, db, cacheRedis, jwtMaker,
		cfg.TokenTTL, cfg.RememberTTL, cfg.OtpResendDelay)
	personService := personservice.NewPersonService(backend, logger)
	locationService := locationservice.NewLocationService(backend, cacheRedis, logger)
	documentsService := documentsservice.NewDocumentsService(backend, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, backend, authService, personService,
		locationService, documentsService, dispatcher)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
	}, nil
}

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
		a.db.DB.Close()
		_ = a.amqp.Close()
		return err
	}
}
