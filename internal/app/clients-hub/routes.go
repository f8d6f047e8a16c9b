// Package clientshub предоставляет маршруты для основного приложения.
package clientshub

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ekazakovv/clients-hub/internal/events"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/account/info"
	accountregister "github.com/ekazakovv/clients-hub/internal/http/handlers/account/register"
	accountremove "github.com/ekazakovv/clients-hub/internal/http/handlers/account/remove"
	accountupdate "github.com/ekazakovv/clients-hub/internal/http/handlers/account/update"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/auth/login"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/auth/logout"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/auth/otp"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/auth/refresh"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/documents/emailinvoice"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/documents/emailresult"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/documents/result"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/archive"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/create"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/merge"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/orders"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/restore"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/switchcurrent"
	"github.com/ekazakovv/clients-hub/internal/http/handlers/person/update"
	"github.com/ekazakovv/clients-hub/internal/http/middlewarectx"
	"github.com/ekazakovv/clients-hub/internal/remote"
	authservice "github.com/ekazakovv/clients-hub/internal/services/auth"
	documentsservice "github.com/ekazakovv/clients-hub/internal/services/documents"
	locationservice "github.com/ekazakovv/clients-hub/internal/services/location"
	personservice "github.com/ekazakovv/clients-hub/internal/services/person"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, backend *remote.Client,
	authService *authservice.AuthService, personService *personservice.PersonService,
	locationService *locationservice.LocationService, documentsService *documentsservice.DocumentsService,
	dispatcher events.Dispatcher) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/otp", otp.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService, dispatcher).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)

			r.Get("/account", info.New(logger, backend, personService, locationService, dispatcher).ServeHTTP)
			r.Post("/account/register", accountregister.New(logger, backend).ServeHTTP)
			r.Put("/account", accountupdate.New(logger, backend).ServeHTTP)
			r.Delete("/account", accountremove.New(logger, authService, dispatcher).ServeHTTP)

			r.Post("/persons", create.New(logger, personService).ServeHTTP)
			r.Put("/persons/{profileId}", update.New(logger, personService).ServeHTTP)
			r.Post("/persons/merge", merge.New(logger, personService, dispatcher).ServeHTTP)
			r.Post("/persons/{profileId}/archive", archive.New(logger, personService, dispatcher).ServeHTTP)
			r.Post("/persons/{profileId}/restore", restore.New(logger, personService, dispatcher).ServeHTTP)
			r.Post("/persons/{profileId}/switch", switchcurrent.New(logger, personService, dispatcher).ServeHTTP)
			r.Get("/persons/{profileId}/orders", orders.New(logger, personService).ServeHTTP)

			r.Post("/orders/{id}/result", result.New(logger, documentsService).ServeHTTP)
			r.Post("/orders/{id}/email-result", emailresult.New(logger, documentsService).ServeHTTP)
			r.Post("/orders/{id}/email-invoice", emailinvoice.New(logger, documentsService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
