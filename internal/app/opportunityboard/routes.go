// Package opportunityboard предоставляет маршруты для основного приложения.
package opportunityboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/opportunity-board/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/opportunity-board/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/opportunity-board/internal/http/handlers/health"
	opportunitycreate "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/opportunity/create"
	opportunitylist "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/opportunity/list"
	"github.com/magabrotheeeer/opportunity-board/internal/http/handlers/opportunity/myposts"
	opportunityremove "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/opportunity/remove"
	userget "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/user/get"
	userlist "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/user/list"
	userremove "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/user/remove"
	userstats "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/user/stats"
	verificationsend "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/verification/send"
	verificationverify "github.com/magabrotheeeer/opportunity-board/internal/http/handlers/verification/verify"
	"github.com/magabrotheeeer/opportunity-board/internal/http/middlewarectx"
	accountservice "github.com/magabrotheeeer/opportunity-board/internal/services/account"
	opportunityservice "github.com/magabrotheeeer/opportunity-board/internal/services/opportunity"
	verificationservice "github.com/magabrotheeeer/opportunity-board/internal/services/verification"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	opportunityService *opportunityservice.OpportunityService,
	accountService *accountservice.AccountService,
	verificationService *verificationservice.VerificationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, accountService).ServeHTTP)
		r.Post("/login", login.New(logger, accountService).ServeHTTP)
		r.Get("/opportunities", opportunitylist.New(logger, opportunityService).ServeHTTP)
		r.Get("/my-posts/{email}", myposts.New(logger, opportunityService).ServeHTTP)
		r.Get("/user/{email}", userget.New(logger, accountService).ServeHTTP)
		r.Get("/users", userlist.New(logger, accountService).ServeHTTP)
		r.Post("/send-code", verificationsend.New(logger, verificationService).ServeHTTP)
		r.Post("/verify-code", verificationverify.New(logger, verificationService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(accountService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/opportunities", opportunitycreate.New(logger, opportunityService).ServeHTTP)
			r.Delete("/opportunities/{id}", opportunityremove.New(logger, opportunityService).ServeHTTP)
			r.Post("/user/stats", userstats.New(logger, accountService).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, accountService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
