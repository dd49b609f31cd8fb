package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sproutbank/sprout/internal/http/account"
	"github.com/sproutbank/sprout/internal/http/auth"
	"github.com/sproutbank/sprout/internal/http/challenge"
	"github.com/sproutbank/sprout/internal/http/contribution"
	"github.com/sproutbank/sprout/internal/http/goal"
	"github.com/sproutbank/sprout/internal/http/matching"
	"github.com/sproutbank/sprout/internal/http/statement"
)

func New(
	authMW *auth.Middleware,
	goalsV1 *goal.Handler,
	contributionsV1 *contribution.Handler,
	matchingV1 *matching.Handler,
	challengesV1 *challenge.Handler,
	statementsV1 *statement.Handler,
	accountsV1 *account.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*.sproutbank.app", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authMW.Authenticate)

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			goalsV1.Routes(r)

			r.Route("/{id}", func(r chi.Router) {
				goalsV1.IDRoutes(r)
				contributionsV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(authMW.RequireParent)
					contributionsV1.ParentRoutes(r)
				})

				r.Route("/rule", func(r chi.Router) {
					matchingV1.Routes(r)

					r.Group(func(r chi.Router) {
						r.Use(authMW.RequireParent)
						matchingV1.ParentRoutes(r)
					})
				})

				r.Route("/challenge", func(r chi.Router) {
					challengesV1.GoalRoutes(r)

					r.Group(func(r chi.Router) {
						r.Use(authMW.RequireParent)
						challengesV1.GoalParentRoutes(r)
					})
				})

				r.Route("/statement", statementsV1.Routes)
			})
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Use(authMW.RequireParent)
			challengesV1.Routes(r)
		})

		r.Route("/accounts", accountsV1.Routes)
	})

	return router
}
