package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zinminlatt/ispbill/internal/auth"
	"github.com/zinminlatt/ispbill/internal/http/customer"
	"github.com/zinminlatt/ispbill/internal/http/importcsv"
	"github.com/zinminlatt/ispbill/internal/http/invoice"
	"github.com/zinminlatt/ispbill/internal/http/plan"
	"github.com/zinminlatt/ispbill/internal/http/quarter"
	"github.com/zinminlatt/ispbill/internal/http/relocation"
	"github.com/zinminlatt/ispbill/internal/http/user"
)

type Config struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func New(
	cfg Config,
	customersV1 *customer.Handler,
	invoicesV1 *invoice.Handler,
	importV1 *importcsv.Handler,
	plansV1 *plan.Handler,
	quartersV1 *quarter.Handler,
	relocationsV1 *relocation.Handler,
	usersV1 *user.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/login", usersV1.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.JWTSecret))

			r.Route("/customers", func(r chi.Router) {
				customersV1.Routes(r)
			})

			r.Route("/invoices", func(r chi.Router) {
				invoicesV1.Routes(r)
			})

			r.Route("/import", importV1.Routes)

			r.Route("/plans", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				plansV1.Routes(r)
			})

			r.Route("/quarters", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				quartersV1.Routes(r)
			})

			r.Route("/relocations", func(r chi.Router) {
				relocationsV1.Routes(r)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				usersV1.Routes(r)
			})
		})
	})

	return router
}
