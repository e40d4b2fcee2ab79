package httpserver

import (
	"net/http"
	"time"

	"home-rota-go/internal/config"
	userdomain "home-rota-go/internal/domain/user"
	"home-rota-go/internal/transport/httpserver/handler"
	authmw "home-rota-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, guard *authmw.PermissionGuard) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		r.Use(httprate.Limit(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	r.Get("/health", handlers.Health)

	r.Route("/user", func(r chi.Router) {
		r.Post("/", handlers.CreateUser)
		r.Get("/", handlers.ListUsers)
		r.Get("/{id}", handlers.GetUser)
		r.Put("/{id}", handlers.UpdateUser)
		r.Put("/{id}/sethome", handlers.SetUserHome)
		r.Get("/{id}/rotations", handlers.ListUserRotations)
		r.With(guard.Require(userdomain.PermissionWrite)).Delete("/{id}", handlers.DeleteUser)
	})

	r.Route("/home", func(r chi.Router) {
		r.Post("/", handlers.CreateHome)
		r.Get("/", handlers.ListHomes)
		r.Get("/{id}", handlers.GetHome)
		r.Put("/{id}", handlers.UpdateHome)
		r.With(guard.Require(userdomain.PermissionWrite)).Delete("/{id}", handlers.DeleteHome)
	})

	r.Route("/rotation", func(r chi.Router) {
		r.Post("/", handlers.CreateRotation)
		r.Get("/{id}", handlers.GetRotation)
		r.Post("/{id}/setnext", handlers.SetNext)
		r.Put("/{id}/current", handlers.SetRotationCurrent)
		r.Post("/{id}/users", handlers.AddRotationMember)
		r.Get("/{id}/users", handlers.ListRotationMembers)
		r.With(guard.Require(userdomain.PermissionWrite)).Delete("/{id}", handlers.DeleteRotation)
	})

	return r
}
