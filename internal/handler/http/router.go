package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise/roster-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise/roster-backend-go/internal/pkg/jwt"
)

func NewRouter(
	env string,
	JWTService jwt.Service,
	shiftHandler ShiftHandler,
	roleHandler RoleHandler,
	rolloutHandler RolloutHandler,
	periodHandler PeriodHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/periods", periodHandler.GetPeriod)

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.ListShifts)

				// Mutations are manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", shiftHandler.AssignShift)
					r.Delete("/", shiftHandler.DeleteShiftsInRange)
					r.Patch("/{id}", shiftHandler.UpdateShift)
					r.Delete("/{id}", shiftHandler.DeleteShift)
				})
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", roleHandler.ListRoles)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", roleHandler.CreateRole)
					r.Patch("/{id}", roleHandler.UpdateRole)
					r.Delete("/{id}", roleHandler.DeleteRole)
					r.Put("/{id}/schedule/{day}", roleHandler.UpsertRoleDay)
					r.Delete("/{id}/schedule/{day}", roleHandler.DeleteRoleDay)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Post("/rollout", rolloutHandler.Rollout)
			})
		})
	})
	return r
}
