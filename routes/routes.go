package routes

import (
	"log/slog"
	"net/http"
	"time"

	_ "github.com/Dosada05/ohm-scoreboard/docs" // registers the swagger document
	"github.com/Dosada05/ohm-scoreboard/handlers"
	"github.com/Dosada05/ohm-scoreboard/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Participants *handlers.ParticipantHandler
	Leaderboard  *handlers.LeaderboardHandler
	WebSocket    *handlers.WebSocketHandler
	Health       *handlers.HealthHandler
}

type Options struct {
	AllowedOrigins []string
	// AdminJWTSecret enables the /admin routes when set.
	AdminJWTSecret string
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         int((12 * time.Hour).Seconds()),
	}))

	router.Post("/join", h.Participants.Join)
	router.Post("/submit-score", h.Participants.SubmitScore)
	router.Get("/participants/{participantID}", h.Participants.GetParticipant)

	router.Get("/leaderboard", h.Leaderboard.GetLeaderboard)
	router.Get("/ws/leaderboard", h.WebSocket.ServeLeaderboard)

	router.Get("/healthz", h.Health.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	if opts.AdminJWTSecret == "" {
		logger.Info("admin routes disabled: ADMIN_JWT_SECRET is not set")
		return
	}

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(opts.AdminJWTSecret)))
		r.Use(middleware.Authorize(middleware.RoleAdmin))

		r.Delete("/participants/{participantID}", h.Participants.DeleteParticipant)
		r.Post("/leaderboard/snapshots", h.Leaderboard.CreateSnapshot)
	})
}
