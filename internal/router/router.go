package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"campus-portal-backend/internal/handlers"
	"campus-portal-backend/internal/middleware"
	"campus-portal-backend/internal/websocket"
)

func New(
	logger *slog.Logger,
	jwtAuth *middleware.JWTAuth,
	authLimiter *middleware.RateLimiter,
	chatLimiter *middleware.RateLimiter,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	campusHandler *handlers.CampusHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {

		// ──── Auth Routes ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
			})
		})

		// ──── Chat ────
		r.With(chatLimiter.Middleware).Post("/chat", chatHandler.Chat)

		// ──── Campus Collections ────
		r.Get("/rooms", campusHandler.ListRooms)

		r.Route("/issues", func(r chi.Router) {
			r.Get("/", campusHandler.ListIssues)
			r.Post("/", campusHandler.CreateIssue)
		})

		r.Route("/lostfound", func(r chi.Router) {
			r.Get("/", campusHandler.ListLostFound)
			r.Post("/", campusHandler.ReportItem)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(jwtAuth.Optional)
			r.Get("/", campusHandler.ListNotes)
			r.Post("/", campusHandler.CreateNote)
		})

		r.Get("/dashboard/stats", campusHandler.DashboardStats)

		// ──── Realtime ────
		r.Get("/realtime", campusHandler.Realtime)
		r.Get("/realtime/ws", wsHub.HandleWebSocket)
	})

	return r
}
