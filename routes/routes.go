package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/event-manager/docs"
	"github.com/Dosada05/event-manager/handlers"
	"github.com/Dosada05/event-manager/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Event        *handlers.EventHandler
	Join         *handlers.JoinHandler
	Team         *handlers.TeamHandler
	Match        *handlers.MatchHandler
	Announcement *handlers.AnnouncementHandler
	Alert        *handlers.AlertHandler
	WebSocket    *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	// RequestLogging turns on chi's request logger.
	RequestLogging bool
}

func SetupRoutes(r chi.Router, h Handlers, auth middleware.Authenticator, opts Options, logger *slog.Logger) {
	if opts.RequestLogging {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(auth, logger)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/password-reset", h.Auth.RequestPasswordReset)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.User.ListUsers)
		r.Get("/{userID}", h.User.GetUser)
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.Event.ListEvents)
		r.Get("/code/{joinCode}", h.Event.GetEventByJoinCode)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", h.Event.CreateEvent)
			r.Post("/join", h.Join.RequestToJoin)
		})

		r.Route("/{eventID}", func(r chi.Router) {
			r.Get("/", h.Event.GetEvent)
			r.Get("/participants", h.Event.ListParticipants)
			r.Get("/teams", h.Team.ListTeams)
			r.Get("/matches", h.Match.ListEventMatches)
			r.Get("/announcements", h.Announcement.ListEventAnnouncements)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Patch("/status", h.Event.UpdateEventStatus)
				r.Put("/logo", h.Event.UploadLogo)

				r.Get("/requests", h.Join.ListRequests)
				r.Post("/requests/{requestID}/approve", h.Join.ApproveRequest)
				r.Post("/requests/{requestID}/reject", h.Join.RejectRequest)

				r.Post("/teams", h.Team.CreateTeam)
				r.Put("/teams/{teamID}/members", h.Team.AssignMember)

				r.Post("/matches", h.Match.CreateMatch)
				r.Post("/announcements", h.Announcement.CreateAnnouncement)
			})
		})
	})

	r.Get("/announcements", h.Announcement.ListAnnouncements)

	r.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListMatches)
		r.Get("/{matchID}", h.Match.GetMatch)
		r.With(authenticate).Patch("/{matchID}/status", h.Match.UpdateMatchStatus)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/", h.Alert.ListAlerts)
		r.Get("/unread-count", h.Alert.UnreadCount)
		r.Post("/read-all", h.Alert.MarkAllRead)
		r.Post("/{alertID}/read", h.Alert.MarkRead)
	})

	r.Get("/ws/alerts", h.WebSocket.ServeAlerts)
}
