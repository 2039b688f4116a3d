package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jaminalder/codex-gomoku/internal/app"
	"github.com/sirupsen/logrus"
)

const defaultHeartbeat = 15 * time.Second

// Option configures the server.
type Option func(*handlers)

// WithHeartbeat sets the interval between SSE keep-alive comments.
func WithHeartbeat(d time.Duration) Option {
	return func(h *handlers) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(h *handlers) {
		if log != nil {
			h.log = log
		}
	}
}

// NewServer wires routes and returns an http.Handler. It also installs the
// board fragment as the service's broadcast payload.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	h := &handlers{
		svc:       s,
		tpl:       loadTemplates(),
		heartbeat: defaultHeartbeat,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	s.SetRenderer(func(gs app.GameState) []byte { return h.renderBoard(gs, "") })

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.log))

	r.Get("/", h.index)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/play", h.play)
		r.Post("/undo", h.undo)
		r.Post("/reset", h.reset)
		r.Get("/events", h.events)
	})
	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.apiCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.apiGet)
			r.Delete("/", h.apiDelete)
			r.Post("/moves", h.apiPlay)
			r.Post("/undo", h.apiUndo)
			r.Post("/reset", h.apiReset)
		})
	})
	return r
}
