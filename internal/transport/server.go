package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/mcp"
)

// BoardService defines board operations needed by the HTTP API.
type BoardService interface {
	Open(ctx context.Context) (board.View, error)
	View(ctx context.Context, id string) (board.View, error)
	Dispatch(ctx context.Context, id string, actions ...board.Action) (board.View, error)
	Submit(ctx context.Context, id string) (board.SubmitResult, error)
	Close(ctx context.Context, id string) error
}

// ProjectService defines project operations needed by the HTTP API.
type ProjectService interface {
	Get(ctx context.Context, boardID, id string) (*project.Project, error)
}

// Config wires the HTTP server.
type Config struct {
	Boards   BoardService
	Projects ProjectService
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	CORS   bool
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	boards   BoardService
	projects ProjectService
	logger   *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.CORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Content-Type",
				"X-Request-ID",
				"Mcp-Session-Id",
				"Mcp-Protocol-Version",
				"Last-Event-ID",
				mcp.BoardHeader,
			},
			ExposedHeaders: []string{"X-Request-ID", "Mcp-Session-Id"},
			MaxAge:         300,
		}))
	}

	srv := &Server{
		boards:   cfg.Boards,
		projects: cfg.Projects,
		logger:   cfg.Logger,
	}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/integrations", srv.handleIntegrations)

		r.Post("/boards", srv.handleOpenBoard)
		r.Route("/boards/{boardID}", func(r chi.Router) {
			r.Get("/", srv.handleGetBoard)
			r.Delete("/", srv.handleCloseBoard)
			r.Put("/filter", srv.handleSetFilter)
			r.Post("/dialog", srv.handleSetDialog)
			r.Put("/draft", srv.handleEditDraft)
			r.Post("/draft/toggle", srv.handleToggleIntegration)
			r.Post("/draft/submit", srv.handleSubmit)
			r.Get("/projects/{projectID}", srv.handleGetProject)
		})
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}
