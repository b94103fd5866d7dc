package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
)

// BoardService defines board operations needed by MCP.
type BoardService interface {
	Open(ctx context.Context) (board.View, error)
	Ensure(ctx context.Context, id string) (board.View, error)
	View(ctx context.Context, id string) (board.View, error)
	Dispatch(ctx context.Context, id string, actions ...board.Action) (board.View, error)
	Submit(ctx context.Context, id string) (board.SubmitResult, error)
	Close(ctx context.Context, id string) error
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Get(ctx context.Context, boardID, id string) (*project.Project, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Boards   BoardService
	Projects ProjectService
}

// Config contains server configuration.
type Config struct {
	Services Services
	// DefaultBoardID is used by tools called without a board_id. The board
	// is opened on first use.
	DefaultBoardID string
	TransportMode  string // "stdio" or "http"
	Version        string
	Logger         *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	defaultBoard := cfg.DefaultBoardID
	if defaultBoard == "" {
		defaultBoard = "default"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "keydeck",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(boardMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &toolset{
		boards:       cfg.Services.Boards,
		projects:     cfg.Services.Projects,
		defaultBoard: defaultBoard,
		logger:       cfg.Logger,
	})

	if cfg.Logger != nil {
		cfg.Logger.Debug("mcp server configured", "transport", cfg.TransportMode, "default_board", defaultBoard)
	}
	return server
}
