// Package testserver runs the full HTTP stack on httptest for functional tests.
package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/mcp"
	"github.com/rpggio/keydeck/internal/seed"
	"github.com/rpggio/keydeck/internal/sqlite"
	"github.com/rpggio/keydeck/internal/transport"
	"github.com/stretchr/testify/require"
)

// DefaultBoardID is the board MCP tools use when called without board_id.
const DefaultBoardID = "default"

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Boards   *board.Service
	Projects *project.Service
	// Today is the date stamped on projects created through this server.
	Today project.Date
}

// New starts a server backed by a private in-memory database.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	seeds, err := seed.Default()
	require.NoError(t, err)

	now := time.Now()
	clock := func() time.Time { return now }

	projectSvc := project.NewService(sqlite.NewProjectRepository(db), nil).WithClock(clock)
	boardSvc := board.NewService(sqlite.NewBoardRepository(db), projectSvc, seeds, nil).WithClock(clock)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Boards:   boardSvc,
			Projects: projectSvc,
		},
		DefaultBoardID: DefaultBoardID,
		TransportMode:  "http",
	})

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Boards:   boardSvc,
		Projects: projectSvc,
		MCP:      mcp.NewHTTPHandler(mcpServer),
		CORS:     true,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Boards:   boardSvc,
		Projects: projectSvc,
		Today:    project.DateOf(now),
	}
}

// URL joins path onto the server's base URL.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
