package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/keydeck/internal/mcp"
	"github.com/rpggio/keydeck/internal/testserver"
	"github.com/stretchr/testify/require"
)

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	headers http.Header
	base    http.RoundTripper
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range h.headers {
		req.Header[k] = v
	}
	return h.base.RoundTrip(req)
}

func newHTTPSession(t *testing.T, ts *testserver.TestServer, headers http.Header) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.URL("/mcp"),
		HTTPClient: &http.Client{Transport: headerTransport{headers: headers, base: http.DefaultTransport}},
	}
	session, err := client.Connect(ctx, transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

// callTool makes a tools/call request and decodes the JSON text content.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error: %v", name, result.Content)

	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			if out != nil {
				require.NoError(t, json.Unmarshal([]byte(text.Text), out))
			}
			return
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
}

func callToolError(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, result.IsError, "Tool %s should have failed", name)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func cardNames(cards []mcp.ProjectCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func TestMCP_DefaultBoardWorkflow(t *testing.T) {
	ts := testserver.New(t)
	session := newHTTPSession(t, ts, nil)

	var view mcp.BoardResponse
	callTool(t, session, "get_board", map[string]any{}, &view)
	require.Equal(t, testserver.DefaultBoardID, view.Board.ID)
	require.Equal(t, 3, view.Total)

	callTool(t, session, "set_filter", map[string]any{"query": "prod", "status": "all"}, &view)
	require.Equal(t, []string{"Production API"}, cardNames(view.Projects))

	callTool(t, session, "set_filter", map[string]any{"query": "", "status": "pending"}, &view)
	require.Equal(t, []string{"Test Environment"}, cardNames(view.Projects))

	callTool(t, session, "set_filter", map[string]any{"status": "all"}, &view)
	callTool(t, session, "set_dialog", map[string]any{"open": true}, &view)
	require.True(t, view.Board.DialogOpen)

	var submit mcp.SubmitResponse
	callTool(t, session, "submit_draft", map[string]any{}, &submit)
	require.False(t, submit.Accepted)
	require.NotEmpty(t, submit.Reason)
	require.Equal(t, 3, submit.View.Total)
	require.True(t, submit.View.Board.DialogOpen)

	callTool(t, session, "edit_draft", map[string]any{"name": "Foo", "api_key": "secret"}, &view)
	callTool(t, session, "toggle_integration", map[string]any{"integration": "WebSocket"}, &view)
	require.True(t, view.Board.Draft.Ready)
	require.Equal(t, []string{"REST API", "WebSocket"}, view.Board.Draft.Enabled)

	submit = mcp.SubmitResponse{}
	callTool(t, session, "submit_draft", map[string]any{}, &submit)
	require.True(t, submit.Accepted)
	require.Equal(t, "secret***", submit.Project.APIKey)
	require.Equal(t, "active", submit.Project.Status)
	require.Equal(t, string(ts.Today), submit.Project.CreatedAt)
	require.Equal(t, []string{"REST API", "WebSocket"}, submit.Project.Integrations)
	require.Equal(t, 4, submit.View.Total)
	require.False(t, submit.View.Board.DialogOpen)
	require.Empty(t, submit.View.Board.Draft.Name)

	var card mcp.ProjectCard
	callTool(t, session, "get_project", map[string]any{"id": submit.Project.ID}, &card)
	require.Equal(t, "Foo", card.Name)
}

func TestMCP_SharedStateWithHTTP(t *testing.T) {
	ts := testserver.New(t)
	session := newHTTPSession(t, ts, nil)

	var opened mcp.BoardResponse
	callTool(t, session, "open_board", map[string]any{}, &opened)
	require.NotEqual(t, testserver.DefaultBoardID, opened.Board.ID)

	callTool(t, session, "edit_draft", map[string]any{"board_id": opened.Board.ID, "name": "Via MCP", "api_key": "k"}, nil)
	callTool(t, session, "submit_draft", map[string]any{"board_id": opened.Board.ID}, nil)

	var view struct {
		Total int `json:"total"`
	}
	apiCall(t, ts, http.MethodGet, "/api/boards/"+opened.Board.ID, nil, http.StatusOK, &view)
	require.Equal(t, 4, view.Total)

	var closed mcp.CloseBoardResponse
	callTool(t, session, "close_board", map[string]any{"board_id": opened.Board.ID}, &closed)
	require.True(t, closed.Closed)

	msg := callToolError(t, session, "get_board", map[string]any{"board_id": opened.Board.ID})
	require.Contains(t, msg, "BOARD_NOT_FOUND")
}

func TestMCP_BoardHeader(t *testing.T) {
	ts := testserver.New(t)
	opened, err := ts.Boards.Open(context.Background())
	require.NoError(t, err)

	headers := http.Header{}
	headers.Set(mcp.BoardHeader, opened.Board.ID)
	session := newHTTPSession(t, ts, headers)

	var view mcp.BoardResponse
	callTool(t, session, "set_filter", map[string]any{"query": "dev"}, &view)
	require.Equal(t, opened.Board.ID, view.Board.ID)
	require.Equal(t, []string{"Development API"}, cardNames(view.Projects))
}

func TestMCP_Errors(t *testing.T) {
	ts := testserver.New(t)
	session := newHTTPSession(t, ts, nil)

	msg := callToolError(t, session, "toggle_integration", map[string]any{"integration": "SOAP"})
	require.Contains(t, msg, "UNKNOWN_INTEGRATION")

	msg = callToolError(t, session, "set_filter", map[string]any{"status": "archived"})
	require.Contains(t, msg, "INVALID_STATUS")

	msg = callToolError(t, session, "get_project", map[string]any{"id": "42"})
	require.Contains(t, msg, "PROJECT_NOT_FOUND")
}

func TestMCP_DocsResource(t *testing.T) {
	ts := testserver.New(t)
	session := newHTTPSession(t, ts, nil)

	ctx := context.Background()
	list, err := session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, list.Resources)

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: list.Resources[0].URI})
	require.NoError(t, err)
	require.Contains(t, res.Contents[0].Text, "keydeck")
}
