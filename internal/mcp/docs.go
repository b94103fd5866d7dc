package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `keydeck is a project dashboard. Each project has a masked API key and a set of enabled integrations.

Core concepts:
- Board: one dashboard session. It owns its projects, a filter (query + status) and a create dialog with a draft.
- Project: name, masked api_key (raw key + "***"), status (active, inactive, pending), created_at (YYYY-MM-DD), integrations.
- Draft: name, api_key and one toggle per integration. REST API starts enabled.

Workflow:
1) Orient: get_board (the default board is opened and seeded on first use; pass board_id or call open_board for a fresh one).
2) Filter: set_filter with query and/or status. Results keep insertion order; empty=true means nothing matched.
3) Create: set_dialog(open=true), edit_draft, toggle_integration, then submit_draft.
   - accepted=false means the name or api_key is empty. Nothing was stored and the draft is kept.
   - accepted=true resets the draft and closes the dialog.
4) close_board when done. Board state is in memory only.

Transport notes:
- HTTP: select a board for the whole session with the X-Keydeck-Board header.
- Stdio: pass _meta.board_id, or board_id arguments.

Docs:
- keydeck://docs/model
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "keydeck://docs/model",
		Name:        "docs_model",
		Title:       "keydeck data model",
		Description: "Projects, integrations, filtering rules and the create flow.",
		Content: `# keydeck data model

## Project

| field | notes |
|-------|-------|
| id | per board, sequential ("1", "2", ...) |
| name | non-empty, not unique |
| api_key | raw key + "***"; the raw key is never returned |
| status | active, inactive or pending; new projects are active |
| created_at | YYYY-MM-DD, the day of creation |
| integrations | enabled integrations only, in catalog order |

## Integrations

Webhook, OAuth 2.0, REST API, GraphQL, WebSocket. New drafts enable REST API only.

## Filtering

- A project is shown when its name contains the query, ignoring case, and
  its status equals the selector (unless the selector is all).
- An empty query matches every name.
- Order is insertion order. There is no sorting or paging.

## Create flow

- submit_draft with an empty name or api_key is refused: accepted=false,
  nothing stored, dialog stays open.
- Otherwise one project is appended, the draft resets to defaults and the
  dialog closes.
- No key format validation and no duplicate checks.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
