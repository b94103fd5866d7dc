package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const boardIDKey contextKey = iota

// BoardHeader selects a board for every tool call on an HTTP session.
const BoardHeader = "X-Keydeck-Board"

// getBoardID extracts the board ID chosen by the transport, if any.
func getBoardID(ctx context.Context) string {
	v, _ := ctx.Value(boardIDKey).(string)
	return v
}

// boardMiddleware reads the board from the X-Keydeck-Board header (HTTP) or
// _meta.board_id (stdio).
func boardMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var boardID string

			if extra := req.GetExtra(); extra != nil && extra.Header != nil {
				boardID = extra.Header.Get(BoardHeader)
			}

			// Notifications such as "initialized" may carry nil params.
			if boardID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if id, ok := meta["board_id"].(string); ok {
								boardID = id
							}
						}
					}()
				}
			}

			if boardID != "" {
				ctx = context.WithValue(ctx, boardIDKey, boardID)
			}
			return next(ctx, method, req)
		}
	}
}
