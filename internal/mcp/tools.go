package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
)

type toolset struct {
	boards       BoardService
	projects     ProjectService
	defaultBoard string
	logger       *slog.Logger
}

// registerTools adds every board tool to server.
func registerTools(server *sdkmcp.Server, t *toolset) {
	// Boards
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_board",
		Description: "Open a new board seeded with the sample projects and return its view",
	}, t.openBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get a board's filter, draft, dialog state and the filtered project list",
	}, t.getBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_board",
		Description: "Close a board and drop its projects",
	}, t.closeBoard)

	// Filtering
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_filter",
		Description: "Set the name query and/or status selector; omitted fields are unchanged",
	}, t.setFilter)

	// Create flow
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_dialog",
		Description: "Open or close the create dialog. Closing discards the draft",
	}, t.setDialog)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_draft",
		Description: "Set the draft name and/or API key; omitted fields are unchanged",
	}, t.editDraft)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_integration",
		Description: "Flip one integration toggle in the draft",
	}, t.toggleIntegration)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_draft",
		Description: "Create a project from the draft. A draft without a name or API key is refused with accepted=false",
	}, t.submitDraft)

	// Lookup
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project on a board by ID",
	}, t.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_integrations",
		Description: "List the supported integrations with their default draft toggles",
	}, t.listIntegrations)
}

// resolveBoard picks the board for a call: the argument, then the transport
// selection, then the default board. The default board is opened on demand.
func (t *toolset) resolveBoard(ctx context.Context, id string) (string, error) {
	if id == "" {
		id = getBoardID(ctx)
	}
	if id == "" {
		id = t.defaultBoard
	}
	if id == t.defaultBoard {
		if _, err := t.boards.Ensure(ctx, id); err != nil {
			return "", MapError(err)
		}
	}
	return id, nil
}

func (t *toolset) openBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, _ OpenBoardParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	view, err := t.boards.Open(ctx)
	if err != nil {
		return nil, BoardResponse{}, MapError(err)
	}
	return nil, toBoardResponse(view), nil
}

func (t *toolset) getBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in BoardParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	id, err := t.resolveBoard(ctx, in.BoardID)
	if err != nil {
		return nil, BoardResponse{}, err
	}
	view, err := t.boards.View(ctx, id)
	if err != nil {
		return nil, BoardResponse{}, MapError(err)
	}
	return nil, toBoardResponse(view), nil
}

func (t *toolset) closeBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in BoardParams) (*sdkmcp.CallToolResult, CloseBoardResponse, error) {
	id := in.BoardID
	if id == "" {
		id = getBoardID(ctx)
	}
	if id == "" {
		id = t.defaultBoard
	}
	if err := t.boards.Close(ctx, id); err != nil {
		return nil, CloseBoardResponse{}, MapError(err)
	}
	return nil, CloseBoardResponse{BoardID: id, Closed: true}, nil
}

func (t *toolset) setFilter(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetFilterParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	var actions []board.Action
	if in.Query != nil {
		actions = append(actions, board.SetQuery(*in.Query))
	}
	if in.Status != nil {
		actions = append(actions, board.SetStatus(*in.Status))
	}
	return t.dispatch(ctx, in.BoardID, actions...)
}

func (t *toolset) setDialog(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetDialogParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	if in.Open {
		return t.dispatch(ctx, in.BoardID, board.OpenDialog())
	}
	return t.dispatch(ctx, in.BoardID, board.CloseDialog())
}

func (t *toolset) editDraft(ctx context.Context, _ *sdkmcp.CallToolRequest, in EditDraftParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	var actions []board.Action
	if in.Name != nil {
		actions = append(actions, board.EditName(*in.Name))
	}
	if in.APIKey != nil {
		actions = append(actions, board.EditAPIKey(*in.APIKey))
	}
	return t.dispatch(ctx, in.BoardID, actions...)
}

func (t *toolset) toggleIntegration(ctx context.Context, _ *sdkmcp.CallToolRequest, in ToggleIntegrationParams) (*sdkmcp.CallToolResult, BoardResponse, error) {
	return t.dispatch(ctx, in.BoardID, board.ToggleIntegration(in.Integration))
}

func (t *toolset) submitDraft(ctx context.Context, _ *sdkmcp.CallToolRequest, in BoardParams) (*sdkmcp.CallToolResult, SubmitResponse, error) {
	id, err := t.resolveBoard(ctx, in.BoardID)
	if err != nil {
		return nil, SubmitResponse{}, err
	}
	result, err := t.boards.Submit(ctx, id)
	if err != nil {
		return nil, SubmitResponse{}, MapError(err)
	}

	resp := SubmitResponse{
		Accepted: result.Accepted,
		View:     toBoardResponse(result.View),
	}
	if result.Project != nil {
		card := toProjectCard(*result.Project)
		resp.Project = &card
	}
	if !result.Accepted {
		resp.Reason = project.ErrIncompleteDraft.Error()
	}
	return nil, resp, nil
}

func (t *toolset) getProject(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, ProjectCard, error) {
	id, err := t.resolveBoard(ctx, in.BoardID)
	if err != nil {
		return nil, ProjectCard{}, err
	}
	proj, err := t.projects.Get(ctx, id, in.ID)
	if err != nil {
		return nil, ProjectCard{}, MapError(err)
	}
	return nil, toProjectCard(*proj), nil
}

func (t *toolset) listIntegrations(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListIntegrationsParams) (*sdkmcp.CallToolResult, IntegrationsResponse, error) {
	return nil, IntegrationsResponse{Integrations: project.Catalog()}, nil
}

func (t *toolset) dispatch(ctx context.Context, boardID string, actions ...board.Action) (*sdkmcp.CallToolResult, BoardResponse, error) {
	id, err := t.resolveBoard(ctx, boardID)
	if err != nil {
		return nil, BoardResponse{}, err
	}
	view, err := t.boards.Dispatch(ctx, id, actions...)
	if err != nil {
		if t.logger != nil {
			t.logger.Debug("board action rejected", "board_id", id, "error", err)
		}
		return nil, BoardResponse{}, MapError(err)
	}
	return nil, toBoardResponse(view), nil
}
