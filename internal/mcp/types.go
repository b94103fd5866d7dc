package mcp

import (
	"time"

	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
)

// Tool parameters

type BoardParams struct {
	BoardID string `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
}

type OpenBoardParams struct{}

type ListIntegrationsParams struct{}

type SetFilterParams struct {
	BoardID string  `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
	Query   *string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against project names; empty matches all"`
	Status  *string `json:"status,omitempty" jsonschema:"Status selector: all, active, inactive or pending"`
}

type SetDialogParams struct {
	BoardID string `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
	Open    bool   `json:"open" jsonschema:"true opens the create dialog, false closes it and discards the draft"`
}

type EditDraftParams struct {
	BoardID string  `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
	Name    *string `json:"name,omitempty" jsonschema:"Project name"`
	APIKey  *string `json:"api_key,omitempty" jsonschema:"Raw API key; stored masked"`
}

type ToggleIntegrationParams struct {
	BoardID     string `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
	Integration string `json:"integration" jsonschema:"Integration name from list_integrations"`
}

type GetProjectParams struct {
	BoardID string `json:"board_id,omitempty" jsonschema:"Board ID (omit to use the default board)"`
	ID      string `json:"id" jsonschema:"Project ID"`
}

// Tool responses

type DraftState struct {
	Name         string                `json:"name"`
	APIKey       string                `json:"api_key"`
	Integrations []project.Integration `json:"integrations"`
	// Enabled lists the toggled-on integrations in catalog order.
	Enabled []string `json:"enabled"`
	Ready   bool     `json:"ready"`
}

type BoardState struct {
	ID           string     `json:"id"`
	Query        string     `json:"query"`
	Status       string     `json:"status"`
	DialogOpen   bool       `json:"dialog_open"`
	Draft        DraftState `json:"draft"`
	CreatedAt    string     `json:"created_at"`
	LastActivity string     `json:"last_activity"`
}

// ProjectCard is the rendered form of a project.
type ProjectCard struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	APIKey           string   `json:"api_key"`
	Status           string   `json:"status"`
	CreatedAt        string   `json:"created_at"`
	Integrations     []string `json:"integrations"`
	IntegrationCount int      `json:"integration_count"`
}

type BoardResponse struct {
	Board    BoardState    `json:"board"`
	Projects []ProjectCard `json:"projects"`
	Total    int           `json:"total"`
	Empty    bool          `json:"empty"`
}

type SubmitResponse struct {
	Accepted bool          `json:"accepted"`
	Project  *ProjectCard  `json:"project,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	View     BoardResponse `json:"view"`
}

type CloseBoardResponse struct {
	BoardID string `json:"board_id"`
	Closed  bool   `json:"closed"`
}

type IntegrationsResponse struct {
	Integrations []project.Integration `json:"integrations"`
}

func toProjectCard(p project.Project) ProjectCard {
	names := make([]string, 0, len(p.Integrations))
	for _, in := range p.Integrations {
		if in.Enabled {
			names = append(names, string(in.Name))
		}
	}
	return ProjectCard{
		ID:               p.ID,
		Name:             p.Name,
		APIKey:           p.APIKey,
		Status:           string(p.Status),
		CreatedAt:        string(p.CreatedAt),
		Integrations:     names,
		IntegrationCount: p.IntegrationCount(),
	}
}

func enabledNames(d project.Draft) []string {
	names := []string{}
	for _, in := range project.Catalog() {
		if d.Enabled(in.Name) {
			names = append(names, string(in.Name))
		}
	}
	return names
}

func toBoardResponse(v board.View) BoardResponse {
	cards := make([]ProjectCard, 0, len(v.Projects))
	for _, p := range v.Projects {
		cards = append(cards, toProjectCard(p))
	}
	b := v.Board
	return BoardResponse{
		Board: BoardState{
			ID:         b.ID,
			Query:      b.Query,
			Status:     string(b.Status),
			DialogOpen: b.DialogOpen,
			Draft: DraftState{
				Name:         b.Draft.Name,
				APIKey:       b.Draft.APIKey,
				Integrations: b.Draft.Integrations,
				Enabled:      enabledNames(b.Draft),
				Ready:        b.Draft.Ready(),
			},
			CreatedAt:    b.CreatedAt.Format(time.RFC3339),
			LastActivity: b.LastActivity.Format(time.RFC3339),
		},
		Projects: cards,
		Total:    v.Total,
		Empty:    v.Empty,
	}
}
