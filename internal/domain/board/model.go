package board

import (
	"time"

	"github.com/rpggio/keydeck/internal/domain/project"
)

// Board is one dashboard page session: its filter, draft and dialog state.
// Its projects live in the project repository under the board's ID.
type Board struct {
	ID           string               `json:"id"`
	Query        string               `json:"query"`
	Status       project.StatusFilter `json:"status"`
	DialogOpen   bool                 `json:"dialog_open"`
	Draft        project.Draft        `json:"draft"`
	CreatedAt    time.Time            `json:"created_at"`
	LastActivity time.Time            `json:"last_activity"`
}

// New returns a board with default view state.
func New(id string, now time.Time) Board {
	return Board{
		ID:           id,
		Status:       project.StatusAll,
		Draft:        project.NewDraft(),
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Filter returns the board's current project filter.
func (b Board) Filter() project.Filter {
	return project.Filter{Query: b.Query, Status: b.Status}
}

// View is the derived state rendered by clients.
type View struct {
	Board    Board             `json:"board"`
	Projects []project.Project `json:"projects"`
	// Total counts every project on the board, regardless of the filter.
	Total int  `json:"total"`
	Empty bool `json:"empty"`
}

// SubmitResult reports the outcome of a create-flow submission.
type SubmitResult struct {
	Accepted bool             `json:"accepted"`
	Project  *project.Project `json:"project,omitempty"`
	View     View             `json:"view"`
}
