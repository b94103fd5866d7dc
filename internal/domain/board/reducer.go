package board

import "github.com/rpggio/keydeck/internal/domain/project"

// ActionType names a board state transition.
type ActionType string

const (
	ActionSetQuery          ActionType = "set_query"
	ActionSetStatus         ActionType = "set_status"
	ActionOpenDialog        ActionType = "open_dialog"
	ActionCloseDialog       ActionType = "close_dialog"
	ActionEditName          ActionType = "edit_name"
	ActionEditAPIKey        ActionType = "edit_api_key"
	ActionToggleIntegration ActionType = "toggle_integration"
	ActionResetDraft        ActionType = "reset_draft"
)

// Action is a single user interaction. Value carries the text payload.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
}

// SetQuery replaces the free-text search query.
func SetQuery(q string) Action { return Action{Type: ActionSetQuery, Value: q} }

// SetStatus replaces the status selector.
func SetStatus(s string) Action { return Action{Type: ActionSetStatus, Value: s} }

func OpenDialog() Action  { return Action{Type: ActionOpenDialog} }
func CloseDialog() Action { return Action{Type: ActionCloseDialog} }

func EditName(s string) Action   { return Action{Type: ActionEditName, Value: s} }
func EditAPIKey(s string) Action { return Action{Type: ActionEditAPIKey, Value: s} }

func ToggleIntegration(name string) Action {
	return Action{Type: ActionToggleIntegration, Value: name}
}

func ResetDraft() Action { return Action{Type: ActionResetDraft} }

// Reduce applies a to b and returns the new state. b is never modified;
// on error the original board is returned unchanged.
func Reduce(b Board, a Action) (Board, error) {
	next := b
	switch a.Type {
	case ActionSetQuery:
		next.Query = a.Value
	case ActionSetStatus:
		status, err := project.ParseStatusFilter(a.Value)
		if err != nil {
			return b, err
		}
		next.Status = status
	case ActionOpenDialog:
		next.DialogOpen = true
	case ActionCloseDialog:
		next.DialogOpen = false
		next.Draft = project.NewDraft()
	case ActionEditName:
		next.Draft.Name = a.Value
	case ActionEditAPIKey:
		next.Draft.APIKey = a.Value
	case ActionToggleIntegration:
		name, err := project.ParseIntegrationName(a.Value)
		if err != nil {
			return b, err
		}
		draft, err := b.Draft.Toggle(name)
		if err != nil {
			return b, err
		}
		next.Draft = draft
	case ActionResetDraft:
		next.Draft = project.NewDraft()
		next.DialogOpen = false
	default:
		return b, ErrUnknownAction
	}
	return next, nil
}
