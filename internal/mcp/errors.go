package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors pass through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, board.ErrBoardNotFound):
		return &APIError{Code: "BOARD_NOT_FOUND", Message: "board not found", RecoveryHint: "Call open_board or omit board_id"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the id with get_board"}
	case errors.Is(err, project.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use all, active, inactive or pending"}
	case errors.Is(err, project.ErrUnknownIntegration):
		return &APIError{Code: "UNKNOWN_INTEGRATION", Message: err.Error(), RecoveryHint: "Call list_integrations"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, board.ErrUnknownAction):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return err
	}
}
