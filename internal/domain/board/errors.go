package board

import "errors"

var (
	// ErrBoardNotFound indicates the board doesn't exist or was closed.
	ErrBoardNotFound = errors.New("board not found")
	// ErrUnknownAction indicates an unsupported action type.
	ErrUnknownAction = errors.New("unknown board action")
)
