package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrIncompleteDraft indicates a draft without a name or an API key.
	ErrIncompleteDraft = errors.New("draft requires a name and an api key")
	// ErrUnknownIntegration indicates a name outside the integration catalog.
	ErrUnknownIntegration = errors.New("unknown integration")
	// ErrInvalidStatus indicates an unrecognized status selector.
	ErrInvalidStatus = errors.New("invalid status filter")
)
