package project

import "context"

// Repository provides storage for a board's projects.
type Repository interface {
	// Create assigns the next sequential ID and stores the project.
	Create(ctx context.Context, boardID string, proj *Project) error
	Get(ctx context.Context, boardID, id string) (*Project, error)
	// List returns projects in insertion order.
	List(ctx context.Context, boardID string) ([]Project, error)
	Count(ctx context.Context, boardID string) (int, error)
}
