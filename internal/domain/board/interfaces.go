package board

import (
	"context"

	"github.com/rpggio/keydeck/internal/domain/project"
)

// Repository provides storage for board view state.
type Repository interface {
	Create(ctx context.Context, b *Board) error
	Get(ctx context.Context, id string) (*Board, error)
	Update(ctx context.Context, b *Board) error
	// Delete drops the board together with its projects.
	Delete(ctx context.Context, id string) error
}

// ProjectService is the subset of the project service a board needs.
type ProjectService interface {
	Create(ctx context.Context, boardID string, draft project.Draft) (*project.Project, error)
	Seed(ctx context.Context, boardID string, seeds []project.SeedRequest) error
	Search(ctx context.Context, boardID string, f project.Filter) (project.Result, error)
	Count(ctx context.Context, boardID string) (int, error)
}
