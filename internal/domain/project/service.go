package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/keydeck/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for creation dates.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create finalizes a draft into a new active project.
func (s *Service) Create(ctx context.Context, boardID string, draft Draft) (*Project, error) {
	if !draft.Ready() {
		return nil, ErrIncompleteDraft
	}

	proj := &Project{
		BoardID:      boardID,
		Name:         draft.Name,
		APIKey:       MaskKey(draft.APIKey),
		Status:       StatusActive,
		CreatedAt:    DateOf(s.now()),
		Integrations: EnabledOnly(draft.Integrations),
	}

	if err := s.repo.Create(ctx, boardID, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("project created", "board_id", boardID, "project_id", proj.ID, "integrations", proj.IntegrationCount())
	}
	return proj, nil
}

// SeedRequest describes a pre-built project loaded when a board opens.
type SeedRequest struct {
	Name         string
	APIKey       string
	Status       Status
	CreatedAt    Date
	Integrations []IntegrationName
}

// Seed stores sample projects as-is. Keys are expected to be masked already.
func (s *Service) Seed(ctx context.Context, boardID string, seeds []SeedRequest) error {
	for _, req := range seeds {
		if req.Name == "" || !req.Status.Valid() {
			return fmt.Errorf("%w: seed %q", ErrInvalidInput, req.Name)
		}
		integrations := make([]Integration, 0, len(req.Integrations))
		for _, name := range req.Integrations {
			integrations = append(integrations, Integration{Name: name, Enabled: true})
		}
		proj := &Project{
			BoardID:      boardID,
			Name:         req.Name,
			APIKey:       req.APIKey,
			Status:       req.Status,
			CreatedAt:    req.CreatedAt,
			Integrations: EnabledOnly(integrations),
		}
		if err := s.repo.Create(ctx, boardID, proj); err != nil {
			return fmt.Errorf("seeding project %q: %w", req.Name, err)
		}
	}
	return nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, boardID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, boardID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns every project on the board in insertion order.
func (s *Service) List(ctx context.Context, boardID string) ([]Project, error) {
	projects, err := s.repo.List(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Count returns the number of projects on the board.
func (s *Service) Count(ctx context.Context, boardID string) (int, error) {
	n, err := s.repo.Count(ctx, boardID)
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

// Search applies f to the board's projects.
func (s *Service) Search(ctx context.Context, boardID string, f Filter) (Result, error) {
	projects, err := s.List(ctx, boardID)
	if err != nil {
		return Result{}, err
	}
	return f.Apply(projects), nil
}
