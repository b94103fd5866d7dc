package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/repository"
)

// Service handles board lifecycle and the create flow.
type Service struct {
	repo     Repository
	projects ProjectService
	seeds    []project.SeedRequest
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*boardLock
}

// boardLock is held or awaited by refs callers. The entry leaves the map
// when refs drops to zero.
type boardLock struct {
	mu   sync.Mutex
	refs int
}

// NewService creates a new board service. Every opened board is seeded with seeds.
func NewService(repo Repository, projects ProjectService, seeds []project.SeedRequest, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		projects: projects,
		seeds:    seeds,
		logger:   logger,
		now:      time.Now,
		locks:    make(map[string]*boardLock),
	}
}

// WithClock replaces the clock used for board timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// lock serializes read-modify-write cycles on a single board.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &boardLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Open starts a new board with a generated ID and the sample projects.
func (s *Service) Open(ctx context.Context) (View, error) {
	id := uuid.NewString()
	unlock := s.lock(id)
	defer unlock()

	b, err := s.create(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, *b)
}

// Ensure returns the board with the given ID, opening it if missing.
func (s *Service) Ensure(ctx context.Context, id string) (View, error) {
	if id == "" {
		return View{}, fmt.Errorf("%w: empty board id", project.ErrInvalidInput)
	}
	unlock := s.lock(id)
	defer unlock()

	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return View{}, fmt.Errorf("getting board: %w", err)
		}
		b, err = s.create(ctx, id)
		if err != nil {
			return View{}, err
		}
	}
	return s.view(ctx, *b)
}

func (s *Service) create(ctx context.Context, id string) (*Board, error) {
	b := New(id, s.now())
	if err := s.repo.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}
	if err := s.projects.Seed(ctx, id, s.seeds); err != nil {
		if delErr := s.repo.Delete(ctx, id); delErr != nil && s.logger != nil {
			s.logger.Warn("failed to drop partially seeded board", "board_id", id, "error", delErr)
		}
		return nil, fmt.Errorf("seeding board: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("board opened", "board_id", id, "seeded", len(s.seeds))
	}
	return &b, nil
}

// Get fetches a board by ID.
func (s *Service) Get(ctx context.Context, id string) (*Board, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("getting board: %w", err)
	}
	return b, nil
}

// View returns the board together with its filtered projects.
func (s *Service) View(ctx context.Context, id string) (View, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.view(ctx, *b)
}

func (s *Service) view(ctx context.Context, b Board) (View, error) {
	res, err := s.projects.Search(ctx, b.ID, b.Filter())
	if err != nil {
		return View{}, err
	}
	total, err := s.projects.Count(ctx, b.ID)
	if err != nil {
		return View{}, err
	}
	return View{
		Board:    b,
		Projects: res.Projects,
		Total:    total,
		Empty:    res.Empty,
	}, nil
}

// Dispatch applies actions in order and stores the result. Either every
// action applies or the board is left as it was.
func (s *Service) Dispatch(ctx context.Context, id string, actions ...Action) (View, error) {
	unlock := s.lock(id)
	defer unlock()

	b, err := s.Get(ctx, id)
	if err != nil {
		return View{}, err
	}

	next := *b
	for _, a := range actions {
		next, err = Reduce(next, a)
		if err != nil {
			return View{}, err
		}
	}
	if err := s.save(ctx, &next); err != nil {
		return View{}, err
	}
	return s.view(ctx, next)
}

// Submit runs the create flow on the board's draft. An incomplete draft is
// refused without error: nothing is stored and the dialog stays as it is.
// The dialog does not have to be open; API clients submit directly.
func (s *Service) Submit(ctx context.Context, id string) (SubmitResult, error) {
	unlock := s.lock(id)
	defer unlock()

	b, err := s.Get(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}

	proj, err := s.projects.Create(ctx, id, b.Draft)
	if errors.Is(err, project.ErrIncompleteDraft) {
		view, err := s.view(ctx, *b)
		if err != nil {
			return SubmitResult{}, err
		}
		return SubmitResult{Accepted: false, View: view}, nil
	}
	if err != nil {
		return SubmitResult{}, err
	}

	next, err := Reduce(*b, ResetDraft())
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.save(ctx, &next); err != nil {
		return SubmitResult{}, err
	}

	view, err := s.view(ctx, next)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Accepted: true, Project: proj, View: view}, nil
}

// Close drops the board and everything on it.
func (s *Service) Close(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("closing board: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("board closed", "board_id", id)
	}
	return nil
}

func (s *Service) save(ctx context.Context, b *Board) error {
	b.LastActivity = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("updating board: %w", err)
	}
	return nil
}
