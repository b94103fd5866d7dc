package integration_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/seed"
	"github.com/rpggio/keydeck/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db        *sqlite.DB
	boardRepo *sqlite.BoardRepository

	projectSvc *project.Service
	boardSvc   *board.Service
	now        time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	seeds, err := seed.Default()
	require.NoError(t, err)

	now := time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	boardRepo := sqlite.NewBoardRepository(db)
	projectSvc := project.NewService(sqlite.NewProjectRepository(db), nil).WithClock(clock)
	boardSvc := board.NewService(boardRepo, projectSvc, seeds, nil).WithClock(clock)

	return &testEnv{
		db:         db,
		boardRepo:  boardRepo,
		projectSvc: projectSvc,
		boardSvc:   boardSvc,
		now:        now,
	}
}

func projectNames(projects []project.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name)
	}
	return out
}

func TestIntegration_FilterScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	view, err := env.boardSvc.Open(ctx)
	require.NoError(t, err)
	id := view.Board.ID

	view, err = env.boardSvc.Dispatch(ctx, id, board.SetQuery("prod"), board.SetStatus("all"))
	require.NoError(t, err)
	require.Equal(t, []string{"Production API"}, projectNames(view.Projects))

	view, err = env.boardSvc.Dispatch(ctx, id, board.SetQuery(""), board.SetStatus("pending"))
	require.NoError(t, err)
	require.Equal(t, []string{"Test Environment"}, projectNames(view.Projects))

	// A failing action leaves the stored board untouched.
	_, err = env.boardSvc.Dispatch(ctx, id, board.SetQuery("dev"), board.SetStatus("archived"))
	require.ErrorIs(t, err, project.ErrInvalidStatus)

	stored, err := env.boardSvc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "", stored.Query)
	require.Equal(t, project.StatusFilter("pending"), stored.Status)
}

func TestIntegration_CreateFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	view, err := env.boardSvc.Open(ctx)
	require.NoError(t, err)
	id := view.Board.ID

	_, err = env.boardSvc.Dispatch(ctx, id, board.OpenDialog(), board.EditName("Foo"))
	require.NoError(t, err)

	// Missing key: refused, nothing stored, dialog stays open.
	result, err := env.boardSvc.Submit(ctx, id)
	require.NoError(t, err)
	require.False(t, result.Accepted)
	require.True(t, result.View.Board.DialogOpen)
	require.Equal(t, 3, result.View.Total)

	_, err = env.boardSvc.Dispatch(ctx, id,
		board.EditAPIKey("secret"),
		board.ToggleIntegration(string(project.IntegrationREST)),
		board.ToggleIntegration(string(project.IntegrationOAuth2)),
	)
	require.NoError(t, err)

	result, err = env.boardSvc.Submit(ctx, id)
	require.NoError(t, err)
	require.True(t, result.Accepted)
	require.Equal(t, "4", result.Project.ID)
	require.Equal(t, "secret***", result.Project.APIKey)
	require.Equal(t, project.StatusActive, result.Project.Status)
	require.Equal(t, project.Date("2026-10-16"), result.Project.CreatedAt)
	require.Equal(t, []project.Integration{{Name: project.IntegrationOAuth2, Enabled: true}}, result.Project.Integrations)
	require.False(t, result.View.Board.DialogOpen)
	require.Equal(t, project.NewDraft(), result.View.Board.Draft)

	all, err := env.projectSvc.List(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"Production API", "Development API", "Test Environment", "Foo"}, projectNames(all))
}

func TestIntegration_NoUniquenessChecks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	view, err := env.boardSvc.Open(ctx)
	require.NoError(t, err)
	id := view.Board.ID

	for i := 0; i < 2; i++ {
		_, err = env.boardSvc.Dispatch(ctx, id, board.EditName("Production API"), board.EditAPIKey("pk_prod_abc123"))
		require.NoError(t, err)
		result, err := env.boardSvc.Submit(ctx, id)
		require.NoError(t, err)
		require.True(t, result.Accepted)
	}

	view, err = env.boardSvc.Dispatch(ctx, id, board.SetQuery("production"))
	require.NoError(t, err)
	require.Len(t, view.Projects, 3)
	require.Equal(t, "1", view.Projects[0].ID)
	require.Equal(t, "4", view.Projects[1].ID)
	require.Equal(t, "5", view.Projects[2].ID)
}

func TestIntegration_ConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	view, err := env.boardSvc.Open(ctx)
	require.NoError(t, err)
	id := view.Board.ID

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := env.boardSvc.Dispatch(ctx, id, board.EditName(fmt.Sprintf("P%d", i)), board.EditAPIKey("k")); err != nil {
				errs <- err
				return
			}
			if _, err := env.boardSvc.Submit(ctx, id); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	all, err := env.projectSvc.List(ctx, id)
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, p := range all {
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	require.GreaterOrEqual(t, len(all), 4)
}

func TestIntegration_EnsureAndClose(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.boardSvc.Ensure(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, 3, first.Total)

	_, err = env.boardSvc.Dispatch(ctx, "default", board.SetQuery("test"))
	require.NoError(t, err)

	// Ensure on an existing board keeps its state and does not reseed.
	again, err := env.boardSvc.Ensure(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, 3, again.Total)
	require.Equal(t, "test", again.Board.Query)

	require.NoError(t, env.boardSvc.Close(ctx, "default"))
	_, err = env.boardSvc.View(ctx, "default")
	require.ErrorIs(t, err, board.ErrBoardNotFound)
	require.ErrorIs(t, env.boardSvc.Close(ctx, "default"), board.ErrBoardNotFound)

	projects, err := env.projectSvc.List(ctx, "default")
	require.NoError(t, err)
	require.Empty(t, projects)

	reopened, err := env.boardSvc.Ensure(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "", reopened.Board.Query)
	require.Equal(t, 3, reopened.Total)
}
