package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/rpggio/keydeck/internal/domain/project"
	"github.com/rpggio/keydeck/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create assigns the next sequential ID (count + 1) and inserts the project
// with its integrations in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, boardID string, proj *project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE board_id = ?`, boardID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count projects: %w", err)
	}
	seq := count + 1
	id := strconv.Itoa(seq)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (board_id, id, seq, name, api_key, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		boardID,
		id,
		seq,
		proj.Name,
		proj.APIKey,
		string(proj.Status),
		string(proj.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", translate(err))
	}

	for i, in := range proj.Integrations {
		if !in.Enabled {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_integrations (board_id, project_id, position, name)
			VALUES (?, ?, ?, ?)
		`, boardID, id, i, string(in.Name))
		if err != nil {
			return fmt.Errorf("failed to add integration %q: %w", in.Name, translate(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	proj.ID = id
	proj.BoardID = boardID
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, boardID, id string) (*project.Project, error) {
	query := `
		SELECT id, board_id, name, api_key, status, created_at
		FROM projects
		WHERE board_id = ? AND id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, boardID, id).Scan(
		&proj.ID,
		&proj.BoardID,
		&proj.Name,
		&proj.APIKey,
		&proj.Status,
		&proj.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	integrations, err := r.integrations(ctx, boardID, id)
	if err != nil {
		return nil, err
	}
	proj.Integrations = integrations[id]
	if proj.Integrations == nil {
		proj.Integrations = []project.Integration{}
	}

	return &proj, nil
}

// List returns a board's projects in insertion order
func (r *ProjectRepository) List(ctx context.Context, boardID string) ([]project.Project, error) {
	query := `
		SELECT id, board_id, name, api_key, status, created_at
		FROM projects
		WHERE board_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := []project.Project{}
	for rows.Next() {
		var proj project.Project
		err := rows.Scan(
			&proj.ID,
			&proj.BoardID,
			&proj.Name,
			&proj.APIKey,
			&proj.Status,
			&proj.CreatedAt,
		)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	// Release the single pooled connection before the next query.
	rows.Close()

	integrations, err := r.integrations(ctx, boardID, "")
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Integrations = integrations[projects[i].ID]
		if projects[i].Integrations == nil {
			projects[i].Integrations = []project.Integration{}
		}
	}

	return projects, nil
}

// Count returns the number of projects on a board
func (r *ProjectRepository) Count(ctx context.Context, boardID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE board_id = ?`, boardID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// integrations loads enabled integrations keyed by project ID. An empty
// projectID loads the whole board.
func (r *ProjectRepository) integrations(ctx context.Context, boardID, projectID string) (map[string][]project.Integration, error) {
	query := `
		SELECT project_id, name
		FROM project_integrations
		WHERE board_id = ? AND (? = '' OR project_id = ?)
		ORDER BY project_id, position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, boardID, projectID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load integrations: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]project.Integration)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan integration: %w", err)
		}
		out[id] = append(out[id], project.Integration{Name: project.IntegrationName(name), Enabled: true})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating integration rows: %w", err)
	}
	return out, nil
}
