package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/repository"
)

// BoardRepository implements board.Repository for SQLite
type BoardRepository struct {
	db *DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts a new board
func (r *BoardRepository) Create(ctx context.Context, b *board.Board) error {
	draft, err := json.Marshal(b.Draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		INSERT INTO boards (id, query, status_filter, dialog_open, draft, created_at, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		b.ID,
		b.Query,
		string(b.Status),
		b.DialogOpen,
		string(draft),
		b.CreatedAt,
		b.LastActivity,
	)
	if err != nil {
		return fmt.Errorf("failed to create board: %w", translate(err))
	}
	return nil
}

// Get retrieves a board by ID
func (r *BoardRepository) Get(ctx context.Context, id string) (*board.Board, error) {
	query := `
		SELECT id, query, status_filter, dialog_open, draft, created_at, last_activity
		FROM boards
		WHERE id = ?
	`

	var b board.Board
	var draft string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Query,
		&b.Status,
		&b.DialogOpen,
		&draft,
		&b.CreatedAt,
		&b.LastActivity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	if err := json.Unmarshal([]byte(draft), &b.Draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &b, nil
}

// Update stores the board's view state
func (r *BoardRepository) Update(ctx context.Context, b *board.Board) error {
	draft, err := json.Marshal(b.Draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	query := `
		UPDATE boards
		SET query = ?, status_filter = ?, dialog_open = ?, draft = ?, last_activity = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		b.Query,
		string(b.Status),
		b.DialogOpen,
		string(draft),
		b.LastActivity,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a board and its projects
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_integrations WHERE board_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete integrations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE board_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete projects: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
