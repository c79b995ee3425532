package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/promptmate/internal/model"
)

// ExportPrompts returns all non-deleted saved prompts, oldest first.
func (s *SQLiteStore) ExportPrompts(ctx context.Context) ([]model.SavedPrompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, form, created_at, deleted_at FROM prompts
		 WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrompts(rows)
}

// ImportPrompts stores prompts from an export. Ids already present (even
// soft-deleted) are skipped. Returns the number imported.
func (s *SQLiteStore) ImportPrompts(ctx context.Context, prompts []model.SavedPrompt) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	imported := 0
	for _, sp := range prompts {
		if strings.TrimSpace(sp.Form.Task) == "" {
			return 0, fmt.Errorf("import %q: %w", sp.ID, ErrTaskRequired)
		}
		if sp.CreatedAt.IsZero() {
			sp.CreatedAt = s.now()
		}
		if sp.ID == "" {
			sp.ID = s.newID(sp.CreatedAt)
		}
		if sp.Title == "" {
			sp.Title = model.TitleFromTask(sp.Form.Task)
		}

		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts WHERE id = ?`, sp.ID).Scan(&exists); err != nil {
			return 0, fmt.Errorf("check prompt %s: %w", sp.ID, err)
		}
		if exists > 0 {
			continue
		}

		if err := s.insertPrompt(ctx, tx, &sp); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
