package store

import (
	"context"
	"strings"

	"github.com/rcliao/promptmate/internal/model"
)

// SearchPrompts finds saved prompts whose title or form fields contain the
// query, case-insensitively. Newest first.
func (s *SQLiteStore) SearchPrompts(ctx context.Context, p SearchParams) ([]model.SavedPrompt, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(p.Query))

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, form, created_at, deleted_at FROM prompts
		 WHERE deleted_at IS NULL
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all, err := collectPrompts(rows)
	if err != nil {
		return nil, err
	}

	// SQLite's LIKE only folds ASCII, and the labels are mostly Slovak, so
	// matching happens here.
	results := []model.SavedPrompt{}
	for _, sp := range all {
		if !matchesPrompt(sp, q) {
			continue
		}
		results = append(results, sp)
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func matchesPrompt(sp model.SavedPrompt, q string) bool {
	if q == "" {
		return true
	}
	f := sp.Form
	fields := []string{sp.Title, f.Persona, f.Task, f.Goal,
		f.Advanced.AdditionalConstraints, f.Advanced.Examples}
	fields = append(fields, f.Tone...)
	fields = append(fields, f.Output...)
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
