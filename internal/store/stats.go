package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath        string      `json:"db_path"`
	DBSizeBytes   int64       `json:"db_size_bytes"`
	TotalPrompts  int         `json:"total_prompts"`
	ActivePrompts int         `json:"active_prompts"`
	Prefs         []PrefStats `json:"prefs"`
}

// PrefStats describes one stored pref.
type PrefStats struct {
	Key       string `json:"key"`
	Bytes     int    `json:"bytes"`
	UpdatedAt string `json:"updated_at"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Prefs: []PrefStats{}}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts`).Scan(&st.TotalPrompts)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts WHERE deleted_at IS NULL`).Scan(&st.ActivePrompts)

	rows, err := s.db.QueryContext(ctx,
		`SELECT key, LENGTH(CAST(value AS BLOB)), updated_at FROM prefs ORDER BY key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var p PrefStats
		if err := rows.Scan(&p.Key, &p.Bytes, &p.UpdatedAt); err != nil {
			return st, err
		}
		st.Prefs = append(st.Prefs, p)
	}

	return st, rows.Err()
}
