package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/promptmate/internal/model"
)

// DraftKey is the pref key holding the form being edited.
const DraftKey = "draft"

// timeFormat is fixed-width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS prefs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS prompts (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		form       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		deleted_at TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_prompts_created ON prompts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_prompts_deleted ON prompts(deleted_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) GetPref(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("pref %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) SetPref(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("set pref %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) LoadDraft(ctx context.Context) model.Form {
	var f model.Form
	raw, err := s.GetPref(ctx, DraftKey)
	if err != nil {
		return f
	}
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return model.Form{}
	}
	return f
}

func (s *SQLiteStore) SaveDraft(ctx context.Context, f model.Form) error {
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.SetPref(ctx, DraftKey, string(b))
}

func (s *SQLiteStore) SavePrompt(ctx context.Context, p SaveParams) (*model.SavedPrompt, error) {
	if strings.TrimSpace(p.Form.Task) == "" {
		return nil, ErrTaskRequired
	}

	now := s.now()
	sp := &model.SavedPrompt{
		ID:        s.newID(now),
		Title:     model.TitleFromTask(p.Form.Task),
		Form:      p.Form,
		CreatedAt: now,
	}
	if err := s.insertPrompt(ctx, s.db, sp); err != nil {
		return nil, err
	}
	return sp, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insertPrompt(ctx context.Context, db execer, sp *model.SavedPrompt) error {
	formJSON, err := json.Marshal(sp.Form)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO prompts (id, title, form, created_at) VALUES (?, ?, ?, ?)`,
		sp.ID, sp.Title, string(formJSON), sp.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetPrompt(ctx context.Context, id string) (*model.SavedPrompt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, form, created_at, deleted_at FROM prompts
		 WHERE id = ? AND deleted_at IS NULL`, id)
	sp, err := scanPrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("prompt %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (s *SQLiteStore) ListPrompts(ctx context.Context, p ListParams) ([]model.SavedPrompt, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, form, created_at, deleted_at FROM prompts
		 WHERE deleted_at IS NULL
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPrompts(rows)
}

func (s *SQLiteStore) DeletePrompt(ctx context.Context, p RmParams) error {
	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, p.ID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE prompts SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
			s.now().Format(timeFormat), p.ID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("prompt %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row scanner) (model.SavedPrompt, error) {
	var sp model.SavedPrompt
	var formJSON, createdAt string
	var deletedAt sql.NullString

	if err := row.Scan(&sp.ID, &sp.Title, &formJSON, &createdAt, &deletedAt); err != nil {
		return sp, err
	}

	sp.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	if deletedAt.Valid {
		t, _ := time.Parse(timeFormat, deletedAt.String)
		sp.DeletedAt = &t
	}
	// A corrupt form degrades to an empty one rather than hiding the row.
	json.Unmarshal([]byte(formJSON), &sp.Form)

	return sp, nil
}

func collectPrompts(rows *sql.Rows) ([]model.SavedPrompt, error) {
	prompts := []model.SavedPrompt{}
	for rows.Next() {
		sp, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, sp)
	}
	return prompts, rows.Err()
}
