// Package store provides the prompt builder storage interface and SQLite
// implementation: a string key-value table for preferences and the draft
// form, and a table of saved prompts.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/promptmate/internal/model"
)

var (
	// ErrNotFound is returned when a pref or prompt does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTaskRequired is returned when saving a prompt without a task.
	ErrTaskRequired = errors.New("task is required to save a prompt")
)

// SaveParams holds parameters for saving a prompt.
type SaveParams struct {
	Form model.Form
}

// ListParams holds parameters for listing saved prompts.
type ListParams struct {
	Limit int
}

// SearchParams holds parameters for searching saved prompts.
type SearchParams struct {
	Query string
	Limit int
}

// RmParams holds parameters for deleting a saved prompt.
type RmParams struct {
	ID   string
	Hard bool
}

// Store defines the prompt builder storage interface.
type Store interface {
	// GetPref returns the raw value stored under key, or ErrNotFound.
	GetPref(ctx context.Context, key string) (string, error)

	// SetPref stores value under key, replacing any previous value.
	SetPref(ctx context.Context, key, value string) error

	// LoadDraft returns the form being edited. Absent or malformed data
	// yields an empty form.
	LoadDraft(ctx context.Context) model.Form

	// SaveDraft stores the form being edited.
	SaveDraft(ctx context.Context, f model.Form) error

	// SavePrompt stores a snapshot of a form. Returns the saved prompt.
	SavePrompt(ctx context.Context, p SaveParams) (*model.SavedPrompt, error)

	// GetPrompt retrieves a saved prompt by id.
	GetPrompt(ctx context.Context, id string) (*model.SavedPrompt, error)

	// ListPrompts lists saved prompts, newest first.
	ListPrompts(ctx context.Context, p ListParams) ([]model.SavedPrompt, error)

	// DeletePrompt soft-deletes (or hard-deletes) a saved prompt.
	DeletePrompt(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
