// Package suggest implements the free-text suggestion fields of the prompt
// form (persona, tone) with per-field favorites.
package suggest

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/promptmate/internal/catalog"
	"github.com/rcliao/promptmate/internal/filter"
	"github.com/rcliao/promptmate/internal/prefs"
	"github.com/rcliao/promptmate/internal/selector"
)

// Config describes one suggestion field.
type Config struct {
	Name        string
	Suggestions []string
	Multi       bool
	FavoriteKey string
}

// Persona is the single-select persona field.
var Persona = Config{
	Name:        "persona",
	Suggestions: catalog.PersonaSuggestions,
	FavoriteKey: prefs.KeyFavoritePersonas,
}

// Tone is the multi-select tone field.
var Tone = Config{
	Name:        "tone",
	Suggestions: catalog.ToneSuggestions,
	Multi:       true,
	FavoriteKey: prefs.KeyFavoriteTones,
}

// Matches is the dropdown content of a field for one query.
type Matches struct {
	Favorites   []string `json:"favorites"`
	Suggestions []string `json:"suggestions"`
}

// Field holds the value and favorites of one suggestion input.
type Field struct {
	cfg       Config
	sink      selector.Persister
	log       *zap.Logger
	value     []string
	favorites []string

	Dropdown *selector.Dropdown
}

// New creates a field with the given current value and favorites.
func New(cfg Config, value, favorites []string, sink selector.Persister, log *zap.Logger) *Field {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Field{
		cfg:      cfg,
		sink:     sink,
		log:      log,
		Dropdown: selector.NewDropdown(!cfg.Multi),
	}
	for _, v := range value {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(f.value, v) {
			continue
		}
		f.value = append(f.value, v)
		if !cfg.Multi {
			break
		}
	}
	for _, v := range favorites {
		if !slices.Contains(f.favorites, v) {
			f.favorites = append(f.favorites, v)
		}
	}
	return f
}

// Open loads the field's favorites from kv.
func Open(ctx context.Context, cfg Config, kv prefs.KV, sink selector.Persister, value []string, log *zap.Logger) *Field {
	return New(cfg, value, prefs.LoadList(ctx, kv, cfg.FavoriteKey, log), sink, log)
}

// Name returns the field name.
func (f *Field) Name() string { return f.cfg.Name }

// Value returns the current value. Single-select fields hold at most one.
func (f *Field) Value() []string { return slices.Clone(f.value) }

// Single returns the value of a single-select field, or "".
func (f *Field) Single() string {
	if len(f.value) == 0 {
		return ""
	}
	return f.value[0]
}

// Favorites returns the field's favorites in insertion order.
func (f *Field) Favorites() []string { return slices.Clone(f.favorites) }

// Filter returns favorites and suggestions containing query. An empty query
// returns everything.
func (f *Field) Filter(query string) Matches {
	q := filter.Normalize(query)
	m := Matches{Favorites: []string{}, Suggestions: []string{}}
	for _, v := range f.favorites {
		if filter.Matches(v, q) {
			m.Favorites = append(m.Favorites, v)
		}
	}
	for _, v := range f.cfg.Suggestions {
		if filter.Matches(v, q) {
			m.Suggestions = append(m.Suggestions, v)
		}
	}
	return m
}

// Select picks v. Single-select fields replace their value; multi-select
// fields toggle membership.
func (f *Field) Select(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return f.Value()
	}
	if !f.cfg.Multi {
		f.value = []string{v}
	} else if i := slices.Index(f.value, v); i >= 0 {
		f.value = slices.Delete(f.value, i, i+1)
	} else {
		f.value = append(f.value, v)
	}
	f.Dropdown.Commit()
	return f.Value()
}

// Submit handles Enter on free text: the value is set or added (never
// removed) and remembered as a favorite.
func (f *Field) Submit(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return f.Value(), selector.ErrEmptyInput
	}
	if !f.cfg.Multi {
		f.value = []string{text}
	} else if !slices.Contains(f.value, text) {
		f.value = append(f.value, text)
	}
	if !slices.Contains(f.favorites, text) {
		f.favorites = append(f.favorites, text)
		f.persist()
	}
	f.Dropdown.ClearQuery()
	f.Dropdown.Commit()
	return f.Value(), nil
}

// ToggleFavorite flags or unflags v and reports whether it is now a
// favorite.
func (f *Field) ToggleFavorite(v string) (bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return false, selector.ErrEmptyInput
	}
	now := true
	if i := slices.Index(f.favorites, v); i >= 0 {
		f.favorites = slices.Delete(f.favorites, i, i+1)
		now = false
	} else {
		f.favorites = append(f.favorites, v)
	}
	f.persist()
	return now, nil
}

// Clear empties the value and resets the dropdown.
func (f *Field) Clear() {
	f.value = nil
	f.Dropdown.Reset()
}

func (f *Field) persist() {
	if f.sink == nil {
		return
	}
	f.log.Debug("persist favorites", zap.String("field", f.cfg.Name))
	f.sink.Put(f.cfg.FavoriteKey, slices.Clone(f.favorites))
}
