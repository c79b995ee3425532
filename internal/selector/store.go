// Package selector implements the output-format selector: selection policy,
// custom options, favorites, and the dropdown state machine.
package selector

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/promptmate/internal/catalog"
	"github.com/rcliao/promptmate/internal/filter"
	"github.com/rcliao/promptmate/internal/prefs"
)

const (
	DefaultMaxSelected      = 6
	DefaultQualityThreshold = 3
)

// Persister receives the full value of a preference after every change.
// *prefs.Writer implements it.
type Persister interface {
	Put(key string, value any)
}

// Options configures a Store.
type Options struct {
	MaxSelected      int
	QualityThreshold int
	// OnChange is called with the next selection whenever it changes.
	OnChange func(next []string)
	// Cache, when set, memoizes Visible.
	Cache  *filter.Cache
	Logger *zap.Logger
}

// State is the initial content of a Store.
type State struct {
	Selection []string
	Custom    []string
	Favorites []string
}

// Result carries the selection after an operation and any advisory notice.
type Result struct {
	Selection []string `json:"selection"`
	Notice    Notice   `json:"notice,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Store owns the selection, custom options and favorites of one selector.
// It is not safe for concurrent use.
type Store struct {
	cat  *catalog.Catalog
	sink Persister
	opts Options
	log  *zap.Logger

	selection []string
	custom    []string
	favorites []string
}

// New creates a Store. The initial selection is de-duplicated and truncated
// to MaxSelected; when that changes it, OnChange receives the result.
func New(cat *catalog.Catalog, st State, sink Persister, opts Options) *Store {
	if opts.MaxSelected <= 0 {
		opts.MaxSelected = DefaultMaxSelected
	}
	if opts.QualityThreshold <= 0 {
		opts.QualityThreshold = DefaultQualityThreshold
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{
		cat:       cat,
		sink:      sink,
		opts:      opts,
		log:       log,
		selection: []string{},
		custom:    uniq(st.Custom),
		favorites: uniq(st.Favorites),
	}
	for _, v := range uniq(st.Selection) {
		if len(s.selection) >= opts.MaxSelected {
			log.Debug("dropping selection over limit", zap.String("value", v))
			continue
		}
		s.selection = append(s.selection, v)
	}
	// The host still holds the untrimmed value.
	if !slices.Equal(s.selection, st.Selection) && opts.OnChange != nil {
		opts.OnChange(slices.Clone(s.selection))
	}
	return s
}

// OpenStore loads custom options and favorites from kv and returns a Store that
// persists through sink.
func OpenStore(ctx context.Context, cat *catalog.Catalog, kv prefs.KV, sink Persister, selection []string, opts Options) *Store {
	return New(cat, State{
		Selection: selection,
		Custom:    prefs.LoadList(ctx, kv, prefs.KeyCustomOutputs, opts.Logger),
		Favorites: prefs.LoadList(ctx, kv, prefs.KeyFavoriteOutputs, opts.Logger),
	}, sink, opts)
}

// MaxSelected returns the selection limit.
func (s *Store) MaxSelected() int { return s.opts.MaxSelected }

// Selection returns a copy of the current selection.
func (s *Store) Selection() []string { return slices.Clone(s.selection) }

// Custom returns a copy of the custom options in insertion order.
func (s *Store) Custom() []string { return slices.Clone(s.custom) }

// Favorites returns a copy of the favorites set in insertion order.
func (s *Store) Favorites() []string { return slices.Clone(s.favorites) }

// IsSelected reports whether label is in the selection.
func (s *Store) IsSelected(label string) bool { return slices.Contains(s.selection, label) }

// IsFavorite reports whether label is flagged as a favorite.
func (s *Store) IsFavorite(label string) bool { return slices.Contains(s.favorites, label) }

// IsCustom reports whether label is a custom option.
func (s *Store) IsCustom(label string) bool { return slices.Contains(s.custom, label) }

// Resolve looks label up among catalog and custom options.
func (s *Store) Resolve(label string) (catalog.OptionRecord, bool) {
	return s.cat.Resolve(label, s.custom)
}

// Toggle removes label when selected, otherwise appends it. Adding an
// unresolvable label fails with ErrUnknownOption.
func (s *Store) Toggle(label string) (Result, error) {
	if i := slices.Index(s.selection, label); i >= 0 {
		s.setSelection(slices.Delete(slices.Clone(s.selection), i, i+1))
		return s.result(NoticeNone), nil
	}
	if _, ok := s.Resolve(label); !ok {
		return s.result(NoticeNone), fmt.Errorf("%w: %q", ErrUnknownOption, label)
	}
	return s.add(label), nil
}

// AddCustomAndSelect handles free-text submission. Known labels behave as
// Toggle; unknown text becomes a new custom option and is then added.
func (s *Store) AddCustomAndSelect(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return s.result(NoticeNone), ErrEmptyInput
	}
	if _, ok := s.Resolve(text); ok {
		return s.Toggle(text)
	}

	s.custom = append(slices.Clone(s.custom), text)
	s.persist(prefs.KeyCustomOutputs, s.custom)
	s.log.Debug("custom output created", zap.String("value", text))
	return s.add(text), nil
}

// RemoveCustom deletes a custom option and drops it from the selection.
// Favorites are left untouched.
func (s *Store) RemoveCustom(label string) (Result, error) {
	i := slices.Index(s.custom, label)
	if i < 0 {
		return s.result(NoticeNone), fmt.Errorf("%w: %q is not a custom option", ErrUnknownOption, label)
	}
	s.custom = slices.Delete(slices.Clone(s.custom), i, i+1)
	s.persist(prefs.KeyCustomOutputs, s.custom)

	if j := slices.Index(s.selection, label); j >= 0 {
		s.setSelection(slices.Delete(slices.Clone(s.selection), j, j+1))
	}
	return s.result(NoticeNone), nil
}

// ToggleFavorite flags or unflags label and reports whether it is now a
// favorite. The label does not have to resolve.
func (s *Store) ToggleFavorite(label string) (bool, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return false, ErrEmptyInput
	}
	now := true
	if i := slices.Index(s.favorites, label); i >= 0 {
		s.favorites = slices.Delete(slices.Clone(s.favorites), i, i+1)
		now = false
	} else {
		s.favorites = append(slices.Clone(s.favorites), label)
	}
	s.persist(prefs.KeyFavoriteOutputs, s.favorites)
	return now, nil
}

// ClearAll empties the selection only.
func (s *Store) ClearAll() Result {
	if len(s.selection) > 0 {
		s.setSelection([]string{})
	}
	return s.result(NoticeNone)
}

// Visible computes the dropdown content for query.
func (s *Store) Visible(query string) filter.Visible {
	if s.opts.Cache != nil {
		return s.opts.Cache.Visible(s.custom, s.selection, query)
	}
	return filter.ComputeVisible(s.cat, s.custom, s.selection, query)
}

// FavoriteMatches returns resolvable favorites matching query.
func (s *Store) FavoriteMatches(query string) []string {
	return filter.FavoriteMatches(s.cat, s.custom, s.favorites, query)
}

// Items returns the flattened dropdown rows for query.
func (s *Store) Items(query string) []filter.Item {
	return filter.Items(s.FavoriteMatches(query), s.Visible(query))
}

// NoticeText renders a notice as user-facing status text.
func (s *Store) NoticeText(n Notice) string {
	switch n {
	case NoticeLimitReached:
		return fmt.Sprintf("You can select at most %d output formats.", s.opts.MaxSelected)
	case NoticeQualityWarning:
		return "Too many output formats can lower answer quality. We recommend 2–3."
	default:
		return ""
	}
}

func (s *Store) add(label string) Result {
	if len(s.selection) >= s.opts.MaxSelected {
		return s.result(NoticeLimitReached)
	}
	next := append(slices.Clone(s.selection), label)
	s.setSelection(next)
	if len(next) >= s.opts.QualityThreshold {
		return s.result(NoticeQualityWarning)
	}
	return s.result(NoticeNone)
}

func (s *Store) setSelection(next []string) {
	s.selection = next
	if s.opts.OnChange != nil {
		s.opts.OnChange(slices.Clone(next))
	}
}

func (s *Store) result(n Notice) Result {
	return Result{Selection: s.Selection(), Notice: n, Message: s.NoticeText(n)}
}

func (s *Store) persist(key string, v []string) {
	if s.sink == nil {
		return
	}
	s.sink.Put(key, slices.Clone(v))
}

func uniq(in []string) []string {
	out := []string{}
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
