package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/promptmate/internal/catalog"
	"github.com/rcliao/promptmate/internal/filter"
	"github.com/rcliao/promptmate/internal/model"
	"github.com/rcliao/promptmate/internal/prefs"
	"github.com/rcliao/promptmate/internal/selector"
	"github.com/rcliao/promptmate/internal/store"
	"github.com/rcliao/promptmate/internal/suggest"
)

// session is one form-editing session: the draft form read from the store,
// the catalog, and a background writer for preferences.
type session struct {
	cmd    *cobra.Command
	store  *store.SQLiteStore
	writer *prefs.Writer
	cat    *catalog.Catalog
	form   model.Form
	dirty  bool
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func openSession(cmd *cobra.Command) (*session, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	s, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &session{
		cmd:    cmd,
		store:  s,
		writer: prefs.NewWriter(s, logger),
		cat:    cat,
		form:   s.LoadDraft(cmd.Context()),
	}, nil
}

// outputs returns the output-format selector bound to the draft.
func (s *session) outputs() *selector.Store {
	var cache *filter.Cache
	if cfg.CacheSize > 0 {
		c, err := filter.NewCache(s.cat, cfg.CacheSize)
		if err != nil {
			logger.Warn("visible cache disabled", zap.Error(err))
		} else {
			cache = c
		}
	}
	return selector.OpenStore(s.cmd.Context(), s.cat, s.store, s.writer, s.form.Output, selector.Options{
		MaxSelected:      cfg.MaxSelected,
		QualityThreshold: cfg.QualityThreshold,
		Cache:            cache,
		Logger:           logger,
		OnChange: func(next []string) {
			s.form.Output = next
			s.dirty = true
		},
	})
}

// field returns a persona or tone input bound to the draft.
func (s *session) field(c suggest.Config) *suggest.Field {
	return suggest.Open(s.cmd.Context(), c, s.store, s.writer, s.fieldValue(c), logger)
}

func (s *session) fieldValue(c suggest.Config) []string {
	if c.Multi {
		return s.form.Tone
	}
	if s.form.Persona == "" {
		return nil
	}
	return []string{s.form.Persona}
}

func (s *session) setField(f *suggest.Field) {
	if f.Name() == suggest.Tone.Name {
		s.form.Tone = f.Value()
	} else {
		s.form.Persona = f.Single()
	}
	s.dirty = true
}

func (s *session) setForm(f model.Form) {
	s.form = f
	s.dirty = true
}

// close flushes preferences, then saves the draft if it changed.
func (s *session) close() error {
	s.writer.Close()
	var err error
	if s.dirty {
		err = s.store.SaveDraft(s.cmd.Context(), s.form)
	}
	if cerr := s.store.Close(); err == nil {
		err = cerr
	}
	logger.Sync()
	return err
}

// withSession runs fn against an open session and always closes it.
func withSession(cmd *cobra.Command, fn func(s *session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); err == nil && cerr != nil {
			err = fmt.Errorf("save draft: %w", cerr)
		}
	}()
	return fn(s)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return slices.Clone(v)
}
