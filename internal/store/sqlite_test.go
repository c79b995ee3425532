package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/promptmate/internal/model"
	"github.com/rcliao/promptmate/internal/prefs"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// SQLiteStore is the durable KV behind preferences.
var _ prefs.KV = (*SQLiteStore)(nil)

func TestPrefs(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.GetPref(ctx, "custom_outputs")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.SetPref(ctx, "custom_outputs", `["a"]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetPref(ctx, "custom_outputs", `["a","b"]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := s.GetPref(ctx, "custom_outputs")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `["a","b"]` {
		t.Errorf("expected latest value, got %q", got)
	}
}

func TestPrefsThroughLoadList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	w := prefs.NewWriter(s, nil)
	w.Put(prefs.KeyCustomOutputs, []string{"Haiku", "Limerick"})
	w.Close()

	got := prefs.LoadList(ctx, s, prefs.KeyCustomOutputs, nil)
	if len(got) != 2 || got[0] != "Haiku" || got[1] != "Limerick" {
		t.Errorf("unexpected list %v", got)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if f := s.LoadDraft(ctx); f.Task != "" || len(f.Output) != 0 {
		t.Errorf("expected empty draft, got %+v", f)
	}

	in := model.Form{
		Persona: "HR špecialista",
		Task:    "Write a job ad",
		Tone:    []string{"Priateľský"},
		Output:  []string{"Výstup v JSON", "Haiku"},
		Advanced: model.Advanced{
			RequiredPhrases: []string{"remote"},
			CoT:             true,
		},
	}
	if err := s.SaveDraft(ctx, in); err != nil {
		t.Fatalf("save draft: %v", err)
	}

	out := s.LoadDraft(ctx)
	if out.Persona != in.Persona || out.Task != in.Task {
		t.Errorf("draft mismatch: %+v", out)
	}
	if len(out.Output) != 2 || out.Output[1] != "Haiku" {
		t.Errorf("output not persisted: %v", out.Output)
	}
	if !out.Advanced.CoT || len(out.Advanced.RequiredPhrases) != 1 {
		t.Errorf("advanced not persisted: %+v", out.Advanced)
	}
}

func TestMalformedDraftDefaultsToEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SetPref(ctx, DraftKey, "{broken")
	if f := s.LoadDraft(ctx); f.Task != "" {
		t.Errorf("expected empty draft, got %+v", f)
	}
}

func TestSaveAndGetPrompt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sp, err := s.SavePrompt(ctx, SaveParams{Form: model.Form{
		Task:   "Napíš email klientovi s pripomenutím nezaplatenej faktúry do piatku.",
		Output: []string{"Emailová štruktúra a obsah"},
	}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if sp.ID == "" {
		t.Error("expected non-empty ID")
	}
	if len([]rune(sp.Title)) != model.TitleMaxRunes+1 {
		t.Errorf("expected truncated title, got %q", sp.Title)
	}

	got, err := s.GetPrompt(ctx, sp.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Form.Output[0] != "Emailová štruktúra a obsah" {
		t.Errorf("unexpected form %+v", got.Form)
	}
	if !got.CreatedAt.Equal(sp.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", got.CreatedAt, sp.CreatedAt)
	}
}

func TestSavePromptRequiresTask(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.SavePrompt(ctx, SaveParams{Form: model.Form{Persona: "x", Task: "  "}})
	if !errors.Is(err, ErrTaskRequired) {
		t.Fatalf("expected ErrTaskRequired, got %v", err)
	}
}

func TestListPromptsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "a"}})
	b, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "b"}})
	c, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "c"}})

	list, err := s.ListPrompts(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}
	if list[0].ID != c.ID || list[1].ID != b.ID || list[2].ID != a.ID {
		t.Errorf("unexpected order: %s %s %s", list[0].Title, list[1].Title, list[2].Title)
	}

	limited, _ := s.ListPrompts(ctx, ListParams{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("expected 2 with limit, got %d", len(limited))
	}
}

func TestSoftDeletePrompt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sp, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "data"}})
	if err := s.DeletePrompt(ctx, RmParams{ID: sp.ID}); err != nil {
		t.Fatalf("rm: %v", err)
	}

	_, err := s.GetPrompt(ctx, sp.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after soft delete, got %v", err)
	}

	if err := s.DeletePrompt(ctx, RmParams{ID: sp.ID}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	st, _ := s.Stats(ctx, "")
	if st.TotalPrompts != 1 || st.ActivePrompts != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestHardDeletePrompt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	sp, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "data"}})
	if err := s.DeletePrompt(ctx, RmParams{ID: sp.ID, Hard: true}); err != nil {
		t.Fatalf("rm hard: %v", err)
	}

	st, _ := s.Stats(ctx, "")
	if st.TotalPrompts != 0 {
		t.Errorf("expected row to be gone, got %d", st.TotalPrompts)
	}
}

func TestSearchPrompts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "Report", Output: []string{"Výstup v JSON"}}})
	s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "Email", Persona: "Senior copywriter"}})
	s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "Ďalšia úloha"}})

	res, err := s.SearchPrompts(ctx, SearchParams{Query: "VÝSTUP"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res) != 1 || res[0].Title != "Report" {
		t.Errorf("expected Report, got %+v", res)
	}

	res, _ = s.SearchPrompts(ctx, SearchParams{Query: "ďalšia"})
	if len(res) != 1 {
		t.Errorf("expected non-ASCII case folding match, got %d", len(res))
	}

	res, _ = s.SearchPrompts(ctx, SearchParams{Query: "", Limit: 2})
	if len(res) != 2 {
		t.Errorf("expected limit 2, got %d", len(res))
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)

	src.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "one"}})
	src.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "two", Tone: []string{"Formálny"}}})

	exported, err := src.ExportPrompts(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 2 || exported[0].Title != "one" {
		t.Fatalf("unexpected export %+v", exported)
	}

	dst := newTestStore(t)
	n, err := dst.ImportPrompts(ctx, exported)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	// Re-importing skips existing ids.
	n, _ = dst.ImportPrompts(ctx, exported)
	if n != 0 {
		t.Errorf("expected 0 on re-import, got %d", n)
	}

	got, err := dst.GetPrompt(ctx, exported[1].ID)
	if err != nil {
		t.Fatalf("get imported: %v", err)
	}
	if got.Form.Tone[0] != "Formálny" {
		t.Errorf("form not preserved: %+v", got.Form)
	}
}

func TestImportReportsLookupFailure(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if _, err := s.db.ExecContext(ctx, `DROP TABLE prompts`); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	n, err := s.ImportPrompts(ctx, []model.SavedPrompt{{ID: "01A", Form: model.Form{Task: "one"}}})
	if err == nil {
		t.Fatal("expected error when the prompts table is missing")
	}
	if !strings.Contains(err.Error(), "check prompt 01A") {
		t.Errorf("expected lookup error, got %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 imported, got %d", n)
	}
}

func TestExportSkipsDeleted(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	keep, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "keep"}})
	gone, _ := s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "gone"}})
	if err := s.DeletePrompt(ctx, RmParams{ID: gone.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	exported, err := s.ExportPrompts(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(exported) != 1 || exported[0].ID != keep.ID {
		t.Errorf("expected only %s, got %+v", keep.ID, exported)
	}
}

func TestImportAssignsMissingFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.ImportPrompts(ctx, []model.SavedPrompt{{Form: model.Form{Task: "no id"}}})
	if err != nil || n != 1 {
		t.Fatalf("import: n=%d err=%v", n, err)
	}
	list, _ := s.ListPrompts(ctx, ListParams{})
	if len(list) != 1 || list[0].ID == "" || list[0].Title != "no id" {
		t.Errorf("unexpected %+v", list)
	}

	_, err = s.ImportPrompts(ctx, []model.SavedPrompt{{Form: model.Form{}}})
	if !errors.Is(err, ErrTaskRequired) {
		t.Errorf("expected ErrTaskRequired, got %v", err)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stats.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer s.Close()

	s.SetPref(ctx, "favorites.outputs", `["Výstup v JSON"]`)
	s.SavePrompt(ctx, SaveParams{Form: model.Form{Task: "x"}})

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.DBPath != dbPath {
		t.Errorf("expected db path %s, got %s", dbPath, st.DBPath)
	}
	if st.ActivePrompts != 1 {
		t.Errorf("expected 1 active prompt, got %d", st.ActivePrompts)
	}
	if len(st.Prefs) != 1 || st.Prefs[0].Key != "favorites.outputs" || st.Prefs[0].Bytes != len(`["Výstup v JSON"]`) {
		t.Errorf("unexpected prefs %+v", st.Prefs)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
