package filter

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/promptmate/internal/catalog"
)

func groupIDs(v Visible) []string {
	var ids []string
	for _, g := range v.Groups {
		ids = append(ids, g.Category.ID)
	}
	return ids
}

func TestComputeVisibleNoSelection(t *testing.T) {
	cat := catalog.Default()
	v := ComputeVisible(cat, nil, nil, "")

	assert.Equal(t, "", v.Anchor)
	assert.Equal(t, []string{"structure", "marketing_comm", "technical_data", "creative_ideation", "advanced"}, groupIDs(v))
	assert.Empty(t, v.CustomMatches)

	total := 0
	for _, g := range v.Groups {
		total += len(g.Options)
	}
	assert.Equal(t, len(cat.AllOptions()), total)
}

func TestComputeVisibleTechnicalAnchor(t *testing.T) {
	cat := catalog.Default()
	v := ComputeVisible(cat, nil, []string{"Výstup v JSON"}, "")

	assert.Equal(t, "technical_data", v.Anchor)
	if diff := cmp.Diff([]string{"structure", "technical_data"}, groupIDs(v)); diff != "" {
		t.Errorf("visible groups mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeVisibleStructureAnchor(t *testing.T) {
	cat := catalog.Default()
	v := ComputeVisible(cat, nil, []string{"Storytelling", "Zoznam bodov (Bullet Points)"}, "")

	// First element governs, even though structure is selected second.
	assert.Equal(t, "creative_ideation", v.Anchor)
	assert.Equal(t, []string{"structure", "marketing_comm", "creative_ideation"}, groupIDs(v))
}

func TestComputeVisibleAnchorChangesWhenFirstRemoved(t *testing.T) {
	cat := catalog.Default()
	sel := []string{"Výstup v JSON", "Storytelling"}
	assert.Equal(t, "technical_data", ComputeVisible(cat, nil, sel, "").Anchor)

	sel = sel[1:]
	v := ComputeVisible(cat, nil, sel, "")
	assert.Equal(t, "creative_ideation", v.Anchor)
	assert.NotContains(t, groupIDs(v), "technical_data")
}

func TestComputeVisibleCompatibilityNeverLeaks(t *testing.T) {
	cat := catalog.Default()
	for _, anchor := range cat.Categories() {
		compat, err := cat.Compatibility(anchor.ID)
		require.NoError(t, err)

		v := ComputeVisible(cat, nil, []string{anchor.Options[0]}, "")
		for _, id := range groupIDs(v) {
			if id != anchor.ID && !slices.Contains(compat, id) {
				t.Errorf("anchor %s: incompatible category %s visible", anchor.ID, id)
			}
		}
	}
}

func TestComputeVisibleCustomAnchorShowsAll(t *testing.T) {
	cat := catalog.Default()
	custom := []string{"Haiku"}
	v := ComputeVisible(cat, custom, []string{"Haiku", "Výstup v JSON"}, "")

	assert.Equal(t, catalog.CustomID, v.Anchor)
	assert.Len(t, v.Groups, 5)
	assert.Equal(t, []string{"Haiku"}, v.CustomMatches)
}

func TestComputeVisibleSkipsUnresolvedSelection(t *testing.T) {
	cat := catalog.Default()
	v := ComputeVisible(cat, nil, []string{"orphan", "Výstup v JSON"}, "")
	assert.Equal(t, "technical_data", v.Anchor)

	v = ComputeVisible(cat, nil, []string{"orphan"}, "")
	assert.Equal(t, "", v.Anchor)
	assert.Len(t, v.Groups, 5)
}

func TestComputeVisibleQuery(t *testing.T) {
	cat := catalog.Default()

	v := ComputeVisible(cat, nil, nil, "  json ")
	require.Len(t, v.Groups, 1)
	assert.Equal(t, "technical_data", v.Groups[0].Category.ID)
	assert.Equal(t, []string{"Výstup v JSON"}, v.Groups[0].Options)

	v = ComputeVisible(cat, nil, nil, "no such format")
	assert.Empty(t, v.Groups)
}

func TestComputeVisibleCustomQueryOrder(t *testing.T) {
	cat := catalog.Default()
	custom := []string{"Zeta report", "Alpha", "Beta report"}

	v := ComputeVisible(cat, custom, []string{"Výstup v JSON"}, "REPORT")
	assert.Equal(t, []string{"Zeta report", "Beta report"}, v.CustomMatches)
	// KPI report lives in technical_data, which is the anchor.
	require.Len(t, v.Groups, 1)
	assert.Equal(t, []string{"KPI report"}, v.Groups[0].Options)
}

func TestFavoriteMatches(t *testing.T) {
	cat := catalog.Default()
	favs := []string{"deleted custom", "Timeline", "Haiku", "CSV export"}

	got := FavoriteMatches(cat, []string{"Haiku"}, favs, "")
	assert.Equal(t, []string{"Timeline", "Haiku", "CSV export"}, got)

	got = FavoriteMatches(cat, []string{"Haiku"}, favs, "csv")
	assert.Equal(t, []string{"CSV export"}, got)
}

func TestItemsAndCursor(t *testing.T) {
	cat := catalog.Default()
	v := ComputeVisible(cat, []string{"Haiku"}, nil, "t")
	items := Items([]string{"Timeline"}, v)

	require.NotEmpty(t, items)
	assert.Equal(t, Item{Source: SourceFavorite, Value: "Timeline"}, items[0])
	assert.Equal(t, SourceCatalog, items[len(items)-1].Source)

	c := NewCursor()
	_, ok := c.Active(items)
	assert.False(t, ok)

	c.Up(len(items))
	assert.Equal(t, len(items)-1, c.Index)
	c.Down(len(items))
	assert.Equal(t, 0, c.Index)
	c.Up(len(items))
	assert.Equal(t, len(items)-1, c.Index)

	c.Reset()
	c.Down(len(items))
	assert.Equal(t, 0, c.Index)
	got, ok := c.Active(items)
	require.True(t, ok)
	assert.Equal(t, "Timeline", got.Value)
}

func TestCursorClamp(t *testing.T) {
	c := Cursor{Index: 7}
	c.Clamp(3)
	assert.Equal(t, 0, c.Index)

	c.Clamp(0)
	assert.Equal(t, -1, c.Index)

	c.Down(0)
	assert.Equal(t, -1, c.Index)

	c = Cursor{Index: 1}
	c.Clamp(3)
	assert.Equal(t, 1, c.Index)
}

func TestCache(t *testing.T) {
	cat := catalog.Default()
	c, err := NewCache(cat, 2)
	require.NoError(t, err)

	a := c.Visible(nil, []string{"Výstup v JSON"}, "json")
	b := c.Visible(nil, []string{"Výstup v JSON"}, " JSON ")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, c.Len())

	if diff := cmp.Diff(ComputeVisible(cat, nil, []string{"Výstup v JSON"}, "json"), a); diff != "" {
		t.Errorf("cached result differs (-want +got):\n%s", diff)
	}

	c.Visible([]string{"x"}, nil, "")
	c.Visible([]string{"y"}, nil, "")
	assert.Equal(t, 2, c.Len())
}
