package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/promptmate/internal/catalog"
)

func TestDropdownTransitions(t *testing.T) {
	d := NewDropdown(false)
	assert.Equal(t, Closed, d.State())

	d.Focus()
	assert.Equal(t, Open, d.State())
	d.Escape()
	assert.Equal(t, Closed, d.State())

	d.Input("js")
	assert.Equal(t, Open, d.State())
	assert.Equal(t, "js", d.Query())

	d.Commit()
	assert.Equal(t, Open, d.State(), "multi-select stays open on commit")

	d.OutsideClick()
	assert.Equal(t, Closed, d.State())
	assert.Equal(t, "js", d.Query())

	d.Reset()
	assert.Equal(t, Closed, d.State())
	assert.Equal(t, "", d.Query())
}

func TestDropdownSingleClosesOnCommit(t *testing.T) {
	d := NewDropdown(true)
	d.Focus()
	d.Commit()
	assert.Equal(t, Closed, d.State())
}

func TestDropdownCursor(t *testing.T) {
	d := NewDropdown(false)
	d.Down(3)
	assert.Equal(t, Open, d.State())
	assert.Equal(t, 0, d.Cursor())

	d.Up(3)
	assert.Equal(t, 2, d.Cursor())
	d.Down(3)
	assert.Equal(t, 0, d.Cursor())

	d.Sync(0)
	assert.Equal(t, -1, d.Cursor())

	d.Escape()
	assert.Equal(t, -1, d.Cursor())
}

func TestPickerEnterTogglesHighlighted(t *testing.T) {
	p := NewPicker(New(catalog.Default(), State{}, nil, Options{}))
	p.Dropdown.Input("json")

	res, err := p.Enter()
	require.NoError(t, err)
	assert.Equal(t, []string{"Výstup v JSON"}, res.Selection)
	assert.Equal(t, Open, p.Dropdown.State())
}

func TestPickerEnterAddsCustomWhenNothingMatches(t *testing.T) {
	p := NewPicker(New(catalog.Default(), State{}, nil, Options{}))
	p.Dropdown.Input("Haiku")

	res, err := p.Enter()
	require.NoError(t, err)
	assert.Equal(t, []string{"Haiku"}, res.Selection)
	assert.Equal(t, "", p.Dropdown.Query())
	assert.True(t, p.Store.IsCustom("Haiku"))
}

func TestPickerNavigateAndEnter(t *testing.T) {
	p := NewPicker(New(catalog.Default(), State{Favorites: []string{"Timeline"}}, nil, Options{}))
	items := p.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "Timeline", items[0].Value)

	p.Dropdown.Down(len(items))
	p.Dropdown.Down(len(items))
	res, err := p.Enter()
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.DefaultCategories[0].Options[0]}, res.Selection)
}

func TestPickerEnterEmptyClosedQuery(t *testing.T) {
	p := NewPicker(New(catalog.Default(), State{}, nil, Options{}))

	res, err := p.Enter()
	require.NoError(t, err)
	assert.Empty(t, res.Selection)
}

func TestPickerClearAll(t *testing.T) {
	p := NewPicker(New(catalog.Default(), State{Selection: []string{"Timeline"}}, nil, Options{}))
	p.Dropdown.Input("time")

	res := p.ClearAll()
	assert.Empty(t, res.Selection)
	assert.Equal(t, "", p.Dropdown.Query())
}
