package selector

import (
	"github.com/rcliao/promptmate/internal/filter"
)

// DropdownState is the visibility state of a selector's suggestion list.
type DropdownState int

const (
	Closed DropdownState = iota
	Open
)

func (s DropdownState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Dropdown tracks open/closed state, the query buffer and the keyboard
// cursor. Single selectors close on commit; multi selectors stay open.
type Dropdown struct {
	Single bool

	state  DropdownState
	query  string
	cursor filter.Cursor
}

// NewDropdown returns a closed dropdown with an empty query.
func NewDropdown(single bool) *Dropdown {
	return &Dropdown{Single: single, cursor: filter.NewCursor()}
}

func (d *Dropdown) State() DropdownState { return d.state }
func (d *Dropdown) Query() string        { return d.query }
func (d *Dropdown) Cursor() int          { return d.cursor.Index }

// Focus opens the dropdown.
func (d *Dropdown) Focus() { d.state = Open }

// Input replaces the query buffer and opens the dropdown.
func (d *Dropdown) Input(text string) {
	d.query = text
	d.state = Open
}

// ClearQuery empties the query buffer and drops the highlight.
func (d *Dropdown) ClearQuery() {
	d.query = ""
	d.cursor.Reset()
}

// Escape closes the dropdown.
func (d *Dropdown) Escape() { d.close() }

// OutsideClick closes the dropdown.
func (d *Dropdown) OutsideClick() { d.close() }

// Commit records that a choice was made.
func (d *Dropdown) Commit() {
	if d.Single {
		d.close()
		return
	}
	d.state = Open
}

// Reset returns to Closed with an empty query, as when the host form is
// cleared.
func (d *Dropdown) Reset() {
	d.query = ""
	d.close()
}

// Down highlights the next of n items, opening the dropdown if needed.
func (d *Dropdown) Down(n int) {
	d.state = Open
	d.cursor.Down(n)
}

// Up highlights the previous of n items, opening the dropdown if needed.
func (d *Dropdown) Up(n int) {
	d.state = Open
	d.cursor.Up(n)
}

// Sync keeps the cursor consistent with a list of n items.
func (d *Dropdown) Sync(n int) {
	if d.state == Closed {
		d.cursor.Reset()
		return
	}
	d.cursor.Clamp(n)
}

// Active returns the highlighted item while the dropdown is open.
func (d *Dropdown) Active(items []filter.Item) (filter.Item, bool) {
	if d.state != Open {
		return filter.Item{}, false
	}
	return d.cursor.Active(items)
}

func (d *Dropdown) close() {
	d.state = Closed
	d.cursor.Reset()
}
