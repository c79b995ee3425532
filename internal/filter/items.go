package filter

// Source tells which dropdown section an item belongs to.
type Source string

const (
	SourceFavorite Source = "favorite"
	SourceCustom   Source = "custom"
	SourceCatalog  Source = "catalog"
)

// Item is one row of the flattened dropdown.
type Item struct {
	Source     Source `json:"source"`
	Value      string `json:"value"`
	CategoryID string `json:"category_id,omitempty"`
}

// Items flattens favorites, custom matches and catalog groups into a single
// indexed sequence for keyboard navigation.
func Items(favorites []string, v Visible) []Item {
	var items []Item
	for _, f := range favorites {
		items = append(items, Item{Source: SourceFavorite, Value: f})
	}
	for _, c := range v.CustomMatches {
		items = append(items, Item{Source: SourceCustom, Value: c})
	}
	for _, g := range v.Groups {
		for _, opt := range g.Options {
			items = append(items, Item{Source: SourceCatalog, Value: opt, CategoryID: g.Category.ID})
		}
	}
	return items
}

// Cursor is a highlighted position in a list of n items. -1 means nothing is
// highlighted. Movement wraps at both ends.
type Cursor struct {
	Index int
}

// NewCursor returns a cursor with nothing highlighted.
func NewCursor() Cursor {
	return Cursor{Index: -1}
}

// Down moves to the next item, wrapping to the first.
func (c *Cursor) Down(n int) {
	if n <= 0 {
		c.Index = -1
		return
	}
	if c.Index < 0 || c.Index+1 >= n {
		c.Index = 0
		return
	}
	c.Index++
}

// Up moves to the previous item, wrapping to the last.
func (c *Cursor) Up(n int) {
	if n <= 0 {
		c.Index = -1
		return
	}
	if c.Index <= 0 {
		c.Index = n - 1
		return
	}
	c.Index--
}

// Clamp keeps the cursor valid after the list changed to n items. An open
// dropdown with items always has one highlighted.
func (c *Cursor) Clamp(n int) {
	switch {
	case n <= 0:
		c.Index = -1
	case c.Index < 0 || c.Index >= n:
		c.Index = 0
	}
}

// Reset clears the highlight.
func (c *Cursor) Reset() {
	c.Index = -1
}

// Active returns the highlighted item, if any.
func (c Cursor) Active(items []Item) (Item, bool) {
	if c.Index < 0 || c.Index >= len(items) {
		return Item{}, false
	}
	return items[c.Index], true
}
