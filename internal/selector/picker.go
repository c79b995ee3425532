package selector

import "github.com/rcliao/promptmate/internal/filter"

// Picker drives a multi-select Store through a Dropdown the way a keyboard
// user does.
type Picker struct {
	Store    *Store
	Dropdown *Dropdown
}

// NewPicker wires a store to a fresh multi-select dropdown.
func NewPicker(s *Store) *Picker {
	return &Picker{Store: s, Dropdown: NewDropdown(false)}
}

// Items returns the current rows and re-syncs the cursor with them.
func (p *Picker) Items() []filter.Item {
	items := p.Store.Items(p.Dropdown.Query())
	p.Dropdown.Sync(len(items))
	return items
}

// Enter toggles the highlighted item. With nothing highlighted the query is
// submitted as free text and cleared.
func (p *Picker) Enter() (Result, error) {
	items := p.Items()
	if item, ok := p.Dropdown.Active(items); ok {
		res, err := p.Store.Toggle(item.Value)
		if err == nil {
			p.Dropdown.Commit()
		}
		return res, err
	}

	if p.Dropdown.Query() == "" {
		return Result{Selection: p.Store.Selection()}, nil
	}
	res, err := p.Store.AddCustomAndSelect(p.Dropdown.Query())
	if err != nil {
		return res, err
	}
	p.Dropdown.ClearQuery()
	p.Dropdown.Commit()
	return res, nil
}

// ClearAll empties the selection, the query and the highlight.
func (p *Picker) ClearAll() Result {
	p.Dropdown.ClearQuery()
	return p.Store.ClearAll()
}
