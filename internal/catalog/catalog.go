// Package catalog holds the immutable output-format taxonomy.
package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// CustomID is the category id assigned to user-defined options. It is
// compatible with every category.
const CustomID = "custom"

// CustomLabel is the display label of the custom category.
const CustomLabel = "Vlastné formáty"

var (
	// ErrNotFound is returned when a category id is not in the catalog.
	ErrNotFound = errors.New("category not found")
	// ErrInvalid is returned when catalog data violates an invariant.
	ErrInvalid = errors.New("invalid catalog")
)

// Category is a named group of output-format option labels.
type Category struct {
	ID             string   `json:"id" yaml:"id"`
	Label          string   `json:"label" yaml:"label"`
	Options        []string `json:"options" yaml:"options"`
	CompatibleWith []string `json:"compatible_with,omitempty" yaml:"compatible_with"`
}

// OptionRecord describes one selectable option and the category it belongs to.
type OptionRecord struct {
	Value         string `json:"value"`
	CategoryID    string `json:"category_id"`
	CategoryLabel string `json:"category_label"`
}

// Catalog is a validated, read-only list of categories. The zero value is an
// empty catalog.
type Catalog struct {
	categories []Category
	byValue    map[string]OptionRecord
	byID       map[string]int
}

// New validates categories and builds a Catalog. The input is copied.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		byValue: map[string]OptionRecord{},
		byID:    map[string]int{},
	}

	for i, cat := range categories {
		if cat.ID == "" {
			return nil, fmt.Errorf("%w: category %d has no id", ErrInvalid, i)
		}
		if cat.ID == CustomID {
			return nil, fmt.Errorf("%w: category id %q is reserved", ErrInvalid, CustomID)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", ErrInvalid, cat.ID)
		}
		if slices.Contains(cat.CompatibleWith, cat.ID) {
			return nil, fmt.Errorf("%w: category %q lists itself as compatible", ErrInvalid, cat.ID)
		}
		c.byID[cat.ID] = i

		for _, opt := range cat.Options {
			if opt == "" {
				return nil, fmt.Errorf("%w: empty option in category %q", ErrInvalid, cat.ID)
			}
			if prev, dup := c.byValue[opt]; dup {
				return nil, fmt.Errorf("%w: option %q defined in both %q and %q",
					ErrInvalid, opt, prev.CategoryID, cat.ID)
			}
			c.byValue[opt] = OptionRecord{Value: opt, CategoryID: cat.ID, CategoryLabel: cat.Label}
		}

		c.categories = append(c.categories, Category{
			ID:             cat.ID,
			Label:          cat.Label,
			Options:        slices.Clone(cat.Options),
			CompatibleWith: slices.Clone(cat.CompatibleWith),
		})
	}

	// Compatibility references are checked once every id is known.
	for _, cat := range c.categories {
		for _, ref := range cat.CompatibleWith {
			if _, ok := c.byID[ref]; !ok {
				return nil, fmt.Errorf("%w: category %q references unknown category %q", ErrInvalid, cat.ID, ref)
			}
		}
	}

	return c, nil
}

// MustNew is like New but panics on invalid data. Used for built-in data.
func MustNew(categories []Category) *Catalog {
	c, err := New(categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Categories returns the categories in declaration order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{
			ID:             cat.ID,
			Label:          cat.Label,
			Options:        slices.Clone(cat.Options),
			CompatibleWith: slices.Clone(cat.CompatibleWith),
		}
	}
	return out
}

// AllOptions flattens every category's options in declaration order.
func (c *Catalog) AllOptions() []OptionRecord {
	if c == nil {
		return nil
	}
	var out []OptionRecord
	for _, cat := range c.categories {
		for _, opt := range cat.Options {
			out = append(out, c.byValue[opt])
		}
	}
	return out
}

// Lookup resolves a catalog option label.
func (c *Catalog) Lookup(value string) (OptionRecord, bool) {
	if c == nil {
		return OptionRecord{}, false
	}
	rec, ok := c.byValue[value]
	return rec, ok
}

// Compatibility returns the categories declared compatible with id. The
// relation is not symmetric: only id's own declaration is consulted.
func (c *Catalog) Compatibility(id string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slices.Clone(c.categories[i].CompatibleWith), nil
}

// Category returns a single category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	if c == nil {
		return Category{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Resolve looks value up in the catalog first, then in custom. Custom
// entries resolve to the custom category.
func (c *Catalog) Resolve(value string, custom []string) (OptionRecord, bool) {
	if rec, ok := c.Lookup(value); ok {
		return rec, true
	}
	if slices.Contains(custom, value) {
		return OptionRecord{Value: value, CategoryID: CustomID, CategoryLabel: CustomLabel}, true
	}
	return OptionRecord{}, false
}
