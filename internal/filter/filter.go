// Package filter computes which output-format options are visible for a
// given selection and query. Everything here is pure.
package filter

import (
	"slices"
	"strings"

	"github.com/rcliao/promptmate/internal/catalog"
)

// Group is a visible category together with its matching options.
type Group struct {
	Category catalog.Category `json:"category"`
	Options  []string         `json:"options"`
}

// Visible is the result of ComputeVisible.
type Visible struct {
	Anchor        string   `json:"anchor,omitempty"`
	CustomMatches []string `json:"custom_matches"`
	Groups        []Group  `json:"groups"`
}

// Normalize trims and case-folds a query or option label for matching.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether label contains the already normalized query.
func Matches(label, normQuery string) bool {
	if normQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(label), normQuery)
}

// Anchor returns the category id of the first selected value that resolves,
// catalog.CustomID when that value is a custom option, or "" when nothing in
// selection resolves.
func Anchor(cat *catalog.Catalog, custom, selection []string) string {
	for _, v := range selection {
		if rec, ok := cat.Resolve(v, custom); ok {
			return rec.CategoryID
		}
	}
	return ""
}

// ComputeVisible returns the custom options and catalog groups that match
// query and are compatible with the anchor category of selection.
func ComputeVisible(cat *catalog.Catalog, custom, selection []string, query string) Visible {
	q := Normalize(query)
	anchor := Anchor(cat, custom, selection)

	out := Visible{
		Anchor:        anchor,
		CustomMatches: []string{},
		Groups:        []Group{},
	}

	for _, opt := range custom {
		if Matches(opt, q) {
			out.CustomMatches = append(out.CustomMatches, opt)
		}
	}

	var allowed []string
	restrict := false
	if anchor != "" && anchor != catalog.CustomID {
		// Only the anchor's own declaration counts; the relation is not symmetric.
		if compat, err := cat.Compatibility(anchor); err == nil {
			allowed = append(compat, anchor)
			restrict = true
		}
	}

	for _, c := range cat.Categories() {
		if restrict && !slices.Contains(allowed, c.ID) {
			continue
		}
		var opts []string
		for _, opt := range c.Options {
			if Matches(opt, q) {
				opts = append(opts, opt)
			}
		}
		if len(opts) == 0 {
			continue
		}
		out.Groups = append(out.Groups, Group{Category: c, Options: opts})
	}

	return out
}

// FavoriteMatches returns the favorites that still resolve to a catalog or
// custom option and match query, in favorites order. Stale favorites are
// skipped but left in the caller's set.
func FavoriteMatches(cat *catalog.Catalog, custom, favorites []string, query string) []string {
	q := Normalize(query)
	out := []string{}
	for _, f := range favorites {
		if _, ok := cat.Resolve(f, custom); !ok {
			continue
		}
		if Matches(f, q) {
			out = append(out, f)
		}
	}
	return out
}
