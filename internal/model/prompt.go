// Package model defines the core prompt builder data types.
package model

import (
	"strings"
	"time"
)

// Form is the state of the prompt form being edited.
type Form struct {
	Persona  string   `json:"persona,omitempty"`
	Task     string   `json:"task,omitempty"`
	Goal     string   `json:"goal,omitempty"`
	Tone     []string `json:"tone,omitempty"`
	Output   []string `json:"output,omitempty"`
	Advanced Advanced `json:"advanced,omitzero"`
}

// Advanced holds the optional, collapsed-by-default form fields.
type Advanced struct {
	RequiredPhrases       []string `json:"required_phrases,omitempty"`
	ForbiddenPhrases      []string `json:"forbidden_phrases,omitempty"`
	AdditionalConstraints string   `json:"additional_constraints,omitempty"`
	Examples              string   `json:"examples,omitempty"`
	CoT                   bool     `json:"cot,omitempty"`
}

// IsZero reports whether no advanced field carries content.
func (a Advanced) IsZero() bool {
	return len(a.RequiredPhrases) == 0 &&
		len(a.ForbiddenPhrases) == 0 &&
		strings.TrimSpace(a.AdditionalConstraints) == "" &&
		strings.TrimSpace(a.Examples) == "" &&
		!a.CoT
}

// SavedPrompt is a form snapshot stored for later reuse.
type SavedPrompt struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Form      Form       `json:"form"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// TitleMaxRunes is the length after which a saved prompt title is truncated.
const TitleMaxRunes = 50

// TitleFromTask derives a saved prompt title from its task text.
func TitleFromTask(task string) string {
	task = strings.TrimSpace(task)
	r := []rune(task)
	if len(r) > TitleMaxRunes {
		return string(r[:TitleMaxRunes]) + "…"
	}
	return task
}
