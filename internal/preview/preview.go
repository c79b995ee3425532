// Package preview renders a prompt form as a sectioned text document or as
// a JSON object.
package preview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/promptmate/internal/model"
)

// CoTInstruction is appended to text prompts with chain-of-thought enabled.
const CoTInstruction = "Explain your reasoning step by step before giving the final answer."

type payload struct {
	Persona      string           `json:"persona,omitempty"`
	Task         string           `json:"task,omitempty"`
	Goal         string           `json:"goal,omitempty"`
	Tone         []string         `json:"tone,omitempty"`
	OutputFormat []string         `json:"output_format,omitempty"`
	Advanced     *advancedPayload `json:"advanced,omitempty"`
}

type advancedPayload struct {
	RequiredPhrases       []string `json:"required_phrases,omitempty"`
	ForbiddenPhrases      []string `json:"forbidden_phrases,omitempty"`
	AdditionalConstraints string   `json:"additional_constraints,omitempty"`
	Examples              string   `json:"examples,omitempty"`
	CoT                   bool     `json:"cot,omitempty"`
}

// Build renders f as text, or as indented JSON when jsonMode is set.
func Build(f model.Form, jsonMode bool) (string, error) {
	if jsonMode {
		return buildJSON(f)
	}
	return buildText(f), nil
}

func buildJSON(f model.Form) (string, error) {
	p := payload{
		Persona:      strings.TrimSpace(f.Persona),
		Task:         strings.TrimSpace(f.Task),
		Goal:         strings.TrimSpace(f.Goal),
		Tone:         f.Tone,
		OutputFormat: f.Output,
	}
	if a := f.Advanced; !a.IsZero() {
		p.Advanced = &advancedPayload{
			RequiredPhrases:       a.RequiredPhrases,
			ForbiddenPhrases:      a.ForbiddenPhrases,
			AdditionalConstraints: strings.TrimSpace(a.AdditionalConstraints),
			Examples:              strings.TrimSpace(a.Examples),
			CoT:                   a.CoT,
		}
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return string(b), nil
}

func buildText(f model.Form) string {
	var sections []string
	add := func(title, body string) {
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}
		sections = append(sections, "=== "+title+" ===\n"+body)
	}

	add("Persona", f.Persona)
	add("Task", f.Task)
	add("Goal / Kontext", f.Goal)
	add("Tone", strings.Join(f.Tone, ", "))
	add("Output Format", strings.Join(f.Output, ", "))

	if a := f.Advanced; !a.IsZero() {
		var blocks []string
		if len(a.RequiredPhrases) > 0 {
			blocks = append(blocks, "Required phrases:\n"+bullets(a.RequiredPhrases))
		}
		if len(a.ForbiddenPhrases) > 0 {
			blocks = append(blocks, "Forbidden phrases:\n"+bullets(a.ForbiddenPhrases))
		}
		if s := strings.TrimSpace(a.AdditionalConstraints); s != "" {
			blocks = append(blocks, "Additional constraints:\n"+s)
		}
		if s := strings.TrimSpace(a.Examples); s != "" {
			blocks = append(blocks, "Examples:\n"+s)
		}
		if a.CoT {
			blocks = append(blocks, "Chain-of-Thought:\n"+CoTInstruction)
		}
		add("Advanced", strings.Join(blocks, "\n\n"))
	}

	return strings.Join(sections, "\n\n")
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "- " + it
	}
	return strings.Join(lines, "\n")
}
