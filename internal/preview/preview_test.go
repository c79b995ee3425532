package preview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/promptmate/internal/model"
)

func TestBuildTextEmpty(t *testing.T) {
	got, err := Build(model.Form{}, false)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestBuildTextSections(t *testing.T) {
	f := model.Form{
		Persona: "Senior copywriter",
		Task:    "Write a reminder email",
		Tone:    []string{"Formálny", "Priateľský"},
		Output:  []string{"Emailová štruktúra a obsah", "Výstup v JSON"},
	}
	got, err := Build(f, false)
	require.NoError(t, err)

	want := "=== Persona ===\nSenior copywriter\n\n" +
		"=== Task ===\nWrite a reminder email\n\n" +
		"=== Tone ===\nFormálny, Priateľský\n\n" +
		"=== Output Format ===\nEmailová štruktúra a obsah, Výstup v JSON"
	assert.Equal(t, want, got)
}

func TestBuildTextAdvanced(t *testing.T) {
	f := model.Form{
		Task: "t",
		Advanced: model.Advanced{
			RequiredPhrases:  []string{"invoice", "Friday"},
			ForbiddenPhrases: []string{"urgent"},
			Examples:         "  see attached  ",
			CoT:              true,
		},
	}
	got, err := Build(f, false)
	require.NoError(t, err)

	want := "=== Task ===\nt\n\n" +
		"=== Advanced ===\n" +
		"Required phrases:\n- invoice\n- Friday\n\n" +
		"Forbidden phrases:\n- urgent\n\n" +
		"Examples:\nsee attached\n\n" +
		"Chain-of-Thought:\n" + CoTInstruction
	assert.Equal(t, want, got)
}

func TestBuildJSON(t *testing.T) {
	f := model.Form{
		Task:   "t",
		Goal:   "g",
		Output: []string{"Výstup v JSON"},
		Advanced: model.Advanced{
			AdditionalConstraints: "no emoji",
			CoT:                   true,
		},
	}
	got, err := Build(f, true)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "t", decoded["task"])
	assert.Equal(t, []any{"Výstup v JSON"}, decoded["output_format"])
	assert.NotContains(t, decoded, "persona")
	assert.NotContains(t, decoded, "tone")

	adv := decoded["advanced"].(map[string]any)
	assert.Equal(t, "no emoji", adv["additional_constraints"])
	assert.Equal(t, true, adv["cot"])
	assert.NotContains(t, adv, "examples")
}

func TestBuildJSONOmitsEmptyAdvanced(t *testing.T) {
	got, err := Build(model.Form{Task: "t"}, true)
	require.NoError(t, err)
	assert.JSONEq(t, `{"task":"t"}`, got)
}
