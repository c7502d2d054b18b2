package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		ok       bool
		ordinals []int
		all      bool
		none     bool
	}{
		{name: "verb with and", input: "I select questions 1 and 2", ok: true, ordinals: []int{1, 2}},
		{name: "single", input: "select question 3", ok: true, ordinals: []int{3}},
		{name: "comma list", input: "pick 1, 3, 4", ok: true, ordinals: []int{1, 3, 4}},
		{name: "keep duplicates once", input: "choose 2 and 2", ok: true, ordinals: []int{2}},
		{name: "all", input: "all of them please", ok: true, all: true},
		{name: "none", input: "none, skip this", ok: true, none: true},
		{name: "bare number no frame", input: "42", ok: false},
		{name: "question-framed number", input: "question 2 looks good", ok: true, ordinals: []int{2}},
		{name: "zero rejected", input: "select question 0", ok: false},
		{name: "free text", input: "tell me more about sampling", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, ok := ParseSelection(tt.input)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.ordinals, intent.Ordinals)
			assert.Equal(t, tt.all, intent.SelectAll)
			assert.Equal(t, tt.none, intent.SelectNone)
		})
	}
}

func TestParseProjectFields(t *testing.T) {
	input := `Title: Maternal health access
Description: Facility access and outcomes in rural counties
Area of Study: Public health
Geography: Kenya`

	fields, ok := ParseProjectFields(input)
	require.True(t, ok)
	assert.Equal(t, "Maternal health access", fields.Title)
	assert.Equal(t, "Facility access and outcomes in rural counties", fields.Description)
	assert.Equal(t, "Public health", fields.AreaOfStudy)
	assert.Equal(t, "Kenya", fields.Geography)
}

func TestParseProjectFieldsPartialAndAliases(t *testing.T) {
	fields, ok := ParseProjectFields("Location: Uganda\nField: epidemiology")
	require.True(t, ok)
	assert.Equal(t, "Uganda", fields.Geography)
	assert.Equal(t, "epidemiology", fields.AreaOfStudy)
	assert.Empty(t, fields.Title)

	_, ok = ParseProjectFields("just some prose without labels")
	assert.False(t, ok)
}

func TestIsContinue(t *testing.T) {
	assert.True(t, IsContinue("continue"))
	assert.True(t, IsContinue("  Proceed!  "))
	assert.True(t, IsContinue("sounds good"))
	assert.False(t, IsContinue("continue with question 2 only"))
	assert.False(t, IsContinue("no"))
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("What does analysis approach mean?"))
	assert.True(t, IsQuestion("why are sub-questions needed"))
	assert.False(t, IsQuestion("select question 1"))
}

func TestParseMessagePriority(t *testing.T) {
	assert.Equal(t, IntentProject, ParseMessage("Title: X\nGeography: Y").Kind)
	assert.Equal(t, IntentSelect, ParseMessage("I select questions 1 and 2").Kind)
	assert.Equal(t, IntentContinue, ParseMessage("continue").Kind)
	assert.Equal(t, IntentClarify, ParseMessage("what happens next?").Kind)
	assert.Equal(t, IntentUnparsed, ParseMessage("lorem ipsum dolor").Kind)
}
