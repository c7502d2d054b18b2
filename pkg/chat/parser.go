package chat

import (
	"regexp"
	"strconv"
	"strings"
)

var continuePhrases = []string{
	"continue", "next", "proceed", "go ahead", "yes", "ok", "okay",
	"sounds good", "let's go", "move on", "ready",
}

// IsContinue reports whether the utterance is a plain go-ahead.
func IsContinue(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.Trim(t, ".!")
	for _, phrase := range continuePhrases {
		if t == phrase {
			return true
		}
	}
	return false
}

var questionLeadRe = regexp.MustCompile(`(?i)^(what|why|how|when|where|who|which|can|could|would|should|is|are|do|does)\b`)

// IsQuestion reports whether the utterance reads as a question rather than
// an instruction to the workflow.
func IsQuestion(text string) bool {
	t := strings.TrimSpace(text)
	if strings.HasSuffix(t, "?") {
		return true
	}
	return questionLeadRe.MatchString(t)
}

var (
	selectVerbRe = regexp.MustCompile(`(?i)\b(select|choose|pick|use|take|keep)\b`)
	ordinalRe    = regexp.MustCompile(`\d+`)
	noneRe       = regexp.MustCompile(`(?i)\b(none|skip|no questions|nothing)\b`)
	allRe        = regexp.MustCompile(`(?i)\b(all|every|everything|both)\b`)
)

// ParseSelection extracts a question selection from an utterance like
// "I select questions 1 and 3", "all of them", or "none". Ordinals are
// 1-indexed positions into the presented question list.
func ParseSelection(text string) (Intent, bool) {
	intent := Intent{Kind: IntentSelect, Raw: text}

	hasVerb := selectVerbRe.MatchString(text)
	nums := ordinalRe.FindAllString(text, -1)

	if noneRe.MatchString(text) && len(nums) == 0 {
		intent.SelectNone = true
		return intent, true
	}
	if allRe.MatchString(text) && len(nums) == 0 {
		intent.SelectAll = true
		return intent, true
	}
	if len(nums) == 0 {
		return Intent{}, false
	}
	// Bare numbers only count as a selection when a verb frames them.
	if !hasVerb && !strings.Contains(strings.ToLower(text), "question") {
		return Intent{}, false
	}

	seen := make(map[int]struct{})
	for _, n := range nums {
		v, err := strconv.Atoi(n)
		if err != nil || v < 1 {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		intent.Ordinals = append(intent.Ordinals, v)
	}
	if len(intent.Ordinals) == 0 {
		return Intent{}, false
	}
	return intent, true
}

var projectFieldRe = regexp.MustCompile(`(?im)^\s*(title|description|area of study|area|field|geography|location|region)\s*[:\-]\s*(.+)$`)

// ParseProjectFields pulls labeled setup fields out of an utterance like
// "Title: Maternal health\nGeography: Kenya". Lines without a recognized
// label are ignored; an utterance with no labels at all parses to nothing.
func ParseProjectFields(text string) (ProjectFields, bool) {
	var fields ProjectFields
	for _, m := range projectFieldRe.FindAllStringSubmatch(text, -1) {
		label := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])
		if value == "" {
			continue
		}
		switch label {
		case "title":
			fields.Title = value
		case "description":
			fields.Description = value
		case "area of study", "area", "field":
			fields.AreaOfStudy = value
		case "geography", "location", "region":
			fields.Geography = value
		}
	}
	return fields, !fields.Empty()
}

// ParseMessage classifies an utterance with stage-independent rules, in
// priority order: explicit selections beat continues beat clarifying
// questions. Stage handlers narrow the result further.
func ParseMessage(text string) Intent {
	if fields, ok := ParseProjectFields(text); ok {
		return Intent{Kind: IntentProject, Project: fields, Raw: text}
	}
	if intent, ok := ParseSelection(text); ok {
		return intent
	}
	if IsContinue(text) {
		return Intent{Kind: IntentContinue, Raw: text}
	}
	if IsQuestion(text) {
		return Intent{Kind: IntentClarify, Question: strings.TrimSpace(text), Raw: text}
	}
	return Intent{Kind: IntentUnparsed, Raw: text}
}
