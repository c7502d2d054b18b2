package questiongen

import (
	"regexp"
	"strings"
)

// QuestionOutline is the parsed outcome of a question-generation call.
type QuestionOutline struct {
	MainQuestions []MainQuestionOutline
}

// MainQuestionOutline is a single main question with its sub-questions.
type MainQuestionOutline struct {
	Text         string
	SubQuestions []string
}

// Mapping holds the analysis produced for one sub-question.
type Mapping struct {
	SubQuestion      string
	DataRequirements string
	AnalysisApproach string
}

// Gap is one missing data variable identified for a sub-question.
type Gap struct {
	MissingVariable  string
	GapDescription   string
	SuggestedSources string
}

var mainQuestionRe = regexp.MustCompile(`(?i)^MAIN QUESTION\s*\d*\s*:\s*(.*)$`)

// ParseQuestionOutline parses the plain-text question format produced by
// the generation prompt. Unknown lines between sections are tolerated.
func ParseQuestionOutline(text string) QuestionOutline {
	var outline QuestionOutline
	var current *MainQuestionOutline
	inSubs := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := mainQuestionRe.FindStringSubmatch(line); m != nil {
			outline.MainQuestions = append(outline.MainQuestions, MainQuestionOutline{Text: strings.TrimSpace(m[1])})
			current = &outline.MainQuestions[len(outline.MainQuestions)-1]
			inSubs = false
			continue
		}
		if strings.EqualFold(line, "SUB-QUESTIONS:") || strings.EqualFold(line, "SUBQUESTIONS:") {
			inSubs = true
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			sub := strings.TrimSpace(strings.TrimLeft(line, "-* "))
			if sub != "" && inSubs {
				current.SubQuestions = append(current.SubQuestions, sub)
			}
			continue
		}
		// A main question spilled onto the line after its header.
		if !inSubs && current.Text == "" {
			current.Text = line
		}
	}

	// Drop headers that never received question text.
	kept := outline.MainQuestions[:0]
	for _, mq := range outline.MainQuestions {
		if strings.TrimSpace(mq.Text) != "" {
			kept = append(kept, mq)
		}
	}
	outline.MainQuestions = kept
	return outline
}

var (
	subQuestionHeaderRe = regexp.MustCompile(`(?i)SUB-QUESTION\s*:[ \t]*`)
	mappingSectionRe    = regexp.MustCompile(`(?i)^(DATA REQUIREMENTS|ANALYSIS APPROACH)\s*:`)
	dataReqRe           = regexp.MustCompile(`(?is)DATA REQUIREMENTS\s*:\s*(.*?)(?:ANALYSIS APPROACH\s*:|$)`)
	analysisRe          = regexp.MustCompile(`(?is)ANALYSIS APPROACH\s*:\s*(.*)$`)
)

// firstLine returns the trimmed text before the first newline; an empty
// string when that text is itself one of the section headers in headerRe.
// Models regularly leave the echo after a header blank, which must not
// swallow the following header line.
func firstLine(block string, headerRe *regexp.Regexp) string {
	line := block
	if idx := strings.Index(block, "\n"); idx >= 0 {
		line = block[:idx]
	}
	line = strings.TrimSpace(line)
	if headerRe.MatchString(line) {
		return ""
	}
	return line
}

// ParseMappings parses one or more SUB-QUESTION blocks out of a model
// response. Blocks missing both sections are dropped.
func ParseMappings(text string) []Mapping {
	parts := subQuestionHeaderRe.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}

	var mappings []Mapping
	for _, block := range parts[1:] {
		var m Mapping
		m.SubQuestion = firstLine(block, mappingSectionRe)
		if dm := dataReqRe.FindStringSubmatch(block); dm != nil {
			m.DataRequirements = strings.TrimSpace(dm[1])
		}
		if am := analysisRe.FindStringSubmatch(block); am != nil {
			m.AnalysisApproach = strings.TrimSpace(am[1])
		}
		if m.DataRequirements == "" && m.AnalysisApproach == "" {
			continue
		}
		mappings = append(mappings, m)
	}
	return mappings
}

var (
	gapVariableRe = regexp.MustCompile(`(?i)MISSING VARIABLE\s*:[ \t]*`)
	gapSectionRe  = regexp.MustCompile(`(?i)^(GAP DESCRIPTION|SUGGESTED SOURCES)\s*:`)
)

// ParseGaps parses the MISSING VARIABLE blocks of a gap-analysis response.
func ParseGaps(text string) []Gap {
	parts := gapVariableRe.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}

	descRe := regexp.MustCompile(`(?is)GAP DESCRIPTION\s*:\s*(.*?)(?:SUGGESTED SOURCES\s*:|$)`)
	srcRe := regexp.MustCompile(`(?is)SUGGESTED SOURCES\s*:\s*(.*)$`)

	var gaps []Gap
	for _, block := range parts[1:] {
		var g Gap
		g.MissingVariable = firstLine(block, gapSectionRe)
		if dm := descRe.FindStringSubmatch(block); dm != nil {
			g.GapDescription = strings.TrimSpace(dm[1])
		}
		if sm := srcRe.FindStringSubmatch(block); sm != nil {
			g.SuggestedSources = strings.TrimSpace(sm[1])
		}
		if g.MissingVariable == "" {
			continue
		}
		gaps = append(gaps, g)
	}
	return gaps
}
