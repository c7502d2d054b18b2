package chat

// IntentKind classifies what a user utterance is asking the dialog to do.
type IntentKind string

const (
	// IntentContinue advances the dialog to its next stage.
	IntentContinue IntentKind = "continue"
	// IntentSelect picks questions by ordinal, or all, or none.
	IntentSelect IntentKind = "select"
	// IntentProject supplies project setup fields.
	IntentProject IntentKind = "project"
	// IntentClarify asks a question without advancing the dialog.
	IntentClarify IntentKind = "clarify"
	// IntentUnparsed is anything the stage parser could not place.
	IntentUnparsed IntentKind = "unparsed"
)

// ProjectFields holds whichever setup fields an utterance supplied. Empty
// strings mean the field was not mentioned.
type ProjectFields struct {
	Title       string
	Description string
	AreaOfStudy string
	Geography   string
}

// Empty reports whether no field was supplied at all.
func (p ProjectFields) Empty() bool {
	return p.Title == "" && p.Description == "" && p.AreaOfStudy == "" && p.Geography == ""
}

// Intent is the parsed form of one user utterance.
type Intent struct {
	Kind       IntentKind
	Ordinals   []int // 1-indexed question positions, for IntentSelect
	SelectAll  bool
	SelectNone bool
	Project    ProjectFields
	Question   string // the clarification text, for IntentClarify
	Raw        string
}
