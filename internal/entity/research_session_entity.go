package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProjectInfo holds the project metadata a research session is built around.
type ProjectInfo struct {
	Title       string
	Description string
	AreaOfStudy string
	Geography   string
}

// ResearchQuestion is either a main question or a sub-question. Sub-questions
// carry the id of the main question they belong to; main questions never do.
type ResearchQuestion struct {
	Id               uuid.UUID
	Text             string
	QuestionType     string // constant.QuestionTypeMain | constant.QuestionTypeSub
	ParentQuestionId *uuid.UUID
	IsCustom         bool
}

// SubQuestionMapping is the data-requirements record produced by analyzing a
// single sub-question. At most one per sub-question; re-analysis overwrites.
type SubQuestionMapping struct {
	SubQuestionId    uuid.UUID
	SubQuestion      string
	DataRequirements string
	AnalysisApproach string
	CreatedAt        time.Time
}

// DataGap names a missing variable derived from a sub-question's mapping.
// The whole collection is regenerated when gap identification re-runs.
type DataGap struct {
	Id               uuid.UUID
	MissingVariable  string
	GapDescription   string
	SuggestedSources string
	SubQuestionId    uuid.UUID
}

// LiteratureResult is one ranked paper attached to a sub-question.
type LiteratureResult struct {
	Id            uuid.UUID
	Title         string
	Authors       []string
	Abstract      string
	Year          int
	Venue         string
	URL           string
	Relevance     float64 // [0,1]
	Source        string
	Citations     int
	SubQuestionId uuid.UUID
}

// Selection is the tri-state selection record: Made=false means no selection
// was ever attempted (scope defaults to all sub-questions), Made=true with an
// empty id list means the user deliberately selected none.
type Selection struct {
	Made bool
	IDs  []uuid.UUID
}

// Contains reports whether id is part of the selection.
func (s Selection) Contains(id uuid.UUID) bool {
	for _, sid := range s.IDs {
		if sid == id {
			return true
		}
	}
	return false
}

// ResearchSession is the single logical document the whole workflow mutates.
// It is owned by the session store; every mutation goes through store.Mutate.
type ResearchSession struct {
	Id                uuid.UUID
	Project           ProjectInfo
	MainQuestions     []ResearchQuestion
	SubQuestions      []ResearchQuestion
	Selection         Selection
	QuestionsFiltered bool
	Mappings          map[uuid.UUID]SubQuestionMapping
	DataGaps          []DataGap
	Literature        map[uuid.UUID][]LiteratureResult
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

// NewResearchSession builds an empty session with a fresh id and the given TTL.
func NewResearchSession(project ProjectInfo, ttl time.Duration) *ResearchSession {
	now := time.Now()
	return &ResearchSession{
		Id:         uuid.New(),
		Project:    project,
		Mappings:   make(map[uuid.UUID]SubQuestionMapping),
		Literature: make(map[uuid.UUID][]LiteratureResult),
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

// Expired reports whether the session's expiry timestamp has passed.
func (s *ResearchSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// MainQuestionByID returns the main question with the given id, if any.
func (s *ResearchSession) MainQuestionByID(id uuid.UUID) (ResearchQuestion, bool) {
	for _, mq := range s.MainQuestions {
		if mq.Id == id {
			return mq, true
		}
	}
	return ResearchQuestion{}, false
}

// SubQuestionByID returns the sub-question with the given id, if any.
func (s *ResearchSession) SubQuestionByID(id uuid.UUID) (ResearchQuestion, bool) {
	for _, sq := range s.SubQuestions {
		if sq.Id == id {
			return sq, true
		}
	}
	return ResearchQuestion{}, false
}

// SubQuestionsOf returns the sub-questions attached to a main question,
// in generation order. Never stored redundantly; always computed.
func (s *ResearchSession) SubQuestionsOf(mainID uuid.UUID) []ResearchQuestion {
	var subs []ResearchQuestion
	for _, sq := range s.SubQuestions {
		if sq.ParentQuestionId != nil && *sq.ParentQuestionId == mainID {
			subs = append(subs, sq)
		}
	}
	return subs
}

// ResolveScope maps the selection state to the working sub-question id set.
// No selection ever made: every sub-question is in scope. A selection exists
// (even an empty one): only sub-questions under selected mains are in scope.
func (s *ResearchSession) ResolveScope() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.SubQuestions))
	for _, sq := range s.SubQuestions {
		if !s.QuestionsFiltered {
			ids = append(ids, sq.Id)
			continue
		}
		if sq.ParentQuestionId != nil && s.Selection.Contains(*sq.ParentQuestionId) {
			ids = append(ids, sq.Id)
		}
	}
	return ids
}

// Clone deep-copies the session so store callers never alias shared state.
func (s *ResearchSession) Clone() *ResearchSession {
	cp := *s
	cp.MainQuestions = append([]ResearchQuestion(nil), s.MainQuestions...)
	cp.SubQuestions = append([]ResearchQuestion(nil), s.SubQuestions...)
	cp.Selection.IDs = append([]uuid.UUID(nil), s.Selection.IDs...)
	cp.DataGaps = append([]DataGap(nil), s.DataGaps...)
	cp.Mappings = make(map[uuid.UUID]SubQuestionMapping, len(s.Mappings))
	for k, v := range s.Mappings {
		cp.Mappings[k] = v
	}
	cp.Literature = make(map[uuid.UUID][]LiteratureResult, len(s.Literature))
	for k, v := range s.Literature {
		refs := make([]LiteratureResult, len(v))
		copy(refs, v)
		for i := range refs {
			refs[i].Authors = append([]string(nil), v[i].Authors...)
		}
		cp.Literature[k] = refs
	}
	return &cp
}
