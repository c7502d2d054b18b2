package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationStage is one step of the guided dialog flow.
type ConversationStage string

const (
	StageIntroduction        ConversationStage = "introduction"
	StageProjectSetup        ConversationStage = "project_setup"
	StageResearchQuestions   ConversationStage = "research_questions"
	StageSubQuestionAnalysis ConversationStage = "sub_question_analysis"
	StageDataGaps            ConversationStage = "data_gaps"
	StageLiteratureSearch    ConversationStage = "literature_search"
	StageCompleted           ConversationStage = "completed"
)

// ConversationTurn is one utterance in the dialog log.
type ConversationTurn struct {
	Speaker   string // constant.SpeakerUser | constant.SpeakerAssistant
	Text      string
	Timestamp time.Time
}

// ConversationState wraps a research session with dialog progress. It exists
// before the backing ResearchSession does (project fields are collected
// across turns) and is one-to-one with it once setup completes.
type ConversationState struct {
	SessionId      uuid.UUID
	Stage          ConversationStage
	PendingProject ProjectInfo // partially collected until all four fields present
	// ResearchSessionId links to the backing research session once project
	// setup completes; zero before that.
	ResearchSessionId uuid.UUID
	Turns             []ConversationTurn
	CreatedAt         time.Time
}

// NewConversationState starts a dialog at the introduction stage.
func NewConversationState() *ConversationState {
	return &ConversationState{
		SessionId: uuid.New(),
		Stage:     StageIntroduction,
		CreatedAt: time.Now(),
	}
}

// AddTurn appends an utterance to the dialog log.
func (c *ConversationState) AddTurn(speaker, text string) {
	c.Turns = append(c.Turns, ConversationTurn{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	})
}

// Clone returns a deep copy safe to hand across the store boundary.
func (c *ConversationState) Clone() *ConversationState {
	cp := *c
	cp.Turns = append([]ConversationTurn(nil), c.Turns...)
	return &cp
}

// MissingProjectFields lists the required setup fields not yet collected,
// in prompt order.
func (c *ConversationState) MissingProjectFields() []string {
	var missing []string
	if c.PendingProject.Title == "" {
		missing = append(missing, "title")
	}
	if c.PendingProject.Description == "" {
		missing = append(missing, "description")
	}
	if c.PendingProject.AreaOfStudy == "" {
		missing = append(missing, "area of study")
	}
	if c.PendingProject.Geography == "" {
		missing = append(missing, "geography")
	}
	return missing
}
