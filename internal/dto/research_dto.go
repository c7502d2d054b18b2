package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title              string   `json:"title" validate:"required"`
	Description        string   `json:"description" validate:"required"`
	AreaOfStudy        string   `json:"area_of_study" validate:"required"`
	Geography          string   `json:"geography" validate:"required"`
	CustomSubQuestions []string `json:"custom_sub_questions,omitempty"`
}

type SubQuestionDTO struct {
	Id       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	IsCustom bool      `json:"is_custom"`
}

type MainQuestionDTO struct {
	Id           uuid.UUID        `json:"id"`
	Text         string           `json:"text"`
	SubQuestions []SubQuestionDTO `json:"sub_questions"`
}

type CreateSessionResponse struct {
	SessionId uuid.UUID         `json:"session_id"`
	ExpiresAt time.Time         `json:"expires_at"`
	Questions []MainQuestionDTO `json:"questions"`
}

// SelectQuestionsRequest carries main-question ids. An empty (but present)
// list is a deliberate selection of nothing and narrows the scope to zero.
type SelectQuestionsRequest struct {
	QuestionIds []uuid.UUID `json:"question_ids"`
}

type SelectQuestionsResponse struct {
	SelectedQuestionIds []uuid.UUID `json:"selected_question_ids"`
	SubQuestionsInScope int         `json:"sub_questions_in_scope"`
}

type GetSelectedQuestionsResponse struct {
	QuestionsFiltered bool              `json:"questions_filtered"`
	Questions         []MainQuestionDTO `json:"questions"`
}

type MappingDTO struct {
	SubQuestionId    uuid.UUID `json:"sub_question_id"`
	SubQuestion      string    `json:"sub_question"`
	DataRequirements string    `json:"data_requirements"`
	AnalysisApproach string    `json:"analysis_approach"`
	CreatedAt        time.Time `json:"created_at"`
}

// AnalysisFailureDTO reports one sub-question whose analysis failed while
// the rest of the batch succeeded.
type AnalysisFailureDTO struct {
	SubQuestionId uuid.UUID `json:"sub_question_id"`
	Error         string    `json:"error"`
}

type AnalyzeResponse struct {
	Mappings []MappingDTO         `json:"mappings"`
	Failures []AnalysisFailureDTO `json:"failures,omitempty"`
}

// AnalyzeSelectedRequest optionally names explicit ids to analyze. Main
// question ids expand to their sub-questions; both lists may be combined.
// When neither is given, every sub-question in the session is analyzed.
type AnalyzeSelectedRequest struct {
	MainQuestionIds []uuid.UUID `json:"main_question_ids,omitempty"`
	SubQuestionIds  []uuid.UUID `json:"sub_question_ids,omitempty"`
}

type DataGapDTO struct {
	Id               uuid.UUID `json:"id"`
	MissingVariable  string    `json:"missing_variable"`
	GapDescription   string    `json:"gap_description"`
	SuggestedSources string    `json:"suggested_sources"`
	SubQuestionId    uuid.UUID `json:"sub_question_id"`
}

type IdentifyGapsResponse struct {
	Gaps []DataGapDTO `json:"gaps"`
}

type LiteratureResultDTO struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Authors   []string  `json:"authors"`
	Abstract  string    `json:"abstract,omitempty"`
	Year      int       `json:"year,omitempty"`
	Venue     string    `json:"venue,omitempty"`
	URL       string    `json:"url,omitempty"`
	Relevance float64   `json:"relevance"`
	Source    string    `json:"source"`
	Citations int       `json:"citations"`
}

type SubQuestionLiteratureDTO struct {
	SubQuestionId uuid.UUID             `json:"sub_question_id"`
	SubQuestion   string                `json:"sub_question"`
	Results       []LiteratureResultDTO `json:"results"`
}

type SearchLiteratureResponse struct {
	Results  []SubQuestionLiteratureDTO `json:"results"`
	Warnings []string                   `json:"warnings,omitempty"`
}

type SearchLiteratureDirectRequest struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results" validate:"omitempty,min=1,max=50"`
}

type SearchLiteratureDirectResponse struct {
	Query    string                `json:"query"`
	Results  []LiteratureResultDTO `json:"results"`
	Warnings []string              `json:"warnings,omitempty"`
}

type AnalysisStatusResponse struct {
	SubQuestionsInScope int         `json:"sub_questions_in_scope"`
	Analyzed            int         `json:"analyzed"`
	PendingIds          []uuid.UUID `json:"pending_ids,omitempty"`
}

type SessionResponse struct {
	SessionId         uuid.UUID         `json:"session_id"`
	Project           ProjectDTO        `json:"project"`
	Questions         []MainQuestionDTO `json:"questions"`
	QuestionsFiltered bool              `json:"questions_filtered"`
	SelectedIds       []uuid.UUID       `json:"selected_question_ids,omitempty"`
	Mappings          []MappingDTO      `json:"mappings"`
	DataGaps          []DataGapDTO      `json:"data_gaps"`
	CreatedAt         time.Time         `json:"created_at"`
	ExpiresAt         time.Time         `json:"expires_at"`
}

// ProjectTemplateDTO is a ready-made project setup users can start from.
type ProjectTemplateDTO struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AreaOfStudy string `json:"area_of_study"`
	Geography   string `json:"geography"`
}

type ProjectDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AreaOfStudy string `json:"area_of_study"`
	Geography   string `json:"geography"`
}
