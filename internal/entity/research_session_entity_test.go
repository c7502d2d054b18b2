package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSession(t *testing.T) *ResearchSession {
	t.Helper()
	s := NewResearchSession(ProjectInfo{Title: "T"}, time.Hour)
	for i := 0; i < 2; i++ {
		main := ResearchQuestion{Id: uuid.New(), Text: "main", QuestionType: "main"}
		s.MainQuestions = append(s.MainQuestions, main)
		for j := 0; j < 2; j++ {
			parent := main.Id
			s.SubQuestions = append(s.SubQuestions, ResearchQuestion{
				Id: uuid.New(), Text: "sub", QuestionType: "sub", ParentQuestionId: &parent,
			})
		}
	}
	return s
}

func TestResolveScopeTriState(t *testing.T) {
	s := buildSession(t)

	// Selection never made: everything is in scope.
	assert.Len(t, s.ResolveScope(), 4)

	// Selecting one main narrows scope to its sub-questions.
	s.Selection = Selection{Made: true, IDs: []uuid.UUID{s.MainQuestions[0].Id}}
	s.QuestionsFiltered = true
	scope := s.ResolveScope()
	require.Len(t, scope, 2)
	for _, id := range scope {
		sq, ok := s.SubQuestionByID(id)
		require.True(t, ok)
		assert.Equal(t, s.MainQuestions[0].Id, *sq.ParentQuestionId)
	}

	// A deliberately empty selection leaves nothing in scope.
	s.Selection = Selection{Made: true}
	assert.Empty(t, s.ResolveScope())
}

func TestSubQuestionsOfPreservesOrder(t *testing.T) {
	s := buildSession(t)
	subs := s.SubQuestionsOf(s.MainQuestions[1].Id)
	require.Len(t, subs, 2)
	assert.Equal(t, s.SubQuestions[2].Id, subs[0].Id)
	assert.Equal(t, s.SubQuestions[3].Id, subs[1].Id)
}

func TestExpired(t *testing.T) {
	s := NewResearchSession(ProjectInfo{}, time.Hour)
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(time.Now().Add(2*time.Hour)))
}

func TestCloneIsDeep(t *testing.T) {
	s := buildSession(t)
	subId := s.SubQuestions[0].Id
	s.Mappings[subId] = SubQuestionMapping{SubQuestionId: subId, SubQuestion: "sub"}
	s.Literature[subId] = []LiteratureResult{{Id: uuid.New(), Title: "paper", Authors: []string{"A"}}}
	s.DataGaps = []DataGap{{Id: uuid.New(), MissingVariable: "v"}}

	cp := s.Clone()
	cp.MainQuestions[0].Text = "changed"
	cp.Mappings[subId] = SubQuestionMapping{SubQuestion: "changed"}
	cp.Literature[subId][0].Authors[0] = "changed"
	cp.DataGaps[0].MissingVariable = "changed"

	assert.Equal(t, "main", s.MainQuestions[0].Text)
	assert.Equal(t, "sub", s.Mappings[subId].SubQuestion)
	assert.Equal(t, "A", s.Literature[subId][0].Authors[0])
	assert.Equal(t, "v", s.DataGaps[0].MissingVariable)
}

func TestMissingProjectFieldsOrder(t *testing.T) {
	c := NewConversationState()
	assert.Equal(t, []string{"title", "description", "area of study", "geography"}, c.MissingProjectFields())

	c.PendingProject.Title = "T"
	c.PendingProject.Geography = "G"
	assert.Equal(t, []string{"description", "area of study"}, c.MissingProjectFields())
}
