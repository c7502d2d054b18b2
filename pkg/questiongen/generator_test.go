package questiongen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-assistant-be/pkg/llm"
)

type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func TestGenerateQuestionsRetriesOnce(t *testing.T) {
	provider := &scriptedProvider{
		errs:      []error{errors.New("upstream hiccup"), nil},
		responses: []string{"", "MAIN QUESTION 1:\nHow does X affect Y?\nSUB-QUESTIONS:\n- What is X?"},
	}
	g := NewGenerator(provider, time.Second)

	outline, err := g.GenerateQuestions(context.Background(), ProjectContext{Title: "Study"})
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	require.Len(t, outline.MainQuestions, 1)
	assert.Equal(t, "How does X affect Y?", outline.MainQuestions[0].Text)
}

func TestGenerateQuestionsEmptyOutline(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"nothing parseable", "still nothing"}}
	g := NewGenerator(provider, time.Second)

	_, err := g.GenerateQuestions(context.Background(), ProjectContext{Title: "Study"})
	assert.ErrorIs(t, err, ErrEmptyOutline)
}

func TestMapSubQuestionFillsMissingEcho(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"SUB-QUESTION:\nDATA REQUIREMENTS:\nSurvey microdata.\nANALYSIS APPROACH:\nLogistic regression.",
	}}
	g := NewGenerator(provider, time.Second)

	m, err := g.MapSubQuestion(context.Background(), ProjectContext{}, "Does distance reduce uptake?")
	require.NoError(t, err)
	assert.Equal(t, "Does distance reduce uptake?", m.SubQuestion)
	assert.Equal(t, "Survey microdata.", m.DataRequirements)
}

func TestGenerateStopsWhenContextCancelled(t *testing.T) {
	provider := &scriptedProvider{errs: []error{context.Canceled, context.Canceled}}
	g := NewGenerator(provider, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.IdentifyGaps(ctx, "sub", "reqs")
	require.Error(t, err)
	assert.Equal(t, 1, provider.calls)
}
