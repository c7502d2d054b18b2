package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/repository/memory"
	"research-assistant-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.reply, s.err
}

func newTestChatbot(t *testing.T) IChatbotService {
	t.Helper()
	research, _, _, _ := newTestService(t)
	return NewChatbotService(
		memory.NewConversationStore(time.Hour),
		research,
		&stubLLM{reply: "An analysis approach is the statistical method used."},
		nopLogger{},
	)
}

func send(t *testing.T, bot IChatbotService, state *dto.StartChatResponse, message string) *dto.ChatMessageResponse {
	t.Helper()
	resp, err := bot.SendMessage(context.Background(), &dto.ChatMessageRequest{
		SessionId: state.SessionId,
		Message:   message,
	})
	require.NoError(t, err)
	return resp
}

func sendWithContext(t *testing.T, bot IChatbotService, state *dto.StartChatResponse, message string, payload *dto.ChatContextDTO) *dto.ChatMessageResponse {
	t.Helper()
	resp, err := bot.SendMessage(context.Background(), &dto.ChatMessageRequest{
		SessionId: state.SessionId,
		Message:   message,
		Context:   payload,
	})
	require.NoError(t, err)
	return resp
}

func TestChatbotFullWorkflow(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(entity.StageIntroduction), started.Stage)
	assert.NotEmpty(t, started.Message)

	// Introduction -> project setup.
	resp := send(t, bot, started, "I'm ready")
	assert.Equal(t, string(entity.StageProjectSetup), resp.Stage)
	assert.True(t, resp.StageAdvanced)

	// Partial fields keep the dialog in setup.
	resp = send(t, bot, started, "Title: Maternal health access\nDescription: Facility access study")
	assert.Equal(t, string(entity.StageProjectSetup), resp.Stage)
	assert.Contains(t, resp.Reply, "area of study")

	// Completing the fields generates questions.
	resp = send(t, bot, started, "Area of Study: Public health\nGeography: Kenya")
	assert.Equal(t, string(entity.StageResearchQuestions), resp.Stage)
	assert.Contains(t, resp.Reply, "1. Main question one?")
	assert.Contains(t, resp.Reply, "2. Main question two?")

	// Ordinal selection is 1-indexed against the numbered list.
	resp = send(t, bot, started, "I select questions 1 and 2")
	assert.Equal(t, string(entity.StageSubQuestionAnalysis), resp.Stage)
	assert.Contains(t, resp.Reply, "4 sub-question(s)")

	resp = send(t, bot, started, "continue")
	assert.Equal(t, string(entity.StageDataGaps), resp.Stage)
	assert.Contains(t, resp.Reply, "Analyzed 4")

	resp = send(t, bot, started, "continue")
	assert.Equal(t, string(entity.StageLiteratureSearch), resp.Stage)

	resp = send(t, bot, started, "continue")
	assert.Equal(t, string(entity.StageCompleted), resp.Stage)

	// Export carries both transcript and session data.
	export, err := bot.Export(context.Background(), started.SessionId)
	require.NoError(t, err)
	require.NotNil(t, export.Session)
	assert.Len(t, export.Session.Questions, 2)
	assert.NotEmpty(t, export.Transcript)
}

func TestChatbotClarificationDoesNotAdvance(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	resp := send(t, bot, started, "what is a sub-question?")
	assert.Equal(t, string(entity.StageIntroduction), resp.Stage)
	assert.False(t, resp.StageAdvanced)
	assert.Contains(t, resp.Reply, "analysis approach")
}

func TestChatbotClarificationFailureFallsBack(t *testing.T) {
	research, _, _, _ := newTestService(t)
	bot := NewChatbotService(
		memory.NewConversationStore(time.Hour),
		research,
		&stubLLM{err: errors.New("model down")},
		nopLogger{},
	)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	resp := send(t, bot, started, "what happens next?")
	assert.Contains(t, resp.Reply, "could not answer")
	assert.Equal(t, string(entity.StageIntroduction), resp.Stage)
}

func TestChatbotSelectNoneLeavesEmptyScope(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")
	send(t, bot, started, "Title: T\nDescription: D\nArea of Study: A\nGeography: G")

	resp := send(t, bot, started, "none")
	assert.Equal(t, string(entity.StageSubQuestionAnalysis), resp.Stage)
	assert.Contains(t, resp.Reply, "no questions selected")

	resp = send(t, bot, started, "continue")
	assert.Equal(t, string(entity.StageDataGaps), resp.Stage)
	assert.Contains(t, resp.Reply, "nothing to analyze")
}

func TestChatbotStructuredProjectPayload(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")

	// All four fields arrive as a structured payload; no free-text parsing.
	resp := sendWithContext(t, bot, started, "here are my project details", &dto.ChatContextDTO{
		Project: &dto.ProjectDTO{
			Title:       "Maternal health access",
			Description: "Facility access study",
			AreaOfStudy: "Public health",
			Geography:   "Kenya",
		},
	})
	assert.Equal(t, string(entity.StageResearchQuestions), resp.Stage)
	assert.True(t, resp.StageAdvanced)
	assert.Contains(t, resp.Reply, "1. Main question one?")
}

func TestChatbotStructuredSelectionPayload(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")
	send(t, bot, started, "Title: T\nDescription: D\nArea of Study: A\nGeography: G")

	export, err := bot.Export(context.Background(), started.SessionId)
	require.NoError(t, err)
	require.NotNil(t, export.Session)
	require.Len(t, export.Session.Questions, 2)

	// Explicit ids in the payload select directly, even when the text alone
	// would read as a clarification.
	resp := sendWithContext(t, bot, started, "can you keep just this one?", &dto.ChatContextDTO{
		QuestionIds: []uuid.UUID{export.Session.Questions[0].Id},
	})
	assert.Equal(t, string(entity.StageSubQuestionAnalysis), resp.Stage)
	assert.Contains(t, resp.Reply, "Selected 1 question(s)")
}

func TestChatbotOutOfRangeOrdinalStays(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")
	send(t, bot, started, "Title: T\nDescription: D\nArea of Study: A\nGeography: G")

	resp := send(t, bot, started, "select question 9")
	assert.Equal(t, string(entity.StageResearchQuestions), resp.Stage)
	assert.Contains(t, resp.Reply, "between 1 and 2")
}

func TestChatbotStatusReportsMissingFields(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")
	send(t, bot, started, "Title: Only a title")

	status, err := bot.GetStatus(context.Background(), started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StageProjectSetup), status.Stage)
	assert.Equal(t, []string{"description", "area of study", "geography"}, status.MissingFields)
	assert.Greater(t, status.Turns, 0)
}

func TestChatbotResetKeepsSessionId(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	send(t, bot, started, "ready")
	send(t, bot, started, "Title: T\nDescription: D\nArea of Study: A\nGeography: G")

	reset, err := bot.Reset(context.Background(), started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, started.SessionId, reset.SessionId)
	assert.Equal(t, string(entity.StageIntroduction), reset.Stage)

	status, err := bot.GetStatus(context.Background(), started.SessionId)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StageIntroduction), status.Stage)
}

func TestChatbotDeleteRemovesConversation(t *testing.T) {
	bot := newTestChatbot(t)
	started, err := bot.StartChat(context.Background())
	require.NoError(t, err)

	require.NoError(t, bot.Delete(context.Background(), started.SessionId))
	_, err = bot.GetStatus(context.Background(), started.SessionId)
	assert.ErrorIs(t, err, apperror.ErrSessionNotFound)
}
