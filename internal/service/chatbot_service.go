package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/pkg/chat"
	"research-assistant-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatbotService interface {
	StartChat(ctx context.Context) (*dto.StartChatResponse, error)
	SendMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error)
	GetStatus(ctx context.Context, sessionId uuid.UUID) (*dto.ChatStatusResponse, error)
	Export(ctx context.Context, sessionId uuid.UUID) (*dto.ChatExportResponse, error)
	Reset(ctx context.Context, sessionId uuid.UUID) (*dto.ChatResetResponse, error)
	Delete(ctx context.Context, sessionId uuid.UUID) error
}

// chatbotService walks a user through the research workflow one stage at a
// time: project setup, question selection, analysis, data gaps, literature.
// Clarifying questions go to the LLM without moving the dialog forward.
type chatbotService struct {
	conversations contract.IConversationStore
	research      IResearchService
	llmProvider   llm.LLMProvider
	logger        logger.ILogger
}

func NewChatbotService(
	conversations contract.IConversationStore,
	research IResearchService,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		conversations: conversations,
		research:      research,
		llmProvider:   llmProvider,
		logger:        log,
	}
}

func (s *chatbotService) StartChat(ctx context.Context) (*dto.StartChatResponse, error) {
	state := entity.NewConversationState()
	state.AddTurn(constant.SpeakerAssistant, constant.ChatGreetingV1)
	if err := s.conversations.Save(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info("chatbot", "conversation started", map[string]interface{}{
		"session_id": state.SessionId,
	})
	return &dto.StartChatResponse{
		SessionId: state.SessionId,
		Stage:     string(state.Stage),
		Message:   constant.ChatGreetingV1,
	}, nil
}

func (s *chatbotService) SendMessage(ctx context.Context, req *dto.ChatMessageRequest) (*dto.ChatMessageResponse, error) {
	state, err := s.conversations.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	state.AddTurn(constant.SpeakerUser, req.Message)
	before := state.Stage

	intent := chat.ParseMessage(req.Message)
	var reply string
	if intent.Kind == chat.IntentClarify && !payloadForStage(state.Stage, req.Context) {
		reply, err = s.clarify(ctx, state, intent.Question)
	} else {
		reply, err = s.handleStage(ctx, state, intent, req.Context)
	}
	if err != nil {
		return nil, err
	}

	state.AddTurn(constant.SpeakerAssistant, reply)
	if err := s.conversations.Save(ctx, state); err != nil {
		return nil, err
	}

	return &dto.ChatMessageResponse{
		SessionId:     state.SessionId,
		Stage:         string(state.Stage),
		Reply:         reply,
		StageAdvanced: state.Stage != before,
	}, nil
}

// payloadForStage reports whether the structured context carries input the
// current stage can consume directly; such a payload outranks free text.
func payloadForStage(stage entity.ConversationStage, c *dto.ChatContextDTO) bool {
	if c == nil {
		return false
	}
	switch stage {
	case entity.StageProjectSetup:
		return c.Project != nil
	case entity.StageResearchQuestions:
		return len(c.QuestionIds) > 0
	}
	return false
}

func (s *chatbotService) handleStage(ctx context.Context, state *entity.ConversationState, intent chat.Intent, payload *dto.ChatContextDTO) (string, error) {
	switch state.Stage {
	case entity.StageIntroduction:
		return s.handleIntroduction(state, intent)
	case entity.StageProjectSetup:
		return s.handleProjectSetup(ctx, state, intent, payload)
	case entity.StageResearchQuestions:
		return s.handleQuestionSelection(ctx, state, intent, payload)
	case entity.StageSubQuestionAnalysis:
		return s.handleAnalysis(ctx, state, intent)
	case entity.StageDataGaps:
		return s.handleDataGaps(ctx, state, intent)
	case entity.StageLiteratureSearch:
		return s.handleLiteratureSearch(ctx, state, intent)
	case entity.StageCompleted:
		return "The workflow is complete. You can export the results or reset to start over.", nil
	default:
		return "", fmt.Errorf("unknown conversation stage %q", state.Stage)
	}
}

func (s *chatbotService) handleIntroduction(state *entity.ConversationState, intent chat.Intent) (string, error) {
	state.Stage = entity.StageProjectSetup
	return "Great, let's set up your project. Please provide:\n" +
		"Title: <your project title>\n" +
		"Description: <a short description>\n" +
		"Area of Study: <your field>\n" +
		"Geography: <the region you study>", nil
}

func (s *chatbotService) handleProjectSetup(ctx context.Context, state *entity.ConversationState, intent chat.Intent, payload *dto.ChatContextDTO) (string, error) {
	if payload != nil && payload.Project != nil {
		mergeProjectFields(&state.PendingProject, chat.ProjectFields{
			Title:       payload.Project.Title,
			Description: payload.Project.Description,
			AreaOfStudy: payload.Project.AreaOfStudy,
			Geography:   payload.Project.Geography,
		})
	}
	if intent.Kind == chat.IntentProject {
		mergeProjectFields(&state.PendingProject, intent.Project)
	}

	if missing := state.MissingProjectFields(); len(missing) > 0 {
		return fmt.Sprintf("I still need the following before we can continue: %s. "+
			"Please provide them as labeled lines, e.g. \"%s: ...\".",
			strings.Join(missing, ", "), titleCase(missing[0])), nil
	}

	created, err := s.research.CreateSession(ctx, &dto.CreateSessionRequest{
		Title:       state.PendingProject.Title,
		Description: state.PendingProject.Description,
		AreaOfStudy: state.PendingProject.AreaOfStudy,
		Geography:   state.PendingProject.Geography,
	})
	if err != nil {
		return "", err
	}
	state.ResearchSessionId = created.SessionId
	state.Stage = entity.StageResearchQuestions

	var b strings.Builder
	b.WriteString("Here are the research questions I generated:\n\n")
	writeNumberedQuestions(&b, created.Questions)
	b.WriteString("\nSelect the ones to keep (e.g. \"I select questions 1 and 2\"), say \"all\", \"none\", or \"continue\" to keep everything in scope.")
	return b.String(), nil
}

func (s *chatbotService) handleQuestionSelection(ctx context.Context, state *entity.ConversationState, intent chat.Intent, payload *dto.ChatContextDTO) (string, error) {
	session, err := s.research.GetSession(ctx, state.ResearchSessionId)
	if err != nil {
		return "", err
	}

	if payload != nil && len(payload.QuestionIds) > 0 {
		return s.applySelection(ctx, state, payload.QuestionIds)
	}

	switch intent.Kind {
	case chat.IntentContinue:
		// No selection recorded; every sub-question stays in scope.
		state.Stage = entity.StageSubQuestionAnalysis
		return "Keeping all questions in scope. Say \"continue\" to analyze the sub-questions.", nil

	case chat.IntentSelect:
		var ids []uuid.UUID
		switch {
		case intent.SelectAll:
			for _, q := range session.Questions {
				ids = append(ids, q.Id)
			}
		case intent.SelectNone:
			ids = []uuid.UUID{}
		default:
			for _, ord := range intent.Ordinals {
				if ord < 1 || ord > len(session.Questions) {
					return fmt.Sprintf("There is no question %d; please pick numbers between 1 and %d.",
						ord, len(session.Questions)), nil
				}
				ids = append(ids, session.Questions[ord-1].Id)
			}
		}

		return s.applySelection(ctx, state, ids)

	default:
		return "Tell me which questions to keep (e.g. \"I select questions 1 and 3\"), say \"all\", \"none\", or \"continue\".", nil
	}
}

// applySelection records a selection by explicit main-question ids and moves
// the dialog to the analysis stage. Ids not in the session surface as a
// client error through the workflow engine's validation.
func (s *chatbotService) applySelection(ctx context.Context, state *entity.ConversationState, ids []uuid.UUID) (string, error) {
	selected, err := s.research.SelectQuestions(ctx, state.ResearchSessionId, &dto.SelectQuestionsRequest{QuestionIds: ids})
	if err != nil {
		return "", err
	}
	state.Stage = entity.StageSubQuestionAnalysis
	if len(selected.SelectedQuestionIds) == 0 {
		return "Understood, no questions selected. The analysis scope is empty; say \"continue\" to move on.", nil
	}
	return fmt.Sprintf("Selected %d question(s), which puts %d sub-question(s) in scope. Say \"continue\" to analyze them.",
		len(selected.SelectedQuestionIds), selected.SubQuestionsInScope), nil
}

func (s *chatbotService) handleAnalysis(ctx context.Context, state *entity.ConversationState, intent chat.Intent) (string, error) {
	if intent.Kind != chat.IntentContinue {
		return "Say \"continue\" when you are ready to analyze the sub-questions, or ask me anything about this step.", nil
	}

	result, err := s.research.AnalyzeSubQuestions(ctx, state.ResearchSessionId)
	if errors.Is(err, apperror.ErrNoSelection) {
		state.Stage = entity.StageDataGaps
		return "The selection scope is empty, so there was nothing to analyze. Say \"continue\" to move to data gaps.", nil
	}
	if err != nil {
		return "", err
	}
	state.Stage = entity.StageDataGaps

	msg := fmt.Sprintf("Analyzed %d sub-question(s): each now has data requirements and an analysis approach.", len(result.Mappings))
	if len(result.Failures) > 0 {
		msg += fmt.Sprintf(" %d item(s) failed and can be retried later.", len(result.Failures))
	}
	return msg + " Say \"continue\" to identify data gaps.", nil
}

func (s *chatbotService) handleDataGaps(ctx context.Context, state *entity.ConversationState, intent chat.Intent) (string, error) {
	if intent.Kind != chat.IntentContinue {
		return "Say \"continue\" to identify missing data variables, or ask me anything about this step.", nil
	}

	result, err := s.research.IdentifyDataGaps(ctx, state.ResearchSessionId)
	if err != nil {
		return "", err
	}
	state.Stage = entity.StageLiteratureSearch

	return fmt.Sprintf("Identified %d missing data variable(s) across your sub-questions. "+
		"Say \"continue\" to search the literature.", len(result.Gaps)), nil
}

func (s *chatbotService) handleLiteratureSearch(ctx context.Context, state *entity.ConversationState, intent chat.Intent) (string, error) {
	if intent.Kind != chat.IntentContinue {
		return "Say \"continue\" to run the literature search, or ask me anything about this step.", nil
	}

	result, err := s.research.SearchLiterature(ctx, state.ResearchSessionId)
	if err != nil {
		return "", err
	}
	state.Stage = entity.StageCompleted

	total := 0
	for _, entry := range result.Results {
		total += len(entry.Results)
	}
	msg := fmt.Sprintf("Found %d paper(s) across %d sub-question(s). The workflow is complete; you can export everything now.",
		total, len(result.Results))
	if len(result.Warnings) > 0 {
		msg += fmt.Sprintf(" Note: %d provider warning(s) occurred during the search.", len(result.Warnings))
	}
	return msg, nil
}

// clarify answers a side question with the LLM. Dialog state is not advanced.
func (s *chatbotService) clarify(ctx context.Context, state *entity.ConversationState, question string) (string, error) {
	system := fmt.Sprintf(constant.ClarifyPromptV1, state.Stage)
	reply, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: question},
	})
	if err != nil {
		s.logger.Warn("chatbot", "clarification failed", map[string]interface{}{
			"session_id": state.SessionId,
			"error":      err.Error(),
		})
		return "I could not answer that right now. You can still continue the workflow by saying \"continue\".", nil
	}
	return reply, nil
}

func (s *chatbotService) GetStatus(ctx context.Context, sessionId uuid.UUID) (*dto.ChatStatusResponse, error) {
	state, err := s.conversations.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	resp := &dto.ChatStatusResponse{
		SessionId: state.SessionId,
		Stage:     string(state.Stage),
		Turns:     len(state.Turns),
		CreatedAt: state.CreatedAt,
	}
	if state.Stage == entity.StageProjectSetup {
		resp.MissingFields = state.MissingProjectFields()
	}
	return resp, nil
}

func (s *chatbotService) Export(ctx context.Context, sessionId uuid.UUID) (*dto.ChatExportResponse, error) {
	state, err := s.conversations.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	resp := &dto.ChatExportResponse{
		SessionId:  state.SessionId,
		Stage:      string(state.Stage),
		Transcript: make([]dto.ChatTurnDTO, 0, len(state.Turns)),
	}
	for _, turn := range state.Turns {
		resp.Transcript = append(resp.Transcript, dto.ChatTurnDTO{
			Speaker:   turn.Speaker,
			Text:      turn.Text,
			Timestamp: turn.Timestamp,
		})
	}

	if state.ResearchSessionId != uuid.Nil {
		session, err := s.research.GetSession(ctx, state.ResearchSessionId)
		if err != nil && err != apperror.ErrSessionNotFound {
			return nil, err
		}
		resp.Session = session
	}
	return resp, nil
}

// Reset discards all progress but keeps the session id, so a client can
// restart the dialog in place.
func (s *chatbotService) Reset(ctx context.Context, sessionId uuid.UUID) (*dto.ChatResetResponse, error) {
	state, err := s.conversations.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	if state.ResearchSessionId != uuid.Nil {
		if err := s.research.DeleteSession(ctx, state.ResearchSessionId); err != nil {
			return nil, err
		}
	}

	fresh := entity.NewConversationState()
	fresh.SessionId = state.SessionId
	fresh.AddTurn(constant.SpeakerAssistant, constant.ChatGreetingV1)
	if err := s.conversations.Save(ctx, fresh); err != nil {
		return nil, err
	}

	return &dto.ChatResetResponse{
		SessionId: fresh.SessionId,
		Stage:     string(fresh.Stage),
		Message:   constant.ChatGreetingV1,
	}, nil
}

func (s *chatbotService) Delete(ctx context.Context, sessionId uuid.UUID) error {
	state, err := s.conversations.Get(ctx, sessionId)
	if err != nil {
		return err
	}
	if state.ResearchSessionId != uuid.Nil {
		if err := s.research.DeleteSession(ctx, state.ResearchSessionId); err != nil {
			return err
		}
	}
	return s.conversations.Delete(ctx, sessionId)
}

func mergeProjectFields(dst *entity.ProjectInfo, fields chat.ProjectFields) {
	if fields.Title != "" {
		dst.Title = fields.Title
	}
	if fields.Description != "" {
		dst.Description = fields.Description
	}
	if fields.AreaOfStudy != "" {
		dst.AreaOfStudy = fields.AreaOfStudy
	}
	if fields.Geography != "" {
		dst.Geography = fields.Geography
	}
}

func writeNumberedQuestions(b *strings.Builder, questions []dto.MainQuestionDTO) {
	for i, q := range questions {
		fmt.Fprintf(b, "%d. %s\n", i+1, q.Text)
		for _, sub := range q.SubQuestions {
			fmt.Fprintf(b, "   - %s\n", sub.Text)
		}
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
