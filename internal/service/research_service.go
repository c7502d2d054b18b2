package service

import (
	"context"
	"sync"
	"time"

	"research-assistant-be/internal/config"
	"research-assistant-be/internal/constant"
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/entity"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/pkg/logger"
	"research-assistant-be/internal/repository/contract"
	"research-assistant-be/pkg/literature"
	"research-assistant-be/pkg/questiongen"

	"github.com/google/uuid"
)

type IResearchService interface {
	CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionId uuid.UUID) error
	SelectQuestions(ctx context.Context, sessionId uuid.UUID, req *dto.SelectQuestionsRequest) (*dto.SelectQuestionsResponse, error)
	GetSelectedQuestions(ctx context.Context, sessionId uuid.UUID) (*dto.GetSelectedQuestionsResponse, error)
	AnalyzeSubQuestions(ctx context.Context, sessionId uuid.UUID) (*dto.AnalyzeResponse, error)
	AnalyzeSelected(ctx context.Context, sessionId uuid.UUID, req *dto.AnalyzeSelectedRequest) (*dto.AnalyzeResponse, error)
	AnalysisStatus(ctx context.Context, sessionId uuid.UUID) (*dto.AnalysisStatusResponse, error)
	IdentifyDataGaps(ctx context.Context, sessionId uuid.UUID) (*dto.IdentifyGapsResponse, error)
	SearchLiterature(ctx context.Context, sessionId uuid.UUID) (*dto.SearchLiteratureResponse, error)
	SearchLiteratureDirect(ctx context.Context, req *dto.SearchLiteratureDirectRequest) (*dto.SearchLiteratureDirectResponse, error)
	ProjectTemplates() []dto.ProjectTemplateDTO
}

// questionGenerator is the slice of questiongen.Generator the service needs.
type questionGenerator interface {
	GenerateQuestions(ctx context.Context, project questiongen.ProjectContext) (questiongen.QuestionOutline, error)
	MapSubQuestion(ctx context.Context, project questiongen.ProjectContext, subQuestion string) (questiongen.Mapping, error)
	IdentifyGaps(ctx context.Context, subQuestion, dataRequirements string) ([]questiongen.Gap, error)
}

type literatureSearcher interface {
	Search(ctx context.Context, query string) ([]literature.ScoredPaper, []literature.ProviderFailure, error)
}

type researchService struct {
	store      contract.ISessionStore
	generator  questionGenerator
	literature literatureSearcher
	publisher  IPublisherService
	logger     logger.ILogger
	workflow   config.WorkflowConfig
	sessionTTL time.Duration
}

func NewResearchService(
	store contract.ISessionStore,
	generator questionGenerator,
	searcher literatureSearcher,
	publisher IPublisherService,
	log logger.ILogger,
	workflow config.WorkflowConfig,
	sessionTTL time.Duration,
) IResearchService {
	return &researchService{
		store:      store,
		generator:  generator,
		literature: searcher,
		publisher:  publisher,
		logger:     log,
		workflow:   workflow,
		sessionTTL: sessionTTL,
	}
}

func (s *researchService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	project := entity.ProjectInfo{
		Title:       req.Title,
		Description: req.Description,
		AreaOfStudy: req.AreaOfStudy,
		Geography:   req.Geography,
	}

	outline, err := s.generator.GenerateQuestions(ctx, projectContext(project))
	if err != nil {
		return nil, &apperror.UpstreamError{Op: "generate-questions", Err: err}
	}

	session := entity.NewResearchSession(project, s.sessionTTL)
	for _, mq := range outline.MainQuestions {
		main := entity.ResearchQuestion{
			Id:           uuid.New(),
			Text:         mq.Text,
			QuestionType: constant.QuestionTypeMain,
		}
		session.MainQuestions = append(session.MainQuestions, main)
		for _, sub := range mq.SubQuestions {
			parentId := main.Id
			session.SubQuestions = append(session.SubQuestions, entity.ResearchQuestion{
				Id:               uuid.New(),
				Text:             sub,
				QuestionType:     constant.QuestionTypeSub,
				ParentQuestionId: &parentId,
			})
		}
	}

	// User-supplied sub-questions attach to the first main question.
	if len(req.CustomSubQuestions) > 0 && len(session.MainQuestions) > 0 {
		parentId := session.MainQuestions[0].Id
		for _, text := range req.CustomSubQuestions {
			if text == "" {
				continue
			}
			session.SubQuestions = append(session.SubQuestions, entity.ResearchQuestion{
				Id:               uuid.New(),
				Text:             text,
				QuestionType:     constant.QuestionTypeSub,
				ParentQuestionId: &parentId,
				IsCustom:         true,
			})
		}
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("research", "session created", map[string]interface{}{
		"session_id":     session.Id,
		"main_questions": len(session.MainQuestions),
		"sub_questions":  len(session.SubQuestions),
	})
	_ = s.publisher.PublishStage(ctx, StageEvent{
		SessionId: session.Id,
		Stage:     constant.StageEventQuestionsGenerated,
		ItemCount: len(session.MainQuestions),
	})

	return &dto.CreateSessionResponse{
		SessionId: session.Id,
		ExpiresAt: session.ExpiresAt,
		Questions: questionsToDTO(session, session.MainQuestions),
	}, nil
}

func (s *researchService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return sessionToDTO(session), nil
}

func (s *researchService) DeleteSession(ctx context.Context, sessionId uuid.UUID) error {
	return s.store.Delete(ctx, sessionId)
}

// SelectQuestions records a main-question selection. Validation is
// all-or-nothing: one unknown id rejects the whole request and leaves the
// previous selection in place. An empty list is a valid selection of nothing.
func (s *researchService) SelectQuestions(ctx context.Context, sessionId uuid.UUID, req *dto.SelectQuestionsRequest) (*dto.SelectQuestionsResponse, error) {
	session, err := s.store.Mutate(ctx, sessionId, func(session *entity.ResearchSession) error {
		if len(session.MainQuestions) == 0 {
			return apperror.ErrNoQuestions
		}
		var invalid []uuid.UUID
		for _, id := range req.QuestionIds {
			if _, ok := session.MainQuestionByID(id); !ok {
				invalid = append(invalid, id)
			}
		}
		if len(invalid) > 0 {
			return &apperror.InvalidSelectionError{InvalidIDs: invalid}
		}
		session.Selection = entity.Selection{Made: true, IDs: dedupeIDs(req.QuestionIds)}
		session.QuestionsFiltered = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.PublishStage(ctx, StageEvent{
		SessionId: sessionId,
		Stage:     constant.StageEventQuestionsSelected,
		ItemCount: len(session.Selection.IDs),
	})

	return &dto.SelectQuestionsResponse{
		SelectedQuestionIds: session.Selection.IDs,
		SubQuestionsInScope: len(session.ResolveScope()),
	}, nil
}

func (s *researchService) GetSelectedQuestions(ctx context.Context, sessionId uuid.UUID) (*dto.GetSelectedQuestionsResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	var selected []entity.ResearchQuestion
	if !session.Selection.Made {
		selected = session.MainQuestions
	} else {
		for _, mq := range session.MainQuestions {
			if session.Selection.Contains(mq.Id) {
				selected = append(selected, mq)
			}
		}
	}

	return &dto.GetSelectedQuestionsResponse{
		QuestionsFiltered: session.QuestionsFiltered,
		Questions:         questionsToDTO(session, selected),
	}, nil
}

// AnalyzeSubQuestions analyzes every sub-question in the current selection
// scope. It fails fast when the scope is empty: nothing generated yet means
// ErrNoQuestions, an explicit empty selection means ErrNoSelection.
func (s *researchService) AnalyzeSubQuestions(ctx context.Context, sessionId uuid.UUID) (*dto.AnalyzeResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.SubQuestions) == 0 {
		return nil, apperror.ErrNoQuestions
	}
	scope := session.ResolveScope()
	if len(scope) == 0 {
		return nil, apperror.ErrNoSelection
	}
	return s.analyzeScope(ctx, sessionId, session, scope)
}

// AnalyzeSelected analyzes explicitly named questions, bypassing the stored
// selection without touching it. Main question ids expand to their
// sub-questions; with no ids given at all, every sub-question is analyzed
// regardless of selection state.
func (s *researchService) AnalyzeSelected(ctx context.Context, sessionId uuid.UUID, req *dto.AnalyzeSelectedRequest) (*dto.AnalyzeResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.SubQuestions) == 0 {
		return nil, apperror.ErrNoQuestions
	}

	var scope []uuid.UUID
	var invalid []uuid.UUID

	for _, id := range req.MainQuestionIds {
		if _, ok := session.MainQuestionByID(id); !ok {
			invalid = append(invalid, id)
			continue
		}
		for _, sq := range session.SubQuestionsOf(id) {
			scope = append(scope, sq.Id)
		}
	}
	for _, id := range req.SubQuestionIds {
		if _, ok := session.SubQuestionByID(id); !ok {
			invalid = append(invalid, id)
			continue
		}
		scope = append(scope, id)
	}
	if len(invalid) > 0 {
		return nil, &apperror.InvalidSelectionError{InvalidIDs: invalid}
	}

	if len(req.MainQuestionIds) == 0 && len(req.SubQuestionIds) == 0 {
		scope = make([]uuid.UUID, 0, len(session.SubQuestions))
		for _, sq := range session.SubQuestions {
			scope = append(scope, sq.Id)
		}
	} else {
		scope = dedupeIDs(scope)
	}

	return s.analyzeScope(ctx, sessionId, session, scope)
}

// analyzeScope runs the analysis fan-out for an already-validated scope and
// persists the successful mappings. Result order follows scope order.
func (s *researchService) analyzeScope(ctx context.Context, sessionId uuid.UUID, session *entity.ResearchSession, scope []uuid.UUID) (*dto.AnalyzeResponse, error) {
	if len(scope) == 0 {
		return &dto.AnalyzeResponse{Mappings: []dto.MappingDTO{}}, nil
	}

	project := projectContext(session.Project)
	type itemResult struct {
		mapping questiongen.Mapping
		err     error
	}
	results := make([]itemResult, len(scope))

	s.forEach(ctx, len(scope), func(i int) {
		sub, ok := session.SubQuestionByID(scope[i])
		if !ok {
			return // validated upstream; scope ids always resolve
		}
		mapping, err := s.generator.MapSubQuestion(ctx, project, sub.Text)
		results[i] = itemResult{mapping: mapping, err: err}
	})

	now := time.Now()
	resp := &dto.AnalyzeResponse{Mappings: []dto.MappingDTO{}}
	succeeded := make(map[uuid.UUID]entity.SubQuestionMapping)
	for i, id := range scope {
		if results[i].err != nil {
			resp.Failures = append(resp.Failures, dto.AnalysisFailureDTO{
				SubQuestionId: id,
				Error:         results[i].err.Error(),
			})
			continue
		}
		succeeded[id] = entity.SubQuestionMapping{
			SubQuestionId:    id,
			SubQuestion:      results[i].mapping.SubQuestion,
			DataRequirements: results[i].mapping.DataRequirements,
			AnalysisApproach: results[i].mapping.AnalysisApproach,
			CreatedAt:        now,
		}
	}

	if len(succeeded) == 0 {
		return nil, &apperror.UpstreamError{Op: "analyze-sub-questions", Err: firstFailure(resp.Failures)}
	}
	if s.workflow.StrictAnalysis && len(resp.Failures) > 0 {
		return nil, &apperror.UpstreamError{Op: "analyze-sub-questions", Err: firstFailure(resp.Failures)}
	}

	if _, err := s.store.Mutate(ctx, sessionId, func(session *entity.ResearchSession) error {
		for id, mapping := range succeeded {
			session.Mappings[id] = mapping
		}
		return nil
	}); err != nil {
		return nil, err
	}

	for _, id := range scope {
		if mapping, ok := succeeded[id]; ok {
			resp.Mappings = append(resp.Mappings, mappingToDTO(mapping))
		}
	}

	s.logger.Info("research", "sub-questions analyzed", map[string]interface{}{
		"session_id": sessionId,
		"analyzed":   len(succeeded),
		"failed":     len(resp.Failures),
	})
	_ = s.publisher.PublishStage(ctx, StageEvent{
		SessionId: sessionId,
		Stage:     constant.StageEventSubQuestionsMapped,
		ItemCount: len(succeeded),
	})

	return resp, nil
}

func (s *researchService) AnalysisStatus(ctx context.Context, sessionId uuid.UUID) (*dto.AnalysisStatusResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	scope := session.ResolveScope()
	resp := &dto.AnalysisStatusResponse{SubQuestionsInScope: len(scope)}
	for _, id := range scope {
		if _, ok := session.Mappings[id]; ok {
			resp.Analyzed++
		} else {
			resp.PendingIds = append(resp.PendingIds, id)
		}
	}
	return resp, nil
}

// IdentifyDataGaps derives missing data variables from every analyzed
// sub-question in scope and replaces the session's gap collection wholesale.
func (s *researchService) IdentifyDataGaps(ctx context.Context, sessionId uuid.UUID) (*dto.IdentifyGapsResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.SubQuestions) == 0 {
		return nil, apperror.ErrNoQuestions
	}

	mapped := analyzedInScope(session)
	if len(mapped) == 0 {
		return nil, apperror.ErrNoAnalysis
	}

	type itemResult struct {
		gaps []questiongen.Gap
		err  error
	}
	results := make([]itemResult, len(mapped))
	s.forEach(ctx, len(mapped), func(i int) {
		m := mapped[i]
		gaps, err := s.generator.IdentifyGaps(ctx, m.SubQuestion, m.DataRequirements)
		results[i] = itemResult{gaps: gaps, err: err}
	})

	var gaps []entity.DataGap
	failed := 0
	var firstErr error
	for i, m := range mapped {
		if results[i].err != nil {
			failed++
			if firstErr == nil {
				firstErr = results[i].err
			}
			s.logger.Warn("research", "gap identification failed for sub-question", map[string]interface{}{
				"session_id":      sessionId,
				"sub_question_id": m.SubQuestionId,
				"error":           results[i].err.Error(),
			})
			continue
		}
		for _, g := range results[i].gaps {
			gaps = append(gaps, entity.DataGap{
				Id:               uuid.New(),
				MissingVariable:  g.MissingVariable,
				GapDescription:   g.GapDescription,
				SuggestedSources: g.SuggestedSources,
				SubQuestionId:    m.SubQuestionId,
			})
		}
	}

	if failed == len(mapped) {
		return nil, &apperror.UpstreamError{Op: "identify-data-gaps", Err: firstErr}
	}
	if s.workflow.StrictAnalysis && failed > 0 {
		return nil, &apperror.UpstreamError{Op: "identify-data-gaps", Err: firstErr}
	}

	if _, err := s.store.Mutate(ctx, sessionId, func(session *entity.ResearchSession) error {
		session.DataGaps = gaps
		return nil
	}); err != nil {
		return nil, err
	}

	_ = s.publisher.PublishStage(ctx, StageEvent{
		SessionId: sessionId,
		Stage:     constant.StageEventDataGapsIdentified,
		ItemCount: len(gaps),
	})

	resp := &dto.IdentifyGapsResponse{Gaps: make([]dto.DataGapDTO, 0, len(gaps))}
	for _, g := range gaps {
		resp.Gaps = append(resp.Gaps, gapToDTO(g))
	}
	return resp, nil
}

// SearchLiterature runs an aggregate literature search for every analyzed
// sub-question in scope. Per-sub results replace whatever was stored before.
func (s *researchService) SearchLiterature(ctx context.Context, sessionId uuid.UUID) (*dto.SearchLiteratureResponse, error) {
	session, err := s.store.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if len(session.SubQuestions) == 0 {
		return nil, apperror.ErrNoQuestions
	}

	mapped := analyzedInScope(session)
	if len(mapped) == 0 {
		return nil, apperror.ErrNoAnalysis
	}

	type itemResult struct {
		papers   []literature.ScoredPaper
		failures []literature.ProviderFailure
		err      error
	}
	results := make([]itemResult, len(mapped))
	s.forEach(ctx, len(mapped), func(i int) {
		papers, failures, err := s.literature.Search(ctx, mapped[i].SubQuestion)
		results[i] = itemResult{papers: papers, failures: failures, err: err}
	})

	resp := &dto.SearchLiteratureResponse{Results: []dto.SubQuestionLiteratureDTO{}}
	perSub := make(map[uuid.UUID][]entity.LiteratureResult)
	failed := 0
	var firstErr error
	for i, m := range mapped {
		for _, f := range results[i].failures {
			resp.Warnings = append(resp.Warnings, f.Error())
		}
		if results[i].err != nil {
			failed++
			if firstErr == nil {
				firstErr = results[i].err
			}
			continue
		}

		entry := dto.SubQuestionLiteratureDTO{
			SubQuestionId: m.SubQuestionId,
			SubQuestion:   m.SubQuestion,
			Results:       []dto.LiteratureResultDTO{},
		}
		stored := make([]entity.LiteratureResult, 0, len(results[i].papers))
		for _, p := range results[i].papers {
			result := entity.LiteratureResult{
				Id:            uuid.New(),
				Title:         p.Title,
				Authors:       p.Authors,
				Abstract:      p.Abstract,
				Year:          p.Year,
				Venue:         p.Venue,
				URL:           p.URL,
				Relevance:     p.Relevance,
				Source:        p.Source,
				Citations:     p.Citations,
				SubQuestionId: m.SubQuestionId,
			}
			stored = append(stored, result)
			entry.Results = append(entry.Results, literatureToDTO(result))
		}
		perSub[m.SubQuestionId] = stored
		resp.Results = append(resp.Results, entry)
	}

	if failed == len(mapped) {
		return nil, &apperror.UpstreamError{Op: "search-literature", Err: firstErr}
	}

	if _, err := s.store.Mutate(ctx, sessionId, func(session *entity.ResearchSession) error {
		for id, stored := range perSub {
			session.Literature[id] = stored
		}
		return nil
	}); err != nil {
		return nil, err
	}

	_ = s.publisher.PublishStage(ctx, StageEvent{
		SessionId: sessionId,
		Stage:     constant.StageEventLiteratureSearched,
		ItemCount: len(resp.Results),
	})

	return resp, nil
}

// SearchLiteratureDirect searches without a session, for ad-hoc queries.
func (s *researchService) SearchLiteratureDirect(ctx context.Context, req *dto.SearchLiteratureDirectRequest) (*dto.SearchLiteratureDirectResponse, error) {
	papers, failures, err := s.literature.Search(ctx, req.Query)
	if err != nil {
		return nil, &apperror.UpstreamError{Op: "search-literature", Err: err}
	}

	if req.MaxResults > 0 && len(papers) > req.MaxResults {
		papers = papers[:req.MaxResults]
	}

	resp := &dto.SearchLiteratureDirectResponse{Query: req.Query, Results: []dto.LiteratureResultDTO{}}
	for _, f := range failures {
		resp.Warnings = append(resp.Warnings, f.Error())
	}
	for _, p := range papers {
		resp.Results = append(resp.Results, dto.LiteratureResultDTO{
			Id:        uuid.New(),
			Title:     p.Title,
			Authors:   p.Authors,
			Abstract:  p.Abstract,
			Year:      p.Year,
			Venue:     p.Venue,
			URL:       p.URL,
			Relevance: p.Relevance,
			Source:    p.Source,
			Citations: p.Citations,
		})
	}
	return resp, nil
}

// ProjectTemplates returns sample project setups for different research areas.
func (s *researchService) ProjectTemplates() []dto.ProjectTemplateDTO {
	return []dto.ProjectTemplateDTO{
		{
			Key:         "maternal_health",
			Title:       "Maternal Mortality Trends in Rural Kenya",
			Description: "Investigate the main causes of maternal deaths in rural healthcare settings",
			AreaOfStudy: "Public Health",
			Geography:   "Rural Kenya",
		},
		{
			Key:         "urban_health",
			Title:       "Healthcare Access in Urban Slums",
			Description: "Analyze barriers to healthcare access in urban informal settlements",
			AreaOfStudy: "Urban Health",
			Geography:   "Nairobi, Kenya",
		},
		{
			Key:         "infectious_disease",
			Title:       "TB Treatment Outcomes",
			Description: "Evaluate factors affecting tuberculosis treatment success rates",
			AreaOfStudy: "Infectious Diseases",
			Geography:   "Sub-Saharan Africa",
		},
	}
}

// forEach runs fn for indexes [0,n) with bounded concurrency.
func (s *researchService) forEach(ctx context.Context, n int, fn func(i int)) {
	maxConcurrent := s.workflow.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}

// analyzedInScope returns the mappings of in-scope sub-questions, in
// sub-question order.
func analyzedInScope(session *entity.ResearchSession) []entity.SubQuestionMapping {
	var mapped []entity.SubQuestionMapping
	for _, id := range session.ResolveScope() {
		if m, ok := session.Mappings[id]; ok {
			mapped = append(mapped, m)
		}
	}
	return mapped
}

func firstFailure(failures []dto.AnalysisFailureDTO) error {
	if len(failures) == 0 {
		return nil
	}
	return errorsString(failures[0].Error)
}

type errorsString string

func (e errorsString) Error() string { return string(e) }

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func projectContext(p entity.ProjectInfo) questiongen.ProjectContext {
	return questiongen.ProjectContext{
		Title:       p.Title,
		Description: p.Description,
		AreaOfStudy: p.AreaOfStudy,
		Geography:   p.Geography,
	}
}

func questionsToDTO(session *entity.ResearchSession, mains []entity.ResearchQuestion) []dto.MainQuestionDTO {
	out := make([]dto.MainQuestionDTO, 0, len(mains))
	for _, mq := range mains {
		item := dto.MainQuestionDTO{Id: mq.Id, Text: mq.Text, SubQuestions: []dto.SubQuestionDTO{}}
		for _, sq := range session.SubQuestionsOf(mq.Id) {
			item.SubQuestions = append(item.SubQuestions, dto.SubQuestionDTO{
				Id:       sq.Id,
				Text:     sq.Text,
				IsCustom: sq.IsCustom,
			})
		}
		out = append(out, item)
	}
	return out
}

func mappingToDTO(m entity.SubQuestionMapping) dto.MappingDTO {
	return dto.MappingDTO{
		SubQuestionId:    m.SubQuestionId,
		SubQuestion:      m.SubQuestion,
		DataRequirements: m.DataRequirements,
		AnalysisApproach: m.AnalysisApproach,
		CreatedAt:        m.CreatedAt,
	}
}

func gapToDTO(g entity.DataGap) dto.DataGapDTO {
	return dto.DataGapDTO{
		Id:               g.Id,
		MissingVariable:  g.MissingVariable,
		GapDescription:   g.GapDescription,
		SuggestedSources: g.SuggestedSources,
		SubQuestionId:    g.SubQuestionId,
	}
}

func literatureToDTO(r entity.LiteratureResult) dto.LiteratureResultDTO {
	return dto.LiteratureResultDTO{
		Id:        r.Id,
		Title:     r.Title,
		Authors:   r.Authors,
		Abstract:  r.Abstract,
		Year:      r.Year,
		Venue:     r.Venue,
		URL:       r.URL,
		Relevance: r.Relevance,
		Source:    r.Source,
		Citations: r.Citations,
	}
}

func sessionToDTO(session *entity.ResearchSession) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		SessionId: session.Id,
		Project: dto.ProjectDTO{
			Title:       session.Project.Title,
			Description: session.Project.Description,
			AreaOfStudy: session.Project.AreaOfStudy,
			Geography:   session.Project.Geography,
		},
		Questions:         questionsToDTO(session, session.MainQuestions),
		QuestionsFiltered: session.QuestionsFiltered,
		Mappings:          []dto.MappingDTO{},
		DataGaps:          []dto.DataGapDTO{},
		CreatedAt:         session.CreatedAt,
		ExpiresAt:         session.ExpiresAt,
	}
	if session.Selection.Made {
		resp.SelectedIds = session.Selection.IDs
	}
	// Mapping order follows sub-question order for stable output.
	for _, sq := range session.SubQuestions {
		if m, ok := session.Mappings[sq.Id]; ok {
			resp.Mappings = append(resp.Mappings, mappingToDTO(m))
		}
	}
	for _, g := range session.DataGaps {
		resp.DataGaps = append(resp.DataGaps, gapToDTO(g))
	}
	return resp
}
