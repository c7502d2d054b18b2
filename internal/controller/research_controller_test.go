package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/apperror"
	"research-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResearchService answers every method with canned data, or an error
// when the session id matches missingId.
type stubResearchService struct {
	missingId uuid.UUID
}

var stubSessionId = uuid.New()

func (s *stubResearchService) CreateSession(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	return &dto.CreateSessionResponse{SessionId: stubSessionId, Questions: []dto.MainQuestionDTO{}}, nil
}

func (s *stubResearchService) GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	if id == s.missingId {
		return nil, apperror.ErrSessionNotFound
	}
	return &dto.SessionResponse{SessionId: id}, nil
}

func (s *stubResearchService) DeleteSession(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubResearchService) SelectQuestions(ctx context.Context, id uuid.UUID, req *dto.SelectQuestionsRequest) (*dto.SelectQuestionsResponse, error) {
	return &dto.SelectQuestionsResponse{SelectedQuestionIds: req.QuestionIds}, nil
}

func (s *stubResearchService) GetSelectedQuestions(ctx context.Context, id uuid.UUID) (*dto.GetSelectedQuestionsResponse, error) {
	return &dto.GetSelectedQuestionsResponse{Questions: []dto.MainQuestionDTO{}}, nil
}

func (s *stubResearchService) AnalyzeSubQuestions(ctx context.Context, id uuid.UUID) (*dto.AnalyzeResponse, error) {
	return &dto.AnalyzeResponse{Mappings: []dto.MappingDTO{}}, nil
}

func (s *stubResearchService) AnalyzeSelected(ctx context.Context, id uuid.UUID, req *dto.AnalyzeSelectedRequest) (*dto.AnalyzeResponse, error) {
	return &dto.AnalyzeResponse{Mappings: []dto.MappingDTO{}}, nil
}

func (s *stubResearchService) AnalysisStatus(ctx context.Context, id uuid.UUID) (*dto.AnalysisStatusResponse, error) {
	return &dto.AnalysisStatusResponse{}, nil
}

func (s *stubResearchService) IdentifyDataGaps(ctx context.Context, id uuid.UUID) (*dto.IdentifyGapsResponse, error) {
	return nil, apperror.ErrNoAnalysis
}

func (s *stubResearchService) SearchLiterature(ctx context.Context, id uuid.UUID) (*dto.SearchLiteratureResponse, error) {
	return &dto.SearchLiteratureResponse{Results: []dto.SubQuestionLiteratureDTO{}}, nil
}

func (s *stubResearchService) SearchLiteratureDirect(ctx context.Context, req *dto.SearchLiteratureDirectRequest) (*dto.SearchLiteratureDirectResponse, error) {
	return &dto.SearchLiteratureDirectResponse{Query: req.Query, Results: []dto.LiteratureResultDTO{}}, nil
}

func (s *stubResearchService) ProjectTemplates() []dto.ProjectTemplateDTO {
	return []dto.ProjectTemplateDTO{{Key: "maternal_health"}}
}

func newTestApp(stub *stubResearchService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewResearchController(stub).RegisterRoutes(api)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope))
	}
	return resp, envelope
}

func TestCreateSessionValidationErrors(t *testing.T) {
	app := newTestApp(&stubResearchService{})

	resp, envelope := doRequest(t, app, http.MethodPost, "/api/research/v1/sessions",
		`{"title":"only a title"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestCreateSessionSuccess(t *testing.T) {
	app := newTestApp(&stubResearchService{})

	resp, envelope := doRequest(t, app, http.MethodPost, "/api/research/v1/sessions",
		`{"title":"T","description":"D","area_of_study":"A","geography":"G"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, stubSessionId.String(), data["session_id"])
}

func TestGetSessionNotFoundMapsTo404(t *testing.T) {
	missing := uuid.New()
	app := newTestApp(&stubResearchService{missingId: missing})

	resp, envelope := doRequest(t, app, http.MethodGet, "/api/research/v1/sessions/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, envelope["success"])
}

func TestGetSessionInvalidIdIs400(t *testing.T) {
	app := newTestApp(&stubResearchService{})

	resp, _ := doRequest(t, app, http.MethodGet, "/api/research/v1/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDataGapsBeforeAnalysisIs400(t *testing.T) {
	app := newTestApp(&stubResearchService{})

	resp, envelope := doRequest(t, app, http.MethodPost,
		"/api/research/v1/sessions/"+uuid.NewString()+"/data-gaps", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, envelope["message"], "analyze")
}

func TestDirectLiteratureSearchRequiresQuery(t *testing.T) {
	app := newTestApp(&stubResearchService{})

	resp, _ := doRequest(t, app, http.MethodPost, "/api/research/v1/literature/search", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, envelope := doRequest(t, app, http.MethodPost, "/api/research/v1/literature/search",
		`{"query":"maternal health"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "maternal health", data["query"])
}
