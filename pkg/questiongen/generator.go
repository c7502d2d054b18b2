package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"research-assistant-be/pkg/llm"
)

// ProjectContext carries the project fields that seed every prompt.
type ProjectContext struct {
	Title       string
	Description string
	AreaOfStudy string
	Geography   string
}

func (p ProjectContext) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project Title: %s\n", p.Title)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Area of Study: %s\n", p.AreaOfStudy)
	fmt.Fprintf(&b, "Geography: %s\n", p.Geography)
	return b.String()
}

// ErrEmptyOutline is returned when the model response parses to nothing usable.
var ErrEmptyOutline = errors.New("questiongen: model response contained no questions")

// Generator drives the prompt/parse cycle against an LLM provider. Each call
// is bounded by Timeout and retried once on failure before giving up.
type Generator struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewGenerator(provider llm.LLMProvider, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Generator{provider: provider, timeout: timeout}
}

// GenerateQuestions produces main questions with sub-questions for a project.
func (g *Generator) GenerateQuestions(ctx context.Context, project ProjectContext) (QuestionOutline, error) {
	user := fmt.Sprintf("Generate 3-5 main research questions for this project:\n\n%s", project.render())
	raw, err := g.generate(ctx, promptGenerateQuestions, user)
	if err != nil {
		return QuestionOutline{}, err
	}
	outline := ParseQuestionOutline(raw)
	if len(outline.MainQuestions) == 0 {
		return QuestionOutline{}, ErrEmptyOutline
	}
	return outline, nil
}

// MapSubQuestion produces the data requirements and analysis approach for a
// single sub-question.
func (g *Generator) MapSubQuestion(ctx context.Context, project ProjectContext, subQuestion string) (Mapping, error) {
	user := fmt.Sprintf("Project context:\n%s\nAnalyze this sub-question:\nSUB-QUESTION: %s", project.render(), subQuestion)
	raw, err := g.generate(ctx, promptMapSubQuestion, user)
	if err != nil {
		return Mapping{}, err
	}
	mappings := ParseMappings(raw)
	if len(mappings) == 0 {
		return Mapping{}, fmt.Errorf("questiongen: no analysis parsed for sub-question %q", subQuestion)
	}
	m := mappings[0]
	if m.SubQuestion == "" {
		m.SubQuestion = subQuestion
	}
	return m, nil
}

// IdentifyGaps derives missing data variables for an analyzed sub-question.
func (g *Generator) IdentifyGaps(ctx context.Context, subQuestion, dataRequirements string) ([]Gap, error) {
	user := fmt.Sprintf("SUB-QUESTION: %s\n\nDATA REQUIREMENTS:\n%s", subQuestion, dataRequirements)
	raw, err := g.generate(ctx, promptIdentifyGaps, user)
	if err != nil {
		return nil, err
	}
	gaps := ParseGaps(raw)
	if len(gaps) == 0 {
		return nil, fmt.Errorf("questiongen: no gaps parsed for sub-question %q", subQuestion)
	}
	return gaps, nil
}

func (g *Generator) generate(ctx context.Context, system, user string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		out, err := g.provider.Chat(callCtx, messages)
		cancel()
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}
