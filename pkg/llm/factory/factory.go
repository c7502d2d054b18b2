package factory

import (
	"fmt"

	"research-assistant-be/pkg/llm"
	"research-assistant-be/pkg/llm/huggingface"
	"research-assistant-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured backend. providerType is "ollama"
// or "huggingface".
func NewLLMProvider(providerType, modelName, baseURL, hfAPIKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.New(baseURL, modelName), nil
	case "huggingface":
		return huggingface.New(hfAPIKey, "", modelName), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", providerType)
	}
}
