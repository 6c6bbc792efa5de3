package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"talk-to-legends-be/pkg/llm"
)

const DefaultBaseURL = "https://api-inference.huggingface.co"

// HuggingFaceProvider talks to the Inference API text-generation task.
type HuggingFaceProvider struct {
	apiKey   string
	baseURL  string
	model    string
	defaults llm.Options
	client   *http.Client
}

var _ llm.LLMProvider = &HuggingFaceProvider{}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	MaxLength   int     `json:"max_length,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	DoSample    bool    `json:"do_sample,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

func NewHuggingFaceProvider(apiKey, baseURL, model string, defaults llm.Options) *HuggingFaceProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HuggingFaceProvider{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		defaults: defaults,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BuildPrompt flattens a chat history into the plain-text format the
// text-generation models were prompted with.
func BuildPrompt(history []llm.Message) string {
	var system []string
	var sb strings.Builder
	for _, m := range history {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleAssistant:
			sb.WriteString("\n\nResponse: ")
			sb.WriteString(m.Content)
		default:
			sb.WriteString("\n\nHuman: ")
			sb.WriteString(m.Content)
		}
	}
	return strings.Join(system, "\n") + sb.String() + "\n\nResponse:"
}

func (p *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.Generate(ctx, BuildPrompt(history), options...)
}

func (p *HuggingFaceProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := llm.Apply(p.defaults, options...)
	model := p.model
	if opts.Model != "" {
		model = opts.Model
	}

	reqBody := generationRequest{
		Inputs: prompt,
		Parameters: generationParameters{
			MaxLength:   opts.MaxTokens,
			Temperature: opts.Temperature,
			DoSample:    opts.TopP > 0,
			TopP:        opts.TopP,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: huggingface request failed: %v", llm.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", llm.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", llm.StatusError("huggingface", resp.StatusCode, bodyBytes)
	}

	text, err := decodeGeneration(bodyBytes)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(strings.Replace(text, prompt, "", 1))
	if text == "" {
		return "", fmt.Errorf("%w: empty generated_text", llm.ErrMalformedResponse)
	}
	return text, nil
}

// decodeGeneration accepts both the list form and the bare string form.
func decodeGeneration(body []byte) (string, error) {
	var list []generation
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 || list[0].GeneratedText == "" {
			return "", fmt.Errorf("%w: missing generated_text", llm.ErrMalformedResponse)
		}
		return list[0].GeneratedText, nil
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s, nil
	}

	return "", fmt.Errorf("%w: unexpected body shape", llm.ErrMalformedResponse)
}
