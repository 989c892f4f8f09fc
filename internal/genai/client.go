package genai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/model"
)

// Options configures a Client
type Options struct {
	APIKey        string
	Model         string
	BaseURL       string
	Timeout       time.Duration
	QuizQuestions int
	HTTPClient    *http.Client
}

// Client is a Generator backed by the Gemini generateContent endpoint
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	questions  int
	httpClient *http.Client
}

// NewClient creates a generation client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.QuizQuestions <= 0 {
		opts.QuizQuestions = 5
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		apiKey:     opts.APIKey,
		model:      opts.Model,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		questions:  opts.QuizQuestions,
		httpClient: httpClient,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

type generationConfig struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	ResponseMimeType string   `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema  `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// text joins the parts of the first candidate
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

var quizSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"title": {Type: "STRING"},
		"questions": {
			Type: "ARRAY",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"question":      {Type: "STRING"},
					"options":       {Type: "ARRAY", Items: &schema{Type: "STRING"}},
					"correctAnswer": {Type: "INTEGER", Description: "Index (0-3) of the correct option"},
					"explanation":   {Type: "STRING"},
				},
				Required: []string{"question", "options", "correctAnswer", "explanation"},
			},
		},
	},
	Required: []string{"title", "questions"},
}

// roleFor maps a speaker onto the remote role names
func roleFor(s model.Speaker) string {
	if s == model.SpeakerAssistant {
		return "model"
	}
	return "user"
}

// Chat asks the barista for a reply to message given the prior history
func (c *Client) Chat(ctx context.Context, history []model.Message, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, content{Role: roleFor(m.Speaker), Parts: []part{{Text: m.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: message}}})

	temperature := 0.7
	req := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: BaristaInstruction}}},
		Contents:          contents,
		GenerationConfig:  &generationConfig{Temperature: &temperature},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

// Quiz generates and validates a multiple choice quiz about topic
func (c *Client) Quiz(ctx context.Context, topic string) (*model.Quiz, error) {
	prompt := fmt.Sprintf("Generate a fun and educational %d-question quiz about %q.", c.questions, topic)
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   quizSchema,
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimSpace(resp.text())
	if raw == "" {
		return nil, fmt.Errorf("%w: empty quiz body", ErrMalformedResponse)
	}

	var quiz model.Quiz
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := ValidateQuiz(&quiz); err != nil {
		return nil, err
	}

	logger.Info("Quiz generated",
		logger.F("topic", topic),
		logger.F("questions", len(quiz.Questions)))
	return &quiz, nil
}

func (c *Client) generate(ctx context.Context, body generateRequest) (*generateResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured, run 'digicafe key'", ErrGeneration)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGeneration, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Generation request failed", logger.F("error", err))
		return nil, fmt.Errorf("%w: failed to connect: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrGeneration, err)
	}

	logger.Debug("Generation response",
		logger.F("status", resp.StatusCode),
		logger.F("bytes", len(data)),
		logger.F("duration", time.Since(start).String()))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrGeneration, resp.StatusCode, truncate(string(data), 200))
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGeneration, err)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrGeneration)
	}
	return &out, nil
}

// truncate shortens s to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
