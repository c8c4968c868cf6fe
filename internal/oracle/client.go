package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KaRthiK15789/tablechat-cli/internal/chart"
	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client asks an OpenRouter-compatible chat endpoint to classify a question
// into a structured intent. One attempt per question, no retries: the caller
// falls back to the local keyword classifier on any failure, so a retry loop
// would only add latency to the degraded path.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// NewClient builds a classifier client. Model and timeout fall back to
// sensible defaults when zero-valued.
func NewClient(apiKey, model string, httpTimeout time.Duration) *Client {
	if model == "" {
		model = "openai/gpt-4o-mini"
	}
	if httpTimeout <= 0 {
		httpTimeout = 60 * time.Second
	}
	return &Client{
		httpClient:  &http.Client{Timeout: httpTimeout},
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		model:       model,
		temperature: 0.1,
		maxTokens:   500,
	}
}

// NewClientWithBaseURL allows injecting a custom base URL (used in tests).
func NewClientWithBaseURL(apiKey, model string, httpTimeout time.Duration, baseURL string) *Client {
	c := NewClient(apiKey, model, httpTimeout)
	if baseURL != "" {
		c.baseURL = baseURL
	}
	return c
}

// SetSampling overrides temperature and max_tokens for the request.
func (c *Client) SetSampling(temperature float64, maxTokens int) {
	if temperature > 0 {
		c.temperature = temperature
	}
	if maxTokens > 0 {
		c.maxTokens = maxTokens
	}
}

// ClassifyIntent implements query.Classifier.
func (c *Client) ClassifyIntent(ctx context.Context, question string, ds *dataset.Dataset) (*query.Intent, error) {
	if c.apiKey == "" {
		return nil, errors.New("api key is missing")
	}
	if ds == nil {
		return nil, errors.New("no dataset loaded")
	}

	req := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt(ds)},
			{Role: "user", Content: question},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("HTTP-Referer", "https://github.com/KaRthiK15789/tablechat-cli")
	httpReq.Header.Set("X-Title", "TableChat CLI")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UnreachableError{Host: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyAPIError(resp)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("response contained no choices")
	}
	return parseIntent(out.Choices[0].Message.Content)
}

// intentPayload is the JSON shape the model is asked to produce.
type intentPayload struct {
	Type       string            `json:"type"`
	Columns    []string          `json:"columns"`
	Operations []string          `json:"operations"`
	Conditions []intentCondition `json:"conditions"`
	ChartType  string            `json:"chart_type"`
}

type intentCondition struct {
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// UnmarshalJSON accepts the value field as either a string or a number.
func (ic *intentCondition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Column   string          `json:"column"`
		Operator string          `json:"operator"`
		Value    json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ic.Column = raw.Column
	ic.Operator = raw.Operator
	if len(raw.Value) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.Value, &s); err == nil {
		ic.Value = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.Value, &n); err == nil {
		ic.Value = n.String()
		return nil
	}
	return fmt.Errorf("condition value must be a string or number, got %s", string(raw.Value))
}

var categoryByType = map[string]query.Category{
	"summary_statistics": query.CategorySummary,
	"summary":            query.CategorySummary,
	"filtered_query":     query.CategoryFilter,
	"filter":             query.CategoryFilter,
	"visualization":      query.CategoryVisualization,
	"comparison":         query.CategoryComparison,
	"correlation":        query.CategoryCorrelation,
	"general":            query.CategoryGeneral,
}

var chartKindByName = map[string]chart.Kind{
	"bar":       chart.Bar,
	"histogram": chart.Histogram,
	"line":      chart.Line,
	"scatter":   chart.Scatter,
	"pie":       chart.Pie,
	"box":       chart.Box,
	"boxplot":   chart.Box,
}

// parseIntent extracts a structured intent from the model's reply, tolerating
// markdown code fences around the JSON body.
func parseIntent(content string) (*query.Intent, error) {
	body := stripFences(content)
	var p intentPayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, fmt.Errorf("parse intent json: %w", err)
	}
	cat, ok := categoryByType[strings.ToLower(strings.TrimSpace(p.Type))]
	if !ok {
		return nil, fmt.Errorf("unknown intent type %q", p.Type)
	}
	in := &query.Intent{
		Category:   cat,
		Columns:    p.Columns,
		Operations: p.Operations,
		ChartKind:  chartKindByName[strings.ToLower(strings.TrimSpace(p.ChartType))],
	}
	for _, c := range p.Conditions {
		if c.Column == "" {
			continue
		}
		in.Conditions = append(in.Conditions, query.Condition{
			Column:   c.Column,
			Operator: c.Operator,
			Value:    c.Value,
		})
	}
	return in, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// classifyAPIError maps non-2xx responses to typed errors.
func classifyAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: extractRequestID(resp)}
	if v, ok := raw["error"].(map[string]any); ok {
		if msg, ok := v["message"].(string); ok {
			apiErr.Message = msg
		}
		if code, ok := v["code"].(string); ok {
			apiErr.Code = code
		}
	} else {
		if msg, ok := raw["message"].(string); ok {
			apiErr.Message = msg
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{APIError: apiErr}
	case resp.StatusCode == http.StatusTooManyRequests:
		var ra time.Duration
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := parseRetryAfterSeconds(v); err == nil && secs > 0 {
				ra = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{APIError: apiErr, RetryAfter: ra}
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		return &ServerError{APIError: apiErr}
	}
	return apiErr
}

// parseRetryAfterSeconds interprets a Retry-After header as seconds or an
// HTTP date.
func parseRetryAfterSeconds(v string) (int, error) {
	if s, err := strconv.Atoi(v); err == nil {
		return s, nil
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return int(d.Seconds()), nil
	}
	return 0, fmt.Errorf("invalid Retry-After: %q", v)
}

// extractRequestID pulls a best-effort request ID from common headers.
func extractRequestID(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	keys := []string{"X-Request-Id", "X-Request-ID", "OpenAI-Request-ID", "Openrouter-Request-ID"}
	for _, k := range keys {
		if v := resp.Header.Get(k); v != "" {
			return v
		}
	}
	return ""
}
