// Package llm wraps the locally hosted Ollama generate API for narrative
// rewriting. The model is trusted most of the time; a drift guard and a
// deterministic fallback cover the cases where it cannot be.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const systemPrompt = `You are an AI legal billing assistant for a law firm.

Your job is to REWRITE time entry narratives to:
- Improve clarity
- Match professional legal billing language
- Respect client billing guidelines

STRICT RULES:
- Do NOT change the number of hours.
- Do NOT add new tasks that were not clearly implied.
- Do NOT invent work or exaggerate.
- You may make the language more professional, but the substantive meaning must remain.

You MUST respond in JSON ONLY with this exact structure:

{
  "standard": "<cleaned version of the narrative>",
  "client_compliant": "<version tuned to client rules>",
  "audit_safe": "<version that is extra clear and defensible in audits>",
  "notes": "<brief explanation of what you changed and why>"
}

Do not include any explanation outside the JSON.`

const (
	requestTimeout = 90 * time.Second

	// Requests per second allowed toward the Ollama endpoint.
	requestsPerSecond = 2
	burstSize         = 4
)

// Rules is the free-form rule set sent to the model as JSON.
type Rules map[string]interface{}

// Result holds the three rewrite variants plus the model's notes.
type Result struct {
	Standard        string `json:"standard"`
	ClientCompliant string `json:"client_compliant"`
	AuditSafe       string `json:"audit_safe"`
	Notes           string `json:"notes"`
	// Fallback is true when the model output was rejected and the
	// deterministic cleanup was used instead.
	Fallback bool `json:"-"`
}

// Rewriter produces rewrite variants for a narrative.
type Rewriter interface {
	Rewrite(ctx context.Context, original string, hours decimal.Decimal, rules Rules) Result
	ModelName() string
	Ping(ctx context.Context) error
}

// Client calls the Ollama generate endpoint.
type Client struct {
	url        string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Ensure Client implements Rewriter
var _ Rewriter = (*Client)(nil)

// NewClient creates an Ollama client for the given generate URL and model.
func NewClient(url, model string) *Client {
	return &Client{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Rewrite calls the model and validates its output. Any failure along the
// way (network, unparsable output, missing fields, extreme drift) degrades
// to the deterministic fallback so the caller always gets a usable result.
func (c *Client) Rewrite(ctx context.Context, original string, hours decimal.Decimal, rules Rules) Result {
	raw, err := c.generate(ctx, buildPrompt(original, hours, rules))
	if err != nil {
		return fallbackRewrite(original)
	}

	parsed, err := extractJSON(raw)
	if err != nil {
		return fallbackRewrite(original)
	}

	result, ok := resultFromParsed(parsed)
	if !ok {
		return fallbackRewrite(original)
	}

	// Only reject when the change is extreme.
	if tooMuchDrift(original, result.Standard) {
		return fallbackRewrite(original)
	}

	return result
}

// Ping checks that the Ollama server answers on its tags endpoint.
func (c *Client) Ping(ctx context.Context) error {
	base := c.url
	if idx := strings.LastIndex(base, "/"); idx != -1 {
		base = base[:idx]
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/tags", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	payload, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return body.Response, nil
}

func buildPrompt(original string, hours decimal.Decimal, rules Rules) string {
	if rules == nil {
		rules = Rules{}
	}
	rulesJSON, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		rulesJSON = []byte("{}")
	}

	userPrompt := fmt.Sprintf("Hours: %s\nOriginal narrative: %s\n\nClient rules (JSON):\n%s",
		hours.String(), original, rulesJSON)
	return systemPrompt + "\n\n" + userPrompt
}

// extractJSON parses model output as JSON. When the model wraps JSON in
// extra prose, the first {...} block is sliced out and parsed.
func extractJSON(text string) (map[string]interface{}, error) {
	text = strings.TrimSpace(text)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return parsed, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}
	return parsed, nil
}

func resultFromParsed(parsed map[string]interface{}) (Result, bool) {
	standard, ok := parsed["standard"].(string)
	if !ok {
		return Result{}, false
	}
	clientCompliant, ok := parsed["client_compliant"].(string)
	if !ok {
		return Result{}, false
	}
	auditSafe, ok := parsed["audit_safe"].(string)
	if !ok {
		return Result{}, false
	}

	notes := ""
	switch v := parsed["notes"].(type) {
	case string:
		notes = v
	case nil:
	default:
		notes = fmt.Sprint(v)
	}

	return Result{
		Standard:        strings.TrimSpace(standard),
		ClientCompliant: strings.TrimSpace(clientCompliant),
		AuditSafe:       strings.TrimSpace(auditSafe),
		Notes:           strings.TrimSpace(notes),
	}, true
}

// fallbackRewrite is the minimal safe rewrite used when the model output is
// unusable: capitalize, terminate, keep the original wording.
func fallbackRewrite(original string) Result {
	text := strings.TrimSpace(original)
	if text == "" {
		text = "Performed legal services."
	}
	text = strings.ToUpper(text[:1]) + text[1:]
	if !strings.HasSuffix(text, ".") {
		text += "."
	}

	note := "LLM rewrite was rejected due to potential semantic change or invalid output. " +
		"Using a minimal cleaned version that preserves the original wording."

	return Result{
		Standard:        text,
		ClientCompliant: text,
		AuditSafe:       text,
		Notes:           note,
		Fallback:        true,
	}
}
