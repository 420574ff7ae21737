package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"golang.org/x/time/rate"

	"github.com/maintain-ai/maintain-backend/config"
	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
)

// dataURLPattern extracts mime type and payload from an inline image
// data URL (data:image/jpeg;base64,...).
var dataURLPattern = regexp.MustCompile(`^data:([^;]+);base64,(.+)$`)

// GeminiClient talks to the generative classification endpoint. Requests
// are bounded by the configured timeout and throttled client-side so a
// burst of analyze calls cannot hammer the upstream quota.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	limiter *rate.Limiter
}

func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

// Configured reports whether the client has credentials to call the
// upstream service at all.
func (c *GeminiClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// responseSchema constrains the model output to the classification shape.
var responseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "domain": {"type": "string"},
    "category": {"type": "string"},
    "urgency": {"type": "string"},
    "priority": {"type": "string"},
    "severity": {"type": "string"},
    "confidence": {"type": "number"},
    "reasoning": {"type": "string"},
    "estimatedCost": {"type": "string"},
    "timeToResolve": {"type": "string"},
    "riskLevel": {"type": "string"}
  },
  "required": ["domain", "category", "urgency", "priority", "severity",
    "confidence", "reasoning", "estimatedCost", "timeToResolve", "riskLevel"]
}`)

const promptTemplate = `You are an expert facility maintenance analyst with 20+ years of experience. Analyze this maintenance issue comprehensively using BOTH the image and description provided.

DESCRIPTION: %q

ANALYSIS INSTRUCTIONS:
1. Examine the uploaded image carefully for visual evidence of the maintenance issue
2. Use the description to provide context, but prioritize what you can see in the image
3. Look for visual indicators of damage, wear, malfunction, or safety hazards
4. Assess the severity based on visual evidence in the image

DOMAINS: Plumbing, Electrical, HVAC, Structural, Fire Safety, Security, IT/Technology, Landscaping, Cleaning, General Maintenance

URGENCY (Response Time): IMMEDIATE (0-2 hours), URGENT (2-24 hours), STANDARD (1-7 days), ROUTINE (1-4 weeks)
PRIORITY (Business Impact): CRITICAL, HIGH, MEDIUM, LOW
SEVERITY (Risk Level): CRITICAL, HIGH, MEDIUM, LOW
RISK LEVEL: LOW, MEDIUM, HIGH, CRITICAL

Base your analysis primarily on what you observe in the image. Respond with valid JSON only.`

// Classify sends the description (and optional inline image) to the
// generative endpoint and decodes the constrained JSON result.
func (c *GeminiClient) Classify(ctx context.Context, description, imageDataURL string) (*domain.AIAnalysis, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("gemini: no API key configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("gemini: rate limiter: %w", err)
	}

	parts := make([]geminiPart, 0, 2)
	if imageDataURL != "" {
		if m := dataURLPattern.FindStringSubmatch(imageDataURL); m != nil {
			parts = append(parts, geminiPart{
				InlineData: &geminiInlineData{MimeType: m[1], Data: m[2]},
			})
		}
	}
	parts = append(parts, geminiPart{Text: fmt.Sprintf(promptTemplate, description)})

	body, _ := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini: status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini: decode: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: empty response")
	}

	var analysis domain.AIAnalysis
	if err := json.Unmarshal([]byte(out.Candidates[0].Content.Parts[0].Text), &analysis); err != nil {
		return nil, fmt.Errorf("gemini: malformed result JSON: %w", err)
	}
	if err := validateAnalysis(&analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func validateAnalysis(a *domain.AIAnalysis) error {
	switch {
	case a.Domain == "", a.Category == "", a.Urgency == "",
		a.Priority == "", a.Severity == "", a.Reasoning == "":
		return fmt.Errorf("gemini: result missing required fields")
	case a.Confidence < 0 || a.Confidence > 1:
		return fmt.Errorf("gemini: confidence %v out of range", a.Confidence)
	}
	return nil
}
