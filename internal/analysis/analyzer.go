package analysis

import (
	"context"
	"log"

	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
)

// Analyzer classifies maintenance descriptions. The generative service
// is the primary path; every failure mode (no credentials, transport
// error, schema violation) degrades to the deterministic keyword
// fallback, so Analyze never fails.
type Analyzer struct {
	client *GeminiClient
}

func NewAnalyzer(client *GeminiClient) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze returns a classification for the description, optionally
// informed by an inline image data URL.
func (a *Analyzer) Analyze(ctx context.Context, description, imageDataURL string) domain.AIAnalysis {
	if !a.client.Configured() {
		log.Println("No Gemini API key found, using fallback analysis")
		return fallbackAnalysis(description)
	}

	result, err := a.client.Classify(ctx, description, imageDataURL)
	if err != nil {
		log.Printf("Gemini analysis failed: %v", err)
		return fallbackAnalysis(description)
	}
	return *result
}
