package analysis

import (
	"strings"

	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
)

var emergencyKeywords = []string{
	"leak", "flood", "fire", "exposed", "emergency",
	"urgent", "danger", "broken", "burst",
}

// fallbackAnalysis is the deterministic keyword classifier used when the
// generative service cannot be reached or returns garbage. It is total:
// every description maps to a valid result.
func fallbackAnalysis(description string) domain.AIAnalysis {
	text := strings.ToLower(description)

	isEmergency := false
	for _, kw := range emergencyKeywords {
		if strings.Contains(text, kw) {
			isEmergency = true
			break
		}
	}

	issueDomain := "General Maintenance"
	category := "General Issue"
	switch {
	case containsAny(text, "water", "leak", "pipe", "plumb"):
		issueDomain = "Plumbing"
		category = "Water System Issue"
	case containsAny(text, "light", "electric", "power", "outlet"):
		issueDomain = "Electrical"
		category = "Electrical System Issue"
	case containsAny(text, "heat", "cool", "hvac", "air"):
		issueDomain = "HVAC"
		category = "Climate Control Issue"
	case containsAny(text, "paint", "cosmetic", "appearance"):
		issueDomain = "General Maintenance"
		category = "Cosmetic Issue"
	case containsAny(text, "structure", "crack", "foundation"):
		issueDomain = "Structural"
		category = "Structural Issue"
	}

	urgency := "STANDARD"
	priority := "MEDIUM"
	severity := "MEDIUM"
	riskLevel := "MEDIUM"
	estimatedCost := "$100-500"
	timeToResolve := "1-2 days"

	if isEmergency || containsAny(text, "urgent", "immediate") {
		urgency = "URGENT"
		priority = "HIGH"
		severity = "HIGH"
		riskLevel = "HIGH"
		estimatedCost = "$500-2000"
		timeToResolve = "2-8 hours"
	} else if containsAny(text, "minor", "cosmetic", "routine") {
		urgency = "ROUTINE"
		priority = "LOW"
		severity = "LOW"
		riskLevel = "LOW"
		estimatedCost = "$50-200"
		timeToResolve = "1-2 weeks"
	}

	return domain.AIAnalysis{
		Domain:     issueDomain,
		Category:   category,
		Urgency:    urgency,
		Priority:   priority,
		Severity:   severity,
		Confidence: 0.6,
		Reasoning: "Fallback analysis due to AI service unavailability. " +
			"Manual review recommended for accurate assessment.",
		EstimatedCost: estimatedCost,
		TimeToResolve: timeToResolve,
		RiskLevel:     riskLevel,
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
