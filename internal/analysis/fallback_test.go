package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackAnalysis_EmergencyPlumbing(t *testing.T) {
	result := fallbackAnalysis("Major water leak in hallway, urgent")

	assert.Equal(t, "Plumbing", result.Domain)
	assert.Equal(t, "Water System Issue", result.Category)
	assert.Equal(t, "URGENT", result.Urgency)
	assert.Equal(t, "HIGH", result.Priority)
	assert.Equal(t, "HIGH", result.Severity)
	assert.Equal(t, "HIGH", result.RiskLevel)
	assert.Equal(t, "$500-2000", result.EstimatedCost)
	assert.Equal(t, "2-8 hours", result.TimeToResolve)
}

func TestFallbackAnalysis_DomainRouting(t *testing.T) {
	cases := []struct {
		description string
		domain      string
		category    string
	}{
		{"flickering light in stairwell", "Electrical", "Electrical System Issue"},
		{"no cool air from the vents", "HVAC", "Climate Control Issue"},
		{"paint peeling near the entrance", "General Maintenance", "Cosmetic Issue"},
		{"crack along the foundation wall", "Structural", "Structural Issue"},
		{"door handle is loose", "General Maintenance", "General Issue"},
	}

	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			result := fallbackAnalysis(tc.description)
			assert.Equal(t, tc.domain, result.Domain)
			assert.Equal(t, tc.category, result.Category)
		})
	}
}

func TestFallbackAnalysis_RoutineIssue(t *testing.T) {
	result := fallbackAnalysis("minor scuff on the wall, routine touch-up")

	assert.Equal(t, "ROUTINE", result.Urgency)
	assert.Equal(t, "LOW", result.Priority)
	assert.Equal(t, "LOW", result.Severity)
	assert.Equal(t, "$50-200", result.EstimatedCost)
	assert.Equal(t, "1-2 weeks", result.TimeToResolve)
}

func TestFallbackAnalysis_DefaultTier(t *testing.T) {
	result := fallbackAnalysis("door handle is loose")

	assert.Equal(t, "STANDARD", result.Urgency)
	assert.Equal(t, "MEDIUM", result.Severity)
	assert.Equal(t, "$100-500", result.EstimatedCost)
	assert.Equal(t, "1-2 days", result.TimeToResolve)
}

func TestFallbackAnalysis_IsTotal(t *testing.T) {
	for _, desc := range []string{"", "xyzzy", "   "} {
		result := fallbackAnalysis(desc)
		assert.NotEmpty(t, result.Domain)
		assert.NotEmpty(t, result.Category)
		assert.NotEmpty(t, result.Urgency)
		assert.InDelta(t, 0.6, result.Confidence, 0.001)
		assert.NotEmpty(t, result.Reasoning)
	}
}

func TestFallbackAnalysis_CaseInsensitive(t *testing.T) {
	upper := fallbackAnalysis("BURST PIPE IN BASEMENT")
	assert.Equal(t, "Plumbing", upper.Domain)
	assert.Equal(t, "URGENT", upper.Urgency)
}
