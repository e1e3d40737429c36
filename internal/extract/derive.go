package extract

import (
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// DerivedAttributes are normalized facts computed deterministically from
// the extracted decision, independent of the LLM.
type DerivedAttributes struct {
	NormalizedBudget   float64 `json:"normalized_budget"`
	HasEUScope         bool    `json:"has_eu_scope"`
	HasPIIUsage        bool    `json:"has_pii_usage"`
	HasDeployment      bool    `json:"has_deployment"`
	IsStrategic        bool    `json:"is_strategic"`
	EstimatedRiskLevel string  `json:"estimated_risk_level"`
}

var euKeywords = []string{"eu", "europe", "european", "gdpr", "germany", "france", "uk"}

// Derive computes normalized attributes from decision fields and text.
func Derive(d *domain.Decision) DerivedAttributes {
	text := d.DecisionStatement
	for _, g := range d.Goals {
		text += " " + g.Description
	}
	lower := strings.ToLower(text)

	out := DerivedAttributes{}

	if d.Cost != nil {
		out.NormalizedBudget = *d.Cost
	} else if v, ok := parseBudget(lower); ok {
		out.NormalizedBudget = v
	} else if containsAny(lower, financialKeywords) {
		out.NormalizedBudget = 50000
	}
	if containsAny(lower, strategicKeywords) && out.NormalizedBudget < 75000 {
		out.NormalizedBudget = 75000
	}

	out.HasEUScope = containsAny(lower, euKeywords)
	out.HasPIIUsage = (d.UsesPII != nil && *d.UsesPII) || containsAny(lower, piiKeywords)
	out.HasDeployment = (d.LaunchDate != nil && *d.LaunchDate) || containsAny(lower, deployKeywords)
	out.IsStrategic = d.StrategicImpact == domain.ImpactHigh ||
		d.StrategicImpact == domain.ImpactCritical ||
		containsAny(lower, strategicKeywords)
	out.EstimatedRiskLevel = estimateRiskLevel(d.Risks)
	return out
}

// estimateRiskLevel averages severity weights over the extracted risks.
func estimateRiskLevel(risks []domain.Risk) string {
	if len(risks) == 0 {
		return "unknown"
	}
	weights := map[string]float64{"critical": 4, "high": 3, "medium": 2, "low": 1}
	total := 0.0
	for _, r := range risks {
		w, ok := weights[strings.ToLower(r.Severity)]
		if !ok {
			w = 2
		}
		total += w
	}
	avg := total / float64(len(risks))
	switch {
	case avg >= 3.5:
		return "critical"
	case avg >= 2.5:
		return "high"
	case avg >= 1.5:
		return "medium"
	default:
		return "low"
	}
}
