package rules

import (
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// detectFlags raises governance flags. Structural flags come from the
// decision shape, rule-based flags from the triggered rule types. Each
// flag appears at most once, in detection order.
func detectFlags(d *domain.Decision, riskScore float64, hits []ruleHit, owner *domain.InferredOwner) []string {
	var flags []string
	add := func(f string) {
		for _, existing := range flags {
			if existing == f {
				return
			}
		}
		flags = append(flags, f)
	}

	// Structural flags. MISSING_OWNER fires only when inference also
	// failed; risks with missing severities are tolerated.
	if len(d.Owners) == 0 && owner == nil {
		add(domain.FlagMissingOwner)
	}
	if len(d.Risks) == 0 {
		add(domain.FlagMissingRiskAssessment)
	}
	if riskScore >= 7.0 {
		add(domain.FlagHighRisk)
	}
	if d.StrategicImpact == domain.ImpactCritical {
		add(domain.FlagStrategicCritical)
	}
	if len(d.KPIs) > 5 || len(d.Goals) > 5 {
		add(domain.FlagCriticalConflict)
	}

	// Rule-based flags.
	for _, h := range hits {
		switch h.rule.Type {
		case domain.RuleTypePrivacy:
			add(domain.FlagPrivacyReviewRequired)
		case domain.RuleTypeFinancial:
			add(domain.FlagFinancialThresholdExceeded)
		case domain.RuleTypeStrategic:
			add(domain.FlagStrategicCritical)
		}
		if h.rule.Severity == domain.SeverityCritical {
			add(domain.FlagCriticalConflict)
		}
		if h.rule.Action == domain.ActionRequireGoalMapping && len(d.Goals) == 0 {
			add(domain.FlagStrategicMisalignment)
		}
	}

	// Coverage gap: a substantive decision that no rule examined.
	if len(hits) == 0 && d.Substantive() && d.Confidence > 0.3 {
		add(domain.FlagGovernanceCoverageGap)
	}

	return flags
}

// requiresReview applies the human-review predicate.
func requiresReview(d *domain.Decision, riskScore float64, chain []domain.ApprovalStep, flags []string, hits []ruleHit) bool {
	if len(flags) > 0 || len(chain) > 0 {
		return true
	}
	for _, h := range hits {
		switch h.rule.Type {
		case domain.RuleTypeCompliance, domain.RuleTypePrivacy,
			domain.RuleTypeStrategic, domain.RuleTypeFinancial:
			return true
		}
	}
	if riskScore >= 7.0 {
		return true
	}
	if d.StrategicImpact == domain.ImpactHigh || d.StrategicImpact == domain.ImpactCritical {
		return true
	}
	return d.Confidence < 0.7
}

// governanceStatus collapses the evaluation into one status.
func governanceStatus(riskScore float64, chain []domain.ApprovalStep, flags []string) string {
	for _, f := range flags {
		if strings.Contains(f, "CRITICAL") {
			return domain.StatusBlocked
		}
	}
	if len(chain) > 0 || len(flags) > 0 || riskScore >= 4.0 {
		return domain.StatusReviewRequired
	}
	return domain.StatusCompliant
}
