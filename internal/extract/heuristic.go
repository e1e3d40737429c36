package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// Keyword tables for the deterministic path. Matching is substring on the
// lowercased statement plus goal descriptions.
var (
	piiKeywords        = []string{"pii", "personal data", "user data", "customer data", "privacy", "gdpr", "data protection", "behavior tracking"}
	deployKeywords     = []string{"launch", "deploy", "release", "go live", "rollout", "ship"}
	hiringKeywords     = []string{"hire", "hiring", "headcount", "recruit", "onboard"}
	complianceKeywords = []string{"bribery", "ethics", "gift", "kickback", "integrity", "sole source"}
	relatedKeywords    = []string{"subsidiary", "affiliate", "related party", "sister company"}
	retroKeywords      = []string{"retroactive", "retroactively", "backdate"}
	strategicKeywords  = []string{"strategic", "company-wide", "major initiative", "expansion", "acquisition", "merger", "market"}
	financialKeywords  = []string{"budget", "cost", "investment", "expense", "purchase", "acquire"}
)

var budgetPatterns = []struct {
	re         *regexp.Regexp
	multiplier float64
}{
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*(?:m\b|million)`), 1_000_000},
	{regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*k\b`), 1_000},
	{regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+)`), 1},
	{regexp.MustCompile(`\$(\d+)`), 1},
	{regexp.MustCompile(`(\d+(?:\.\d+)?)\s*million`), 1_000_000},
}

// Heuristic structures a decision without an LLM. It is intentionally
// shallow: statement passthrough, keyword attribute detection, and a
// mid-range confidence so governance still routes it to review when the
// tenant rules say so.
func Heuristic(text string) domain.Decision {
	statement, _ := truncateRunes(strings.TrimSpace(text), 1000)
	lower := strings.ToLower(statement)

	d := domain.Decision{
		DecisionStatement: statement,
		Goals:             []domain.Goal{},
		KPIs:              []domain.KPI{},
		Risks:             []domain.Risk{},
		Owners:            []domain.Owner{},
		RequiredApprovals: []string{},
		Assumptions:       []domain.Assumption{},
		Confidence:        0.6,
	}

	if cost, ok := parseBudget(lower); ok {
		d.Cost = &cost
	}
	if containsAny(lower, piiKeywords) {
		d.UsesPII = boolPtr(true)
	}
	if containsAny(lower, deployKeywords) {
		d.LaunchDate = boolPtr(true)
	}
	if containsAny(lower, hiringKeywords) {
		d.InvolvesHiring = boolPtr(true)
	}
	if containsAny(lower, complianceKeywords) {
		d.InvolvesComplianceRisk = boolPtr(true)
	}
	if containsAny(lower, relatedKeywords) {
		d.CounterpartyRelation = "related_party"
	}
	if containsAny(lower, retroKeywords) {
		d.PolicyChangeType = "retroactive"
	}
	if containsAny(lower, strategicKeywords) {
		d.StrategicImpact = domain.ImpactHigh
	}
	return d
}

func parseBudget(lower string) (float64, bool) {
	for _, bp := range budgetPatterns {
		m := bp.re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		num := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		return v * bp.multiplier, true
	}
	return 0, false
}

func containsAny(s string, kws []string) bool {
	for _, kw := range kws {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }
