package rules

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// Engine evaluates tenant governance rules against extracted decisions.
// It is stateless; one engine serves all tenants.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

type ruleHit struct {
	rule      domain.Rule
	condition domain.Condition // first condition that matched
}

// Evaluate runs the full governance pass: rule matching, approval chain,
// risk scoring, flags, review determination, status. The decision's
// RiskScore and ApprovalChain fields are filled in as a side effect.
func (e *Engine) Evaluate(d *domain.Decision, company *domain.Company) domain.Evaluation {
	hits := e.matchRules(d, company.Rules)

	score := computeRiskScore(d)
	if d.RiskScore == nil {
		d.RiskScore = &score
	}

	chain := buildChain(hits, company)
	d.ApprovalChain = chain

	owner := inferOwner(d, chain, company)
	flags := detectFlags(d, score, hits, owner)

	triggered := make([]domain.TriggeredRule, 0, len(hits))
	for _, h := range hits {
		triggered = append(triggered, domain.TriggeredRule{
			RuleID:    h.rule.ID,
			Name:      h.rule.Name,
			Type:      h.rule.Type,
			Severity:  h.rule.Severity,
			Action:    h.rule.Action,
			Rationale: fmt.Sprintf("%s (matched on %s)", h.rule.Rationale, h.condition.Field),
		})
	}

	ev := domain.Evaluation{
		TriggeredRules:      triggered,
		ApprovalChain:       chain,
		Flags:               flags,
		RiskScore:           score,
		RequiresHumanReview: requiresReview(d, score, chain, flags, hits),
		Status:              governanceStatus(score, chain, flags),
		InferredOwner:       owner,
	}

	slog.Info("governance evaluated",
		"company_id", company.ID,
		"triggered", len(triggered),
		"chain_len", len(chain),
		"flags", len(flags),
		"risk_score", score,
		"status", ev.Status)
	return ev
}

// matchRules evaluates active rules in priority order; a rule fires when
// any of its conditions holds (OR, short-circuit).
func (e *Engine) matchRules(d *domain.Decision, rules []domain.Rule) []ruleHit {
	ordered := make([]domain.Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	var hits []ruleHit
	for _, rule := range ordered {
		if !rule.Active {
			continue
		}
		for _, cond := range rule.Conditions {
			if evalCondition(cond, d) {
				hits = append(hits, ruleHit{rule: rule, condition: cond})
				break
			}
		}
	}
	return hits
}

// computeRiskScore keeps an extracted score when present, otherwise sums
// severity weights over the extracted risks, clamped to 10. Risks without
// a severity count as medium.
func computeRiskScore(d *domain.Decision) float64 {
	if d.RiskScore != nil {
		return *d.RiskScore
	}
	if len(d.Risks) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range d.Risks {
		sev := domain.Severity(strings.ToLower(r.Severity))
		if sev.Rank() == 0 {
			sev = domain.SeverityMedium
		}
		total += sev.Weight()
	}
	return math.Round(math.Min(total, 10)*10) / 10
}
