package api

import (
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// NormalizedFlag is the client-facing shape of a governance flag code.
type NormalizedFlag struct {
	Code     string `json:"code"`
	Category string `json:"category"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// NormalizedRule is one rule with its evaluation outcome. Responses
// list every tenant rule so clients can render passed rules too.
type NormalizedRule struct {
	RuleID   string `json:"rule_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Status   string `json:"status"` // TRIGGERED | PASSED
	Reason   string `json:"reason,omitempty"`
}

// NormalizedStep is one approval chain entry with display fields.
type NormalizedStep struct {
	ApproverID   string `json:"approver_id"`
	ApproverName string `json:"approver_name"`
	Role         string `json:"role"`
	Level        int    `json:"level"`
	LevelName    string `json:"level_name"`
	Required     bool   `json:"required"`
	AuthType     string `json:"auth_type"`
	Status       string `json:"status"`
	Rationale    string `json:"rationale,omitempty"`
}

// NormalizedGovernance is the evaluation shaped for API responses.
type NormalizedGovernance struct {
	Status              string                `json:"status"`
	RiskScore           float64               `json:"risk_score"`
	RequiresHumanReview bool                  `json:"requires_human_review"`
	Flags               []NormalizedFlag      `json:"flags"`
	AllRules            []NormalizedRule      `json:"all_rules"`
	ApprovalChain       []NormalizedStep      `json:"approval_chain"`
	InferredOwner       *domain.InferredOwner `json:"inferred_owner,omitempty"`
}

// flagPattern maps flag codes to display metadata by substring match,
// first match wins.
type flagPattern struct {
	pattern  string
	category string
	severity string
	message  string
}

var flagPatterns = []flagPattern{
	{"MISSING_OWNER", "ownership", "medium", "No accountable owner is assigned to this decision"},
	{"MISSING_RISK", "risk", "medium", "Risk assessment is missing or incomplete"},
	{"HIGH_RISK", "risk", "high", "Aggregate risk score exceeds the high-risk threshold"},
	{"STRATEGIC_CRITICAL", "strategic", "critical", "Decision has critical strategic impact"},
	{"STRATEGIC_MISALIGNMENT", "strategic", "medium", "Decision is not mapped to any strategic goal"},
	{"CRITICAL_CONFLICT", "conflict", "critical", "Critical governance conflict detected"},
	{"PRIVACY", "privacy", "high", "Decision involves personal data and requires privacy review"},
	{"FINANCIAL", "financial", "high", "Decision cost exceeds a governance threshold"},
	{"COVERAGE_GAP", "coverage", "low", "No governance rules cover this substantive decision"},
}

func normalizeFlag(code string) NormalizedFlag {
	for _, p := range flagPatterns {
		if strings.Contains(code, p.pattern) {
			return NormalizedFlag{Code: code, Category: p.category, Severity: p.severity, Message: p.message}
		}
	}
	return NormalizedFlag{Code: code, Category: "general", Severity: "medium", Message: "Governance flag: " + code}
}

// normalizeGovernance shapes the raw evaluation for clients. The
// MISSING_OWNER flag is dropped when an owner was inferred at
// department level or below, since accountability is resolvable
// without escalation. A zero risk score is replaced with a floor
// synthesized from rule and flag severities.
func normalizeGovernance(ev *domain.Evaluation, allRules []domain.Rule) NormalizedGovernance {
	out := NormalizedGovernance{
		Status:              ev.Status,
		RiskScore:           ev.RiskScore,
		RequiresHumanReview: ev.RequiresHumanReview,
		Flags:               []NormalizedFlag{},
		AllRules:            []NormalizedRule{},
		ApprovalChain:       []NormalizedStep{},
		InferredOwner:       ev.InferredOwner,
	}

	suppressMissingOwner := ev.InferredOwner != nil && ev.InferredOwner.DepartmentLevel
	for _, code := range ev.Flags {
		if code == domain.FlagMissingOwner && suppressMissingOwner {
			continue
		}
		out.Flags = append(out.Flags, normalizeFlag(code))
	}

	triggered := map[string]domain.TriggeredRule{}
	for _, tr := range ev.TriggeredRules {
		triggered[tr.RuleID] = tr
	}
	for _, rule := range allRules {
		// Inactive rules were never evaluated; listing them as PASSED
		// would misreport coverage.
		if !rule.Active {
			continue
		}
		nr := NormalizedRule{
			RuleID:   rule.ID,
			Name:     rule.Name,
			Type:     rule.Type,
			Severity: string(rule.Severity),
			Status:   "PASSED",
		}
		if tr, ok := triggered[rule.ID]; ok {
			nr.Status = "TRIGGERED"
			nr.Reason = tr.Rationale
		}
		out.AllRules = append(out.AllRules, nr)
	}

	for _, step := range ev.ApprovalChain {
		authType := domain.AuthRequired
		if step.RuleAction == domain.ActionRequireReview {
			authType = domain.AuthEscalation
		}
		out.ApprovalChain = append(out.ApprovalChain, NormalizedStep{
			ApproverID:   step.ApproverID,
			ApproverName: step.ApproverName,
			Role:         step.Role,
			Level:        step.Level.Rank(),
			LevelName:    step.Level.DisplayName(),
			Required:     step.Required,
			AuthType:     authType,
			Status:       "pending",
			Rationale:    step.Rationale,
		})
	}

	if out.RiskScore == 0 {
		out.RiskScore = synthesizeRiskScore(ev)
	}
	return out
}

// synthesizeRiskScore floors the score from rule and flag severity when
// the engine produced zero.
func synthesizeRiskScore(ev *domain.Evaluation) float64 {
	var hasCriticalRule, hasHighRule bool
	for _, tr := range ev.TriggeredRules {
		switch tr.Severity {
		case domain.SeverityCritical:
			hasCriticalRule = true
		case domain.SeverityHigh:
			hasHighRule = true
		}
	}
	var hasCriticalFlag, hasHighFlag bool
	for _, code := range ev.Flags {
		f := normalizeFlag(code)
		switch f.Severity {
		case "critical":
			hasCriticalFlag = true
		case "high":
			hasHighFlag = true
		}
	}

	switch {
	case hasCriticalRule:
		return 9
	case hasCriticalFlag:
		return 8
	case hasHighRule:
		return 7
	case hasHighFlag:
		return 6
	case len(ev.Flags) > 0:
		return 3
	default:
		return 1
	}
}
