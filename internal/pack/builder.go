package pack

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/govlayer/backend/internal/domain"
)

const titleMaxLen = 80

// Build assembles the execution-ready decision pack from the decision,
// its governance evaluation, and the reasoning verdict.
func Build(d *domain.Decision, ev *domain.Evaluation, verdict *domain.Verdict) domain.DecisionPack {
	missing := missingItems(d)
	reason := conclusionReason(ev, missing)

	p := domain.DecisionPack{
		PackID:           "pack_" + uuid.NewString()[:8],
		Title:            title(d, ev),
		Summary:          summary(d, ev, verdict, reason),
		ConclusionReason: reason,
		Approvals:        approvals(ev.ApprovalChain),
		Risks:            risks(d.Risks),
		NextActions:      nextActions(d, ev, missing),
		MissingItems:     missing,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	return p
}

// title truncates the statement at a word boundary and prefixes the
// severity marker when governance escalated.
func title(d *domain.Decision, ev *domain.Evaluation) string {
	t := truncateAtWord(d.DecisionStatement, titleMaxLen)
	switch {
	case ev.Status == domain.StatusBlocked || d.StrategicImpact == domain.ImpactCritical:
		return "[CRITICAL] " + t
	case ev.RiskScore >= 7.0 || d.StrategicImpact == domain.ImpactHigh:
		return "[HIGH] " + t
	}
	return t
}

func truncateAtWord(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max-3]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}

// missingItems reports structural omissions only. Flags are surfaced
// separately through the normalizer and never duplicated here. KPIs and
// goals are expected only of high or critical strategic-impact decisions;
// their absence on lesser decisions is not a gap.
func missingItems(d *domain.Decision) []string {
	var missing []string
	if len(d.Owners) == 0 {
		missing = append(missing, "Missing owner")
	}
	strategic := d.StrategicImpact == domain.ImpactHigh ||
		d.StrategicImpact == domain.ImpactCritical
	if strategic && len(d.KPIs) == 0 {
		missing = append(missing, "Missing KPI")
	}
	if len(d.Risks) == 0 {
		missing = append(missing, "Missing risk")
	}
	if strategic && len(d.Goals) == 0 {
		missing = append(missing, "Missing goals")
	}
	return missing
}

// conclusionReason renders the one-sentence "why" for the summary. Each
// combination of status, approvers, and structural gaps gets its own form
// so the reader knows what unblocks the decision.
func conclusionReason(ev *domain.Evaluation, missing []string) string {
	approvers := approverRoles(ev.ApprovalChain)
	switch ev.Status {
	case domain.StatusBlocked:
		switch {
		case len(approvers) > 0 && len(missing) == 0:
			return fmt.Sprintf("Blocked: resolvable with %s approval", strings.Join(approvers, " and "))
		case len(missing) > 0:
			return "Blocked: resolve the structural gaps before seeking approval"
		default:
			return "Blocked: critical governance conflicts have no direct resolution path; escalate to leadership"
		}
	case domain.StatusReviewRequired:
		if len(approvers) > 0 {
			return fmt.Sprintf("Review required: pending approval from %s", strings.Join(approvers, " and "))
		}
		return fmt.Sprintf("Review required: %d governance flag(s) raised", len(ev.Flags))
	default:
		return "Compliant: no governance rules or flags were triggered"
	}
}

func approverRoles(chain []domain.ApprovalStep) []string {
	var roles []string
	seen := map[string]bool{}
	for _, step := range chain {
		if step.Role == "" || seen[step.Role] {
			continue
		}
		seen[step.Role] = true
		roles = append(roles, step.Role)
	}
	return roles
}

func summary(d *domain.Decision, ev *domain.Evaluation, verdict *domain.Verdict, reason string) string {
	var b strings.Builder
	b.WriteString(d.DecisionStatement)
	fmt.Fprintf(&b, " Risk score %.1f with governance status %q. %s.",
		ev.RiskScore, ev.Status, reason)
	if verdict != nil && verdict.Recommendation != "" {
		fmt.Fprintf(&b, " Reasoning: %s.", verdict.Recommendation)
	}
	return b.String()
}

func approvals(chain []domain.ApprovalStep) []domain.PackApproval {
	out := make([]domain.PackApproval, 0, len(chain))
	for _, step := range chain {
		out = append(out, domain.PackApproval{
			ApproverName: step.ApproverName,
			Role:         step.Role,
			Level:        step.Level.DisplayName(),
			Reason:       step.Rationale,
		})
	}
	return out
}

func risks(in []domain.Risk) []domain.PackRisk {
	out := make([]domain.PackRisk, 0, len(in))
	for _, r := range in {
		sev := r.Severity
		if sev == "" {
			sev = "medium"
		}
		out = append(out, domain.PackRisk{
			Description: r.Description,
			Severity:    sev,
			Mitigation:  r.Mitigation,
		})
	}
	return out
}

// nextActions generates deterministic follow-ups: blocked resolution
// first, then structural repairs, then approvals, then rule-type
// specific actions.
func nextActions(d *domain.Decision, ev *domain.Evaluation, missing []string) []string {
	var actions []string
	add := func(a string) {
		for _, existing := range actions {
			if existing == a {
				return
			}
		}
		actions = append(actions, a)
	}

	if ev.Status == domain.StatusBlocked {
		add("Resolve blocking conflicts before proceeding")
	}

	for _, m := range missing {
		switch m {
		case "Missing owner":
			add("Assign an accountable owner")
		case "Missing KPI":
			add("Define measurable KPI and target")
		case "Missing risk":
			add("Add risk assessment and mitigation")
		case "Missing goals":
			add("Define organizational goals for this decision")
		}
	}

	if len(ev.ApprovalChain) > 0 {
		var roles []string
		for _, step := range ev.ApprovalChain {
			if step.Required {
				roles = append(roles, step.Role)
			}
		}
		if len(roles) > 0 {
			add("Request approvals: " + strings.Join(roles, ", "))
		}
	}

	for _, rule := range ev.TriggeredRules {
		switch rule.Type {
		case domain.RuleTypeFinancial:
			add("Confirm budget justification with Finance")
			add("Prepare financial impact analysis")
		case domain.RuleTypePrivacy:
			add("Initiate privacy and data protection review")
		case domain.RuleTypeCompliance:
			add("Schedule a compliance review before execution")
		case domain.RuleTypeStrategic:
			add("Map the decision to an active strategic goal")
		case domain.RuleTypeHiring:
			add("Validate the headcount plan with the People team")
		}
	}

	for _, f := range ev.Flags {
		if f == domain.FlagGovernanceCoverageGap {
			add("Propose a governance rule covering " + coverageGapSubject(d))
			break
		}
	}

	if len(actions) == 0 && ev.Status == domain.StatusCompliant {
		add("Proceed with execution after final review")
	}
	return actions
}

// coverageGapSubject names what the missing rule should cover: the first
// extracted risk when one exists, else the statement itself.
func coverageGapSubject(d *domain.Decision) string {
	if len(d.Risks) > 0 {
		return fmt.Sprintf("the risk %q", d.Risks[0].Description)
	}
	return fmt.Sprintf("decisions like %q", truncateAtWord(d.DecisionStatement, 60))
}
