package pack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govlayer/backend/internal/domain"
)

func baseDecision() *domain.Decision {
	return &domain.Decision{
		DecisionStatement: "Migrate the billing stack to the new provider",
		Owners:            []domain.Owner{{Name: "Lena Fischer", Role: "VP Engineering"}},
		Goals:             []domain.Goal{{Description: "Lower invoice latency"}},
		KPIs:              []domain.KPI{{Name: "Invoice latency"}},
		Risks:             []domain.Risk{{Description: "Cutover outage", Severity: "high", Mitigation: "dual-run"}},
	}
}

func TestBuildBasicShape(t *testing.T) {
	ev := &domain.Evaluation{Status: domain.StatusCompliant, RiskScore: 2.0}
	v := &domain.Verdict{Recommendation: "Proceed with standard execution"}

	p := Build(baseDecision(), ev, v)

	assert.True(t, strings.HasPrefix(p.PackID, "pack_"))
	assert.Len(t, p.PackID, len("pack_")+8)
	assert.Equal(t, "Migrate the billing stack to the new provider", p.Title)
	assert.Contains(t, p.Summary, "Risk score 2.0")
	assert.Contains(t, p.Summary, "Reasoning: Proceed with standard execution.")
	assert.Contains(t, p.ConclusionReason, "Compliant")
	assert.Empty(t, p.MissingItems)
	assert.NotEmpty(t, p.CreatedAt)
	require.Len(t, p.Risks, 1)
	assert.Equal(t, "dual-run", p.Risks[0].Mitigation)
	assert.Equal(t, []string{"Proceed with execution after final review"}, p.NextActions)
}

func TestTitleTruncatesAtWordBoundary(t *testing.T) {
	d := baseDecision()
	d.DecisionStatement = strings.Repeat("migrate everything ", 10) // 190 chars
	p := Build(d, &domain.Evaluation{Status: domain.StatusCompliant}, nil)

	assert.LessOrEqual(t, len(p.Title), 80)
	assert.True(t, strings.HasSuffix(p.Title, "..."))
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(p.Title, "..."), " "))
}

func TestTitleSeverityPrefixes(t *testing.T) {
	d := baseDecision()

	p := Build(d, &domain.Evaluation{Status: domain.StatusBlocked}, nil)
	assert.True(t, strings.HasPrefix(p.Title, "[CRITICAL] "))

	p = Build(d, &domain.Evaluation{Status: domain.StatusReviewRequired, RiskScore: 7.0}, nil)
	assert.True(t, strings.HasPrefix(p.Title, "[HIGH] "))

	d.StrategicImpact = domain.ImpactCritical
	p = Build(d, &domain.Evaluation{Status: domain.StatusCompliant}, nil)
	assert.True(t, strings.HasPrefix(p.Title, "[CRITICAL] "))

	d.StrategicImpact = domain.ImpactHigh
	p = Build(d, &domain.Evaluation{Status: domain.StatusCompliant}, nil)
	assert.True(t, strings.HasPrefix(p.Title, "[HIGH] "))
}

func TestMissingItemsAndRepairActions(t *testing.T) {
	d := &domain.Decision{
		DecisionStatement: "A bare decision with nothing attached",
		StrategicImpact:   domain.ImpactHigh,
	}
	ev := &domain.Evaluation{Status: domain.StatusReviewRequired, Flags: []string{domain.FlagMissingOwner}}

	p := Build(d, ev, nil)

	assert.Equal(t, []string{
		"Missing owner", "Missing KPI", "Missing risk", "Missing goals",
	}, p.MissingItems)
	assert.Equal(t, []string{
		"Assign an accountable owner",
		"Define measurable KPI and target",
		"Add risk assessment and mitigation",
		"Define organizational goals for this decision",
	}, p.NextActions)
}

func TestMissingKPIsTolerated(t *testing.T) {
	// KPIs and goals are only expected of strategically significant
	// decisions; a low-impact decision without them is not incomplete.
	d := &domain.Decision{
		DecisionStatement: "Swap the office coffee supplier next month",
		StrategicImpact:   domain.ImpactLow,
		Owners:            []domain.Owner{{Name: "Chris Dole"}},
		Risks:             []domain.Risk{{Description: "Taste complaints", Severity: "low"}},
	}
	p := Build(d, &domain.Evaluation{Status: domain.StatusCompliant}, nil)
	assert.Empty(t, p.MissingItems)
}

func TestApprovalActionsAndRuleActions(t *testing.T) {
	d := baseDecision()
	ev := &domain.Evaluation{
		Status:    domain.StatusReviewRequired,
		RiskScore: 5.0,
		ApprovalChain: []domain.ApprovalStep{
			{ApproverName: "Omar Reyes", Role: "CFO", Level: domain.LevelCLevel,
				Required: true, Rationale: "Spend above 100K"},
			{ApproverName: "Jane Park", Role: "CEO", Level: domain.LevelCLevel,
				Required: false},
		},
		TriggeredRules: []domain.TriggeredRule{
			{RuleID: "fin-1", Type: domain.RuleTypeFinancial},
			{RuleID: "fin-2", Type: domain.RuleTypeFinancial},
			{RuleID: "priv-1", Type: domain.RuleTypePrivacy},
		},
	}

	p := Build(d, ev, nil)

	require.Len(t, p.Approvals, 2)
	assert.Equal(t, "Omar Reyes", p.Approvals[0].ApproverName)
	assert.Equal(t, "Spend above 100K", p.Approvals[0].Reason)

	// Only required approvers are named; duplicate rule-type actions collapse.
	assert.Equal(t, []string{
		"Request approvals: CFO",
		"Confirm budget justification with Finance",
		"Prepare financial impact analysis",
		"Initiate privacy and data protection review",
	}, p.NextActions)
}

func TestBlockedResolutionComesFirst(t *testing.T) {
	d := &domain.Decision{DecisionStatement: "Award the contract to our subsidiary"}
	ev := &domain.Evaluation{
		Status: domain.StatusBlocked,
		TriggeredRules: []domain.TriggeredRule{
			{RuleID: "c-1", Type: domain.RuleTypeCompliance},
		},
	}

	p := Build(d, ev, nil)

	require.NotEmpty(t, p.NextActions)
	assert.Equal(t, "Resolve blocking conflicts before proceeding", p.NextActions[0])
	assert.Contains(t, p.NextActions, "Schedule a compliance review before execution")
	assert.Contains(t, p.ConclusionReason, "Blocked")
}

func TestCoverageGapNextAction(t *testing.T) {
	d := baseDecision()
	ev := &domain.Evaluation{
		Status: domain.StatusReviewRequired,
		Flags:  []string{domain.FlagGovernanceCoverageGap},
	}

	p := Build(d, ev, nil)
	assert.Contains(t, p.NextActions, `Propose a governance rule covering the risk "Cutover outage"`)

	d.Risks = nil
	p = Build(d, ev, nil)
	found := false
	for _, a := range p.NextActions {
		if strings.Contains(a, "decisions like") && strings.Contains(a, "Migrate the billing stack") {
			found = true
		}
	}
	assert.True(t, found, "expected a coverage-gap action naming the statement, got %v", p.NextActions)
}

func TestConclusionReasonForms(t *testing.T) {
	cfoStep := domain.ApprovalStep{ApproverID: "cfo", Role: "CFO", Level: domain.LevelCLevel, Required: true}

	blocked := &domain.Evaluation{Status: domain.StatusBlocked, ApprovalChain: []domain.ApprovalStep{cfoStep}}
	assert.Equal(t, "Blocked: resolvable with CFO approval", conclusionReason(blocked, nil))

	assert.Equal(t, "Blocked: resolve the structural gaps before seeking approval",
		conclusionReason(blocked, []string{"Missing owner"}))

	blockedBare := &domain.Evaluation{Status: domain.StatusBlocked}
	assert.Contains(t, conclusionReason(blockedBare, nil), "escalate to leadership")

	review := &domain.Evaluation{Status: domain.StatusReviewRequired, ApprovalChain: []domain.ApprovalStep{cfoStep}}
	assert.Equal(t, "Review required: pending approval from CFO", conclusionReason(review, nil))

	reviewFlags := &domain.Evaluation{Status: domain.StatusReviewRequired, Flags: []string{domain.FlagHighRisk}}
	assert.Equal(t, "Review required: 1 governance flag(s) raised", conclusionReason(reviewFlags, nil))

	compliant := &domain.Evaluation{Status: domain.StatusCompliant}
	assert.Contains(t, conclusionReason(compliant, nil), "Compliant")
}

func TestRiskDefaultsToMediumSeverity(t *testing.T) {
	d := baseDecision()
	d.Risks = []domain.Risk{{Description: "Unlabeled risk"}}
	p := Build(d, &domain.Evaluation{Status: domain.StatusCompliant}, nil)

	require.Len(t, p.Risks, 1)
	assert.Equal(t, "medium", p.Risks[0].Severity)
}
