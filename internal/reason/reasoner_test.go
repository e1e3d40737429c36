package reason

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govlayer/backend/internal/domain"
)

type fakeClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeClient) Model() string { return "fake-model" }

func riskPtr(v float64) *float64 { return &v }

func subgraphWith(nodes ...domain.Node) domain.DecisionGraph {
	return domain.DecisionGraph{DecisionID: "dec_1", Nodes: nodes}
}

func actorNode() domain.Node {
	return domain.Node{ID: "a1", Type: domain.NodeActor, Label: "Lena Fischer",
		Properties: map[string]interface{}{"role": "VP Engineering"}}
}

func TestDeterministicFlagsMissingActors(t *testing.T) {
	r := NewReasoner(nil)
	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(), true)

	assert.Equal(t, domain.ModeDeterministic, v.Mode)
	assert.Equal(t, 0.6, v.Confidence)
	require.Len(t, v.Contradictions, 1)
	assert.Equal(t, domain.SeverityCritical, v.Contradictions[0].Severity)
	assert.Contains(t, v.Recommendation, "contradictions")
}

func TestDeterministicCandidateOwnersDoNotCountAsActors(t *testing.T) {
	r := NewReasoner(nil)
	sg := subgraphWith(
		domain.Node{ID: "c1", Type: domain.NodeActor, Label: "Jane Park",
			Properties: map[string]interface{}{"role": "CEO", "candidate_owner": true}},
		domain.Node{ID: "c2", Type: domain.NodeActor, Label: "Lena Fischer",
			Properties: map[string]interface{}{"role": "VP Engineering", "candidate_owner": true}},
	)
	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{}, sg, true)

	require.Len(t, v.Contradictions, 1)
	assert.Equal(t, domain.SeverityCritical, v.Contradictions[0].Severity)
}

func TestDeterministicFlagsRiskCoverageGap(t *testing.T) {
	r := NewReasoner(nil)
	d := &domain.Decision{
		DecisionStatement: "x",
		RiskScore:         riskPtr(8.0),
		Risks:             []domain.Risk{{Description: "only one"}},
	}
	v := r.Analyze(context.Background(), "dec_1", d, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Empty(t, v.Contradictions)
	require.Len(t, v.Gaps, 1)
	assert.Equal(t, domain.SeverityHigh, v.Gaps[0].Severity)
	assert.Contains(t, v.Gaps[0].Description, "8.0")
	assert.Contains(t, v.Recommendation, "risk assessment")
}

func TestDeterministicWarnsOnUnmitigatedRisks(t *testing.T) {
	r := NewReasoner(nil)
	sg := subgraphWith(
		actorNode(),
		domain.Node{ID: "r1", Type: domain.NodeRisk, Label: "Outage",
			Properties: map[string]interface{}{"severity": "high"}},
		domain.Node{ID: "r2", Type: domain.NodeRisk, Label: "Churn",
			Properties: map[string]interface{}{"severity": "medium", "mitigation": "beta cohort"}},
	)
	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{}, sg, true)

	require.Len(t, v.Warnings, 1)
	assert.Contains(t, v.Warnings[0].Description, "Outage")
	assert.Contains(t, v.Recommendation, "mitigation")
}

func TestDeterministicCleanVerdict(t *testing.T) {
	r := NewReasoner(nil)
	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Empty(t, v.Contradictions)
	assert.Empty(t, v.Gaps)
	assert.Empty(t, v.Warnings)
	assert.Contains(t, v.Recommendation, "structurally sound")
}

func TestDeterministicRecommendsApprovalRouting(t *testing.T) {
	r := NewReasoner(nil)
	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"},
		&domain.Evaluation{RequiresHumanReview: true},
		subgraphWith(actorNode()), true)

	assert.Contains(t, v.Recommendation, "approval chain")
}

func TestDeepAnalysisParsesModelVerdict(t *testing.T) {
	fc := &fakeClient{response: "```json\n" + `{
		"contradictions": [],
		"gaps": [{"severity": "medium", "description": "No rollback plan"}],
		"warnings": [],
		"recommendation": "Document a rollback plan before launch",
		"confidence": 0.82
	}` + "\n```"}
	r := NewReasoner(fc)

	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Equal(t, domain.ModeDeep, v.Mode)
	assert.Equal(t, 0.82, v.Confidence)
	require.Len(t, v.Gaps, 1)
	assert.Equal(t, "No rollback plan", v.Gaps[0].Description)
	assert.Equal(t, 1, fc.calls)
}

func TestDeepAnalysisNormalizesBadConfidenceAndNilSlices(t *testing.T) {
	fc := &fakeClient{response: `{"recommendation": "ok", "confidence": 3.0}`}
	r := NewReasoner(fc)

	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Equal(t, domain.ModeDeep, v.Mode)
	assert.Equal(t, 0.7, v.Confidence)
	assert.NotNil(t, v.Contradictions)
	assert.NotNil(t, v.Gaps)
	assert.NotNil(t, v.Warnings)
}

func TestDeepFallsBackOnTransportError(t *testing.T) {
	fc := &fakeClient{err: errors.New("rate limited")}
	r := NewReasoner(fc)

	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Equal(t, domain.ModeDeterministic, v.Mode)
}

func TestDeepFallsBackOnUnparseableResponse(t *testing.T) {
	fc := &fakeClient{response: "I think this decision looks fine."}
	r := NewReasoner(fc)

	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), true)

	assert.Equal(t, domain.ModeDeterministic, v.Mode)
}

func TestDeepDisabledPerRequest(t *testing.T) {
	fc := &fakeClient{response: `{"recommendation": "ok", "confidence": 0.9}`}
	r := NewReasoner(fc)
	require.True(t, r.DeepCapable())

	v := r.Analyze(context.Background(), "dec_1",
		&domain.Decision{DecisionStatement: "x"}, &domain.Evaluation{},
		subgraphWith(actorNode()), false)

	assert.Equal(t, domain.ModeDeterministic, v.Mode)
	assert.Equal(t, 0, fc.calls)
}

func TestPromptCarriesGraphSections(t *testing.T) {
	d := &domain.Decision{
		DecisionStatement: "Launch the loyalty program",
		RiskScore:         riskPtr(5.0),
	}
	ev := &domain.Evaluation{
		Flags:  []string{domain.FlagHighRisk},
		Status: domain.StatusReviewRequired,
	}
	sg := subgraphWith(
		actorNode(),
		domain.Node{ID: "p1", Type: domain.NodePolicy, Label: "Big spend"},
		domain.Node{ID: "r1", Type: domain.NodeRisk, Label: "Fraud",
			Properties: map[string]interface{}{"severity": "high", "mitigation": "velocity checks"}},
	)
	sg.Edges = []domain.Edge{{From: "dec_1", To: "p1", Predicate: domain.PredGovernedBy}}

	p := buildPrompt(d, ev, sg)

	assert.Contains(t, p, "DECISION: Launch the loyalty program")
	assert.Contains(t, p, "ACTORS")
	assert.Contains(t, p, "POLICIES")
	assert.Contains(t, p, "Mitigation: velocity checks")
	assert.Contains(t, p, "GOVERNANCE FLAGS: HIGH_RISK")
	assert.Contains(t, p, "GOVERNANCE STATUS: review_required")
	assert.Contains(t, p, "GOVERNED_BY")
}
