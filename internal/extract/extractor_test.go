package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govlayer/backend/internal/domain"
)

// fakeClient returns canned responses in order, then repeats the last.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.responses[i], err
}

func (f *fakeClient) Model() string { return "fake-model" }

func TestExtractNilClientUsesHeuristic(t *testing.T) {
	e := NewExtractor(nil, 2)
	d, meta := e.Extract(context.Background(), "Deploy the new checkout flow for $120,000")

	assert.True(t, meta.Success)
	assert.Equal(t, "deterministic", meta.Model)
	require.NotNil(t, d.Cost)
	assert.Equal(t, 120000.0, *d.Cost)
	require.NotNil(t, d.LaunchDate)
	assert.True(t, *d.LaunchDate)
}

func TestExtractParsesModelResponse(t *testing.T) {
	e := NewExtractor(&fakeClient{responses: []string{
		"```json\n{\"decision_statement\": \"Expand into the EU market\", \"confidence\": 0.85}\n```",
	}}, 2)

	d, meta := e.Extract(context.Background(), "some text")

	assert.True(t, meta.Success)
	assert.False(t, meta.FallbackUsed)
	assert.Equal(t, 0, meta.RetryCount)
	assert.Equal(t, "fake-model", meta.Model)
	assert.Equal(t, "Expand into the EU market", d.DecisionStatement)
	assert.Equal(t, 0.85, d.Confidence)
}

func TestExtractRetriesOnParseFailure(t *testing.T) {
	fc := &fakeClient{responses: []string{
		"not json at all",
		"{\"decision_statement\": \"Adopt the new vendor for support tooling\", \"confidence\": 0.8}",
	}}
	e := NewExtractor(fc, 2)

	d, meta := e.Extract(context.Background(), "some text")

	assert.True(t, meta.Success)
	assert.Equal(t, 1, meta.RetryCount)
	assert.Equal(t, 2, fc.calls)
	assert.Equal(t, "Adopt the new vendor for support tooling", d.DecisionStatement)
}

func TestExtractRejectsInvalidPayloads(t *testing.T) {
	// Statement too short, then confidence out of range, then exhausted.
	fc := &fakeClient{responses: []string{
		"{\"decision_statement\": \"short\", \"confidence\": 0.8}",
		"{\"decision_statement\": \"A perfectly fine statement\", \"confidence\": 1.5}",
		"{\"decision_statement\": \"still broken\", \"confidence\": 2}",
	}}
	e := NewExtractor(fc, 2)

	d, meta := e.Extract(context.Background(), "the original input text")

	assert.False(t, meta.Success)
	assert.True(t, meta.FallbackUsed)
	assert.Contains(t, meta.Error, "out of range")
	assert.Contains(t, d.DecisionStatement, "[EXTRACTION FAILED]")
	assert.Equal(t, 0.1, d.Confidence)
}

func TestExtractFallbackAfterTransportErrors(t *testing.T) {
	boom := errors.New("connection reset")
	fc := &fakeClient{
		responses: []string{"", "", ""},
		errs:      []error{boom, boom, boom},
	}
	e := NewExtractor(fc, 2)

	d, meta := e.Extract(context.Background(), "migrate billing to the new provider")

	assert.False(t, meta.Success)
	assert.True(t, meta.FallbackUsed)
	assert.Equal(t, 2, meta.RetryCount)
	assert.Contains(t, meta.Error, "connection reset")
	require.Len(t, d.Risks, 1)
	assert.Equal(t, "high", d.Risks[0].Severity)
	assert.Equal(t, []string{"Manual Review Required"}, d.RequiredApprovals)
}

func TestExtractStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fc := &fakeClient{responses: []string{"{}"}}
	e := NewExtractor(fc, 2)

	_, meta := e.Extract(ctx, "anything")

	assert.True(t, meta.FallbackUsed)
	assert.Equal(t, 0, fc.calls)
	assert.Contains(t, meta.Error, "context canceled")
}

func TestFallbackTruncatesOnRuneBoundary(t *testing.T) {
	// Short input passes through untouched, no ellipsis.
	d := Fallback("café closes early, move the standup")
	assert.Equal(t, "[EXTRACTION FAILED] café closes early, move the standup", d.DecisionStatement)

	// Long multi-byte input is cut at 100 runes, never mid-character.
	d = Fallback(strings.Repeat("é", 150))
	assert.Equal(t, "[EXTRACTION FAILED] "+strings.Repeat("é", 100)+"...", d.DecisionStatement)
	assert.True(t, utf8.ValidString(d.DecisionStatement))
}

func TestHeuristicStatementTruncatesOnRuneBoundary(t *testing.T) {
	d := Heuristic(strings.Repeat("ü", 1200))
	assert.Equal(t, 1000, utf8.RuneCountInString(d.DecisionStatement))
	assert.True(t, utf8.ValidString(d.DecisionStatement))
}

func TestHeuristicAttributeDetection(t *testing.T) {
	d := Heuristic("Launch a customer data platform in Germany, hire 5 engineers, budget $2.5M, via our subsidiary, applied retroactively")

	require.NotNil(t, d.Cost)
	assert.Equal(t, 2_500_000.0, *d.Cost)
	assert.True(t, *d.UsesPII)
	assert.True(t, *d.LaunchDate)
	assert.True(t, *d.InvolvesHiring)
	assert.Equal(t, "related_party", d.CounterpartyRelation)
	assert.Equal(t, "retroactive", d.PolicyChangeType)
	assert.Equal(t, 0.6, d.Confidence)
}

func TestHeuristicBudgetForms(t *testing.T) {
	cases := map[string]float64{
		"spend $3 million on ads":  3_000_000,
		"a $250k tooling refresh":  250_000,
		"costs $1,250,000 total":   1_250_000,
		"roughly $900 for badges":  900,
		"about 1.5 million budget": 1_500_000,
	}
	for text, want := range cases {
		d := Heuristic(text)
		require.NotNil(t, d.Cost, text)
		assert.Equal(t, want, *d.Cost, text)
	}

	assert.Nil(t, Heuristic("no numbers here").Cost)
}

func TestDeriveNormalizedAttributes(t *testing.T) {
	uses := true
	d := &domain.Decision{
		DecisionStatement: "Deploy the recommendations engine for EU users",
		UsesPII:           &uses,
		Risks: []domain.Risk{
			{Description: "a", Severity: "high"},
			{Description: "b", Severity: "high"},
		},
	}

	out := Derive(d)

	assert.True(t, out.HasEUScope)
	assert.True(t, out.HasPIIUsage)
	assert.True(t, out.HasDeployment)
	assert.Equal(t, "high", out.EstimatedRiskLevel)
}

func TestDeriveBudgetFloors(t *testing.T) {
	// Financial language without a figure gets the default floor.
	out := Derive(&domain.Decision{DecisionStatement: "Increase the tooling budget"})
	assert.Equal(t, 50000.0, out.NormalizedBudget)

	// Strategic language raises the floor.
	out = Derive(&domain.Decision{DecisionStatement: "A strategic expansion into new markets"})
	assert.Equal(t, 75000.0, out.NormalizedBudget)
	assert.True(t, out.IsStrategic)

	// An explicit cost wins over text parsing.
	cost := 10000.0
	out = Derive(&domain.Decision{DecisionStatement: "spend $3 million on ads", Cost: &cost})
	assert.Equal(t, 10000.0, out.NormalizedBudget)

	out = Derive(&domain.Decision{DecisionStatement: "rename a folder"})
	assert.Equal(t, 0.0, out.NormalizedBudget)
	assert.Equal(t, "unknown", out.EstimatedRiskLevel)
}

func TestEstimateRiskLevelAveraging(t *testing.T) {
	assert.Equal(t, "critical", estimateRiskLevel([]domain.Risk{
		{Severity: "critical"}, {Severity: "critical"},
	}))
	assert.Equal(t, "medium", estimateRiskLevel([]domain.Risk{
		{Severity: "high"}, {Severity: "low"},
	}))
	assert.Equal(t, "low", estimateRiskLevel([]domain.Risk{
		{Severity: "low"},
	}))
	// Unset severity counts as medium.
	assert.Equal(t, "medium", estimateRiskLevel([]domain.Risk{{}}))
}
