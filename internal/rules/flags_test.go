package rules

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govlayer/backend/internal/domain"
)

func decisionWithKPIs(n int) *domain.Decision {
	d := &domain.Decision{
		DecisionStatement: "x",
		Owners:            []domain.Owner{{Name: "Lena Fischer"}},
		Risks:             []domain.Risk{{Description: "r", Severity: "low"}},
	}
	for i := 0; i < n; i++ {
		d.KPIs = append(d.KPIs, domain.KPI{Name: fmt.Sprintf("kpi-%d", i)})
	}
	return d
}

func TestHighRiskFlagBoundary(t *testing.T) {
	d := &domain.Decision{
		DecisionStatement: "x",
		Owners:            []domain.Owner{{Name: "Lena Fischer"}},
		Risks:             []domain.Risk{{Description: "r", Severity: "low"}},
	}

	assert.NotContains(t, detectFlags(d, 6.9, nil, nil), domain.FlagHighRisk)
	assert.Contains(t, detectFlags(d, 7.0, nil, nil), domain.FlagHighRisk)
}

func TestCriticalConflictKPIBoundary(t *testing.T) {
	assert.NotContains(t, detectFlags(decisionWithKPIs(5), 0, nil, nil),
		domain.FlagCriticalConflict)
	assert.Contains(t, detectFlags(decisionWithKPIs(6), 0, nil, nil),
		domain.FlagCriticalConflict)

	// Goals hit the same ceiling.
	d := &domain.Decision{
		DecisionStatement: "x",
		Owners:            []domain.Owner{{Name: "Lena Fischer"}},
		Risks:             []domain.Risk{{Description: "r", Severity: "low"}},
	}
	for i := 0; i < 6; i++ {
		d.Goals = append(d.Goals, domain.Goal{Description: fmt.Sprintf("goal-%d", i)})
	}
	assert.Contains(t, detectFlags(d, 0, nil, nil), domain.FlagCriticalConflict)
}

func TestRequiresReviewConfidenceBoundary(t *testing.T) {
	base := domain.Decision{DecisionStatement: "x"}

	low := base
	low.Confidence = 0.69
	assert.True(t, requiresReview(&low, 0, nil, nil, nil))

	ok := base
	ok.Confidence = 0.7
	assert.False(t, requiresReview(&ok, 0, nil, nil, nil))
}

func TestRequiresReviewRiskScoreBoundary(t *testing.T) {
	d := &domain.Decision{DecisionStatement: "x", Confidence: 0.9}

	assert.False(t, requiresReview(d, 6.9, nil, nil, nil))
	assert.True(t, requiresReview(d, 7.0, nil, nil, nil))
}
