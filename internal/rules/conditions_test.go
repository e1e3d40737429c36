package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/govlayer/backend/internal/domain"
)

func TestNumericOperatorBoundaries(t *testing.T) {
	d := &domain.Decision{Cost: floatPtr(100000)}

	assert.False(t, evalCondition(domain.Condition{
		Field: "cost", Operator: ">", Value: 100000.0}, d))
	assert.True(t, evalCondition(domain.Condition{
		Field: "cost", Operator: ">=", Value: 100000.0}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "cost", Operator: "<", Value: 100000.0}, d))
	assert.True(t, evalCondition(domain.Condition{
		Field: "cost", Operator: "<=", Value: 100000.0}, d))
}

func TestNumericOnAbsentFieldIsFalse(t *testing.T) {
	d := &domain.Decision{} // no cost, no risk score

	assert.False(t, evalCondition(domain.Condition{
		Field: "cost", Operator: ">", Value: 0.0}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "risk_score", Operator: "<=", Value: 10.0}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "headcount_change", Operator: ">=", Value: 1.0}, d))
}

func TestIntValuedThresholds(t *testing.T) {
	hc := 10
	d := &domain.Decision{HeadcountChange: &hc}

	// Rule values arrive as ints from YAML-ish profile literals.
	assert.True(t, evalCondition(domain.Condition{
		Field: "headcount_change", Operator: ">", Value: 5}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "headcount_change", Operator: ">", Value: 10}, d))
}

func TestEqualityOperators(t *testing.T) {
	d := &domain.Decision{
		CounterpartyRelation: "board_member",
		StrategicImpact:      domain.ImpactCritical,
	}

	assert.True(t, evalCondition(domain.Condition{
		Field: "counterparty_relation", Operator: "==", Value: "board_member"}, d))
	assert.True(t, evalCondition(domain.Condition{
		Field: "counterparty_relation", Operator: "==", Value: "Board_Member"}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "counterparty_relation", Operator: "!=", Value: "board_member"}, d))
	assert.True(t, evalCondition(domain.Condition{
		Field: "strategic_impact", Operator: "==", Value: "critical"}, d))
}

func TestEqualityAgainstAbsentField(t *testing.T) {
	d := &domain.Decision{}
	assert.False(t, evalCondition(domain.Condition{
		Field: "policy_change_type", Operator: "==", Value: "retroactive"}, d))
	// != on an absent value: nil differs from any concrete string.
	assert.True(t, evalCondition(domain.Condition{
		Field: "policy_change_type", Operator: "!=", Value: "retroactive"}, d))
}

func TestContainsIsCaseInsensitiveSubstring(t *testing.T) {
	d := &domain.Decision{
		DecisionStatement: "Award a Sole Source contract for road maintenance",
	}

	assert.True(t, evalCondition(domain.Condition{
		Field: "decision_statement", Operator: "contains", Value: "sole source"}, d))
	assert.True(t, evalCondition(domain.Condition{
		Field: "decision_statement", Operator: "contains", Value: "SOLE"}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "decision_statement", Operator: "contains", Value: "no-bid"}, d))
}

func TestContainsOnNonStringIsFalse(t *testing.T) {
	d := &domain.Decision{Cost: floatPtr(5)}
	assert.False(t, evalCondition(domain.Condition{
		Field: "cost", Operator: "contains", Value: "5"}, d))
}

func TestOverlapsWithBooleanTruthiness(t *testing.T) {
	assert.True(t, evalCondition(domain.Condition{
		Field: "uses_pii", Operator: "overlaps_with"},
		&domain.Decision{UsesPII: boolPtr(true)}))
	assert.False(t, evalCondition(domain.Condition{
		Field: "uses_pii", Operator: "overlaps_with"},
		&domain.Decision{UsesPII: boolPtr(false)}))
	assert.False(t, evalCondition(domain.Condition{
		Field: "uses_pii", Operator: "overlaps_with"},
		&domain.Decision{}))
}

func TestUnknownFieldAndOperator(t *testing.T) {
	d := &domain.Decision{DecisionStatement: "x"}
	assert.False(t, evalCondition(domain.Condition{
		Field: "no_such_field", Operator: "==", Value: "x"}, d))
	assert.False(t, evalCondition(domain.Condition{
		Field: "decision_statement", Operator: "matches", Value: "x"}, d))
}
