package rules

import (
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// fieldValue resolves a condition field against the decision. A nil
// return means the attribute is absent; numeric comparisons on nil are
// false by contract.
func fieldValue(field string, d *domain.Decision) interface{} {
	switch field {
	case "cost":
		if d.Cost == nil {
			return nil
		}
		return *d.Cost
	case "risk_score":
		if d.RiskScore == nil {
			return nil
		}
		return *d.RiskScore
	case "confidence":
		return d.Confidence
	case "headcount_change":
		if d.HeadcountChange == nil {
			return nil
		}
		return float64(*d.HeadcountChange)
	case "uses_pii":
		return boolValue(d.UsesPII)
	case "launch_date":
		return boolValue(d.LaunchDate)
	case "involves_hiring":
		return boolValue(d.InvolvesHiring)
	case "involves_compliance_risk":
		return boolValue(d.InvolvesComplianceRisk)
	case "counterparty_relation":
		return stringOrNil(d.CounterpartyRelation)
	case "policy_change_type":
		return stringOrNil(d.PolicyChangeType)
	case "target_market":
		return stringOrNil(d.TargetMarket)
	case "strategic_impact":
		return stringOrNil(string(d.StrategicImpact))
	case "decision_statement":
		return d.DecisionStatement
	}
	return nil
}

// evalCondition applies one operator. Conditions within a rule are OR'd
// by the caller.
func evalCondition(c domain.Condition, d *domain.Decision) bool {
	actual := fieldValue(c.Field, d)

	switch c.Operator {
	case ">", ">=", "<", "<=":
		lhs, lok := toFloat(actual)
		rhs, rok := toFloat(c.Value)
		if !lok || !rok {
			return false
		}
		switch c.Operator {
		case ">":
			return lhs > rhs
		case ">=":
			return lhs >= rhs
		case "<":
			return lhs < rhs
		default:
			return lhs <= rhs
		}
	case "==":
		return equal(actual, c.Value)
	case "!=":
		return !equal(actual, c.Value)
	case "contains":
		s, ok := actual.(string)
		if !ok {
			return false
		}
		want, wok := c.Value.(string)
		if !wok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(want))
	case "overlaps_with":
		b, ok := actual.(bool)
		return ok && b
	}
	return false
}

func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.EqualFold(as, bs)
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func boolValue(p *bool) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func stringOrNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
