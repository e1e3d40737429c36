package graph

import (
	"fmt"

	"github.com/govlayer/backend/internal/domain"
)

// Node id helpers. Action nodes are unique per decision; Policy nodes are
// shared per rule id; approver Actor nodes are shared per person id.
func policyID(ruleID string) string     { return "policy_" + ruleID }
func approverID(personID string) string { return "actor_" + personID }

// UpsertDecision materializes a governed decision into the tenant's
// graph and returns the decision subgraph.
func (s *Store) UpsertDecision(tenantID, decisionID string, d *domain.Decision, ev *domain.Evaluation) (domain.DecisionGraph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tg := s.tenant(tenantID)
	dg := domain.DecisionGraph{DecisionID: decisionID}

	record := func(n domain.Node) { dg.Nodes = append(dg.Nodes, n) }
	recordEdge := func(e domain.Edge) { dg.Edges = append(dg.Edges, e) }

	// Action node, unique per decision.
	actionProps := map[string]interface{}{}
	if d.RiskScore != nil {
		actionProps["risk_score"] = *d.RiskScore
	}
	if d.StrategicImpact != "" {
		actionProps["strategic_impact"] = string(d.StrategicImpact)
	}
	action := domain.Node{
		ID:         decisionID,
		Type:       domain.NodeAction,
		Label:      d.DecisionStatement,
		Properties: actionProps,
	}
	if err := tg.addNode(action); err != nil {
		return dg, fmt.Errorf("upsert decision %s: %w", decisionID, err)
	}
	record(action)

	// Owner actors, decision-scoped (owner names are free-form text).
	for i, owner := range d.Owners {
		id := fmt.Sprintf("%s_owner_%d", decisionID, i)
		n := domain.Node{
			ID:    id,
			Type:  domain.NodeActor,
			Label: owner.Name,
			Properties: map[string]interface{}{
				"role": owner.Role,
			},
		}
		if err := tg.addNode(n); err != nil {
			return dg, err
		}
		record(n)
		e := domain.Edge{From: id, To: decisionID, Predicate: domain.PredOwns}
		if err := tg.addEdge(e); err != nil {
			return dg, err
		}
		recordEdge(e)
	}

	// Approver actors, shared per person across decisions.
	for _, step := range ev.ApprovalChain {
		id := approverID(step.ApproverID)
		if _, exists := tg.nodes[id]; !exists {
			n := domain.Node{
				ID:    id,
				Type:  domain.NodeActor,
				Label: step.ApproverName,
				Properties: map[string]interface{}{
					"role":  step.Role,
					"level": string(step.Level),
				},
			}
			if err := tg.addNode(n); err != nil {
				return dg, err
			}
			record(n)
		}
		authType := domain.AuthRequired
		if step.RuleAction == domain.ActionRequireReview {
			authType = domain.AuthEscalation
		}
		e := domain.Edge{
			From:      decisionID,
			To:        id,
			Predicate: domain.PredRequiresApprovalBy,
			Properties: map[string]interface{}{
				"required":  step.Required,
				"rationale": step.Rationale,
				"auth_type": authType,
			},
		}
		if err := tg.addEdge(e); err != nil {
			return dg, err
		}
		recordEdge(e)
	}

	// Risk nodes, decision-scoped.
	for i, risk := range d.Risks {
		id := fmt.Sprintf("%s_risk_%d", decisionID, i)
		props := map[string]interface{}{}
		if risk.Severity != "" {
			props["severity"] = risk.Severity
		}
		if risk.Mitigation != "" {
			props["mitigation"] = risk.Mitigation
		}
		n := domain.Node{ID: id, Type: domain.NodeRisk, Label: risk.Description, Properties: props}
		if err := tg.addNode(n); err != nil {
			return dg, err
		}
		record(n)
		e := domain.Edge{From: decisionID, To: id, Predicate: domain.PredTriggers}
		if err := tg.addEdge(e); err != nil {
			return dg, err
		}
		recordEdge(e)
	}

	// Policy nodes, shared per rule id across decisions.
	for _, rule := range ev.TriggeredRules {
		id := policyID(rule.RuleID)
		if _, exists := tg.nodes[id]; !exists {
			n := domain.Node{
				ID:    id,
				Type:  domain.NodePolicy,
				Label: rule.Name,
				Properties: map[string]interface{}{
					"rule_type": rule.Type,
					"severity":  string(rule.Severity),
				},
			}
			if err := tg.addNode(n); err != nil {
				return dg, err
			}
			record(n)
		}
		e := domain.Edge{From: decisionID, To: id, Predicate: domain.PredGovernedBy}
		if err := tg.addEdge(e); err != nil {
			return dg, err
		}
		recordEdge(e)
	}

	return dg, nil
}
