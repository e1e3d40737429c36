package domain

// NodeType classifies graph nodes.
type NodeType string

const (
	NodeActor    NodeType = "Actor"    // people, roles, departments
	NodeAction   NodeType = "Action"   // decisions, tasks
	NodePolicy   NodeType = "Policy"   // governance rules
	NodeRisk     NodeType = "Risk"     // failure vectors
	NodeResource NodeType = "Resource" // budget, systems, assets
)

// Predicate is the relationship type on a graph edge.
type Predicate string

const (
	PredOwns               Predicate = "OWNS"
	PredRequiresApprovalBy Predicate = "REQUIRES_APPROVAL_BY"
	PredGovernedBy         Predicate = "GOVERNED_BY"
	PredTriggers           Predicate = "TRIGGERS"
	PredImpacts            Predicate = "IMPACTS"
	PredMitigates          Predicate = "MITIGATES"

	// Reasoning-subgraph predicates; never persisted in the main store.
	PredReportsTo Predicate = "REPORTS_TO"
	PredAlignsTo  Predicate = "ALIGNS_TO"
	PredHasGoal   Predicate = "HAS_GOAL"
	PredHasKPI    Predicate = "HAS_KPI"
)

// Authorization types carried on REQUIRES_APPROVAL_BY edges.
const (
	AuthRequired   = "REQUIRED"
	AuthEscalation = "ESCALATION"
)

// Node is a graph entity.
type Node struct {
	ID         string                 `json:"id"`
	Type       NodeType               `json:"type"`
	Label      string                 `json:"label"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Edge is a directed triple: (from) -[predicate]-> (to).
type Edge struct {
	From       string                 `json:"from"`
	To         string                 `json:"to"`
	Predicate  Predicate              `json:"predicate"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// DecisionGraph is the subgraph materialized for one decision.
type DecisionGraph struct {
	DecisionID string `json:"decision_id"`
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`
}
