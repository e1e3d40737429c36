package subgraph

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/graph"
)

// Alignment confidence tiers for ALIGNS_TO edges.
const (
	confidenceKPIOverlap  = 0.9
	confidenceOwnerMatch  = 0.7
	confidenceWordOverlap = 0.5
	maxReportingChainHops = 2
	storedContextBFSDepth = 2
)

// Builder assembles the reasoning subgraph for one decision: the
// materialized graph context enriched with personnel, strategic goals,
// and risk tolerance from the tenant profile.
type Builder struct {
	store *graph.Store
}

func NewBuilder(store *graph.Store) *Builder {
	return &Builder{store: store}
}

// Build returns the decision-rooted subgraph. All ids generated here are
// decision-scoped so repeated builds are stable and collision-free.
func (b *Builder) Build(tenantID, decisionID string, d *domain.Decision, ev *domain.Evaluation, company *domain.Company) domain.DecisionGraph {
	sg := newAccumulator(decisionID)

	// Root Action node.
	rootProps := map[string]interface{}{}
	if d.RiskScore != nil {
		rootProps["risk_score"] = *d.RiskScore
	}
	if d.StrategicImpact != "" {
		rootProps["strategic_impact"] = string(d.StrategicImpact)
	}
	sg.addNode(domain.Node{
		ID: decisionID, Type: domain.NodeAction,
		Label: d.DecisionStatement, Properties: rootProps,
	})

	// Personnel matched from owners and approvers.
	matched := b.matchPersonnel(sg, decisionID, d, ev, company)

	// Decision-local goal and KPI nodes.
	b.addGoalsAndKPIs(sg, decisionID, d)

	// Candidate owner injection when the decision names nobody: the whole
	// directory with its reporting structure, so the reasoner has people
	// to propose.
	if len(d.Owners) == 0 {
		b.injectCandidateOwners(sg, decisionID, company, ev.InferredOwner)
	}

	// Strategic goal alignment.
	b.alignGoals(sg, decisionID, d, matched, company)

	// Risk tolerance context.
	b.addRiskTolerance(sg, decisionID, company)

	// Merge the stored graph neighborhood (risks, policies, shared actors).
	ctx := b.store.GetContext(tenantID, decisionID, storedContextBFSDepth)
	for _, group := range [][]domain.Node{ctx.Actors, ctx.Policies, ctx.Risks, ctx.Resources} {
		for _, n := range group {
			sg.addNode(n)
		}
	}
	for _, e := range ctx.Edges {
		sg.addEdge(e)
	}

	out := sg.graph()
	slog.Debug("subgraph built",
		"decision_id", decisionID,
		"nodes", len(out.Nodes),
		"edges", len(out.Edges),
		"matched_personnel", len(matched))
	return out
}

// matchPersonnel fuzzy-matches decision owners and chain approvers
// against the tenant directory (case-insensitive substring on name or
// role) and walks each match's reporting chain up to two hops.
func (b *Builder) matchPersonnel(sg *accumulator, decisionID string, d *domain.Decision, ev *domain.Evaluation, company *domain.Company) map[string]domain.Person {
	matched := map[string]domain.Person{}

	addPerson := func(p domain.Person, predicate domain.Predicate, props map[string]interface{}) {
		id := sg.personID(p.ID)
		sg.addNode(domain.Node{
			ID: id, Type: domain.NodeActor, Label: p.Name,
			Properties: map[string]interface{}{
				"role":       p.Role,
				"level":      string(p.Level),
				"department": p.Department,
			},
		})
		if predicate == domain.PredOwns {
			sg.addEdge(domain.Edge{From: id, To: decisionID, Predicate: predicate, Properties: props})
		} else {
			sg.addEdge(domain.Edge{From: decisionID, To: id, Predicate: predicate, Properties: props})
		}
		matched[p.ID] = p
		b.walkReportingChain(sg, p, company)
	}

	for _, owner := range d.Owners {
		if p, ok := fuzzyMatch(owner.Name, owner.Role, company); ok {
			addPerson(p, domain.PredOwns, nil)
		}
	}
	for _, step := range ev.ApprovalChain {
		if p, ok := company.PersonByID(step.ApproverID); ok {
			addPerson(p, domain.PredRequiresApprovalBy, map[string]interface{}{
				"rationale": step.Rationale,
			})
		}
	}
	return matched
}

// walkReportingChain adds up to two levels of management above a person.
func (b *Builder) walkReportingChain(sg *accumulator, p domain.Person, company *domain.Company) {
	cur := p
	for hop := 0; hop < maxReportingChainHops && cur.ReportsTo != ""; hop++ {
		mgr, ok := company.PersonByID(cur.ReportsTo)
		if !ok {
			break
		}
		sg.addNode(domain.Node{
			ID: sg.personID(mgr.ID), Type: domain.NodeActor, Label: mgr.Name,
			Properties: map[string]interface{}{
				"role":  mgr.Role,
				"level": string(mgr.Level),
			},
		})
		sg.addEdge(domain.Edge{
			From:      sg.personID(cur.ID),
			To:        sg.personID(mgr.ID),
			Predicate: domain.PredReportsTo,
		})
		cur = mgr
	}
}

// injectCandidateOwners adds every person in the directory as a
// candidate Actor node plus their reporting edges. The inferred owner,
// when the engine produced one, additionally gets a candidate OWNS edge
// to the decision.
func (b *Builder) injectCandidateOwners(sg *accumulator, decisionID string, company *domain.Company, inferred *domain.InferredOwner) {
	for _, p := range company.Personnel {
		sg.addNode(domain.Node{
			ID: sg.personID(p.ID), Type: domain.NodeActor, Label: p.Name,
			Properties: map[string]interface{}{
				"role":            p.Role,
				"level":           string(p.Level),
				"department":      p.Department,
				"candidate_owner": true,
			},
		})
	}
	for _, p := range company.Personnel {
		if p.ReportsTo == "" {
			continue
		}
		if _, ok := company.PersonByID(p.ReportsTo); !ok {
			continue
		}
		sg.addEdge(domain.Edge{
			From:      sg.personID(p.ID),
			To:        sg.personID(p.ReportsTo),
			Predicate: domain.PredReportsTo,
		})
	}
	if inferred != nil {
		sg.addEdge(domain.Edge{
			From: sg.personID(inferred.PersonID), To: decisionID, Predicate: domain.PredOwns,
			Properties: map[string]interface{}{"candidate": true},
		})
	}
}

// addGoalsAndKPIs materializes the decision's own goals and KPIs as
// Resource nodes hanging off the root Action.
func (b *Builder) addGoalsAndKPIs(sg *accumulator, decisionID string, d *domain.Decision) {
	for i, g := range d.Goals {
		id := sg.scoped(fmt.Sprintf("decision_goal_%d", i))
		sg.addNode(domain.Node{
			ID: id, Type: domain.NodeResource, Label: g.Description,
			Properties: map[string]interface{}{
				"kind":   "goal",
				"metric": g.Metric,
			},
		})
		sg.addEdge(domain.Edge{From: decisionID, To: id, Predicate: domain.PredHasGoal})
	}
	for i, k := range d.KPIs {
		id := sg.scoped(fmt.Sprintf("decision_kpi_%d", i))
		sg.addNode(domain.Node{
			ID: id, Type: domain.NodeResource, Label: k.Name,
			Properties: map[string]interface{}{
				"kind":   "kpi",
				"target": k.Target,
			},
		})
		sg.addEdge(domain.Edge{From: decisionID, To: id, Predicate: domain.PredHasKPI})
	}
}

// alignGoals links the decision to strategic goals. Confidence tiers:
// KPI/keyword overlap 0.9, goal owner among matched personnel 0.7,
// plain word overlap with the decision text 0.5.
func (b *Builder) alignGoals(sg *accumulator, decisionID string, d *domain.Decision, matched map[string]domain.Person, company *domain.Company) {
	text := strings.ToLower(d.DecisionStatement)
	for _, g := range d.Goals {
		text += " " + strings.ToLower(g.Description)
	}

	for _, goal := range company.Goals {
		confidence := 0.0
		basis := ""

		if kpiOverlap(d, goal) {
			confidence, basis = confidenceKPIOverlap, "kpi_overlap"
		} else if _, ok := matched[goal.OwnerID]; ok && goal.OwnerID != "" {
			confidence, basis = confidenceOwnerMatch, "owner_match"
		} else if wordOverlap(text, goal) {
			confidence, basis = confidenceWordOverlap, "semantic_overlap"
		}
		if confidence == 0 {
			continue
		}

		id := sg.scoped("goal_" + goal.ID)
		sg.addNode(domain.Node{
			ID: id, Type: domain.NodeResource, Label: goal.Title,
			Properties: map[string]interface{}{
				"kind":     "strategic_goal",
				"goal_id":  goal.ID,
				"owner_id": goal.OwnerID,
			},
		})
		sg.addEdge(domain.Edge{
			From: decisionID, To: id, Predicate: domain.PredAlignsTo,
			Properties: map[string]interface{}{
				"confidence": confidence,
				"basis":      basis,
			},
		})
	}
}

func (b *Builder) addRiskTolerance(sg *accumulator, decisionID string, company *domain.Company) {
	id := sg.scoped("risk_tolerance")
	sg.addNode(domain.Node{
		ID: id, Type: domain.NodePolicy,
		Label: fmt.Sprintf("Risk tolerance: %s", company.RiskTolerance.Level),
		Properties: map[string]interface{}{
			"level":                 company.RiskTolerance.Level,
			"max_auto_approve_cost": company.RiskTolerance.MaxAutoApproveCost,
		},
	})
	sg.addEdge(domain.Edge{From: decisionID, To: id, Predicate: domain.PredGovernedBy})
}

// fuzzyMatch finds a person whose name or role contains (or is contained
// by) the given name/role, case-insensitive.
func fuzzyMatch(name, role string, company *domain.Company) (domain.Person, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	role = strings.ToLower(strings.TrimSpace(role))
	for _, p := range company.Personnel {
		pname := strings.ToLower(p.Name)
		prole := strings.ToLower(p.Role)
		if name != "" && (strings.Contains(pname, name) || strings.Contains(name, pname)) {
			return p, true
		}
		if role != "" && (strings.Contains(prole, role) || strings.Contains(role, prole)) {
			return p, true
		}
	}
	return domain.Person{}, false
}

func kpiOverlap(d *domain.Decision, goal domain.StrategicGoal) bool {
	for _, kpi := range d.KPIs {
		k := strings.ToLower(kpi.Name)
		for _, gk := range goal.KPIs {
			if strings.EqualFold(kpi.Name, gk) || strings.Contains(k, strings.ToLower(gk)) || strings.Contains(strings.ToLower(gk), k) {
				return true
			}
		}
		for _, kw := range goal.Keywords {
			if strings.Contains(k, strings.ToLower(kw)) {
				return true
			}
		}
	}
	return false
}

// wordOverlap checks whether any goal keyword or title word longer than
// three characters appears in the decision text.
func wordOverlap(text string, goal domain.StrategicGoal) bool {
	for _, kw := range goal.Keywords {
		if len(kw) > 3 && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	for _, w := range strings.Fields(strings.ToLower(goal.Title)) {
		if len(w) > 3 && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// accumulator collects nodes and edges with id dedup.
type accumulator struct {
	decisionID string
	nodes      []domain.Node
	nodeIndex  map[string]bool
	edges      []domain.Edge
	edgeIndex  map[string]bool
}

func newAccumulator(decisionID string) *accumulator {
	return &accumulator{
		decisionID: decisionID,
		nodeIndex:  map[string]bool{},
		edgeIndex:  map[string]bool{},
	}
}

func (a *accumulator) scoped(suffix string) string {
	return fmt.Sprintf("sg_%s_%s", a.decisionID, suffix)
}

func (a *accumulator) personID(personID string) string {
	return a.scoped("person_" + personID)
}

func (a *accumulator) addNode(n domain.Node) {
	if a.nodeIndex[n.ID] {
		return
	}
	a.nodeIndex[n.ID] = true
	a.nodes = append(a.nodes, n)
}

func (a *accumulator) addEdge(e domain.Edge) {
	key := e.From + "|" + string(e.Predicate) + "|" + e.To
	if a.edgeIndex[key] {
		return
	}
	a.edgeIndex[key] = true
	a.edges = append(a.edges, e)
}

func (a *accumulator) graph() domain.DecisionGraph {
	return domain.DecisionGraph{
		DecisionID: a.decisionID,
		Nodes:      a.nodes,
		Edges:      a.edges,
	}
}
