package reason

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/llm"
)

// Reasoner analyzes the decision subgraph for contradictions, gaps, and
// warnings. With a client it runs deep (LLM) analysis; without one, or
// when the model response cannot be parsed, it falls back to the
// deterministic analysis. Both paths produce the same Verdict shape.
type Reasoner struct {
	client llm.Client
}

// NewReasoner builds a reasoner. client may be nil.
func NewReasoner(client llm.Client) *Reasoner {
	return &Reasoner{client: client}
}

// DeepCapable reports whether a model client is configured.
func (r *Reasoner) DeepCapable() bool {
	return r.client != nil
}

// Analyze produces the reasoning verdict for one decision. Deep mode
// runs only when requested and a client is configured.
func (r *Reasoner) Analyze(ctx context.Context, decisionID string, d *domain.Decision, ev *domain.Evaluation, sg domain.DecisionGraph, deep bool) domain.Verdict {
	if !deep || r.client == nil {
		return deterministic(d, ev, sg)
	}

	prompt := buildPrompt(d, ev, sg)
	raw, err := r.client.Complete(ctx, reasonerSystemPrompt, prompt)
	if err != nil {
		slog.Warn("deep reasoning failed, using deterministic analysis",
			"decision_id", decisionID, "error", err)
		return deterministic(d, ev, sg)
	}

	var v domain.Verdict
	if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &v); err != nil {
		slog.Warn("deep reasoning response unparseable, using deterministic analysis",
			"decision_id", decisionID, "error", err)
		return deterministic(d, ev, sg)
	}
	if v.Confidence <= 0 || v.Confidence > 1 {
		v.Confidence = 0.7
	}
	ensureSlices(&v)
	v.Mode = domain.ModeDeep
	slog.Info("deep reasoning complete",
		"decision_id", decisionID,
		"contradictions", len(v.Contradictions),
		"gaps", len(v.Gaps),
		"warnings", len(v.Warnings))
	return v
}

const reasonerSystemPrompt = `You are a governance reasoning system analyzing a decision graph.

Find contradictions (structural conflicts), gaps (missing coverage), and warnings (weak spots) in the decision's governance context.

Output ONLY valid JSON:
{
  "contradictions": [{"severity": "low|medium|high|critical", "description": "string"}],
  "gaps": [{"severity": "low|medium|high|critical", "description": "string"}],
  "warnings": [{"severity": "low|medium|high|critical", "description": "string"}],
  "recommendation": "string (one actionable sentence)",
  "confidence": 0.0
}

No explanations, no markdown.`

// buildPrompt serializes the subgraph into readable sections.
func buildPrompt(d *domain.Decision, ev *domain.Evaluation, sg domain.DecisionGraph) string {
	var b strings.Builder

	fmt.Fprintf(&b, "DECISION: %s\n", d.DecisionStatement)
	if d.RiskScore != nil {
		fmt.Fprintf(&b, "  Risk Score: %.1f\n", *d.RiskScore)
	}
	if d.StrategicImpact != "" {
		fmt.Fprintf(&b, "  Strategic Impact: %s\n", d.StrategicImpact)
	}
	fmt.Fprintf(&b, "  Extraction Confidence: %.2f\n\n", d.Confidence)

	actors, policies, risks, resources := partition(sg)

	if len(actors) > 0 {
		b.WriteString("ACTORS (Owners & Approvers):\n")
		for _, n := range actors {
			fmt.Fprintf(&b, "  - %s (%v)\n", n.Label, n.Properties["role"])
		}
		b.WriteString("\n")
	}
	if len(policies) > 0 {
		b.WriteString("POLICIES (Governance Context):\n")
		for _, n := range policies {
			fmt.Fprintf(&b, "  - %s\n", n.Label)
		}
		b.WriteString("\n")
	}
	if len(risks) > 0 {
		b.WriteString("RISKS:\n")
		for _, n := range risks {
			fmt.Fprintf(&b, "  - [%v] %s\n", n.Properties["severity"], n.Label)
			if m, ok := n.Properties["mitigation"].(string); ok && m != "" {
				fmt.Fprintf(&b, "    Mitigation: %s\n", m)
			}
		}
		b.WriteString("\n")
	}
	if len(resources) > 0 {
		b.WriteString("ALIGNED GOALS / RESOURCES:\n")
		for _, n := range resources {
			fmt.Fprintf(&b, "  - %s\n", n.Label)
		}
		b.WriteString("\n")
	}
	if len(sg.Edges) > 0 {
		b.WriteString("RELATIONSHIPS:\n")
		for _, e := range sg.Edges {
			fmt.Fprintf(&b, "  - %s --[%s]--> %s\n", e.From, e.Predicate, e.To)
		}
		b.WriteString("\n")
	}

	if len(ev.Flags) > 0 {
		fmt.Fprintf(&b, "GOVERNANCE FLAGS: %s\n", strings.Join(ev.Flags, ", "))
	}
	fmt.Fprintf(&b, "GOVERNANCE STATUS: %s\n\n", ev.Status)
	b.WriteString("Analyze this graph. Output valid JSON only.")
	return b.String()
}

// deterministic is the no-LLM analysis: structural checks over the
// subgraph with fixed confidence 0.6.
func deterministic(d *domain.Decision, ev *domain.Evaluation, sg domain.DecisionGraph) domain.Verdict {
	v := domain.Verdict{
		Contradictions: []domain.Finding{},
		Gaps:           []domain.Finding{},
		Warnings:       []domain.Finding{},
		Confidence:     0.6,
		Mode:           domain.ModeDeterministic,
	}

	actors, _, risks, _ := partition(sg)

	// Candidate owners are proposals, not accountability.
	accountable := 0
	for _, n := range actors {
		if c, _ := n.Properties["candidate_owner"].(bool); !c {
			accountable++
		}
	}
	if accountable == 0 {
		v.Contradictions = append(v.Contradictions, domain.Finding{
			Severity:    domain.SeverityCritical,
			Description: "No accountable actors are connected to this decision",
		})
	}

	score := 0.0
	if d.RiskScore != nil {
		score = *d.RiskScore
	}
	if score >= 7.0 && len(d.Risks) < 2 {
		v.Gaps = append(v.Gaps, domain.Finding{
			Severity: domain.SeverityHigh,
			Description: fmt.Sprintf(
				"Risk score is %.1f but only %d risks identified", score, len(d.Risks)),
		})
	}

	for _, n := range risks {
		m, _ := n.Properties["mitigation"].(string)
		if m == "" {
			v.Warnings = append(v.Warnings, domain.Finding{
				Severity:    domain.SeverityMedium,
				Description: fmt.Sprintf("Risk %q has no mitigation plan", n.Label),
			})
		}
	}

	v.Recommendation = recommend(&v, ev)
	return v
}

func recommend(v *domain.Verdict, ev *domain.Evaluation) string {
	switch {
	case len(v.Contradictions) > 0:
		return "Resolve ownership and structural contradictions before proceeding"
	case len(v.Gaps) > 0:
		return "Conduct a thorough risk assessment to close the identified coverage gaps"
	case len(v.Warnings) > 0:
		return "Add mitigation plans for the flagged risks"
	case ev.RequiresHumanReview:
		return "Route the decision through the required approval chain"
	default:
		return "Decision is structurally sound; proceed with standard execution"
	}
}

func ensureSlices(v *domain.Verdict) {
	if v.Contradictions == nil {
		v.Contradictions = []domain.Finding{}
	}
	if v.Gaps == nil {
		v.Gaps = []domain.Finding{}
	}
	if v.Warnings == nil {
		v.Warnings = []domain.Finding{}
	}
}

func partition(sg domain.DecisionGraph) (actors, policies, risks, resources []domain.Node) {
	for _, n := range sg.Nodes {
		switch n.Type {
		case domain.NodeActor:
			actors = append(actors, n)
		case domain.NodePolicy:
			policies = append(policies, n)
		case domain.NodeRisk:
			risks = append(risks, n)
		case domain.NodeResource:
			resources = append(resources, n)
		}
	}
	return
}
