package domain

// Finding is one issue surfaced by subgraph reasoning.
type Finding struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Verdict is the reasoning output. Deep and deterministic modes produce
// the same shape.
type Verdict struct {
	Contradictions []Finding `json:"contradictions"`
	Gaps           []Finding `json:"gaps"`
	Warnings       []Finding `json:"warnings"`
	Recommendation string    `json:"recommendation"`
	Confidence     float64   `json:"confidence"`
	Mode           string    `json:"mode"` // deep | deterministic
}

// Reasoning modes.
const (
	ModeDeep          = "deep"
	ModeDeterministic = "deterministic"
)

// PackApproval is one approval entry in the decision pack.
type PackApproval struct {
	ApproverName string `json:"approver_name"`
	Role         string `json:"role"`
	Level        string `json:"level"`
	Reason       string `json:"reason,omitempty"`
}

// PackRisk is one risk entry in the decision pack.
type PackRisk struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// DecisionPack is the execution-ready artifact assembled after reasoning.
type DecisionPack struct {
	PackID           string         `json:"pack_id"`
	Title            string         `json:"title"`
	Summary          string         `json:"summary"`
	ConclusionReason string         `json:"conclusion_reason"`
	Approvals        []PackApproval `json:"approvals"`
	Risks            []PackRisk     `json:"risks"`
	NextActions      []string       `json:"next_actions"`
	MissingItems     []string       `json:"missing_items"`
	CreatedAt        string         `json:"created_at"`
}
