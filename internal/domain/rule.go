package domain

// Severity of a governance rule or flag.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRanks = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Weights used when synthesizing a risk score from extracted risks.
var severityWeights = map[Severity]float64{
	SeverityCritical: 8,
	SeverityHigh:     3,
	SeverityMedium:   1.5,
	SeverityLow:      0.5,
}

// Rank returns the ordering value (low=1 .. critical=4). Unknown is 0.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// Weight returns the risk-score contribution of this severity.
func (s Severity) Weight() float64 {
	return severityWeights[s]
}

// Max returns the more severe of s and other.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

// Rule categories used for review routing and next-action generation.
const (
	RuleTypeFinancial   = "financial"
	RuleTypePrivacy     = "privacy"
	RuleTypeCompliance  = "compliance"
	RuleTypeStrategic   = "strategic"
	RuleTypeOperational = "operational"
	RuleTypeHiring      = "hiring"
)

// Rule actions.
const (
	ActionRequireApproval    = "require_approval"
	ActionRequireReview      = "require_review"
	ActionRequireGoalMapping = "require_goal_mapping"
)

// Condition is one predicate over a decision attribute. A rule triggers
// when ANY of its conditions holds (OR semantics, short-circuit).
type Condition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"` // > >= < <= == != contains overlaps_with
	Value    interface{} `json:"value,omitempty"`
}

// Rule is a tenant governance rule evaluated against extracted decisions.
type Rule struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type"`
	Severity    Severity    `json:"severity"`
	Action      string      `json:"action"`
	Conditions  []Condition `json:"conditions"`
	// Personnel ids whose approval the rule demands when triggered.
	ApproverIDs []string `json:"approver_ids,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
	// Priority orders evaluation; higher evaluates first, ties keep
	// declaration order. Inactive rules never match.
	Priority int  `json:"priority,omitempty"`
	Active   bool `json:"active"`
}

// TriggeredRule records a rule firing with its evaluation rationale.
type TriggeredRule struct {
	RuleID    string   `json:"rule_id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Severity  Severity `json:"severity"`
	Action    string   `json:"action"`
	Rationale string   `json:"rationale"`
}

// InferredOwner is the accountability assignment computed from the
// approval chain when the decision text names no owner.
type InferredOwner struct {
	PersonID string        `json:"person_id"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	Level    ApprovalLevel `json:"level"`
	// True when the owner was inferred at department_head level or below,
	// which suppresses the MISSING_OWNER flag in normalized output.
	DepartmentLevel bool `json:"department_level"`
}

// Evaluation is the full governance verdict for one decision.
type Evaluation struct {
	TriggeredRules      []TriggeredRule `json:"triggered_rules"`
	ApprovalChain       []ApprovalStep  `json:"approval_chain"`
	Flags               []string        `json:"flags"`
	RiskScore           float64         `json:"risk_score"`
	RequiresHumanReview bool            `json:"requires_human_review"`
	Status              string          `json:"status"` // compliant | review_required | blocked
	InferredOwner       *InferredOwner  `json:"inferred_owner,omitempty"`
}

// Governance statuses.
const (
	StatusCompliant      = "compliant"
	StatusReviewRequired = "review_required"
	StatusBlocked        = "blocked"
)

// Governance flags raised by the rule engine.
const (
	FlagMissingOwner               = "MISSING_OWNER"
	FlagMissingRiskAssessment      = "MISSING_RISK_ASSESSMENT"
	FlagHighRisk                   = "HIGH_RISK"
	FlagStrategicCritical          = "STRATEGIC_CRITICAL"
	FlagCriticalConflict           = "CRITICAL_CONFLICT"
	FlagPrivacyReviewRequired      = "PRIVACY_REVIEW_REQUIRED"
	FlagFinancialThresholdExceeded = "FINANCIAL_THRESHOLD_EXCEEDED"
	FlagStrategicMisalignment      = "STRATEGIC_MISALIGNMENT"
	FlagGovernanceCoverageGap      = "GOVERNANCE_COVERAGE_GAP"
)
