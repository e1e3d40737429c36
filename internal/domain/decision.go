package domain

// StrategicImpact classifies how much a decision matters to company strategy.
type StrategicImpact string

const (
	ImpactLow      StrategicImpact = "low"
	ImpactMedium   StrategicImpact = "medium"
	ImpactHigh     StrategicImpact = "high"
	ImpactCritical StrategicImpact = "critical"
)

// ApprovalLevel is the authority tier of an approver.
type ApprovalLevel string

const (
	LevelTeamLead       ApprovalLevel = "team_lead"
	LevelDepartmentHead ApprovalLevel = "department_head"
	LevelVP             ApprovalLevel = "vp"
	LevelCLevel         ApprovalLevel = "c_level"
	LevelBoard          ApprovalLevel = "board"
)

var levelRanks = map[ApprovalLevel]int{
	LevelTeamLead:       1,
	LevelDepartmentHead: 2,
	LevelVP:             3,
	LevelCLevel:         4,
	LevelBoard:          5,
}

var levelNames = map[ApprovalLevel]string{
	LevelTeamLead:       "Team Lead",
	LevelDepartmentHead: "Department Head",
	LevelVP:             "Vice President",
	LevelCLevel:         "C-Level Executive",
	LevelBoard:          "Board of Directors",
}

// Rank returns the numeric authority tier (1=team_lead .. 5=board).
// Unknown levels rank 0.
func (l ApprovalLevel) Rank() int {
	return levelRanks[l]
}

// DisplayName returns the human-readable name for the level.
func (l ApprovalLevel) DisplayName() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return string(l)
}

// Goal is an organizational outcome targeted by the decision.
type Goal struct {
	Description string `json:"description"`
	Metric      string `json:"metric,omitempty"`
}

// KPI is a measurable success indicator.
type KPI struct {
	Name                 string `json:"name"`
	Target               string `json:"target,omitempty"`
	MeasurementFrequency string `json:"measurement_frequency,omitempty"`
}

// Risk is a potential failure vector or constraint.
type Risk struct {
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	Mitigation  string `json:"mitigation,omitempty"`
}

// Owner is an accountable individual or role.
type Owner struct {
	Name           string `json:"name"`
	Role           string `json:"role,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

// Assumption is an implicit belief underlying the decision.
type Assumption struct {
	Description string `json:"description"`
	Criticality string `json:"criticality,omitempty"`
}

// ApprovalStep is a single step in the computed approval chain.
type ApprovalStep struct {
	ApproverID   string        `json:"approver_id"`
	ApproverName string        `json:"approver_name"`
	Level        ApprovalLevel `json:"level"`
	Role         string        `json:"role"`
	Required     bool          `json:"required"`
	Rationale    string        `json:"rationale,omitempty"`
	SourceRuleID string        `json:"source_rule_id,omitempty"`
	RuleAction   string        `json:"rule_action,omitempty"`
	Severity     Severity      `json:"severity,omitempty"`
}

// Decision is the structured form of a free-form decision statement.
// The extractor fills the core fields; the rule engine fills the
// governance outputs (RiskScore, ApprovalChain).
type Decision struct {
	DecisionStatement string       `json:"decision_statement"`
	Goals             []Goal       `json:"goals"`
	KPIs              []KPI        `json:"kpis"`
	Risks             []Risk       `json:"risks"`
	Owners            []Owner      `json:"owners"`
	RequiredApprovals []string     `json:"required_approvals"`
	Assumptions       []Assumption `json:"assumptions"`
	Confidence        float64      `json:"confidence"`

	// Governance-input attributes extracted from the text. Pointers
	// distinguish "absent" from zero; rule conditions treat a nil LHS
	// as false for numeric comparisons.
	Cost                   *float64 `json:"cost,omitempty"`
	CostEstimateRange      string   `json:"cost_estimate_range,omitempty"`
	UsesPII                *bool    `json:"uses_pii,omitempty"`
	CounterpartyRelation   string   `json:"counterparty_relation,omitempty"`
	PolicyChangeType       string   `json:"policy_change_type,omitempty"`
	TargetMarket           string   `json:"target_market,omitempty"`
	LaunchDate             *bool    `json:"launch_date,omitempty"`
	InvolvesHiring         *bool    `json:"involves_hiring,omitempty"`
	InvolvesComplianceRisk *bool    `json:"involves_compliance_risk,omitempty"`
	HeadcountChange        *int     `json:"headcount_change,omitempty"`

	// Governance outputs.
	RiskScore       *float64        `json:"risk_score,omitempty"`
	StrategicImpact StrategicImpact `json:"strategic_impact,omitempty"`
	ApprovalChain   []ApprovalStep  `json:"approval_chain,omitempty"`
}

// Substantive reports whether the decision carries enough structure to be
// worth governing (used by the coverage-gap flag).
func (d *Decision) Substantive() bool {
	return len(d.Goals) > 0 || len(d.KPIs) > 0 || len(d.Risks) > 0
}
