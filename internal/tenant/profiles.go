package tenant

import "github.com/govlayer/backend/internal/domain"

// Built-in company ids.
const (
	CompanyNexusDynamics = "nexus_dynamics"
	CompanyMayoCentral   = "mayo_central"
	CompanyDelawareGSA   = "delaware_gsa"
)

// BuiltinCompanies returns the demo tenant profiles. No DB; loaded once
// at startup.
func BuiltinCompanies() []domain.Company {
	return []domain.Company{
		nexusDynamics(),
		mayoCentral(),
		delawareGSA(),
	}
}

func nexusDynamics() domain.Company {
	return domain.Company{
		ID:          CompanyNexusDynamics,
		Name:        "Nexus Dynamics",
		Industry:    "Enterprise Software",
		Description: "Mid-size SaaS vendor expanding into data analytics and the EU market.",
		Personnel: []domain.Person{
			{ID: "nd-board", Name: "Katherine Liu", Role: "Board Chair", Level: domain.LevelBoard},
			{ID: "nd-ceo", Name: "Elena Vasquez", Role: "Chief Executive Officer", Level: domain.LevelCLevel, Department: "Executive", ReportsTo: "nd-board"},
			{ID: "nd-cfo", Name: "Marcus Webb", Role: "Chief Financial Officer", Level: domain.LevelCLevel, Department: "Finance", ReportsTo: "nd-ceo"},
			{ID: "nd-cto", Name: "Priya Sharma", Role: "Chief Technology Officer", Level: domain.LevelCLevel, Department: "Engineering", ReportsTo: "nd-ceo"},
			{ID: "nd-vp-eng", Name: "Daniel Okafor", Role: "VP of Engineering", Level: domain.LevelVP, Department: "Engineering", ReportsTo: "nd-cto"},
			{ID: "nd-vp-product", Name: "Maria Rodriguez", Role: "VP of Product", Level: domain.LevelVP, Department: "Product", ReportsTo: "nd-ceo"},
			{ID: "nd-head-data", Name: "James Lee", Role: "Head of Data Science", Level: domain.LevelDepartmentHead, Department: "Data", ReportsTo: "nd-cto"},
			{ID: "nd-dpo", Name: "Ingrid Hoffmann", Role: "Data Protection Officer", Level: domain.LevelDepartmentHead, Department: "Legal", ReportsTo: "nd-ceo"},
			{ID: "nd-head-people", Name: "Tom Baxter", Role: "Head of People", Level: domain.LevelDepartmentHead, Department: "People", ReportsTo: "nd-ceo"},
			{ID: "nd-eng-mgr", Name: "Alex Johnson", Role: "Engineering Manager", Level: domain.LevelTeamLead, Department: "Engineering", ReportsTo: "nd-vp-eng"},
		},
		Rules: []domain.Rule{
			{
				ID: "nd-fin-001", Name: "Major financial commitment",
				Description: "Commitments above $1M need CFO and CEO sign-off.",
				Type:        domain.RuleTypeFinancial, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "cost", Operator: ">", Value: 1000000.0}},
				ApproverIDs: []string{"nd-cfo", "nd-ceo"},
				Rationale:   "Financial commitment exceeds the $1M executive approval threshold",
				Priority:    100, Active: true,
			},
			{
				ID: "nd-fin-002", Name: "Board-level financial threshold",
				Description: "Commitments above $5M require board approval.",
				Type:        domain.RuleTypeFinancial, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "cost", Operator: ">", Value: 5000000.0}},
				ApproverIDs: []string{"nd-board"},
				Rationale:   "Financial commitment exceeds the $5M board threshold",
				Priority:    90, Active: true,
			},
			{
				ID: "nd-priv-001", Name: "Personal data processing",
				Description: "Any processing of personal data requires privacy review.",
				Type:        domain.RuleTypePrivacy, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "uses_pii", Operator: "overlaps_with"}},
				ApproverIDs: []string{"nd-dpo", "nd-cto"},
				Rationale:   "Decision involves processing of personal data",
				Priority:    80, Active: true,
			},
			{
				ID: "nd-comp-001", Name: "Related party transaction",
				Description: "Transactions with related entities need compliance review.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "counterparty_relation", Operator: "==", Value: "related_party"}},
				ApproverIDs: []string{"nd-cfo"},
				Rationale:   "Counterparty is a related entity",
				Priority:    70, Active: true,
			},
			{
				ID: "nd-comp-002", Name: "Retroactive policy change",
				Description: "Retroactive policy changes need executive review.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "policy_change_type", Operator: "==", Value: "retroactive"}},
				ApproverIDs: []string{"nd-ceo"},
				Rationale:   "Policy change applies retroactively",
				Priority:    60, Active: true,
			},
			{
				ID: "nd-strat-001", Name: "Market launch alignment",
				Description: "Launches must map to a strategic goal.",
				Type:        domain.RuleTypeStrategic, Severity: domain.SeverityMedium,
				Action:      domain.ActionRequireGoalMapping,
				Conditions:  []domain.Condition{{Field: "launch_date", Operator: "overlaps_with"}},
				ApproverIDs: []string{"nd-vp-product"},
				Rationale:   "Product launch must align with strategic goals",
				Priority:    50, Active: true,
			},
			{
				ID: "nd-hire-001", Name: "Significant headcount change",
				Description: "Net headcount changes above 10 need People and Finance approval.",
				Type:        domain.RuleTypeHiring, Severity: domain.SeverityMedium,
				Action:      domain.ActionRequireApproval,
				Conditions: []domain.Condition{
					{Field: "headcount_change", Operator: ">", Value: 10.0},
					{Field: "headcount_change", Operator: "<", Value: -10.0},
				},
				ApproverIDs: []string{"nd-head-people", "nd-cfo"},
				Rationale:   "Headcount change exceeds the +/-10 threshold",
				Priority:    40, Active: true,
			},
		},
		Goals: []domain.StrategicGoal{
			{
				ID: "nd-goal-analytics", Title: "Expand analytics revenue",
				Description: "Grow the data analytics product line to $8M ARR.",
				OwnerID:     "nd-vp-product",
				Keywords:    []string{"analytics", "data", "revenue", "acquisition"},
				KPIs:        []string{"Revenue from analytics products", "Customer acquisition in analytics"},
			},
			{
				ID: "nd-goal-reliability", Title: "Platform reliability",
				Description: "Keep enterprise uptime at 99.95% while shipping weekly.",
				OwnerID:     "nd-vp-eng",
				Keywords:    []string{"reliability", "uptime", "quality", "deployment"},
				KPIs:        []string{"Deployment frequency", "Incident rate", "Code quality score"},
			},
			{
				ID: "nd-goal-eu", Title: "European market entry",
				Description: "Establish an EU presence with local compliance posture.",
				OwnerID:     "nd-ceo",
				Keywords:    []string{"europe", "eu", "market", "expansion", "gdpr"},
				KPIs:        []string{"EU enterprise customers"},
			},
		},
		RiskTolerance: domain.RiskTolerance{
			Level:              "moderate",
			MaxAutoApproveCost: 250000,
			Notes:              "Growth-stage posture; escalate compliance and privacy early.",
		},
	}
}

func mayoCentral() domain.Company {
	return domain.Company{
		ID:          CompanyMayoCentral,
		Name:        "Mayo Central Hospital",
		Industry:    "Healthcare",
		Description: "Regional teaching hospital with conservative clinical governance.",
		Personnel: []domain.Person{
			{ID: "mc-board", Name: "Harold Jennings", Role: "Board Chair", Level: domain.LevelBoard},
			{ID: "mc-ceo", Name: "Dr. Susan Hartman", Role: "Hospital Director", Level: domain.LevelCLevel, Department: "Administration", ReportsTo: "mc-board"},
			{ID: "mc-cmo", Name: "Dr. Raj Patel", Role: "Chief Medical Officer", Level: domain.LevelCLevel, Department: "Clinical", ReportsTo: "mc-ceo"},
			{ID: "mc-cfo", Name: "Linda Moreau", Role: "Chief Financial Officer", Level: domain.LevelCLevel, Department: "Finance", ReportsTo: "mc-ceo"},
			{ID: "mc-compliance", Name: "Grace Onyango", Role: "Compliance Director", Level: domain.LevelDepartmentHead, Department: "Compliance", ReportsTo: "mc-ceo"},
			{ID: "mc-radiology", Name: "Dr. Emil Novak", Role: "Head of Radiology", Level: domain.LevelDepartmentHead, Department: "Radiology", ReportsTo: "mc-cmo"},
			{ID: "mc-it", Name: "Kevin Zhao", Role: "IT Director", Level: domain.LevelDepartmentHead, Department: "IT", ReportsTo: "mc-cfo"},
			{ID: "mc-nursing", Name: "Patricia Vance", Role: "Nursing Manager", Level: domain.LevelTeamLead, Department: "Clinical", ReportsTo: "mc-cmo"},
		},
		Rules: []domain.Rule{
			{
				ID: "mc-fin-001", Name: "Capital equipment purchase",
				Description: "Capital purchases above $500K need CFO and Director approval.",
				Type:        domain.RuleTypeFinancial, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "cost", Operator: ">", Value: 500000.0}},
				ApproverIDs: []string{"mc-cfo", "mc-ceo"},
				Rationale:   "Capital expenditure exceeds the $500K threshold",
				Priority:    100, Active: true,
			},
			{
				ID: "mc-priv-001", Name: "Patient data handling",
				Description: "Any use of patient data requires compliance and IT review.",
				Type:        domain.RuleTypePrivacy, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "uses_pii", Operator: "overlaps_with"}},
				ApproverIDs: []string{"mc-compliance", "mc-it"},
				Rationale:   "Decision touches protected health information",
				Priority:    90, Active: true,
			},
			{
				ID: "mc-comp-001", Name: "Clinical integrity review",
				Description: "Compliance-risk decisions need Compliance and CMO review.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "involves_compliance_risk", Operator: "overlaps_with"}},
				ApproverIDs: []string{"mc-compliance", "mc-cmo"},
				Rationale:   "Decision carries a clinical compliance or integrity risk",
				Priority:    80, Active: true,
			},
			{
				ID: "mc-hire-001", Name: "Clinical staffing change",
				Description: "Hiring into clinical roles needs CMO approval.",
				Type:        domain.RuleTypeHiring, Severity: domain.SeverityMedium,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "involves_hiring", Operator: "overlaps_with"}},
				ApproverIDs: []string{"mc-cmo"},
				Rationale:   "Decision changes clinical staffing",
				Priority:    70, Active: true,
			},
			{
				ID: "mc-strat-001", Name: "New service line",
				Description: "New patient services must map to a strategic goal.",
				Type:        domain.RuleTypeStrategic, Severity: domain.SeverityMedium,
				Action:      domain.ActionRequireGoalMapping,
				Conditions:  []domain.Condition{{Field: "launch_date", Operator: "overlaps_with"}},
				ApproverIDs: []string{"mc-ceo"},
				Rationale:   "New service line must align with strategic goals",
				Priority:    60, Active: true,
			},
		},
		Goals: []domain.StrategicGoal{
			{
				ID: "mc-goal-safety", Title: "Patient safety first",
				Description: "Reduce preventable adverse events year over year.",
				OwnerID:     "mc-cmo",
				Keywords:    []string{"safety", "patient", "quality", "clinical"},
				KPIs:        []string{"Adverse event rate", "Readmission rate"},
			},
			{
				ID: "mc-goal-imaging", Title: "Diagnostic capacity",
				Description: "Expand imaging and diagnostic throughput.",
				OwnerID:     "mc-radiology",
				Keywords:    []string{"mri", "imaging", "diagnostic", "radiology", "capacity"},
				KPIs:        []string{"Imaging wait time", "Scans per day"},
			},
			{
				ID: "mc-goal-access", Title: "Community access",
				Description: "Broaden access to care across the region.",
				OwnerID:     "mc-ceo",
				Keywords:    []string{"access", "community", "outreach", "telehealth"},
				KPIs:        []string{"New patient visits", "Telehealth sessions"},
			},
		},
		RiskTolerance: domain.RiskTolerance{
			Level:              "conservative",
			MaxAutoApproveCost: 100000,
			Notes:              "Clinical and privacy risks escalate immediately.",
		},
	}
}

func delawareGSA() domain.Company {
	return domain.Company{
		ID:          CompanyDelawareGSA,
		Name:        "State of Delaware GSA",
		Industry:    "Public Sector",
		Description: "State general services agency bound by procurement statute.",
		Personnel: []domain.Person{
			{ID: "dg-secretary", Name: "Angela Ruiz", Role: "Cabinet Secretary", Level: domain.LevelCLevel, Department: "Executive"},
			{ID: "dg-deputy", Name: "Howard Finch", Role: "Deputy Secretary", Level: domain.LevelVP, Department: "Executive", ReportsTo: "dg-secretary"},
			{ID: "dg-procurement", Name: "Denise Albright", Role: "Procurement Director", Level: domain.LevelDepartmentHead, Department: "Procurement", ReportsTo: "dg-deputy"},
			{ID: "dg-it", Name: "Sam Whitaker", Role: "IT Director", Level: domain.LevelDepartmentHead, Department: "IT", ReportsTo: "dg-deputy"},
			{ID: "dg-counsel", Name: "Jonah Price", Role: "General Counsel", Level: domain.LevelDepartmentHead, Department: "Legal", ReportsTo: "dg-secretary"},
			{ID: "dg-program", Name: "Carla Mendes", Role: "Program Manager", Level: domain.LevelTeamLead, Department: "Procurement", ReportsTo: "dg-procurement"},
		},
		Rules: []domain.Rule{
			{
				ID: "dg-fin-001", Name: "Procurement threshold",
				Description: "Purchases above $100K require competitive procurement approval.",
				Type:        domain.RuleTypeFinancial, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "cost", Operator: ">", Value: 100000.0}},
				ApproverIDs: []string{"dg-procurement", "dg-deputy"},
				Rationale:   "Purchase exceeds the $100K competitive procurement threshold",
				Priority:    100, Active: true,
			},
			{
				ID: "dg-fin-002", Name: "Major contract award",
				Description: "Contracts above $1M require Secretary approval.",
				Type:        domain.RuleTypeFinancial, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireApproval,
				Conditions:  []domain.Condition{{Field: "cost", Operator: ">", Value: 1000000.0}},
				ApproverIDs: []string{"dg-secretary"},
				Rationale:   "Contract value exceeds the $1M cabinet threshold",
				Priority:    90, Active: true,
			},
			{
				ID: "dg-comp-001", Name: "Ethics and integrity review",
				Description: "Integrity concerns go to General Counsel.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityCritical,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "involves_compliance_risk", Operator: "overlaps_with"}},
				ApproverIDs: []string{"dg-counsel"},
				Rationale:   "Decision raises an ethics or integrity concern",
				Priority:    80, Active: true,
			},
			{
				ID: "dg-comp-002", Name: "Sole source justification",
				Description: "Sole source awards need procurement review.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "decision_statement", Operator: "contains", Value: "sole source"}},
				ApproverIDs: []string{"dg-procurement"},
				Rationale:   "Sole source awards bypass competitive bidding",
				Priority:    70, Active: true,
			},
			{
				ID: "dg-priv-001", Name: "Citizen data protection",
				Description: "Citizen PII handling needs Counsel and IT review.",
				Type:        domain.RuleTypePrivacy, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "uses_pii", Operator: "overlaps_with"}},
				ApproverIDs: []string{"dg-counsel", "dg-it"},
				Rationale:   "Decision involves citizen personal data",
				Priority:    60, Active: true,
			},
			{
				ID: "dg-comp-003", Name: "Retroactive policy change",
				Description: "Retroactive rule changes require Secretary review.",
				Type:        domain.RuleTypeCompliance, Severity: domain.SeverityHigh,
				Action:      domain.ActionRequireReview,
				Conditions:  []domain.Condition{{Field: "policy_change_type", Operator: "==", Value: "retroactive"}},
				ApproverIDs: []string{"dg-secretary"},
				Rationale:   "Policy change applies retroactively",
				Priority:    50, Active: true,
			},
		},
		Goals: []domain.StrategicGoal{
			{
				ID: "dg-goal-digital", Title: "Digital service modernization",
				Description: "Move citizen services online with accessible design.",
				OwnerID:     "dg-it",
				Keywords:    []string{"digital", "online", "modernization", "portal"},
				KPIs:        []string{"Services online", "Portal uptime"},
			},
			{
				ID: "dg-goal-transparency", Title: "Procurement transparency",
				Description: "Publish award data and shorten cycle times.",
				OwnerID:     "dg-procurement",
				Keywords:    []string{"procurement", "transparency", "bidding", "award"},
				KPIs:        []string{"Average award cycle days", "Published awards"},
			},
			{
				ID: "dg-goal-stewardship", Title: "Cost stewardship",
				Description: "Reduce per-agency operating cost without service cuts.",
				OwnerID:     "dg-deputy",
				Keywords:    []string{"cost", "savings", "budget", "efficiency"},
				KPIs:        []string{"Operating cost per agency"},
			},
		},
		RiskTolerance: domain.RiskTolerance{
			Level:              "conservative",
			MaxAutoApproveCost: 50000,
			Notes:              "Statutory thresholds are hard limits, not guidance.",
		},
	}
}
