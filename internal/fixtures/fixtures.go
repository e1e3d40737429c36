package fixtures

import "github.com/govlayer/backend/internal/tenant"

// Scenario is a ready-to-submit demo decision for one tenant.
type Scenario struct {
	ID        string   `json:"id"`
	CompanyID string   `json:"company_id"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Tags      []string `json:"tags"`
}

var catalog = []Scenario{
	// nexus_dynamics
	{
		ID:        "nd-clean-tooling",
		CompanyID: tenant.CompanyNexusDynamics,
		Title:     "Compliant: internal tooling upgrade",
		Text: "We will upgrade the internal CI build cluster for $40,000 this quarter. " +
			"Alex Johnson, Engineering Manager, owns the rollout. Success is measured by " +
			"build time under 10 minutes. Main risk is a week of reduced build capacity " +
			"during migration, mitigated by running both clusters in parallel.",
		Tags: []string{"compliant", "low_risk"},
	},
	{
		ID:        "nd-big-budget",
		CompanyID: tenant.CompanyNexusDynamics,
		Title:     "Budget violation: $2.5M data platform",
		Text: "We intend to build a new analytics data platform at an estimated cost of " +
			"$2.5 million over 18 months to consolidate our reporting stack. The goal is " +
			"a single source of truth for revenue metrics with dashboards refreshed hourly.",
		Tags: []string{"financial", "approval_chain"},
	},
	{
		ID:        "nd-pii-launch",
		CompanyID: tenant.CompanyNexusDynamics,
		Title:     "Privacy violation: EU launch with personal data",
		Text: "Launch the recommendation engine in the EU market next quarter. The system " +
			"processes customer purchase history and personal profile data to tailor " +
			"suggestions. We expect a 15% lift in conversion rate.",
		Tags: []string{"privacy", "gdpr", "launch"},
	},
	{
		ID:        "nd-related-party",
		CompanyID: tenant.CompanyNexusDynamics,
		Title:     "Blocked: related-party vendor contract",
		Text: "Sign a $3 million infrastructure contract with Quantum Hosting, a company " +
			"owned by our CFO's family. The counterparty is a related party. The deal " +
			"replaces our current hosting provider within six months.",
		Tags: []string{"blocked", "conflict_of_interest"},
	},

	// mayo_central
	{
		ID:        "mc-clean-scheduling",
		CompanyID: tenant.CompanyMayoCentral,
		Title:     "Compliant: nurse scheduling software",
		Text: "Adopt a nurse shift scheduling tool for the outpatient clinic at $30,000 " +
			"per year. Patricia Vance, Nursing Manager, owns the rollout. KPI is schedule conflicts per " +
			"month below five. Risk of staff adoption friction is mitigated by a " +
			"two-week training program.",
		Tags: []string{"compliant", "low_risk"},
	},
	{
		ID:        "mc-patient-data",
		CompanyID: tenant.CompanyMayoCentral,
		Title:     "Privacy violation: patient record analytics",
		Text: "Build a readmission prediction model using patient medical records and " +
			"demographic data. The model will flag high-risk discharges for follow-up " +
			"calls. Estimated cost is $200,000.",
		Tags: []string{"privacy", "patient_data", "blocked"},
	},
	{
		ID:        "mc-retroactive-policy",
		CompanyID: tenant.CompanyMayoCentral,
		Title:     "Compliance: retroactive billing policy change",
		Text: "Apply the updated billing policy retroactively to claims filed since " +
			"January. This is a retroactive policy change affecting roughly 4,000 " +
			"past claims and may require patient notification.",
		Tags: []string{"compliance", "review"},
	},

	// delaware_gsa
	{
		ID:        "dg-clean-portal",
		CompanyID: tenant.CompanyDelawareGSA,
		Title:     "Compliant: citizen portal accessibility fixes",
		Text: "Remediate accessibility issues on the citizen services portal for $25,000. " +
			"Owner is Sam Whitaker, IT Director. KPI is WCAG AA compliance " +
			"across all forms by end of quarter.",
		Tags: []string{"compliant", "accessibility"},
	},
	{
		ID:        "dg-sole-source",
		CompanyID: tenant.CompanyDelawareGSA,
		Title:     "Compliance: sole source procurement",
		Text: "Award a sole source contract to Beacon Systems for the permit management " +
			"system at $900,000 because no other vendor supports the legacy data format. " +
			"Migration must finish before the fiscal year closes.",
		Tags: []string{"procurement", "sole_source", "review"},
	},
	{
		ID:        "dg-hiring-surge",
		CompanyID: tenant.CompanyDelawareGSA,
		Title:     "Hiring: seasonal staffing increase",
		Text: "Hire 15 additional seasonal staff for the summer permit processing surge. " +
			"The plan increases headcount by 15 for four months at a cost of $350,000 " +
			"and targets a permit backlog under 200 applications.",
		Tags: []string{"hiring", "approval_chain"},
	},
}

// All returns the full demo catalog.
func All() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}

// ForCompany returns the scenarios for one tenant.
func ForCompany(companyID string) []Scenario {
	var out []Scenario
	for _, s := range catalog {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out
}

// Get looks a scenario up by id.
func Get(id string) (Scenario, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
