package domain

// Person is one entry in a company's personnel directory.
type Person struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Role       string        `json:"role"`
	Level      ApprovalLevel `json:"level"`
	Department string        `json:"department,omitempty"`
	// Personnel id of this person's manager; empty at the top of the org.
	ReportsTo string `json:"reports_to,omitempty"`
}

// StrategicGoal is a company-level goal that decisions can align to.
type StrategicGoal struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	OwnerID     string   `json:"owner_id,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	KPIs        []string `json:"kpis,omitempty"`
}

// RiskTolerance describes how much risk a company accepts before
// requiring escalation.
type RiskTolerance struct {
	Level              string  `json:"level"` // conservative | moderate | aggressive
	MaxAutoApproveCost float64 `json:"max_auto_approve_cost,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

// Company is a tenant profile: org structure, governance rules, goals.
type Company struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Industry      string          `json:"industry"`
	Description   string          `json:"description,omitempty"`
	Personnel     []Person        `json:"personnel"`
	Rules         []Rule          `json:"rules"`
	Goals         []StrategicGoal `json:"goals"`
	RiskTolerance RiskTolerance   `json:"risk_tolerance"`
}

// PersonByID returns the personnel entry with the given id.
func (c *Company) PersonByID(id string) (Person, bool) {
	for _, p := range c.Personnel {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// DirectReports returns personnel whose reports_to is the given id.
func (c *Company) DirectReports(id string) []Person {
	var out []Person
	for _, p := range c.Personnel {
		if p.ReportsTo == id {
			out = append(out, p)
		}
	}
	return out
}
