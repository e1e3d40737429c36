package extract

import "fmt"

const schemaDescription = `{
  "decision_statement": "string (10-1000 chars, clear executable action)",
  "goals": [{"description": "string", "metric": "string or null"}],
  "kpis": [{"name": "string", "target": "string or null", "measurement_frequency": "string or null"}],
  "risks": [{"description": "string", "severity": "string or null (low/medium/high/critical)", "mitigation": "string or null"}],
  "owners": [{"name": "string", "role": "string or null", "responsibility": "string or null"}],
  "required_approvals": ["string"],
  "assumptions": [{"description": "string", "criticality": "string or null"}],
  "confidence": 0.0,
  "cost": "number or null (full numeric form, e.g. 3500000 for $3.5M; upper bound of the typical market range when inferred)",
  "cost_estimate_range": "string or null (human-readable range when cost was inferred, e.g. '$1.5M-$3.5M')",
  "uses_pii": "bool or null (true if personal/customer data is processed, shared, or exposed)",
  "counterparty_relation": "string or null ('related_party' for subsidiaries, affiliates, related entities)",
  "policy_change_type": "string or null ('retroactive' for retroactive policy changes)",
  "target_market": "string or null (region if explicitly mentioned)",
  "launch_date": "bool or null (true for product launches, deployments, releases)",
  "involves_hiring": "bool or null (true for hiring or significant headcount change)",
  "involves_compliance_risk": "bool or null (true for anti-bribery, ethics, gift policy or similar integrity concerns)",
  "headcount_change": "integer or null (net people hired positive, reduced negative)",
  "strategic_impact": "string or null (low/medium/high/critical)"
}`

const systemPrompt = `You are a decision extraction system for enterprise governance.

Your task: Convert free-form decision text into structured JSON ONLY.

Output ONLY valid JSON matching this schema:
` + schemaDescription + `

Principles:
1. Extract only what is stated. The single exception is cost: when the text
   names a market-priced class of equipment with no amount, set cost to the
   upper bound of the typical market range and fill cost_estimate_range.
2. Governance-trigger attributes (uses_pii, launch_date, involves_hiring,
   involves_compliance_risk, counterparty_relation, policy_change_type) are
   formal review gates: set them whenever the text implies the condition,
   even casually.
3. Owners follow domain: attribute ownership to the role whose domain the
   decision falls in when a person or role is named, never invent names.

Rules:
- Output ONLY valid JSON, no explanations or markdown
- Every text field must be written in the same language as the input text
- If information is missing, use empty lists [] or null
- Be conservative with confidence scores
- Extract actual content, don't make up information`

func userPrompt(text, feedback string) string {
	p := fmt.Sprintf("Extract structured decision from this text:\n\n%s\n\nOutput valid JSON only.", text)
	if feedback != "" {
		p += fmt.Sprintf("\n\nYour previous response was rejected: %s\nReturn corrected JSON only.", feedback)
	}
	return p
}
