package rules

import "github.com/govlayer/backend/internal/domain"

// buildChain turns triggered rules into a deduplicated approval chain.
// Each approver appears once; the first triggering rule wins the
// rationale, later rules only escalate the step severity (monotone
// low < medium < high < critical).
func buildChain(triggered []ruleHit, company *domain.Company) []domain.ApprovalStep {
	var chain []domain.ApprovalStep
	index := map[string]int{} // approver id -> position in chain

	for _, hit := range triggered {
		rule := hit.rule
		// Goal-mapping rules never gate on a person; they surface through
		// the strategic flags instead.
		if rule.Action != domain.ActionRequireApproval &&
			rule.Action != domain.ActionRequireReview {
			continue
		}
		for _, approverID := range rule.ApproverIDs {
			person, ok := company.PersonByID(approverID)
			if !ok {
				continue
			}
			if i, dup := index[approverID]; dup {
				chain[i].Severity = chain[i].Severity.Max(rule.Severity)
				continue
			}
			rationale := rule.Description
			if rationale == "" {
				rationale = rule.Rationale
			}
			index[approverID] = len(chain)
			chain = append(chain, domain.ApprovalStep{
				ApproverID:   person.ID,
				ApproverName: person.Name,
				Level:        person.Level,
				Role:         person.Role,
				Required:     true,
				Rationale:    rationale,
				SourceRuleID: rule.ID,
				RuleAction:   rule.Action,
				Severity:     rule.Severity,
			})
		}
	}
	return chain
}

// inferOwner assigns accountability when the decision names no owner:
// take the lowest-level approver in the chain; prefer one of their
// direct reports (closest to the work), else the approver themselves.
// Returns nil when the chain is empty.
func inferOwner(d *domain.Decision, chain []domain.ApprovalStep, company *domain.Company) *domain.InferredOwner {
	if len(d.Owners) > 0 || len(chain) == 0 {
		return nil
	}

	lowest := chain[0]
	for _, step := range chain[1:] {
		if step.Level.Rank() < lowest.Level.Rank() {
			lowest = step
		}
	}

	person, ok := company.PersonByID(lowest.ApproverID)
	if !ok {
		return nil
	}
	if reports := company.DirectReports(person.ID); len(reports) > 0 {
		person = reports[0]
	}

	return &domain.InferredOwner{
		PersonID:        person.ID,
		Name:            person.Name,
		Role:            person.Role,
		Level:           person.Level,
		DepartmentLevel: person.Level.Rank() <= domain.LevelDepartmentHead.Rank(),
	}
}
