package tenant

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/govlayer/backend/internal/domain"
)

// ErrNotFound is returned when a company id is unknown.
type ErrNotFound struct {
	CompanyID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("company %q not found", e.CompanyID)
}

// Registry is the read-only tenant directory. Profiles are validated at
// construction; the registry never changes after boot, so reads need no
// locking.
type Registry struct {
	companies map[string]*domain.Company
	order     []string
}

// NewRegistry validates and indexes the given company profiles.
// Construction fails when any personnel reports_to graph contains a cycle
// or references an unknown person; the error lists the offending ids.
func NewRegistry(companies []domain.Company) (*Registry, error) {
	r := &Registry{
		companies: make(map[string]*domain.Company, len(companies)),
	}
	for i := range companies {
		c := companies[i]
		if _, dup := r.companies[c.ID]; dup {
			return nil, fmt.Errorf("duplicate company id %q", c.ID)
		}
		if bad := reportingCycles(&c); len(bad) > 0 {
			return nil, fmt.Errorf(
				"company %q: personnel reporting cycle involving ids: %s",
				c.ID, strings.Join(bad, ", "))
		}
		if bad := danglingManagers(&c); len(bad) > 0 {
			return nil, fmt.Errorf(
				"company %q: personnel report to unknown ids: %s",
				c.ID, strings.Join(bad, ", "))
		}
		r.companies[c.ID] = &c
		r.order = append(r.order, c.ID)
		slog.Info("company profile loaded",
			"company_id", c.ID,
			"personnel", len(c.Personnel),
			"rules", len(c.Rules),
			"goals", len(c.Goals))
	}
	return r, nil
}

// NewDefaultRegistry loads the built-in company profiles.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(BuiltinCompanies())
}

// List returns all companies in registration order.
func (r *Registry) List() []*domain.Company {
	out := make([]*domain.Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.companies[id])
	}
	return out
}

// Get returns the company with the given id.
func (r *Registry) Get(id string) (*domain.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, &ErrNotFound{CompanyID: id}
	}
	return c, nil
}

// Rules returns the governance rules for a company, empty when unknown.
func (r *Registry) Rules(id string) []domain.Rule {
	c, ok := r.companies[id]
	if !ok {
		return nil
	}
	return c.Rules
}

// IDs returns all known company ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.companies))
	for id := range r.companies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// reportingCycles collects the ids of personnel that sit on a reports_to
// cycle. A person is on a cycle when walking their management chain leads
// back to them. Result is sorted for stable errors.
func reportingCycles(c *domain.Company) []string {
	byID := make(map[string]domain.Person, len(c.Personnel))
	for _, p := range c.Personnel {
		byID[p.ID] = p
	}

	var out []string
	for _, p := range c.Personnel {
		seen := map[string]bool{}
		cur := p.ReportsTo
		for cur != "" && !seen[cur] {
			if cur == p.ID {
				out = append(out, p.ID)
				break
			}
			seen[cur] = true
			next, ok := byID[cur]
			if !ok {
				break
			}
			cur = next.ReportsTo
		}
	}
	sort.Strings(out)
	return out
}

func danglingManagers(c *domain.Company) []string {
	byID := make(map[string]bool, len(c.Personnel))
	for _, p := range c.Personnel {
		byID[p.ID] = true
	}
	var bad []string
	for _, p := range c.Personnel {
		if p.ReportsTo != "" && !byID[p.ReportsTo] {
			bad = append(bad, p.ID)
		}
	}
	sort.Strings(bad)
	return bad
}
