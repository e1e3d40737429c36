package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govlayer/backend/internal/domain"
)

func TestNewRegistryRejectsReportingCycle(t *testing.T) {
	_, err := NewRegistry([]domain.Company{{
		ID:   "loop",
		Name: "Loop Inc",
		Personnel: []domain.Person{
			{ID: "a", Name: "A", ReportsTo: "b"},
			{ID: "b", Name: "B", ReportsTo: "a"},
		},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reporting cycle")
	assert.Contains(t, err.Error(), "a, b")
}

func TestNewRegistryRejectsUnknownManager(t *testing.T) {
	_, err := NewRegistry([]domain.Company{{
		ID:   "dangling",
		Name: "Dangling LLC",
		Personnel: []domain.Person{
			{ID: "a", Name: "A", ReportsTo: "ghost"},
		},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ids")
}

func TestNewRegistryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRegistry([]domain.Company{
		{ID: "x", Name: "One"},
		{ID: "x", Name: "Two"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate company id")
}

func TestRegistryLookups(t *testing.T) {
	r, err := NewRegistry([]domain.Company{
		{ID: "beta", Name: "Beta", Rules: []domain.Rule{{ID: "r1"}}},
		{ID: "alpha", Name: "Alpha"},
	})
	require.NoError(t, err)

	c, err := r.Get("beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", c.Name)

	_, err = r.Get("gamma")
	var nf *ErrNotFound
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "gamma", nf.CompanyID)

	// List preserves registration order, IDs sorts.
	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "beta", list[0].ID)
	assert.Equal(t, []string{"alpha", "beta"}, r.IDs())

	require.Len(t, r.Rules("beta"), 1)
	assert.Nil(t, r.Rules("gamma"))
}

func TestDefaultRegistryProfiles(t *testing.T) {
	r, err := NewDefaultRegistry()
	require.NoError(t, err)

	ids := r.IDs()
	assert.Contains(t, ids, "nexus_dynamics")
	assert.Contains(t, ids, "mayo_central")
	assert.Contains(t, ids, "delaware_gsa")

	for _, c := range r.List() {
		assert.NotEmpty(t, c.Personnel, c.ID)
		assert.NotEmpty(t, c.Rules, c.ID)
		assert.NotEmpty(t, c.Goals, c.ID)
		for _, rule := range c.Rules {
			for _, id := range rule.ApproverIDs {
				_, ok := c.PersonByID(id)
				assert.True(t, ok, "rule %s references unknown approver %s", rule.ID, id)
			}
		}
	}
}
