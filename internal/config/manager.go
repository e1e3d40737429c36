package config

import (
	"os"
	"sync"

	"gopkg.in/yaml.v2"
)

// TenantsConfig holds map of tenant overrides
type TenantsConfig struct {
	Tenants map[string]Config `yaml:"tenants"`
}

// Manager handles dynamic configuration resolution
type Manager struct {
	globalConfig  *Config
	tenantConfigs map[string]Config
	mu            sync.RWMutex
}

// NewManager loads both master and tenant configs
func NewManager(masterPath, tenantsPath string) (*Manager, error) {
	// Load Master
	master, err := LoadConfig(masterPath)
	if err != nil {
		return nil, err
	}

	// Load Tenants
	f, err := os.Open(tenantsPath)
	if err != nil {
		// If tenants file missing, just use empty map
		if os.IsNotExist(err) {
			return &Manager{globalConfig: master, tenantConfigs: make(map[string]Config)}, nil
		}
		return nil, err
	}
	defer f.Close()

	var tc TenantsConfig
	if err := yaml.NewDecoder(f).Decode(&tc); err != nil {
		return nil, err
	}

	return &Manager{
		globalConfig:  master,
		tenantConfigs: tc.Tenants,
	}, nil
}

// NewManagerFromConfig wraps an already-loaded global config with no
// tenant overrides.
func NewManagerFromConfig(global *Config) *Manager {
	return &Manager{
		globalConfig:  global,
		tenantConfigs: make(map[string]Config),
	}
}

// Get returns the effective config for a tenant
// It merges tenant overrides on top of the global config
func (m *Manager) Get(tenantID string) *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Start with a copy of the global config
	effective := *m.globalConfig

	// Apply overrides if they exist
	if override, ok := m.tenantConfigs[tenantID]; ok {
		// Pipeline budgets
		if override.Pipeline.LLMBudgetSecs != 0 {
			effective.Pipeline.LLMBudgetSecs = override.Pipeline.LLMBudgetSecs
		}
		if override.Pipeline.StepPaceMs != 0 {
			effective.Pipeline.StepPaceMs = override.Pipeline.StepPaceMs
		}

		// Extraction model selection
		if override.Extract.Model != "" {
			effective.Extract.Model = override.Extract.Model
		}
		if override.Extract.MaxTokens != 0 {
			effective.Extract.MaxTokens = override.Extract.MaxTokens
		}
		if override.Extract.MaxRetries != 0 {
			effective.Extract.MaxRetries = override.Extract.MaxRetries
		}

		// Reasoner model selection
		if override.Reasoner.Model != "" {
			effective.Reasoner.Model = override.Reasoner.Model
		}
		if override.Reasoner.MaxTokens != 0 {
			effective.Reasoner.MaxTokens = override.Reasoner.MaxTokens
		}

		// Input limits
		if override.Limits.MinTextLen != 0 {
			effective.Limits.MinTextLen = override.Limits.MinTextLen
		}
		if override.Limits.MaxTextLen != 0 {
			effective.Limits.MaxTextLen = override.Limits.MaxTextLen
		}
	}

	return &effective
}
