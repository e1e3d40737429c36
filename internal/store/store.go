package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/extract"
)

// Record statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusFailed     = "failed"
)

// DecisionRecord is the full lifecycle state of one submitted decision.
// Stage outputs are filled as the pipeline advances; CurrentStep moves
// strictly forward.
type DecisionRecord struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	InputText string `json:"input_text"`

	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
	StepLabel   string `json:"step_label,omitempty"`
	Error       string `json:"error,omitempty"`

	Decision           *domain.Decision           `json:"decision,omitempty"`
	ExtractionMetadata *extract.Metadata          `json:"extraction_metadata,omitempty"`
	DerivedAttributes  *extract.DerivedAttributes `json:"derived_attributes,omitempty"`
	Governance         *domain.Evaluation         `json:"governance,omitempty"`
	GraphPayload       *domain.DecisionGraph      `json:"graph,omitempty"`
	Reasoning          *domain.Verdict            `json:"reasoning,omitempty"`
	DecisionPack       *domain.DecisionPack       `json:"decision_pack,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Done reports whether the record reached a terminal status.
func (r *DecisionRecord) Done() bool {
	return r.Status == StatusComplete || r.Status == StatusFailed
}

type entry struct {
	record DecisionRecord
	// changed is closed and replaced on every update. Readers grab it
	// under the lock and wait on it for the next change.
	changed chan struct{}
}

// Store holds decision records in memory, keyed by id.
type Store struct {
	mu      sync.RWMutex
	records map[string]*entry
	order   []string
}

func NewStore() *Store {
	return &Store{records: map[string]*entry{}}
}

// Create registers a new pending record.
func (s *Store) Create(id, companyID, text string) DecisionRecord {
	now := time.Now().UTC()
	rec := DecisionRecord{
		ID:        id,
		CompanyID: companyID,
		InputText: text,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = &entry{record: rec, changed: make(chan struct{})}
	s.order = append(s.order, id)
	return rec
}

// Get returns a copy of the record.
func (s *Store) Get(id string) (DecisionRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return DecisionRecord{}, false
	}
	return e.record, true
}

// Update applies fn to the record under the write lock, stamps
// UpdatedAt, and wakes all change watchers. CurrentStep never moves
// backwards regardless of what fn sets.
func (s *Store) Update(id string, fn func(*DecisionRecord)) (DecisionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[id]
	if !ok {
		return DecisionRecord{}, fmt.Errorf("decision %s not found", id)
	}
	prevStep := e.record.CurrentStep
	fn(&e.record)
	if e.record.CurrentStep < prevStep {
		e.record.CurrentStep = prevStep
	}
	e.record.UpdatedAt = time.Now().UTC()
	close(e.changed)
	e.changed = make(chan struct{})
	return e.record, nil
}

// Watch returns the current record plus a channel that closes on the
// next update. Callers loop: read, act, wait, read again.
func (s *Store) Watch(id string) (DecisionRecord, <-chan struct{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return DecisionRecord{}, nil, false
	}
	return e.record, e.changed, true
}

// List returns all records in insertion order, newest last.
func (s *Store) List() []DecisionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DecisionRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].record)
	}
	return out
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
