package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/govlayer/backend/internal/config"
	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/events"
	"github.com/govlayer/backend/internal/extract"
	"github.com/govlayer/backend/internal/graph"
	"github.com/govlayer/backend/internal/monitoring"
	"github.com/govlayer/backend/internal/pack"
	"github.com/govlayer/backend/internal/reason"
	"github.com/govlayer/backend/internal/rules"
	"github.com/govlayer/backend/internal/store"
	"github.com/govlayer/backend/internal/subgraph"
	"github.com/govlayer/backend/internal/tenant"
)

// ErrQueueFull is returned by Submit when the worker queue is saturated.
var ErrQueueFull = errors.New("pipeline queue full")

// Step labels reported to pollers and stream consumers. Governance,
// graph materialization, and subgraph assembly present as one
// externally visible step.
const (
	StepExtracting = "extracting"
	StepGovernance = "evaluating_governance"
	StepReasoning  = "reasoning"
	StepComplete   = "complete"
)

// Stage completion messages attached to progress events.
const (
	MsgExtracted = "Decision entities extracted"
	MsgGoverned  = "Policy evaluation and graph mapping complete"
	MsgReasoned  = "Reasoning analysis complete"
)

type job struct {
	recordID    string
	companyID   string
	text        string
	deepExtract bool
	deepReason  bool
}

// Pipeline runs submitted decisions through extraction, governance,
// graph materialization, reasoning, and pack assembly on a bounded
// worker pool.
type Pipeline struct {
	cfgs      *config.Manager
	records   *store.Store
	graphs    *graph.Store
	registry  *tenant.Registry
	engine    *rules.Engine
	extractor *extract.Extractor
	subgraphs *subgraph.Builder
	reasoner  *reason.Reasoner
	bus       events.Emitter
	metrics   *monitoring.Metrics

	jobs chan job
}

func New(
	cfgs *config.Manager,
	records *store.Store,
	graphs *graph.Store,
	registry *tenant.Registry,
	engine *rules.Engine,
	extractor *extract.Extractor,
	subgraphs *subgraph.Builder,
	reasoner *reason.Reasoner,
	bus events.Emitter,
	metrics *monitoring.Metrics,
) *Pipeline {
	global := cfgs.Get("")
	return &Pipeline{
		cfgs:      cfgs,
		records:   records,
		graphs:    graphs,
		registry:  registry,
		engine:    engine,
		extractor: extractor,
		subgraphs: subgraphs,
		reasoner:  reasoner,
		bus:       bus,
		metrics:   metrics,
		jobs:      make(chan job, global.Pipeline.QueueSize),
	}
}

// Run starts the worker pool and blocks until ctx is canceled. Jobs in
// flight when ctx ends run to completion.
func (p *Pipeline) Run(ctx context.Context) {
	global := p.cfgs.Get("")
	for i := 0; i < global.Pipeline.Workers; i++ {
		go p.worker(ctx, i)
	}
	slog.Info("pipeline started",
		"workers", global.Pipeline.Workers,
		"queue_size", global.Pipeline.QueueSize)
	<-ctx.Done()
}

func (p *Pipeline) worker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			p.metrics.SubmissionsQueued.Dec()
			p.process(j)
		}
	}
}

// Submit registers the decision and enqueues it. Returns the record id
// immediately; processing is asynchronous. deepExtract and deepReason
// select the LLM paths per request; they downgrade silently when no
// client is configured.
func (p *Pipeline) Submit(companyID, text string, deepExtract, deepReason bool) (string, error) {
	id := "dec_" + uuid.NewString()
	p.records.Create(id, companyID, text)

	// Emitted before the enqueue; the submission event must precede any
	// step event from a worker.
	p.bus.Emit(events.TypeDecisionSubmitted, id, companyID, map[string]interface{}{
		"status": store.StatusPending,
	})

	select {
	case p.jobs <- job{
		recordID:    id,
		companyID:   companyID,
		text:        text,
		deepExtract: deepExtract,
		deepReason:  deepReason,
	}:
	default:
		p.records.Update(id, func(r *store.DecisionRecord) {
			r.Status = store.StatusFailed
			r.Error = ErrQueueFull.Error()
		})
		p.bus.Emit(events.TypeDecisionFailed, id, companyID, map[string]interface{}{
			"stage": "submit",
			"error": ErrQueueFull.Error(),
		})
		return "", ErrQueueFull
	}

	p.metrics.SubmissionsQueued.Inc()
	p.metrics.RecordSubmission(companyID)
	p.metrics.RecordsStored.Set(float64(p.records.Count()))
	return id, nil
}

// process runs all five stages for one decision. Stream disconnects
// never cancel processing; the only deadline is the shared LLM budget
// covering extraction and deep reasoning.
func (p *Pipeline) process(j job) {
	start := time.Now()

	// A panicking stage fails the record instead of killing the worker.
	defer func() {
		if r := recover(); r != nil {
			p.fail(j, "panic", fmt.Errorf("%v", r))
		}
	}()

	company, err := p.registry.Get(j.companyID)
	if err != nil {
		p.fail(j, "company lookup", err)
		return
	}

	tenantCfg := p.cfgs.Get(j.companyID)
	llmCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(tenantCfg.Pipeline.LLMBudgetSecs)*time.Second)
	defer cancel()

	// Stage 1: extraction.
	p.step(j, 1, StepExtracting, "")
	stageStart := time.Now()
	var (
		d    domain.Decision
		meta extract.Metadata
	)
	if j.deepExtract {
		d, meta = p.extractor.Extract(llmCtx, j.text)
	} else {
		d = extract.Heuristic(j.text)
		meta = extract.Metadata{
			RequestID: uuid.NewString(),
			Model:     "deterministic",
			Success:   true,
		}
	}
	derived := extract.Derive(&d)
	p.metrics.RecordStage("extract", time.Since(stageStart).Seconds(), false)
	for i := 0; i < meta.RetryCount; i++ {
		p.metrics.RecordLLMRetry("extract")
	}
	if meta.FallbackUsed {
		p.metrics.RecordLLMFallback("extract")
	}
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.Decision = &d
		r.ExtractionMetadata = &meta
		r.DerivedAttributes = &derived
	})
	p.step(j, 1, StepExtracting, MsgExtracted)

	// Stage 2: governance rules plus graph materialization.
	p.step(j, 2, StepGovernance, "")
	stageStart = time.Now()
	ev := p.engine.Evaluate(&d, company)
	// Graph materialization is best-effort: on failure the payload stays
	// null and reasoning works from the tenant profile alone.
	graphOK := true
	if _, err := p.graphs.UpsertDecision(j.companyID, j.recordID, &d, &ev); err != nil {
		graphOK = false
		slog.Warn("graph materialization failed, continuing without stored context",
			"decision_id", j.recordID, "error", err)
	}
	sg := p.subgraphs.Build(j.companyID, j.recordID, &d, &ev, company)
	p.metrics.RecordStage("govern", time.Since(stageStart).Seconds(), !graphOK)
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.Governance = &ev
		if graphOK {
			r.GraphPayload = &sg
		}
	})
	p.step(j, 2, StepGovernance, MsgGoverned)

	// Stage 3: subgraph reasoning.
	p.step(j, 3, StepReasoning, "")
	stageStart = time.Now()
	verdict := p.reasoner.Analyze(llmCtx, j.recordID, &d, &ev, sg, j.deepReason)
	p.metrics.RecordStage("reason", time.Since(stageStart).Seconds(), false)
	if j.deepReason && verdict.Mode == domain.ModeDeterministic && p.reasoner.DeepCapable() {
		p.metrics.RecordLLMFallback("reason")
	}
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.Reasoning = &verdict
	})
	p.step(j, 3, StepReasoning, MsgReasoned)

	// Stage 4: decision pack assembly.
	stageStart = time.Now()
	dp := pack.Build(&d, &ev, &verdict)
	p.metrics.RecordStage("pack", time.Since(stageStart).Seconds(), false)
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.DecisionPack = &dp
		r.Status = store.StatusComplete
		r.CurrentStep = 4
		r.StepLabel = StepComplete
	})

	elapsed := time.Since(start)
	p.metrics.RecordPipeline(j.companyID, store.StatusComplete, elapsed.Seconds())
	p.bus.Emit(events.TypeDecisionComplete, j.recordID, j.companyID, map[string]interface{}{
		"status":      store.StatusComplete,
		"risk_score":  ev.RiskScore,
		"gov_status":  ev.Status,
		"duration_ms": elapsed.Milliseconds(),
	})
	slog.Info("decision processed",
		"decision_id", j.recordID,
		"company_id", j.companyID,
		"status", ev.Status,
		"risk_score", ev.RiskScore,
		"duration", elapsed)
}

// step advances the record and publishes a progress event. message is
// empty when the stage begins and set when it completes.
func (p *Pipeline) step(j job, step int, label, message string) {
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.Status = store.StatusProcessing
		r.CurrentStep = step
		r.StepLabel = label
	})
	data := map[string]interface{}{
		"step":  step,
		"label": label,
	}
	if message != "" {
		data["message"] = message
	}
	p.bus.Emit(events.TypeDecisionStep, j.recordID, j.companyID, data)
}

func (p *Pipeline) fail(j job, stage string, err error) {
	slog.Error("pipeline stage failed",
		"decision_id", j.recordID, "stage", stage, "error", err)
	p.records.Update(j.recordID, func(r *store.DecisionRecord) {
		r.Status = store.StatusFailed
		r.Error = stage + ": " + err.Error()
	})
	p.metrics.RecordPipeline(j.companyID, store.StatusFailed, 0)
	p.bus.Emit(events.TypeDecisionFailed, j.recordID, j.companyID, map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	})
}

// QueueDepth reports jobs waiting for a worker.
func (p *Pipeline) QueueDepth() int {
	return len(p.jobs)
}
