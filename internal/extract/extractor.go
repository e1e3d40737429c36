package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/llm"
)

// Metadata describes how an extraction went.
type Metadata struct {
	RequestID    string `json:"request_id"`
	RetryCount   int    `json:"retry_count"`
	Model        string `json:"model"`
	Success      bool   `json:"success"`
	FallbackUsed bool   `json:"fallback_used"`
	Error        string `json:"error,omitempty"`
}

// Extractor converts free-form decision text into a structured Decision.
// With a nil client it runs the deterministic heuristic path.
type Extractor struct {
	client     llm.Client
	maxRetries int
}

// NewExtractor builds an extractor. client may be nil.
func NewExtractor(client llm.Client, maxRetries int) *Extractor {
	if maxRetries <= 0 {
		maxRetries = 2
	}
	return &Extractor{client: client, maxRetries: maxRetries}
}

// Extract structures the text, retrying parse failures with feedback and
// falling back to a minimal decision when all attempts fail. It never
// returns an error; failure is encoded in the metadata and the fallback
// decision's confidence.
func (e *Extractor) Extract(ctx context.Context, text string) (domain.Decision, Metadata) {
	requestID := uuid.NewString()

	if e.client == nil {
		d := Heuristic(text)
		return d, Metadata{
			RequestID: requestID,
			Model:     "deterministic",
			Success:   true,
		}
	}

	slog.Info("extraction started", "request_id", requestID, "chars", len(text))

	var lastErr string
	feedback := ""
	retryCount := 0

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		retryCount = attempt
		if ctx.Err() != nil {
			lastErr = ctx.Err().Error()
			break
		}

		raw, err := e.client.Complete(ctx, systemPrompt, userPrompt(text, feedback))
		if err != nil {
			lastErr = err.Error()
			slog.Warn("extraction attempt failed", "request_id", requestID, "attempt", attempt+1, "error", err)
			continue
		}

		var d domain.Decision
		if err := json.Unmarshal([]byte(llm.ExtractJSON(raw)), &d); err != nil {
			lastErr = fmt.Sprintf("JSON parsing failed: %v", err)
			feedback = lastErr
			slog.Warn("extraction parse failed", "request_id", requestID, "attempt", attempt+1, "error", err)
			continue
		}
		if err := validate(&d); err != nil {
			lastErr = fmt.Sprintf("validation failed: %v", err)
			feedback = lastErr
			slog.Warn("extraction validation failed", "request_id", requestID, "attempt", attempt+1, "error", err)
			continue
		}

		slog.Info("extraction succeeded", "request_id", requestID, "confidence", d.Confidence, "retries", retryCount)
		return d, Metadata{
			RequestID:  requestID,
			RetryCount: retryCount,
			Model:      e.client.Model(),
			Success:    true,
		}
	}

	slog.Error("extraction exhausted all attempts, returning fallback",
		"request_id", requestID, "attempts", e.maxRetries+1, "error", lastErr)
	return Fallback(text), Metadata{
		RequestID:    requestID,
		RetryCount:   retryCount,
		Model:        e.client.Model(),
		Success:      false,
		FallbackUsed: true,
		Error:        lastErr,
	}
}

// truncateRunes caps s at max runes so multi-byte characters never get
// split. The second return reports whether anything was cut.
func truncateRunes(s string, max int) (string, bool) {
	r := []rune(s)
	if len(r) <= max {
		return s, false
	}
	return string(r[:max]), true
}

// Fallback builds the minimal valid decision used when extraction fails
// completely.
func Fallback(text string) domain.Decision {
	statement, cut := truncateRunes(text, 100)
	if cut {
		statement += "..."
	}
	return domain.Decision{
		DecisionStatement: "[EXTRACTION FAILED] " + statement,
		Goals:             []domain.Goal{},
		KPIs:              []domain.KPI{},
		Risks: []domain.Risk{
			{Description: "Automatic extraction failed, manual review required", Severity: "high"},
		},
		Owners:            []domain.Owner{},
		RequiredApprovals: []string{"Manual Review Required"},
		Assumptions:       []domain.Assumption{},
		Confidence:        0.1,
	}
}

func validate(d *domain.Decision) error {
	if len(d.DecisionStatement) < 10 {
		return fmt.Errorf("decision_statement too short (%d chars)", len(d.DecisionStatement))
	}
	d.DecisionStatement, _ = truncateRunes(d.DecisionStatement, 1000)
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence %v out of range [0,1]", d.Confidence)
	}
	switch d.StrategicImpact {
	case "", domain.ImpactLow, domain.ImpactMedium, domain.ImpactHigh, domain.ImpactCritical:
	default:
		return fmt.Errorf("invalid strategic_impact %q", d.StrategicImpact)
	}
	return nil
}
