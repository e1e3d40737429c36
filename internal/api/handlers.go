package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/govlayer/backend/internal/domain"
	"github.com/govlayer/backend/internal/extract"
	"github.com/govlayer/backend/internal/fixtures"
	"github.com/govlayer/backend/internal/pipeline"
	"github.com/govlayer/backend/internal/store"
)

type submitRequest struct {
	TenantID          string `json:"tenant_id"`
	InputText         string `json:"input_text"`
	UseDeepGovernance *bool  `json:"use_deep_governance,omitempty"`
	UseDeepReasoning  *bool  `json:"use_deep_reasoning,omitempty"`
}

// decisionResponse is the full polled view of one record.
type decisionResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	Status      string `json:"status"`
	CurrentStep int    `json:"current_step"`
	StepLabel   string `json:"step_label,omitempty"`
	InputText   string `json:"input_text"`
	Error       string `json:"error,omitempty"`

	Decision           *domain.Decision           `json:"decision,omitempty"`
	ExtractionMetadata *extract.Metadata          `json:"extraction_metadata,omitempty"`
	DerivedAttributes  *extract.DerivedAttributes `json:"derived_attributes,omitempty"`
	Governance         *NormalizedGovernance      `json:"governance,omitempty"`
	Graph              *domain.DecisionGraph      `json:"graph,omitempty"`
	Reasoning          *domain.Verdict            `json:"reasoning,omitempty"`
	DecisionPack       *domain.DecisionPack       `json:"decision_pack,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Server) toResponse(rec store.DecisionRecord) decisionResponse {
	resp := decisionResponse{
		ID:                 rec.ID,
		CompanyID:          rec.CompanyID,
		Status:             rec.Status,
		CurrentStep:        rec.CurrentStep,
		StepLabel:          rec.StepLabel,
		InputText:          rec.InputText,
		Error:              rec.Error,
		Decision:           rec.Decision,
		ExtractionMetadata: rec.ExtractionMetadata,
		DerivedAttributes:  rec.DerivedAttributes,
		Graph:              rec.GraphPayload,
		Reasoning:          rec.Reasoning,
		DecisionPack:       rec.DecisionPack,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
	if rec.Governance != nil {
		norm := normalizeGovernance(rec.Governance, s.registry.Rules(rec.CompanyID))
		resp.Governance = &norm
	}
	return resp
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "govlayer",
		"endpoints": []string{
			"POST /v1/decisions",
			"GET /v1/decisions/{id}",
			"GET /v1/decisions/{id}/stream",
			"GET /v1/companies",
			"GET /v1/companies/{id}",
			"GET /v1/fixtures?company_id=",
			"GET /v1/events/ws",
			"GET /health",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.graphs.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"companies": len(s.registry.IDs()),
		"decisions": s.records.Count(),
		"queue":     s.pipe.QueueDepth(),
		"graph": map[string]interface{}{
			"tenants": stats.Tenants,
			"nodes":   stats.Nodes,
			"edges":   stats.Edges,
			"by_type": stats.ByType,
		},
		"websocket": s.streamer.Statistics(),
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if _, err := s.registry.Get(req.TenantID); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown company", req.TenantID)
		return
	}
	limits := s.cfgs.Get(req.TenantID).Limits
	text := strings.TrimSpace(req.InputText)
	if len(text) < limits.MinTextLen {
		writeError(w, http.StatusUnprocessableEntity, "text too short",
			"decision text must be at least "+strconv.Itoa(limits.MinTextLen)+" characters")
		return
	}
	if len(text) > limits.MaxTextLen {
		writeError(w, http.StatusUnprocessableEntity, "text too long",
			"decision text must be at most "+strconv.Itoa(limits.MaxTextLen)+" characters")
		return
	}

	// Deep paths default on; the pipeline downgrades to the
	// deterministic paths when no client is configured.
	deepExtract := req.UseDeepGovernance == nil || *req.UseDeepGovernance
	deepReason := req.UseDeepReasoning == nil || *req.UseDeepReasoning

	id, err := s.pipe.Submit(req.TenantID, text, deepExtract, deepReason)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "pipeline saturated", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"decision_id": id,
		"status":      store.StatusPending,
		"stream_url":  "/v1/decisions/" + id + "/stream",
	})
}

func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := s.records.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "decision not found", id)
		return
	}
	writeJSON(w, http.StatusOK, s.toResponse(rec))
}

// handleStream serves per-decision progress over SSE. Events are paced
// so each step stays visible; client disconnect stops the stream but
// never the pipeline.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, changed, ok := s.records.Watch(id)
	if !ok {
		writeError(w, http.StatusNotFound, "decision not found", id)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported", "")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	pace := time.Duration(s.cfgs.Get(rec.CompanyID).Pipeline.StepPaceMs) * time.Millisecond
	lastStep := -1

	// The SSE data payload is flat: decision_id and friends at the top
	// level, not wrapped in the bus envelope.
	send := func(rec store.DecisionRecord) bool {
		eventType := "step"
		data := map[string]interface{}{
			"decision_id": rec.ID,
			"step":        rec.CurrentStep,
			"label":       rec.StepLabel,
		}
		switch rec.Status {
		case store.StatusComplete:
			eventType = "complete"
			data = map[string]interface{}{
				"decision_id": rec.ID,
				"status":      store.StatusComplete,
				"result_url":  "/v1/decisions/" + rec.ID,
			}
		case store.StatusFailed:
			eventType = "error"
			data = map[string]interface{}{
				"decision_id": rec.ID,
				"status":      store.StatusFailed,
				"message":     rec.Error,
			}
		default:
			// Announce the stage that just finished, if any.
			if m := stepMessage(rec.CurrentStep - 1); m != "" {
				data["message"] = m
			}
		}
		payload, err := json.Marshal(data)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	for {
		if rec.CurrentStep > lastStep || rec.Done() {
			lastStep = rec.CurrentStep
			if !send(rec) {
				return
			}
			if rec.Done() {
				return
			}
			select {
			case <-time.After(pace):
			case <-r.Context().Done():
				return
			}
		}

		select {
		case <-changed:
		case <-r.Context().Done():
			return
		}
		rec, changed, ok = s.records.Watch(id)
		if !ok {
			return
		}
	}
}

func stepMessage(step int) string {
	switch step {
	case 1:
		return pipeline.MsgExtracted
	case 2:
		return pipeline.MsgGoverned
	case 3:
		return pipeline.MsgReasoned
	default:
		return ""
	}
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	type summary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Industry    string `json:"industry"`
		Description string `json:"description"`
		Personnel   int    `json:"personnel_count"`
		Rules       int    `json:"rule_count"`
		Goals       int    `json:"goal_count"`
	}
	var out []summary
	for _, c := range s.registry.List() {
		out = append(out, summary{
			ID:          c.ID,
			Name:        c.Name,
			Industry:    c.Industry,
			Description: c.Description,
			Personnel:   len(c.Personnel),
			Rules:       len(c.Rules),
			Goals:       len(c.Goals),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": out})
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	company, err := s.registry.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "company not found", id)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"fixtures": fixtures.All()})
		return
	}
	if _, err := s.registry.Get(companyID); err != nil {
		writeError(w, http.StatusNotFound, "company not found", companyID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fixtures": fixtures.ForCompany(companyID)})
}
