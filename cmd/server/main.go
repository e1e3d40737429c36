package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/govlayer/backend/internal/api"
	"github.com/govlayer/backend/internal/config"
	"github.com/govlayer/backend/internal/events"
	"github.com/govlayer/backend/internal/extract"
	"github.com/govlayer/backend/internal/graph"
	"github.com/govlayer/backend/internal/llm"
	"github.com/govlayer/backend/internal/monitoring"
	"github.com/govlayer/backend/internal/pipeline"
	"github.com/govlayer/backend/internal/reason"
	"github.com/govlayer/backend/internal/rules"
	"github.com/govlayer/backend/internal/store"
	"github.com/govlayer/backend/internal/subgraph"
	"github.com/govlayer/backend/internal/tenant"
	"github.com/govlayer/backend/internal/websocket"
)

const (
	defaultConfigPath  = "configs/config.yaml"
	defaultTenantsPath = "configs/tenants.yaml"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfgs, err := config.NewManager(defaultConfigPath, defaultTenantsPath)
	if err != nil {
		slog.Warn("config files not loaded, using defaults",
			"path", defaultConfigPath, "error", err)
		cfgs = config.NewManagerFromConfig(config.Default())
	}
	cfg := cfgs.Get("")

	registry, err := tenant.NewDefaultRegistry()
	if err != nil {
		slog.Error("tenant registry failed validation", "error", err)
		os.Exit(1)
	}

	records := store.NewStore()
	graphs := graph.NewStore()
	metrics := monitoring.NewMetrics()
	bus := events.NewBus()

	// A missing key yields a nil *AnthropicClient. Assign only when
	// non-nil so the interface itself stays nil and the deterministic
	// path is selected.
	var extractClient, reasonClient llm.Client
	if c := llm.NewFromEnv(llm.EnvExtractorKey,
		cfg.Extract.Model, cfg.Extract.MaxTokens, cfg.Extract.Temperature); c != nil {
		extractClient = c
	}
	if c := llm.NewFromEnv(llm.EnvReasonerKey,
		cfg.Reasoner.Model, cfg.Reasoner.MaxTokens, 0); c != nil {
		reasonClient = c
	}

	extractor := extract.NewExtractor(extractClient, cfg.Extract.MaxRetries)
	reasoner := reason.NewReasoner(reasonClient)

	pipe := pipeline.New(
		cfgs, records, graphs, registry,
		rules.NewEngine(), extractor,
		subgraph.NewBuilder(graphs), reasoner,
		bus, metrics,
	)

	streamer := websocket.NewStreamer(bus)
	go streamer.Run()
	go pipe.Run(context.Background())

	server := api.NewServer(cfgs, registry, records, graphs, pipe, streamer)
	if err := server.Start(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
