package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/easywork/internal/ctxlog"
	"github.com/vk/easywork/internal/graph"
	"github.com/vk/easywork/internal/graphdef"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: a loaded graph, its executor, and an optional health check
// server, the same separation of concerns as the teacher's App.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	loaded     *graphdef.Loaded
	executor   *graph.Executor
	httpServer *http.Server
}

// NewApp loads cfg.GraphPath and constructs an App ready to Run. A failure
// to parse or build the graph is a fatal startup error, reported by panic
// so the CLI entrypoint can recover it into a clean exit message.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("logger configured")

	loaded, err := graphdef.Load(ctx, cfg.GraphPath)
	if err != nil {
		panic(fmt.Errorf("failed to load graph definition: %w", err))
	}
	logger.Debug("graph definition loaded", "path", cfg.GraphPath, "nodes", len(loaded.Nodes))

	workers := cfg.WorkerCount
	if workers <= 0 {
		workers = graph.DefaultWorkers
	}
	ex := &graph.Executor{Graph: loaded.Graph, Workers: workers}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loaded:   loaded,
		executor: ex,
	}
}
