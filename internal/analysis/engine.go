package analysis

import (
	"context"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
)

// EngineHooks are optional callbacks the engine invokes while running, used
// to wire Prometheus metrics without coupling the engine to a registry.
type EngineHooks struct {
	OnExtract  func(name string, duration float64, items int)
	OnComplete func(e *CompleteEvent)
}

// CompleteEvent summarizes a finished analysis run.
type CompleteEvent struct {
	Duration float64
	Entities int
	Risks    int
	Stories  int
}

// Engine runs the extraction pipeline: normalize the description once, then
// run every registered extractor over the shared normalized text. The engine
// is pure — it never touches the store — so identical input always produces
// identical artifacts.
type Engine struct {
	registry *Registry
	logger   log.Logger
	hooks    EngineHooks
}

// NewEngine creates an engine over the given extractor registry.
func NewEngine(registry *Registry, logger log.Logger, hooks EngineHooks) *Engine {
	if logger == nil {
		logger = log.Nop()
	}
	return &Engine{
		registry: registry,
		logger:   logger,
		hooks:    hooks,
	}
}

// Run analyzes a description and assembles the result bundle. Empty input is
// valid and produces a bundle with empty entity/story sections.
func (e *Engine) Run(ctx context.Context, description string) *Bundle {
	start := time.Now()

	b := &Bundle{
		ID:          ulid.Make().String(),
		Description: description,
		CreatedAt:   start,
	}

	L := e.logger.With("bundle_id", b.ID)

	t := Normalize(description)

	for _, ex := range e.registry.List() {
		before := itemCount(b)
		exStart := time.Now()

		ex.Extract(t, b)

		exDur := time.Since(exStart).Seconds()
		items := itemCount(b) - before

		L.Info(ctx, "extractor finished",
			"extractor", ex.Name(),
			"items", items,
			"duration", exDur,
		)
		if e.hooks.OnExtract != nil {
			e.hooks.OnExtract(ex.Name(), exDur, items)
		}
	}

	b.Duration = time.Since(start).Seconds()

	L.Info(ctx, "analysis complete",
		"tokens", len(t.Tokens),
		"sentences", len(t.Sentences),
		"entities", len(b.Entities),
		"risks", len(b.Risks),
		"stories", len(b.Stories),
		"duration", b.Duration,
	)
	if e.hooks.OnComplete != nil {
		e.hooks.OnComplete(&CompleteEvent{
			Duration: b.Duration,
			Entities: len(b.Entities),
			Risks:    len(b.Risks),
			Stories:  len(b.Stories),
		})
	}

	return b
}

func itemCount(b *Bundle) int {
	return len(b.Entities) + len(b.Risks) + len(b.Stories)
}
