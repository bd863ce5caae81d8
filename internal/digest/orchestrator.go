// Package digest assembles a combined report for a period by running each
// registered analysis module in order and collecting their results. A module
// failure is captured in that module's result; it never aborts the digest.
package digest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"findigest/internal/logger"
	"findigest/pkg/models"
)

// Module is one unit of analysis: it fetches its own records for the period
// and returns a JSON-serializable payload.
type Module interface {
	Name() string
	Run(ctx context.Context, period models.Period) (any, error)
}

// ModuleResult is the outcome of one module within a digest run.
type ModuleResult struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Data       any    `json:"data"`
}

// CombinedResult is one complete digest: period echo, source system,
// generation metadata and the per-module results in registration order.
type CombinedResult struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	GeneratedAt time.Time      `json:"generated_at"`
	Modules     []ModuleResult `json:"modules"`
}

// Orchestrator runs registered modules against a period.
type Orchestrator struct {
	sourceName string
	modules    []Module
	log        zerolog.Logger
	now        func() time.Time
}

// NewOrchestrator creates an orchestrator for the named source system.
// Modules run in the order given here.
func NewOrchestrator(sourceName string, modules ...Module) *Orchestrator {
	return &Orchestrator{
		sourceName: sourceName,
		modules:    modules,
		log:        logger.WithComponent("digest"),
		now:        time.Now,
	}
}

// Run invokes each module exactly once, in registration order, measuring
// wall-clock duration per module. A module error is captured as
// Success=false with an empty payload and the remaining modules still run.
func (o *Orchestrator) Run(ctx context.Context, period models.Period) *CombinedResult {
	result := &CombinedResult{
		ID:          uuid.NewString(),
		Source:      o.sourceName,
		PeriodStart: period.StartISO(),
		PeriodEnd:   period.EndISO(),
		GeneratedAt: o.now(),
		Modules:     make([]ModuleResult, 0, len(o.modules)),
	}

	o.log.Info().
		Str("digest_id", result.ID).
		Str("period_start", result.PeriodStart).
		Str("period_end", result.PeriodEnd).
		Int("modules", len(o.modules)).
		Msg("Starting digest run")

	for _, m := range o.modules {
		start := time.Now()
		data, err := m.Run(ctx, period)
		elapsed := time.Since(start)

		mr := ModuleResult{
			Name:       m.Name(),
			DurationMS: elapsed.Milliseconds(),
		}
		if err != nil {
			mr.Success = false
			mr.Error = err.Error()
			mr.Data = map[string]any{}
			o.log.Error().
				Err(err).
				Str("module", m.Name()).
				Dur("duration", elapsed).
				Msg("Digest module failed")
		} else {
			mr.Success = true
			mr.Data = data
			o.log.Info().
				Str("module", m.Name()).
				Dur("duration", elapsed).
				Msg("Digest module completed")
		}
		result.Modules = append(result.Modules, mr)
	}

	return result
}
