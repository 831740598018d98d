package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hrbridge/internal/analyze"
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/mapping"
	"hrbridge/internal/salvage"
)

// ErrNoMappings is returned when a run produced no mappings at all.
var ErrNoMappings = errors.New("model produced no mappings")

// Mode names how a run talked to the service.
type Mode string

const (
	ModeDirect Mode = "direct"
	ModeBatch  Mode = "batch"
)

// Request is the input of one generation run. It is read-only.
type Request struct {
	Source       *analyze.Schema
	SourceSample any
	Destination  *analyze.Schema
	Rules        mapping.SemanticRules
}

// Result is the outcome of a generation run.
type Result struct {
	Mode        Mode
	Mappings    []mapping.Mapping
	Requests    int
	Failures    int
	Diagnostics diagnostic.Diagnostics
}

// Orchestrator drives the model. It holds no per-run state and is safe for
// concurrent use.
type Orchestrator struct {
	client Completer
	cfg    BatchConfig
	log    *zap.Logger

	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewOrchestrator creates an Orchestrator. A nil logger disables logging.
func NewOrchestrator(client Completer, cfg BatchConfig, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Orchestrator{
		client: client,
		cfg:    cfg,
		log:    log,
		sleep:  sleepCtx,
		now:    time.Now,
	}
}

// Generate proposes mappings from req.Source to req.Destination. The result
// is deduplicated by source path and sorted by confidence, highest first.
// When nothing could be generated the error wraps ErrNoMappings and the
// partial Result still carries diagnostics.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Destination.Len() == 0 {
		return &Result{Mode: ModeDirect}, fmt.Errorf("%w: destination has no fields", ErrNoMappings)
	}

	if req.Source.Len() > o.cfg.Threshold || req.Destination.Len() > o.cfg.Threshold {
		return o.batch(ctx, req)
	}

	return o.direct(ctx, req)
}

func (o *Orchestrator) direct(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Mode: ModeDirect, Requests: 1}

	mappings, err := o.request(ctx, req, req.Destination.Paths(), 0)
	if err != nil {
		res.Failures = 1
		return res, fmt.Errorf("%w: %w", ErrNoMappings, err)
	}

	res.Mappings = finalize(mappings)

	o.log.Info("direct mapping generation finished",
		zap.Int("destination_fields", req.Destination.Len()),
		zap.Int("mappings", len(res.Mappings)))

	return res, nil
}

func (o *Orchestrator) batch(ctx context.Context, req Request) (*Result, error) {
	var (
		res       = &Result{Mode: ModeBatch}
		paths     = req.Destination.Paths()
		total     = len(paths)
		size      = o.cfg.initialSize(total)
		cursor    int
		streak    int
		deadline  time.Time
		collected []mapping.Mapping
	)

	if o.cfg.MaxDuration > 0 {
		deadline = o.now().Add(o.cfg.MaxDuration)
	}

	o.log.Info("starting batched mapping generation",
		zap.Int("source_fields", req.Source.Len()),
		zap.Int("destination_fields", total),
		zap.Int("batch_size", size))

	for cursor < total {
		if stop := o.budgetExceeded(ctx, res, deadline); stop != "" {
			o.skip(res, paths[cursor:], stop)
			break
		}

		end := min(cursor+size, total)
		batch := paths[cursor:end]
		res.Requests++

		mappings, err := o.request(ctx, req, batch, res.Requests)
		if err == nil {
			collected = append(collected, mappings...)
			cursor = end
			streak++

			if streak >= o.cfg.GrowAfter {
				size = o.cfg.grow(size)
				streak = 0
			}

			o.log.Debug("batch succeeded",
				zap.Int("cursor", cursor),
				zap.Int("mappings", len(mappings)),
				zap.Int("next_batch_size", size))
		} else {
			res.Failures++
			streak = 0

			if size <= o.cfg.floor() {
				o.log.Warn("batch failed at minimum size, skipping range",
					zap.Int("from", cursor),
					zap.Int("to", end),
					zap.Error(err))

				o.skip(res, batch, err.Error())
				cursor = end
			} else {
				size = o.cfg.shrink(size)

				o.log.Warn("batch failed, retrying with smaller size",
					zap.Int("cursor", cursor),
					zap.Int("batch_size", size),
					zap.Error(err))
			}
		}

		if cursor < total {
			if err := o.sleep(ctx, o.cfg.Delay); err != nil {
				o.skip(res, paths[cursor:], err.Error())
				break
			}
		}
	}

	res.Mappings = finalize(collected)

	o.log.Info("batched mapping generation finished",
		zap.Int("requests", res.Requests),
		zap.Int("failures", res.Failures),
		zap.Int("mappings", len(res.Mappings)))

	if len(res.Mappings) == 0 {
		return res, fmt.Errorf("%w: %d of %d requests failed", ErrNoMappings, res.Failures, res.Requests)
	}

	return res, nil
}

// budgetExceeded returns a reason when the run must stop.
func (o *Orchestrator) budgetExceeded(ctx context.Context, res *Result, deadline time.Time) string {
	switch {
	case ctx.Err() != nil:
		return ctx.Err().Error()
	case o.cfg.MaxFailures > 0 && res.Failures >= o.cfg.MaxFailures:
		return fmt.Sprintf("failure budget of %d requests exhausted", o.cfg.MaxFailures)
	case !deadline.IsZero() && o.now().After(deadline):
		return fmt.Sprintf("time budget of %s exhausted", o.cfg.MaxDuration)
	default:
		return ""
	}
}

// skip records destination paths left without mappings.
func (o *Orchestrator) skip(res *Result, paths []string, reason string) {
	if len(paths) == 0 {
		return
	}

	res.Diagnostics.AddWarning(diagnostic.CodeCoverageGap,
		fmt.Sprintf("%d destination fields skipped: %s", len(paths), reason),
		"", paths[0])
}

// request performs one call bounded by the per-request timeout. An error,
// an unparseable response and a response without usable records are all
// failures.
func (o *Orchestrator) request(ctx context.Context, req Request, paths []string, batch int) ([]mapping.Mapping, error) {
	prompt, err := buildPrompt(req, paths, batch)
	if err != nil {
		return nil, err
	}

	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	text, err := o.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}

	records, err := salvage.Parse(text)
	if err != nil {
		o.log.Debug("response not parseable, salvaging", zap.Error(err), zap.Int("length", len(text)))
		records = salvage.Records(text)
	}

	mappings := toMappings(records, req.Source)
	if len(mappings) == 0 {
		return nil, fmt.Errorf("no usable records in %d-byte response", len(text))
	}

	return mappings, nil
}

func finalize(mappings []mapping.Mapping) []mapping.Mapping {
	out := mapping.DedupeBySource(mappings)
	mapping.SortByConfidence(out)

	return out
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
