package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"renderapi/internal/domain"
	"renderapi/internal/infra"
	"renderapi/internal/metrics"
	"renderapi/internal/providers/nvidia"
)

// Generator performs a single provider call and returns the raw 200 body.
type Generator interface {
	Generate(ctx context.Context, ep nvidia.Endpoint, prompt string) ([]byte, error)
}

// TempStore holds the uploaded sketch for the lifetime of one request.
type TempStore interface {
	CreateTemp(ctx context.Context, originalName string, data []byte) (string, error)
	Remove(key string) error
}

// Request is a single render call as received from the HTTP layer.
type Request struct {
	Prompt      string
	Filename    string
	Sketch      []byte
	ControlType string
}

// Attempt records one provider call made while walking the chain.
type Attempt struct {
	Endpoint nvidia.Endpoint
	Elapsed  time.Duration
	Err      error
}

// Options wires the orchestrator's collaborators.
type Options struct {
	Generator Generator
	Store     TempStore
	Endpoints []nvidia.Endpoint
	Logger    *infra.Logger
	Metrics   *metrics.Collector
}

// Orchestrator turns an uploaded sketch and prompt into a generated image by
// trying each configured endpoint in order.
type Orchestrator struct {
	gen       Generator
	store     TempStore
	endpoints []nvidia.Endpoint
	logger    infra.Logger
	metrics   *metrics.Collector
}

// NewOrchestrator validates opts and builds an Orchestrator.
func NewOrchestrator(opts Options) (*Orchestrator, error) {
	if opts.Generator == nil {
		return nil, errors.New("render: generator is required")
	}
	if opts.Store == nil {
		return nil, errors.New("render: temp store is required")
	}
	if len(opts.Endpoints) == 0 {
		return nil, domain.ErrNoProviders
	}
	endpoints := append([]nvidia.Endpoint(nil), opts.Endpoints...)
	return &Orchestrator{
		gen:       opts.Generator,
		store:     opts.Store,
		endpoints: endpoints,
		logger:    infra.LoggerOrNop(opts.Logger),
		metrics:   opts.Metrics,
	}, nil
}

// Generate stores the sketch, asks the provider chain for an image built from
// the enhanced prompt and removes the stored sketch before returning. The
// sketch itself is not sent to any provider.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*domain.RenderResult, error) {
	res, err := o.generate(ctx, req)
	if err != nil {
		o.metrics.ObserveRender(metrics.OutcomeFailed)
		return nil, err
	}
	o.metrics.ObserveRender(metrics.OutcomeSuccess)
	return res, nil
}

func (o *Orchestrator) generate(ctx context.Context, req Request) (*domain.RenderResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidUpload)
	}

	key, err := o.store.CreateTemp(ctx, req.Filename, req.Sketch)
	if err != nil {
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer o.cleanup(key)

	prompt := EnhancePrompt(req.Prompt)
	o.logger.Info().
		Str("temp_file", key).
		Str("control_type", NormalizeControlType(req.ControlType)).
		Int("sketch_bytes", len(req.Sketch)).
		Str("prompt", prompt).
		Msg("processing architectural render")

	body, _, err := o.runChain(ctx, prompt)
	if err != nil {
		o.logger.Error().Err(err).Msg("render failed")
		return nil, err
	}

	image, err := nvidia.ExtractImage(body)
	if err != nil {
		var formatErr *nvidia.UnexpectedFormatError
		if errors.As(err, &formatErr) {
			o.logger.Warn().Strs("keys", formatErr.Keys).Msg("unexpected response format")
		}
		return nil, err
	}

	return &domain.RenderResult{
		Status:     domain.RenderStatusSuccess,
		ImageData:  image,
		PromptUsed: prompt,
	}, nil
}

// runChain calls each endpoint in order until one returns a 200 body. The
// error of the last attempt is returned when every endpoint fails.
func (o *Orchestrator) runChain(ctx context.Context, prompt string) ([]byte, []Attempt, error) {
	attempts := make([]Attempt, 0, len(o.endpoints))
	var lastErr error
	for i, ep := range o.endpoints {
		if i > 0 {
			if err := ctx.Err(); err != nil {
				return nil, attempts, err
			}
			o.logger.Warn().
				Str("failed", o.endpoints[i-1].String()).
				Str("next", ep.String()).
				Msg("provider failed, trying fallback")
		}

		start := time.Now()
		body, err := o.gen.Generate(ctx, ep, prompt)
		attempt := Attempt{Endpoint: ep, Elapsed: time.Since(start), Err: err}
		attempts = append(attempts, attempt)

		if err == nil {
			o.metrics.ObserveAttempt(ep.String(), metrics.OutcomeSuccess, attempt.Elapsed)
			return body, attempts, nil
		}
		o.metrics.ObserveAttempt(ep.String(), metrics.OutcomeFailed, attempt.Elapsed)
		o.logger.Warn().Err(err).Str("provider", ep.String()).Dur("elapsed", attempt.Elapsed).Msg("provider attempt failed")
		lastErr = err
	}
	return nil, attempts, lastErr
}

func (o *Orchestrator) cleanup(key string) {
	if err := o.store.Remove(key); err != nil {
		o.metrics.ObserveCleanupFailure()
		o.logger.Warn().Err(err).Str("temp_file", key).Msg("could not remove temp file")
	}
}
