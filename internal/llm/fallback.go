package llm

import (
	"context"
	"errors"

	"github.com/skillboost/skillboost/internal/logger"
	"github.com/skillboost/skillboost/internal/store"
)

// FallbackProvider is a decorator that sends each request to the primary
// model and, if that call fails, exactly once to the fallback model.
// There is no backoff and no queueing.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	log      *logger.Logger
}

// WithFallback pairs a primary provider with a fallback provider.
func WithFallback(primary, fallback Provider, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &FallbackProvider{primary: primary, fallback: fallback, log: log}
}

func (f *FallbackProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, primaryErr := f.primary.Generate(withAttempt(ctx, store.AttemptPrimary), req)
	if primaryErr == nil {
		return resp, nil
	}

	// The caller went away; there is nobody to hand a fallback result to.
	if errors.Is(primaryErr, context.Canceled) || errors.Is(primaryErr, context.DeadlineExceeded) {
		return nil, primaryErr
	}

	f.log.Warn("primary model failed, falling back",
		"primary", f.primary.ModelID(),
		"fallback", f.fallback.ModelID(),
		"purpose", PurposeFrom(ctx),
		"error", primaryErr,
	)

	resp, fallbackErr := f.fallback.Generate(withAttempt(ctx, store.AttemptFallback), req)
	if fallbackErr == nil {
		return resp, nil
	}

	return nil, &ErrServiceUnavailable{
		Primary:     f.primary.ModelID(),
		Fallback:    f.fallback.ModelID(),
		PrimaryErr:  primaryErr,
		FallbackErr: fallbackErr,
	}
}

// ModelID reports the primary model identifier.
func (f *FallbackProvider) ModelID() string {
	return f.primary.ModelID()
}
