package retry

import (
	"context"
	"errors"
	"time"

	"spotly/internal/shared/apperrors"
	"spotly/internal/shared/config"
	"spotly/internal/shared/database/dberrors"
	"spotly/pkg/logger"

	"github.com/cenkalti/backoff/v5"
)

// Policy bounds how transient store failures are retried
type Policy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// PolicyFromConfig builds a Policy from the application configuration
func PolicyFromConfig(cfg config.RetryConfig) Policy {
	return Policy{
		MaxAttempts:     cfg.MaxAttempts,
		InitialInterval: cfg.InitialInterval,
		MaxInterval:     cfg.MaxInterval,
		MaxElapsedTime:  cfg.MaxElapsedTime,
	}
}

// DefaultPolicy is used when no configuration is supplied
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     5,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
		MaxElapsedTime:  5 * time.Second,
	}
}

// Do runs op and re-runs it while it fails with a transient store error.
// Any other error is returned on the first occurrence. When the attempts run
// out the last transient error is returned wrapped in ErrStoreUnavailable.
func Do[T any](ctx context.Context, p Policy, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := func() (T, error) {
		v, err := op(ctx)
		if err != nil && !dberrors.IsTransient(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	maxTries := p.MaxAttempts
	if maxTries < 1 {
		maxTries = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(maxTries)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.FromContext(ctx).LogStoreRetry(ctx, operation, err, wait)
		}),
	}
	if p.MaxElapsedTime > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(p.MaxElapsedTime))
	}

	v, err := backoff.Retry(ctx, attempt, opts...)

	// Retry leaves the wrapper in place when the final try is permanent
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		err = permanent.Unwrap()
	}
	if err != nil && dberrors.IsTransient(err) {
		var zero T
		return zero, apperrors.ErrStoreUnavailable.Wrap(err)
	}
	return v, err
}
