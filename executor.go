package totalconnect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxRetryAttempts = 3
	DefaultRetryDelay       = 6 * time.Second
)

// RetryPolicy bounds how transient failures are retried.
// MaxAttempts counts every call, including the first one.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// executor is the only path requests take to the transport.
type executor struct {
	transport Transport
	session   *session
	policy    RetryPolicy
}

func (e *executor) execute(ctx context.Context, operation string, params ...any) (RawResult, error) {
	if !e.session.isLoggedIn() {
		if err := e.login(ctx); err != nil {
			return RawResult{}, err
		}
	}

	res, err := e.call(ctx, operation, params)
	var invalid *sessionInvalidError
	if !errors.As(err, &invalid) {
		return res, err
	}

	// an expired session gets exactly one reauthentication and one more
	// try of the failed call.
	log.Warn("session expired, authenticating again", "operation", operation)
	e.session.invalidate()
	if err := e.login(ctx); err != nil {
		return RawResult{}, err
	}

	res, err = e.call(ctx, operation, params)
	if errors.As(err, &invalid) {
		return RawResult{}, fmt.Errorf(
			"%s: session rejected after reauthentication: %w",
			operation,
			ErrAuthentication,
		)
	}
	return res, err
}

func (e *executor) login(ctx context.Context) error {
	return e.retry(ctx, opLogin, func() error {
		return e.session.authenticate(ctx)
	})
}

func (e *executor) call(ctx context.Context, operation string, params []any) (RawResult, error) {
	var result RawResult
	err := e.retry(ctx, operation, func() error {
		args := append([]any{e.session.token}, params...)
		log.Debug("request", "operation", operation)
		res, err := e.transport.Call(ctx, operation, args...)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &retriableError{err: fmt.Errorf("%s: %w", operation, err)}
		}
		if err := outcomeError(operation, res); err != nil {
			return err
		}
		result = res
		return nil
	})
	return result, err
}

// retry runs fn until it succeeds, fails with a non transient error, or
// runs out of attempts.
func (e *executor) retry(ctx context.Context, operation string, fn func() error) error {
	bo := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(e.policy.Delay),
			uint64(e.policy.MaxAttempts-1),
		),
		ctx,
	)

	var attempts int
	err := backoff.RetryNotify(func() error {
		attempts++
		err := fn()
		var retriable *retriableError
		if err == nil || errors.As(err, &retriable) {
			return err
		}
		return backoff.Permanent(err)
	}, bo, func(err error, next time.Duration) {
		log.Warn(
			"request failed, will retry",
			"operation", operation,
			"attempt", attempts,
			"next", next,
			"err", err,
		)
	})

	var retriable *retriableError
	if errors.As(err, &retriable) {
		return fmt.Errorf("%s: %w (%d attempts): %w", operation, ErrConnectionExhausted, attempts, err)
	}
	return err
}
