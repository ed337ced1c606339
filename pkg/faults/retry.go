package faults

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Policy controls exponential backoff retry.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultPolicy returns the retry policy used around save/load calls.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	}
}

// Retry runs fn, retrying with exponential backoff while the returned error
// classifies as retryable. Non-retryable errors and context cancellation end
// the loop immediately. The last error is returned when attempts run out.
func Retry(ctx context.Context, logger *zap.Logger, policy Policy, op string, fn func(context.Context) error) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}

	delay := policy.InitialDelay
	var err error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		classified := Classify(err)
		if !classified.Retryable || attempt == policy.MaxAttempts {
			return err
		}

		logger.Warn("retrying after failure",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.String("category", string(classified.Category)),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * policy.Multiplier)
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}

	return err
}
