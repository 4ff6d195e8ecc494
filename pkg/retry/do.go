// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package retry runs an operation again after transient failures, waiting
// between attempts according to a backoff strategy.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Func must respect ctx.
type Func func(ctx context.Context) error

// RetryIf reports whether err is worth another attempt.
type RetryIf func(error) bool

// Backoff returns the wait before the next attempt. attempt starts at 0.
type Backoff interface {
	Next(attempt int) time.Duration
}

type fixedBackoff time.Duration

func (b fixedBackoff) Next(int) time.Duration {
	return time.Duration(b)
}

func Fixed(interval time.Duration) Backoff {
	return fixedBackoff(interval)
}

type exponentialBackoff struct {
	base time.Duration
	max  time.Duration
}

func (b exponentialBackoff) Next(attempt int) time.Duration {
	d := b.base << attempt
	if b.max > 0 && (d > b.max || d <= 0) {
		return b.max
	}
	return d
}

// Exponential doubles base on every attempt, capped at max when it is set.
func Exponential(base, max time.Duration) Backoff {
	return exponentialBackoff{base: base, max: max}
}

type Jitter func(time.Duration) time.Duration

func NoJitter(d time.Duration) time.Duration {
	return d
}

// FullJitter picks a random wait in [0, d).
func FullJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return rand.N(d)
}

type config struct {
	attempts int
	backoff  Backoff
	jitter   Jitter
	retryIf  RetryIf
}

type Option func(*config)

// WithMaxAttempts counts the first attempt too.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

func WithBackoff(b Backoff) Option {
	return func(c *config) {
		if b != nil {
			c.backoff = b
		}
	}
}

func WithJitter(j Jitter) Option {
	return func(c *config) {
		if j != nil {
			c.jitter = j
		}
	}
}

func WithRetryIf(fn RetryIf) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// Do calls fn until it succeeds, the attempts run out, retryIf rejects the
// error or ctx is done. The last error from fn is returned.
func Do(ctx context.Context, fn Func, opts ...Option) error {
	cfg := &config{
		attempts: 3,
		backoff:  Fixed(time.Second),
		jitter:   NoJitter,
		retryIf:  IsRetryable,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var err error
	for attempt := 0; attempt < cfg.attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(ctx); err == nil || !cfg.retryIf(err) {
			return err
		}
		if attempt == cfg.attempts-1 {
			break
		}

		wait := cfg.jitter(cfg.backoff.Next(attempt))
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return err
}

// IsRetryable retries everything except a cancelled or expired context.
func IsRetryable(err error) bool {
	return err != nil &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
