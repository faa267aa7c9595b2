// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	terrors "github.com/sirseerhq/teamscope/internal/errors"
	"github.com/sirseerhq/teamscope/internal/giterror"
	"github.com/sirseerhq/teamscope/internal/log"
)

// RetryConfig configures the retry behavior for search queries.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the initial call.
	MaxRetries int
	// BaseDelay is the backoff for the first retry; each subsequent retry
	// doubles it (BaseDelay * 2^attempt).
	BaseDelay time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
	}
}

// RetryClient wraps a GitHub client with automatic retry on rate limits using
// exponential backoff. Only the two search methods are retried: they are the
// sole boundary where transient rate limiting occurs. Token validation and
// repository verification pass through untouched, and every non-rate-limit
// error is returned immediately.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector giterror.Inspector

	// sleep is injectable for tests; nil means a context-aware time.After.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryClient creates a new RetryClient with the given configuration.
func NewRetryClient(client Client, config *RetryConfig) *RetryClient {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: giterror.NewInspector(),
		sleep:     sleepContext,
	}
}

// Viewer implements the Client interface. Not retried.
func (r *RetryClient) Viewer(ctx context.Context) (string, error) {
	return r.client.Viewer(ctx)
}

// RepositoryName implements the Client interface. Not retried.
func (r *RetryClient) RepositoryName(ctx context.Context, owner, name string) (string, error) {
	return r.client.RepositoryName(ctx, owner, name)
}

// SearchAuthoredPRs implements the Client interface with retry logic.
func (r *RetryClient) SearchAuthoredPRs(ctx context.Context, query string, opts PageOptions) (*AuthoredPage, error) {
	var page *AuthoredPage
	err := r.do(ctx, func() error {
		var qerr error
		page, qerr = r.client.SearchAuthoredPRs(ctx, query, opts)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// SearchReviewedPRs implements the Client interface with retry logic.
func (r *RetryClient) SearchReviewedPRs(ctx context.Context, query string, opts ReviewPageOptions) (*ReviewedPage, error) {
	var page *ReviewedPage
	err := r.do(ctx, func() error {
		var qerr error
		page, qerr = r.client.SearchReviewedPRs(ctx, query, opts)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// do runs fn, retrying rate-limit failures with exponential backoff until
// MaxRetries is exhausted. Backoff is a blocking sleep that still honors
// context cancellation.
func (r *RetryClient) do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !r.isRateLimited(err) {
			return err
		}

		lastErr = err
		if attempt == r.config.MaxRetries {
			break
		}

		backoff := r.config.BaseDelay * (1 << attempt)
		log.Warn("rate limit hit, backing off",
			"delay", backoff, "attempt", attempt+1, "max_retries", r.config.MaxRetries)

		if serr := r.sleep(ctx, backoff); serr != nil {
			return serr
		}
	}

	return fmt.Errorf("failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

// isRateLimited reports whether the error is the one retryable failure shape.
func (r *RetryClient) isRateLimited(err error) bool {
	return errors.Is(err, terrors.ErrRateLimit) || r.inspector.IsRateLimitError(err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
