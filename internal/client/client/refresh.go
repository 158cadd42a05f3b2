package client

import (
	"context"
	"sync"
	"time"

	"github.com/stocklyhq/stockly/internal/client/models"
	"github.com/stocklyhq/stockly/internal/client/tokens"
	"github.com/stocklyhq/stockly/internal/logging"
)

// refreshFunc performs the actual POST /api/auth/refresh/ call on a bare
// HTTP client that bypasses the auth transport.
type refreshFunc func(ctx context.Context, refreshToken string) (*models.TokenPair, error)

type refreshResult struct {
	access string
	err    error
}

// refreshCoordinator guarantees at most one in-flight token refresh per
// client, no matter how many requests fail with 401 concurrently.
//
// States: idle (inFlight=false) and refreshing (inFlight=true). The first
// caller that finds the coordinator idle becomes the leader and dispatches
// the refresh; everyone else enqueues a waiter and observes the leader's
// outcome. Waiters are notified in enqueue order.
//
// The coordinator is owned by client construction rather than being a
// package-level singleton, so every Client (and every test) gets
// independent refresh state.
type refreshCoordinator struct {
	mu       sync.Mutex
	inFlight bool
	waiters  []chan refreshResult

	store   tokens.Store
	do      refreshFunc
	timeout time.Duration
	log     logging.Logger
}

func newRefreshCoordinator(store tokens.Store, do refreshFunc, timeout time.Duration, log logging.Logger) *refreshCoordinator {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &refreshCoordinator{store: store, do: do, timeout: timeout, log: log}
}

// refresh returns a fresh access token to retry with, or an error when the
// session is unrecoverable. On failure the token store has been cleared
// exactly once (by the leader) before any caller returns.
func (c *refreshCoordinator) refresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.inFlight {
		ch := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case res := <-ch:
			return res.access, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.inFlight = true
	c.mu.Unlock()

	return c.lead(ctx)
}

// lead dispatches the single refresh call and fans the outcome out to all
// waiters. The call is detached from the triggering request's cancellation
// and bounded by the client timeout, so one cancelled caller cannot fail
// the whole queue and a hung network path cannot stall it forever.
func (c *refreshCoordinator) lead(ctx context.Context) (string, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		c.store.Clear()
		err := ErrUnauthorized
		c.finish("", err)
		return "", err
	}

	rctx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(rctx, c.timeout)
		defer cancel()
	}

	pair, err := c.do(rctx, refreshToken)
	if err != nil {
		c.log.Warn(ctx, "token refresh failed, clearing session", "error", err)
		c.store.Clear()
		c.finish("", err)
		return "", err
	}

	// Persist the new access token; keep the old refresh token unless the
	// server rotated it.
	c.store.SetTokens(pair.Access, pair.Refresh)
	c.finish(pair.Access, nil)
	return pair.Access, nil
}

func (c *refreshCoordinator) finish(access string, err error) {
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.inFlight = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{access: access, err: err}
	}
}
