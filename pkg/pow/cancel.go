package pow

import "sync/atomic"

// CancelToken is a first-class cancellation signal for a mining run,
// independent of process-wide signal handling. A caller (typically a CLI
// that installs its own SIGINT handler) trips it by calling Cancel; the
// engine polls it on a sampled schedule alongside ctx.Done().
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel trips the token. Safe to call more than once and from any
// goroutine.
func (t *CancelToken) Cancel() {
	if t == nil {
		return
	}
	t.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called. A nil token is never
// cancelled, so callers that have no token to offer can pass nil.
func (t *CancelToken) Cancelled() bool {
	return t != nil && t.cancelled.Load()
}
