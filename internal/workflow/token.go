package workflow

import "sync"

// tokenSource hands out a monotonically increasing token per view target and
// remembers the latest issued. Concurrent fetches for the same view complete
// in no guaranteed order; a completion whose token is no longer the latest
// is discarded instead of overwriting a fresher render.
type tokenSource struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func newTokenSource() *tokenSource {
	return &tokenSource{latest: make(map[string]uint64)}
}

// next issues a new token for view and marks it as the latest.
func (t *tokenSource) next(view string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[view]++
	return t.latest[view]
}

// isLatest reports whether tok is still the most recent token for view.
func (t *tokenSource) isLatest(view string, tok uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[view] == tok
}
