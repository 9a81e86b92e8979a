package workflow

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

func TestTokenSource(t *testing.T) {
	ts := newTokenSource()
	first := ts.next("doctors")
	second := ts.next("doctors")
	if second <= first {
		t.Errorf("tokens not monotonic: %d then %d", first, second)
	}
	if ts.isLatest("doctors", first) {
		t.Error("superseded token still reported latest")
	}
	if !ts.isLatest("doctors", second) {
		t.Error("latest token not recognized")
	}

	other := ts.next("patients")
	if !ts.isLatest("patients", other) || !ts.isLatest("doctors", second) {
		t.Error("views must have independent token sequences")
	}
}

// gatedBackend blocks the first ListDoctors call until released, so a test
// can interleave a second, faster fetch.
type gatedBackend struct {
	*mockBackend
	started chan struct{}
	release chan struct{}
	callN   int32
}

func (g *gatedBackend) ListDoctors(ctx context.Context) ([]api.Doctor, error) {
	if atomic.AddInt32(&g.callN, 1) == 1 {
		close(g.started)
		<-g.release
		return []api.Doctor{{ID: 1, Name: "stale"}}, nil
	}
	return []api.Doctor{{ID: 2, Name: "fresh"}}, nil
}

func TestSlowStaleFetchDoesNotClobberFreshRender(t *testing.T) {
	backend := &gatedBackend{
		mockBackend: newMockBackend(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	sink := &recordSink{}
	dir := NewDoctorDirectory(backend, sink, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		dir.Load(context.Background())
		close(done)
	}()
	<-backend.started

	// A second fetch for the same view resolves first.
	if _, err := dir.Load(context.Background()); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	close(backend.release)
	<-done

	if len(sink.doctors) != 1 {
		t.Fatalf("rendered %d times, want 1 (stale result discarded)", len(sink.doctors))
	}
	if sink.doctors[0][0].Name != "fresh" {
		t.Errorf("rendered %v, want the fresher fetch", sink.doctors[0])
	}
}
