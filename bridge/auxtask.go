// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"context"
	"sync/atomic"
)

// auxTask runs fn on its own goroutine whenever it has been requested.
// Requests never block: while one is already pending, further requests
// coalesce into it.
type auxTask struct {
	name string
	fn   func(ctx context.Context)
	req  chan struct{}

	requested atomic.Uint64
	coalesced atomic.Uint64
	runs      atomic.Uint64
}

func newAuxTask(name string, fn func(ctx context.Context)) *auxTask {
	return &auxTask{
		name: name,
		fn:   fn,
		req:  make(chan struct{}, 1),
	}
}

// schedule asks for one more run. Safe from the real-time context: it
// neither blocks nor allocates.
func (t *auxTask) schedule() {
	t.requested.Add(1)

	select {
	case t.req <- struct{}{}:
	default:
		t.coalesced.Add(1)
	}
}

// run serves requests until ctx ends.
func (t *auxTask) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.req:
			t.fn(ctx)
			t.runs.Add(1)
		}
	}
}
