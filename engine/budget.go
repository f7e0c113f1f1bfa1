package engine

import (
	"context"
	"time"
)

// clockCheckMask spaces out clock and context polling; node limits are
// checked on every node.
const clockCheckMask = 1023

// budget is the stop condition of one search: a node cap, a deadline and the
// caller's context. The zero value never stops.
type budget struct {
	ctx       context.Context
	nodeLimit uint64
	deadline  time.Time
	stopped   bool
}

func (b *budget) start(ctx context.Context, nodeLimit uint64, moveTime time.Duration) {
	b.ctx = ctx
	b.nodeLimit = nodeLimit
	b.deadline = time.Time{}
	if moveTime > 0 {
		b.deadline = time.Now().Add(moveTime)
	}
	b.stopped = false
}

func (b *budget) clear() {
	*b = budget{}
}

/*
  - True once the node cap, the deadline or the context has run out; it stays
    true until the next start
  - False while the search may continue
*/
func (b *budget) exceeded(nodes uint64) bool {
	if b.stopped {
		return true
	}
	if b.nodeLimit > 0 && nodes > b.nodeLimit {
		b.stopped = true
		return true
	}
	if nodes&clockCheckMask == 0 {
		if !b.deadline.IsZero() && time.Now().After(b.deadline) {
			b.stopped = true
		} else if b.ctx != nil && b.ctx.Err() != nil {
			b.stopped = true
		}
	}
	return b.stopped
}
