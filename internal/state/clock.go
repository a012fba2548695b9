package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// revisionClock hands out store revisions. Every mutation ticks it once, so
// observers can order and de-duplicate changes.
type revisionClock struct {
	session string
	counter uint64
}

func newRevisionClock() *revisionClock {
	return &revisionClock{session: uuid.NewString()}
}

func (c *revisionClock) Tick() uint64 {
	return atomic.AddUint64(&c.counter, 1)
}

func (c *revisionClock) Current() uint64 {
	return atomic.LoadUint64(&c.counter)
}
