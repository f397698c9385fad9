// internal/clock/clock.go
package clock

import (
	"go-gem-defense/internal/types"

	"github.com/zyedidia/generic/heap"
)

// Handle identifies a scheduled callback. Zero is never issued.
type Handle uint64

// Key names a replaceable callback of one owner, e.g. the fire timer of a tower.
type Key struct {
	Owner types.EntityID
	Name  string
}

type entry struct {
	due    float64
	seq    uint64
	handle Handle
	key    Key
	keyed  bool
	fn     func()
}

// Clock is a single-threaded logical clock. Callbacks are scheduled relative
// to Now and run from Advance in due-time order; callbacks due at the same
// time run in scheduling order.
type Clock struct {
	now     float64
	seq     uint64
	queue   *heap.Heap[*entry]
	pending map[Handle]*entry
	keyed   map[Key]Handle
}

func New() *Clock {
	return &Clock{
		queue: heap.New(func(a, b *entry) bool {
			if a.due != b.due {
				return a.due < b.due
			}
			return a.seq < b.seq
		}),
		pending: make(map[Handle]*entry),
		keyed:   make(map[Key]Handle),
	}
}

// Now returns the current simulated time in seconds.
func (c *Clock) Now() float64 {
	return c.now
}

// Len returns the number of callbacks still waiting to run.
func (c *Clock) Len() int {
	return len(c.pending)
}

// Schedule runs fn after delay seconds. Negative delays are treated as zero.
func (c *Clock) Schedule(owner types.EntityID, delay float64, fn func()) Handle {
	return c.push(Key{Owner: owner}, false, delay, fn)
}

// ScheduleKeyed is Schedule with replacement: a pending callback with the same
// owner and name is cancelled first.
func (c *Clock) ScheduleKeyed(owner types.EntityID, name string, delay float64, fn func()) Handle {
	key := Key{Owner: owner, Name: name}
	if h, ok := c.keyed[key]; ok {
		c.Cancel(h)
	}
	h := c.push(key, true, delay, fn)
	c.keyed[key] = h
	return h
}

func (c *Clock) push(key Key, keyed bool, delay float64, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	c.seq++
	e := &entry{
		due:    c.now + delay,
		seq:    c.seq,
		handle: Handle(c.seq),
		key:    key,
		keyed:  keyed,
		fn:     fn,
	}
	c.queue.Push(e)
	c.pending[e.handle] = e
	return e.handle
}

// Cancel drops a pending callback. Cancelling a handle that already ran is a no-op.
func (c *Clock) Cancel(h Handle) bool {
	e, ok := c.pending[h]
	if !ok {
		return false
	}
	delete(c.pending, h)
	if e.keyed && c.keyed[e.key] == h {
		delete(c.keyed, e.key)
	}
	// The heap entry stays until it reaches the top; Advance skips it.
	e.fn = nil
	return true
}

// CancelKey drops the pending callback registered under owner/name, if any.
func (c *Clock) CancelKey(owner types.EntityID, name string) bool {
	h, ok := c.keyed[Key{Owner: owner, Name: name}]
	if !ok {
		return false
	}
	return c.Cancel(h)
}

// IsPending reports whether a keyed callback is waiting to run.
func (c *Clock) IsPending(owner types.EntityID, name string) bool {
	_, ok := c.keyed[Key{Owner: owner, Name: name}]
	return ok
}

// CancelOwner drops every pending callback that belongs to owner and returns
// how many were dropped.
func (c *Clock) CancelOwner(owner types.EntityID) int {
	if owner == 0 {
		return 0
	}
	var handles []Handle
	for h, e := range c.pending {
		if e.key.Owner == owner {
			handles = append(handles, h)
		}
	}
	for _, h := range handles {
		c.Cancel(h)
	}
	return len(handles)
}

// Advance moves the clock forward by dt seconds and runs every callback that
// falls due, including ones scheduled by callbacks during this call. Each
// callback observes Now equal to its own due time.
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		return
	}
	c.AdvanceTo(c.now + dt)
}

// AdvanceTo runs the clock up to the absolute time t.
func (c *Clock) AdvanceTo(t float64) {
	for {
		e, ok := c.queue.Peek()
		if !ok || e.due > t {
			break
		}
		c.queue.Pop()
		if e.fn == nil {
			continue
		}
		delete(c.pending, e.handle)
		if e.keyed && c.keyed[e.key] == e.handle {
			delete(c.keyed, e.key)
		}
		if e.due > c.now {
			c.now = e.due
		}
		e.fn()
	}
	if t > c.now {
		c.now = t
	}
}
