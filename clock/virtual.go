package clock

import (
	"container/heap"
	"time"
)

// VirtualClock is a Scheduler whose time only moves when Advance or
// RunUntilIdle is called. Callbacks due at the same instant run in the order
// they were scheduled.
type VirtualClock struct {
	now   time.Duration
	queue timerQueue
	seq   uint64
}

// NewVirtualClock returns a clock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

// Now is the time elapsed since the clock was created.
func (c *VirtualClock) Now() time.Duration {
	return c.now
}

// Seconds is Now in seconds, usable as an audio clock.
func (c *VirtualClock) Seconds() float64 {
	return c.now.Seconds()
}

// AfterFunc schedules fn at Now()+d. Negative delays count as zero.
func (c *VirtualClock) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	t := &virtualTimer{clock: c, when: c.now + d, seq: c.seq, fn: fn}
	c.seq++
	heap.Push(&c.queue, t)
	return t
}

// Pending is the number of callbacks still waiting.
func (c *VirtualClock) Pending() int {
	return len(c.queue)
}

// Advance moves time forward by d, running every callback that falls due,
// including ones scheduled by callbacks along the way. Returns how many ran.
func (c *VirtualClock) Advance(d time.Duration) int {
	target := c.now + d
	fired := 0
	for len(c.queue) > 0 && c.queue[0].when <= target {
		c.fireNext()
		fired++
	}
	c.now = target
	return fired
}

// RunUntilIdle runs callbacks until none are left or the next one is past
// limit. Returns how many ran.
func (c *VirtualClock) RunUntilIdle(limit time.Duration) int {
	fired := 0
	for len(c.queue) > 0 && c.queue[0].when <= limit {
		c.fireNext()
		fired++
	}
	return fired
}

func (c *VirtualClock) fireNext() {
	t := heap.Pop(&c.queue).(*virtualTimer)
	if t.when > c.now {
		c.now = t.when
	}
	t.fired = true
	t.fn()
}

type virtualTimer struct {
	clock *VirtualClock
	when  time.Duration
	seq   uint64
	fn    func()
	index int
	fired bool
}

func (t *virtualTimer) Stop() bool {
	if t.fired || t.index < 0 {
		return false
	}
	heap.Remove(&t.clock.queue, t.index)
	return true
}

type timerQueue []*virtualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].when == q[j].when {
		return q[i].seq < q[j].seq
	}
	return q[i].when < q[j].when
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
