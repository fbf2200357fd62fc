package clock

import (
	"testing"
	"time"
)

func TestVirtualClock_FiresInOrder(t *testing.T) {
	c := NewVirtualClock()
	var got []string

	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	c.AfterFunc(20*time.Millisecond, func() { got = append(got, "b2") })

	if n := c.Advance(25 * time.Millisecond); n != 3 {
		t.Errorf("Expected 3 callbacks, got %d", n)
	}
	if c.Now() != 25*time.Millisecond {
		t.Errorf("Expected now 25ms, got %v", c.Now())
	}
	c.Advance(10 * time.Millisecond)

	want := []string{"a", "b", "b2", "c"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
			break
		}
	}
}

func TestVirtualClock_Stop(t *testing.T) {
	c := NewVirtualClock()
	fired := false
	timer := c.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("Expected first Stop to report true")
	}
	if timer.Stop() {
		t.Error("Expected second Stop to report false")
	}
	c.Advance(2 * time.Second)
	if fired {
		t.Error("Expected stopped timer not to fire")
	}
	if c.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", c.Pending())
	}
}

func TestVirtualClock_StopAfterFire(t *testing.T) {
	c := NewVirtualClock()
	timer := c.AfterFunc(time.Millisecond, func() {})
	c.Advance(time.Millisecond)
	if timer.Stop() {
		t.Error("Expected Stop after firing to report false")
	}
}

func TestVirtualClock_ChainedCallbacks(t *testing.T) {
	c := NewVirtualClock()
	var times []time.Duration
	var step func()
	step = func() {
		times = append(times, c.Now())
		if len(times) < 4 {
			c.AfterFunc(100*time.Millisecond, step)
		}
	}
	c.AfterFunc(50*time.Millisecond, step)

	c.RunUntilIdle(time.Hour)

	want := []time.Duration{50, 150, 250, 350}
	if len(times) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(times))
	}
	for i, ms := range want {
		if times[i] != ms*time.Millisecond {
			t.Errorf("Call %d: expected %v, got %v", i, ms*time.Millisecond, times[i])
		}
	}
}

func TestVirtualClock_StopFromCallback(t *testing.T) {
	c := NewVirtualClock()
	fired := false
	later := c.AfterFunc(20*time.Millisecond, func() { fired = true })
	c.AfterFunc(10*time.Millisecond, func() { later.Stop() })

	c.Advance(time.Second)
	if fired {
		t.Error("Expected timer stopped by an earlier callback not to fire")
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(0.1875); got != 187500*time.Microsecond {
		t.Errorf("Expected 187.5ms, got %v", got)
	}
}
