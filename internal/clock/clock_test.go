package clock

import (
	"testing"

	"go-gem-defense/internal/types"
)

func TestAdvanceRunsInDueOrder(t *testing.T) {
	c := New()
	var got []string
	c.Schedule(0, 2.0, func() { got = append(got, "b") })
	c.Schedule(0, 1.0, func() { got = append(got, "a") })
	c.Schedule(0, 3.0, func() { got = append(got, "c") })

	c.Advance(2.5)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Expected [a b], got %v", got)
	}
	if c.Now() != 2.5 {
		t.Errorf("Expected now 2.5, got %f", c.Now())
	}
	c.Advance(1.0)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("Expected c to run, got %v", got)
	}
}

func TestSameTimeKeepsSchedulingOrder(t *testing.T) {
	c := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		c.Schedule(0, 1.0, func() { got = append(got, i) })
	}
	c.Advance(1.0)
	for i, v := range got {
		if v != i {
			t.Fatalf("Expected scheduling order, got %v", got)
		}
	}
}

func TestChainedCallbacksSeeTheirDueTime(t *testing.T) {
	c := New()
	var times []float64
	var tick func()
	tick = func() {
		times = append(times, c.Now())
		if len(times) < 3 {
			c.Schedule(0, 1.0, tick)
		}
	}
	c.Schedule(0, 1.0, tick)

	// One large step must still produce exact 1, 2, 3.
	c.Advance(10)
	want := []float64{1, 2, 3}
	if len(times) != len(want) {
		t.Fatalf("Expected %d ticks, got %d", len(want), len(times))
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("Tick %d: expected %f, got %f", i, want[i], times[i])
		}
	}
	if c.Now() != 10 {
		t.Errorf("Expected now 10, got %f", c.Now())
	}
}

func TestCancel(t *testing.T) {
	c := New()
	ran := false
	h := c.Schedule(0, 1.0, func() { ran = true })
	if !c.Cancel(h) {
		t.Fatal("Expected Cancel to report a pending callback")
	}
	if c.Cancel(h) {
		t.Error("Second Cancel should be a no-op")
	}
	c.Advance(2)
	if ran {
		t.Error("Cancelled callback ran")
	}
	if c.Len() != 0 {
		t.Errorf("Expected no pending callbacks, got %d", c.Len())
	}
}

func TestScheduleKeyedReplaces(t *testing.T) {
	c := New()
	owner := types.EntityID(7)
	var got []string
	c.ScheduleKeyed(owner, "fire", 1.0, func() { got = append(got, "first") })
	c.ScheduleKeyed(owner, "fire", 0.5, func() { got = append(got, "second") })

	if !c.IsPending(owner, "fire") {
		t.Fatal("Expected keyed callback to be pending")
	}
	c.Advance(2)
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("Expected only the replacement to run, got %v", got)
	}
	if c.IsPending(owner, "fire") {
		t.Error("Key should be released after the callback ran")
	}
}

func TestCancelKeyAndOwner(t *testing.T) {
	c := New()
	a, b := types.EntityID(1), types.EntityID(2)
	count := 0
	inc := func() { count++ }

	c.ScheduleKeyed(a, "move", 1, inc)
	c.ScheduleKeyed(a, "poison", 1, inc)
	c.Schedule(a, 1, inc)
	c.Schedule(b, 1, inc)

	if !c.CancelKey(a, "move") {
		t.Error("Expected CancelKey to find the move callback")
	}
	if n := c.CancelOwner(a); n != 2 {
		t.Errorf("Expected 2 callbacks cancelled for owner a, got %d", n)
	}
	c.Advance(1)
	if count != 1 {
		t.Errorf("Expected only owner b to run, got %d runs", count)
	}
}

func TestNegativeDelayRunsOnNextAdvance(t *testing.T) {
	c := New()
	ran := false
	c.Schedule(0, -3, func() { ran = true })
	c.Advance(0)
	if !ran {
		t.Error("Expected callback with negative delay to run at once")
	}
}
