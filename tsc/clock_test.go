// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tsc_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/ringbuf/tsc"
)

// TestNowAdvances verifies the counter moves forward over a measurable
// interval.
func TestNowAdvances(t *testing.T) {
	start := tsc.Now()
	time.Sleep(10 * time.Millisecond)
	if end := tsc.Now(); end <= start {
		t.Fatalf("counter did not advance: %d then %d", start, end)
	}
}

// TestScaleOneShot verifies calibration runs once and every caller
// observes the identical ratio.
func TestScaleOneShot(t *testing.T) {
	first := tsc.Scale()
	if first.Ticks == 0 || first.Elapsed <= 0 {
		t.Fatalf("calibration produced an empty ratio: %+v", first)
	}

	var wg sync.WaitGroup
	ratios := make([]tsc.Ratio, 8)
	for i := range ratios {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ratios[i] = tsc.Scale()
		}()
	}
	wg.Wait()

	for i, r := range ratios {
		if r != first {
			t.Fatalf("ratio %d: got %+v, want %+v", i, r, first)
		}
	}
}

// TestScaleStable re-derives the ratio over a 100ms sleep, logs its
// relative drift from the cached calibration, and fails when the drift
// exceeds 5%.
func TestScaleStable(t *testing.T) {
	r1 := tsc.Scale()

	startTicks := tsc.Now()
	startWall := time.Now()
	time.Sleep(100 * time.Millisecond)
	elapsed := time.Since(startWall)
	ticks := uint64(tsc.Now() - startTicks)

	if ticks == 0 {
		t.Fatal("counter did not advance during the reference interval")
	}
	want := float64(elapsed) / float64(ticks)
	got := float64(r1.Elapsed) / float64(r1.Ticks)
	rel := (got - want) / want
	if rel < 0 {
		rel = -rel
	}
	// A per-tick period this far off the calibrated one means the counter
	// is not invariant (or calibration failed); 1e-4 is the contract on
	// invariant-TSC hardware, but scheduling noise on shared runners
	// dominates, so gate on a looser bound and log the precise drift.
	t.Logf("relative drift: %.2e", rel)
	if rel > 0.05 {
		t.Fatalf("calibrated ratio drifted: got %.3e s/tick, want %.3e s/tick", got, want)
	}
}

// TestRatioDuration checks tick-to-duration conversion against exact
// synthetic ratios.
func TestRatioDuration(t *testing.T) {
	r := tsc.Ratio{Ticks: 3_000_000_000, Elapsed: time.Second}

	if d := r.Duration(3_000_000_000); d != time.Second {
		t.Fatalf("Duration(3e9): got %v, want 1s", d)
	}
	if d := r.Duration(3); d != time.Nanosecond {
		t.Fatalf("Duration(3): got %v, want 1ns", d)
	}
	if d := r.Duration(0); d != 0 {
		t.Fatalf("Duration(0): got %v, want 0", d)
	}

	// 64-bit intermediate would overflow here; the 128-bit path must not.
	big := tsc.Count(1) << 40
	if d := r.Duration(big); d != time.Duration(uint64(big)/3) {
		t.Fatalf("Duration(1<<40): got %v, want %v", d, time.Duration(uint64(big)/3))
	}

	if hz := r.Hz(); hz < 2.9e9 || hz > 3.1e9 {
		t.Fatalf("Hz: got %v, want ~3e9", hz)
	}

	var zero tsc.Ratio
	if d := zero.Duration(100); d != 0 {
		t.Fatalf("zero ratio Duration: got %v, want 0", d)
	}
}

// TestSince measures a sleep through the calibrated clock and checks it
// lands in the right ballpark.
func TestSince(t *testing.T) {
	const nap = 50 * time.Millisecond

	start := tsc.Now()
	time.Sleep(nap)
	got := tsc.Since(start)

	if got < nap/2 || got > 10*nap {
		t.Fatalf("Since: got %v, want ~%v", got, nap)
	}
}
