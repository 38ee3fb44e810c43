// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tsc provides a steady high-resolution clock backed by the CPU
// timestamp counter, self-calibrated against the OS wall clock.
//
// Reading the counter is cheaper than a syscall, which makes the clock
// suitable for measuring short in-process durations — the intended use is
// microbenchmarking of lock-free hot paths, where the measurement overhead
// of a syscall-backed clock would dominate the measured work.
//
// Now returns a raw tick Count; Scale runs a one-shot calibration and
// returns the tick-to-time Ratio used by Duration and Since to convert
// counts into physical durations:
//
//	start := tsc.Now()
//	hotPath()
//	elapsed := tsc.Since(start)
//
// On amd64 the counter is RDTSC read between serializing load fences; the
// clock assumes an invariant TSC (constant rate across frequency scaling,
// synchronized across cores), which holds on any x86-64 part of the last
// decade. On every other architecture the package substitutes the OS
// monotonic clock, reported in nanoseconds since an internal epoch — the
// API is identical and the calibrated ratio converges to 1ns per tick.
//
// Calibration times a doubling number of pause iterations against both
// clocks until the derived ratio changes by less than 1e-7 between rounds,
// capped at 1e9 iterations. If the bound is not met under the cap the last
// estimate is kept; the clock never fails.
package tsc

import (
	"math/bits"
	"sync"
	"time"

	"code.hybscloud.com/ringbuf/internal/asm"
	"code.hybscloud.com/spin"
)

// Count is a raw reading of the cycle counter.
type Count uint64

// epoch anchors the monotonic fallback on architectures without an
// accessible cycle counter.
var epoch = time.Now()

// Now returns the current counter reading.
//
// Readings are monotonic and comparable within a process; convert
// differences to physical durations with [Ratio.Duration] or [Since].
func Now() Count {
	if asm.HaveCounter {
		return Count(asm.Rdtsc())
	}
	return Count(time.Since(epoch))
}

// Ratio is the calibrated tick-to-time conversion: Ticks counter
// increments were observed over Elapsed of wall-clock time.
type Ratio struct {
	Ticks   uint64
	Elapsed time.Duration
}

// Duration converts a tick count into a physical duration.
func (r Ratio) Duration(n Count) time.Duration {
	if r.Ticks == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(n), uint64(r.Elapsed))
	if hi >= r.Ticks {
		// Quotient exceeds the representable range.
		return time.Duration(1<<63 - 1)
	}
	q, _ := bits.Div64(hi, lo, r.Ticks)
	return time.Duration(q)
}

// Hz returns the calibrated counter frequency.
func (r Ratio) Hz() float64 {
	if r.Elapsed == 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

var (
	calibrateOnce sync.Once
	calibrated    Ratio
)

// Scale returns the calibrated tick-to-time ratio.
//
// The first call runs the calibration loop; subsequent and concurrent
// calls return the same cached result. Calibration is best-effort: if the
// error bound is not reached under the iteration cap, the last estimate is
// returned.
func Scale() Ratio {
	calibrateOnce.Do(calibrate)
	return calibrated
}

// Since returns the physical time elapsed since the counter reading c.
func Since(c Count) time.Duration {
	return Scale().Duration(Now() - c)
}

const (
	// Relative ratio change between rounds below which calibration stops.
	convergence = 1e-7

	// Iteration cap; past it the last estimate is kept.
	maxIterations = 1_000_000_000
)

// calibrate times a doubling number of pause iterations against the
// counter and the OS clock until the derived ratio stabilizes.
func calibrate() {
	var prev float64
	for iters := uint64(1 << 10); ; iters <<= 1 {
		startTicks := Now()
		startWall := time.Now()
		pause(iters)
		elapsed := time.Since(startWall)
		ticks := uint64(Now() - startTicks)

		if ticks == 0 || elapsed <= 0 {
			continue // interval too short to resolve; double and retry
		}
		calibrated = Ratio{Ticks: ticks, Elapsed: elapsed}

		cur := float64(elapsed) / float64(ticks)
		if prev != 0 {
			rel := (cur - prev) / prev
			if rel < 0 {
				rel = -rel
			}
			if rel < convergence {
				return
			}
		}
		prev = cur

		if iters<<1 > maxIterations {
			return // best effort
		}
	}
}

// pause spins for n CPU pause hints.
func pause(n uint64) {
	sw := spin.Wait{}
	for range n {
		sw.Once()
		sw.Reset()
	}
}
