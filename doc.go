// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringbuf provides cache-aware, lock-free single-producer
// single-consumer ring primitives.
//
// The package offers two building blocks over a fixed, shared arena of
// slots, plus a calibrated TSC clock in the ringbuf/tsc subpackage:
//
//   - Ring: a two-party SPSC ring with element-at-a-time and vectored
//     (batched, wrap-splitting) access
//   - Pipeline: a generalization to n >= 2 stages rotating through the
//     same arena in strict upstream-to-downstream order
//
// Neither component spawns goroutines or blocks: the caller supplies one
// goroutine per role or stage, and every operation returns immediately
// with "no work" (ErrWouldBlock, or a 0 batch size) when it cannot
// proceed. The caller owns the back-off policy; [code.hybscloud.com/spin]
// and iox.Backoff are the recommended idle primitives.
//
// # Quick Start
//
// Two-party ring:
//
//	r := ringbuf.NewRing[Tick](1 << 16)
//
//	go func() { // Producer
//	    sw := spin.Wait{}
//	    for tick := range feed {
//	        for r.Enqueue(&tick) != nil {
//	            sw.Once()
//	        }
//	        sw.Reset()
//	    }
//	}()
//
//	go func() { // Consumer
//	    sw := spin.Wait{}
//	    for {
//	        tick, err := r.Dequeue()
//	        if err != nil {
//	            sw.Once()
//	            continue
//	        }
//	        sw.Reset()
//	        process(tick)
//	    }
//	}()
//
// Vectored access amortizes the position-word traffic over a batch. The
// callback receives the largest contiguous window of slots; a window that
// crosses the end of the arena arrives as two back-to-back spans:
//
//	n := r.Consume(256, func(span []Tick) {
//	    for i := range span {
//	        process(span[i])
//	    }
//	})
//
// Three-stage pipeline (produce, transform, retire):
//
//	p := ringbuf.NewPipeline[Order](1024, 3)
//
//	// Stage 0 originates elements, stage 1 transforms them in place,
//	// stage 2 observes and retires them. One goroutine per stage:
//	p.InvokeObj(0, 0, func(o *Order) { *o = nextOrder() })
//	p.InvokeObj(1, 0, func(o *Order) { enrich(o) })
//	p.InvokeObj(2, 0, func(o *Order) { publish(o) })
//
// # Memory Ordering
//
// Each position word is written by exactly one role or stage. A role reads
// its own position relaxed (it is the sole writer), reads the
// counter-party's position with acquire ordering, and publishes its
// advance with release ordering, so a producer's writes to the arena
// happen-before the consumer that observes the advanced position. The
// pipeline extends the same discipline with a CAS on the upstream
// caught-up flag (acq_rel on success, benign on failure).
//
// Visibility across a pipeline is transitive only: stage i's writes reach
// stage i+k after each intermediate stage has released its own position
// past the affected slots.
//
// # Unconditional Advance
//
// A batched call advances the position by the full window once the
// callback returns, whether or not the callback "succeeded" — rollback in
// a lock-free ring would require per-slot generation counters. Callbacks
// must not panic; a callback that needs to signal failure should set a
// flag it captures and leave the element for the caller to handle.
//
// # Error Handling
//
// Operations return [ErrWouldBlock] (an alias for iox.ErrWouldBlock) when
// the ring is full or empty. This is a control flow signal, never a
// failure; IsWouldBlock, IsSemantic and IsNonFailure delegate to
// [code.hybscloud.com/iox] for classification. Batched operations signal
// the same condition by returning 0.
//
// Violating a precondition — capacity below the minimum, more than one
// goroutine on a role or stage — is undefined behavior; constructors
// panic on the statically checkable cases.
//
// # Race Detection
//
// Go's race detector cannot observe happens-before established through
// atomic operations on separate variables, so correct lock-free code over
// a shared arena triggers false positives. Concurrent tests are gated on
// [RaceEnabled]; see the stress tests for the pattern.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, [code.hybscloud.com/spin] for CPU pause instructions, and
// golang.org/x/sys/cpu for cache-line padding.
package ringbuf
