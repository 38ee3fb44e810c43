// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf_test

import (
	"testing"

	"code.hybscloud.com/ringbuf"
	"code.hybscloud.com/ringbuf/tsc"
)

// BenchmarkRingEnqueueDequeue measures the element-at-a-time round trip
// on a single goroutine (no contention, pure protocol cost).
func BenchmarkRingEnqueueDequeue(b *testing.B) {
	r := ringbuf.NewRing[uint64](1 << 10)

	v := uint64(0)
	b.ResetTimer()
	for range b.N {
		r.Enqueue(&v)
		r.Dequeue()
		v++
	}
}

// BenchmarkRingVectored measures the per-element cost of batched access,
// which amortizes the position-word traffic over the window.
func BenchmarkRingVectored(b *testing.B) {
	const window = 256
	r := ringbuf.NewRing[uint64](1 << 10)

	seq := uint64(0)
	b.ResetTimer()
	for n := 0; n < b.N; {
		r.Produce(window, func(span []uint64) {
			for i := range span {
				span[i] = seq
				seq++
			}
		})
		n += r.Consume(window, func(span []uint64) {})
	}
}

// BenchmarkPipelineThreeStage measures a full first->middle->last rotation
// driven by one goroutine.
func BenchmarkPipelineThreeStage(b *testing.B) {
	const window = 256
	p := ringbuf.NewPipeline[uint64](1<<10, 3)

	b.ResetTimer()
	for n := 0; n < b.N; {
		p.InvokeMem(0, window, func(span []uint64) {})
		p.InvokeMem(1, window, func(span []uint64) {})
		n += p.InvokeMem(2, window, func(span []uint64) {})
	}
}

// BenchmarkTscNow measures the cost of one fenced counter read.
func BenchmarkTscNow(b *testing.B) {
	for range b.N {
		_ = tsc.Now()
	}
}
