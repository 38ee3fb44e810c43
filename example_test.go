// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf_test

import (
	"fmt"

	"code.hybscloud.com/ringbuf"
)

// ExampleNewRing demonstrates element-at-a-time handoff through a
// two-party ring.
func ExampleNewRing() {
	r := ringbuf.NewRing[int](8)

	// Producer side
	for i := 1; i <= 5; i++ {
		v := i * 10
		r.Enqueue(&v)
	}

	// Consumer side
	for range 5 {
		v, _ := r.Dequeue()
		fmt.Println(v)
	}

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleRing_Consume demonstrates vectored access: the consumer receives
// contiguous windows instead of single elements.
func ExampleRing_Consume() {
	r := ringbuf.NewRing[int](8)

	r.Produce(0, func(span []int) {
		for i := range span {
			span[i] = i * i
		}
	})

	n := r.Consume(4, func(span []int) {
		fmt.Println(span)
	})
	fmt.Println("consumed", n)

	// Output:
	// [0 1 4 9]
	// consumed 4
}

// ExampleNewPipeline steps a value through a two-stage pipeline: stage 0
// originates elements, stage 1 retires them.
func ExampleNewPipeline() {
	p := ringbuf.NewPipeline[string](4, 2)

	p.InvokeSingle(0, func(s *string) { *s = "hello" })
	p.InvokeSingle(0, func(s *string) { *s = "world" })

	for p.InvokeSingle(1, func(s *string) { fmt.Println(*s) }) {
	}

	// Output:
	// hello
	// world
}
