// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Options configures ring and pipeline creation.
type Options struct {
	// Arena capacity in slots
	capacity int

	// Number of pipeline stages (0 means two-party ring)
	stages int

	// Index of the pipeline's first stage
	first int
}

// Builder creates rings and pipelines with fluent configuration.
//
// Example:
//
//	// Two-party SPSC ring
//	r := ringbuf.BuildRing[Event](ringbuf.New(1024))
//
//	// Three-stage pipeline originating at stage 1
//	p := ringbuf.BuildPipeline[Event](ringbuf.New(1024).Stages(3).FirstStage(1))
type Builder struct {
	opts Options
}

// New creates a builder with the given arena capacity.
//
// The capacity is used as given; it does not need to be a power of two.
// A two-party ring reserves one slot (effective capacity-1); a pipeline
// uses all capacity slots.
//
// Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("ringbuf: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Stages declares an n-stage pipeline instead of a two-party ring.
func (b *Builder) Stages(n int) *Builder {
	b.opts.stages = n
	return b
}

// FirstStage designates the stage where elements originate (default 0).
// Only meaningful together with Stages.
func (b *Builder) FirstStage(i int) *Builder {
	b.opts.first = i
	return b
}

// BuildRing creates a two-party SPSC ring.
// Panics if the builder is configured with Stages.
func BuildRing[T any](b *Builder) *Ring[T] {
	if b.opts.stages != 0 {
		panic("ringbuf: BuildRing requires a builder without Stages")
	}
	return NewRing[T](b.opts.capacity)
}

// BuildPipeline creates an n-stage pipeline.
// Panics if the builder is not configured with Stages(n >= 2).
func BuildPipeline[T any](b *Builder) *Pipeline[T] {
	if b.opts.stages < 2 {
		panic("ringbuf: BuildPipeline requires Stages(n) with n >= 2")
	}
	return newPipeline[T](b.opts.capacity, b.opts.stages, b.opts.first)
}
