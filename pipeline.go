// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// caughtUp is the high bit of a stage's position word. When set, the stage
// has produced nothing new since its downstream neighbor last drained it.
// The bit is set by the downstream stage (via CAS) and cleared by the
// owning stage on its next advance.
const caughtUp = 1 << 63

// stagePos is one stage's position word, isolated on its own cache line.
// The low bits carry the position in [0, capacity); bit 63 carries the
// caught-up flag. Packing both into one word lets a stage publish position
// and flag atomically.
type stagePos struct {
	pos atomix.Uint64
	_   cpu.CacheLinePad
}

// Pipeline generalizes the SPSC ring to n >= 2 stages rotating through one
// shared arena. Stage i consumes slots released by stage (i-1) mod n and
// produces them for stage (i+1) mod n; exactly one goroutine may drive each
// stage.
//
//	[(x-1)%n] <<== consumes from == [x%n] == produces for ==>> [(x+1)%n]
//
// One stage is designated the first (the origin of new elements); its
// upstream neighbor is the last. Unlike the two-party ring, all capacity
// slots are usable: the caught-up flag on each position word distinguishes
// "neighbor at the same position because there is nothing new" from
// "neighbor at the same position because it wrapped a full lap".
//
// Initially every stage's flag is set except the last stage's, so only the
// first stage sees work (the whole arena); its advance wakes the others in
// turn.
//
// Memory: O(capacity) plus one padded position word per stage
type Pipeline[T any] struct {
	stages []stagePos
	nodes  []T
	cap    uint64
	first  int
	last   int
}

// NewPipeline creates a pipeline with the given arena capacity and number
// of stages, with stage 0 designated the first. Use the [Builder] with
// [Builder.FirstStage] to designate a different origin stage.
//
// Panics if capacity < 1 or stages < 2.
func NewPipeline[T any](capacity, stages int) *Pipeline[T] {
	return newPipeline[T](capacity, stages, 0)
}

func newPipeline[T any](capacity, stages, first int) *Pipeline[T] {
	if capacity < 1 {
		panic("ringbuf: capacity must be >= 1")
	}
	if stages < 2 {
		panic("ringbuf: stages must be >= 2")
	}
	if first < 0 || first >= stages {
		panic("ringbuf: first stage out of range")
	}

	p := &Pipeline[T]{
		stages: make([]stagePos, stages),
		nodes:  make([]T, capacity),
		cap:    uint64(capacity),
		first:  first,
		last:   (first + stages - 1) % stages,
	}

	// Bootstrap: only the first stage may act. Its upstream (the last
	// stage) starts with the flag clear at position 0, which the first
	// stage reads as a full lap of available slots.
	for i := range p.stages {
		if i != p.last {
			p.stages[i].pos.StoreRelaxed(caughtUp)
		}
	}

	return p
}

// upstream returns the index of the stage that stage consumes from.
func (p *Pipeline[T]) upstream(stage int) int {
	if stage == 0 {
		return len(p.stages) - 1
	}
	return stage - 1
}

// InvokeMem hands fn the largest contiguous window of slots released to
// stage by its upstream neighbor, up to maxBatch, and releases them
// downstream. Only the goroutine driving stage may call it.
//
// fn receives raw slot spans: once with a single span, or twice with two
// back-to-back spans when the window wraps the end of the arena. No
// element lifecycle is applied; use InvokeObj for per-element access with
// construction at the first stage and teardown at the last. The position
// advances by the full window unconditionally once fn returns; fn must not
// panic.
//
// Returns the window size. Returns 0 without invoking fn when the
// upstream neighbor is caught up. maxBatch <= 0 means no limit.
func (p *Pipeline[T]) InvokeMem(stage, maxBatch int, fn func(span []T)) int {
	upWord := &p.stages[p.upstream(stage)].pos
	selfWord := &p.stages[stage].pos

	upMasked := upWord.LoadAcquire()
	if upMasked&caughtUp != 0 {
		return 0
	}
	upPos := upMasked // flag known clear
	selfPos := selfWord.LoadRelaxed() &^ caughtUp

	// Equal positions with the flag clear mean the upstream wrapped a
	// full lap: the whole arena is available.
	avail := upPos + p.cap - selfPos
	if avail > p.cap {
		avail -= p.cap
	}
	batch := avail
	if maxBatch > 0 && uint64(maxBatch) < batch {
		batch = uint64(maxBatch)
	}

	if end := selfPos + batch; end > p.cap {
		fn(p.nodes[selfPos:p.cap])
		fn(p.nodes[:end-p.cap])
	} else {
		fn(p.nodes[selfPos:end])
	}

	// Raise the upstream's caught-up flag if this stage drained it
	// completely. A failed CAS means the upstream advanced concurrently
	// and there is more to see on the next call.
	if batch == avail {
		upWord.CompareAndSwapAcqRel(upMasked, upMasked|caughtUp)
	}

	nextPos := selfPos + batch
	if nextPos >= p.cap {
		nextPos -= p.cap
	}
	// Publishing with the flag clear is what releases the downstream.
	selfWord.StoreRelease(nextPos)
	return int(batch)
}

// InvokeObj is the per-element flavor of InvokeMem: fn is invoked once per
// slot in the window, in order.
//
// At the first stage each slot is reset to the zero value before fn runs,
// so fn always sees a freshly constructed element. At the last stage each
// slot is cleared after fn returns, releasing references held by the
// element. Intermediate stages see the live element untouched.
//
// Returns the window size; 0 when the upstream neighbor is caught up.
// maxBatch <= 0 means no limit.
func (p *Pipeline[T]) InvokeObj(stage, maxBatch int, fn func(elem *T)) int {
	construct := stage == p.first
	destroy := stage == p.last
	return p.InvokeMem(stage, maxBatch, func(span []T) {
		if construct {
			clear(span)
		}
		for i := range span {
			fn(&span[i])
		}
		if destroy {
			clear(span)
		}
	})
}

// InvokeSingle is the element-at-a-time flavor of InvokeObj. It reports
// whether an element was processed.
func (p *Pipeline[T]) InvokeSingle(stage int, fn func(elem *T)) bool {
	return p.InvokeObj(stage, 1, fn) == 1
}

// Cap returns the arena capacity. All Cap() slots are usable.
func (p *Pipeline[T]) Cap() int {
	return int(p.cap)
}

// Stages returns the number of stages.
func (p *Pipeline[T]) Stages() int {
	return len(p.stages)
}

// FirstStage returns the index of the stage where elements originate.
func (p *Pipeline[T]) FirstStage() int {
	return p.first
}

// LastStage returns the index of the stage where elements are retired.
func (p *Pipeline[T]) LastStage() int {
	return p.last
}
