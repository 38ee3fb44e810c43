// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// Ring is a single-producer single-consumer bounded ring over a fixed
// arena of T-sized slots.
//
// Based on Lamport's ring buffer with cached index optimization. The
// producer caches the consumer's position, and vice versa, reducing
// cross-core cache line traffic. Positions live in [0, capacity) and wrap
// by conditional subtraction, so the capacity does not need to be a power
// of two.
//
// One slot is reserved to distinguish empty (producer == consumer) from
// full (next(producer) == consumer); the effective capacity is Cap()-1.
//
// Besides element-at-a-time Enqueue/Dequeue, the ring offers vectored
// access (Produce/Consume) that exposes the largest contiguous window of
// slots to a callback — as two back-to-back spans when the window wraps
// the end of the arena.
//
// Memory: O(capacity) with no per-slot overhead
type Ring[T any] struct {
	_              cpu.CacheLinePad
	consumer       atomix.Uint64 // next slot the consumer reads
	cachedProducer uint64        // consumer's cached view of the producer
	_              cpu.CacheLinePad
	producer       atomix.Uint64 // next slot the producer writes
	cachedConsumer uint64        // producer's cached view of the consumer
	_              cpu.CacheLinePad
	nodes          []T
	cap            uint64
}

// NewRing creates a new SPSC ring with the given arena capacity.
// One slot is reserved, so the ring holds at most capacity-1 elements.
//
// Panics if capacity < 2.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 2 {
		panic("ringbuf: capacity must be >= 2")
	}

	return &Ring[T]{
		nodes: make([]T, capacity),
		cap:   uint64(capacity),
	}
}

// next advances pos by one slot, wrapping at the arena boundary.
func (r *Ring[T]) next(pos uint64) uint64 {
	pos++
	if pos == r.cap {
		pos = 0
	}
	return pos
}

// Enqueue adds an element to the ring (producer only).
// Returns ErrWouldBlock if the ring is full.
func (r *Ring[T]) Enqueue(elem *T) error {
	pos := r.producer.LoadRelaxed()
	nextPos := r.next(pos)
	if nextPos == r.cachedConsumer {
		r.cachedConsumer = r.consumer.LoadAcquire()
		if nextPos == r.cachedConsumer {
			return ErrWouldBlock
		}
	}

	r.nodes[pos] = *elem
	r.producer.StoreRelease(nextPos)
	return nil
}

// Dequeue removes and returns the oldest live element (consumer only).
// The vacated slot is cleared so referenced objects can be collected.
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *Ring[T]) Dequeue() (T, error) {
	pos := r.consumer.LoadRelaxed()
	if pos == r.cachedProducer {
		r.cachedProducer = r.producer.LoadAcquire()
		if pos == r.cachedProducer {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := r.nodes[pos]
	var zero T
	r.nodes[pos] = zero
	r.consumer.StoreRelease(r.next(pos))
	return elem, nil
}

// Produce hands fn the largest contiguous window of vacant slots, up to
// maxBatch, and publishes them to the consumer (producer only).
//
// fn is called once with a single span, or twice with two back-to-back
// spans when the window wraps the end of the arena. fn must fill the slots
// in place and must not retain the spans past its return. The position
// advances by the full window unconditionally once fn returns; fn must not
// panic.
//
// Returns the number of slots published. Returns 0 without invoking fn
// when the ring is full. maxBatch <= 0 means no limit (Cap()-1).
func (r *Ring[T]) Produce(maxBatch int, fn func(span []T)) int {
	pos := r.producer.LoadRelaxed()
	r.cachedConsumer = r.consumer.LoadAcquire()

	// Vacant slots ahead of the producer, one slot reserved.
	avail := r.cachedConsumer + r.cap - 1 - pos
	if avail >= r.cap {
		avail -= r.cap
	}
	batch := avail
	if maxBatch > 0 && uint64(maxBatch) < batch {
		batch = uint64(maxBatch)
	}
	if batch == 0 {
		return 0
	}

	if end := pos + batch; end > r.cap {
		fn(r.nodes[pos:r.cap])
		fn(r.nodes[:end-r.cap])
	} else {
		fn(r.nodes[pos:end])
	}

	nextPos := pos + batch
	if nextPos >= r.cap {
		nextPos -= r.cap
	}
	r.producer.StoreRelease(nextPos)
	return int(batch)
}

// Consume hands fn the largest contiguous window of live elements, oldest
// first, up to maxBatch, and retires them (consumer only).
//
// fn is called once with a single span, or twice with two back-to-back
// spans when the window wraps the end of the arena. Consumed slots are
// cleared after fn returns so referenced objects can be collected. The
// position advances by the full window unconditionally once fn returns;
// fn must not panic.
//
// Returns the number of elements retired. Returns 0 without invoking fn
// when the ring is empty. maxBatch <= 0 means no limit (Cap()-1).
func (r *Ring[T]) Consume(maxBatch int, fn func(span []T)) int {
	pos := r.consumer.LoadRelaxed()
	r.cachedProducer = r.producer.LoadAcquire()

	avail := r.cachedProducer + r.cap - pos
	if avail >= r.cap {
		avail -= r.cap
	}
	batch := avail
	if maxBatch > 0 && uint64(maxBatch) < batch {
		batch = uint64(maxBatch)
	}
	if batch == 0 {
		return 0
	}

	if end := pos + batch; end > r.cap {
		fn(r.nodes[pos:r.cap])
		fn(r.nodes[:end-r.cap])
		clear(r.nodes[pos:r.cap])
		clear(r.nodes[:end-r.cap])
	} else {
		fn(r.nodes[pos:end])
		clear(r.nodes[pos:end])
	}

	nextPos := pos + batch
	if nextPos >= r.cap {
		nextPos -= r.cap
	}
	r.consumer.StoreRelease(nextPos)
	return int(batch)
}

// Cap returns the arena capacity. The ring holds at most Cap()-1 elements.
func (r *Ring[T]) Cap() int {
	return int(r.cap)
}
