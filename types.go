// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringbuf

// Producer is the interface for the enqueueing side of a ring.
//
// Producer provides non-blocking, element-at-a-time enqueue. The element is
// passed by pointer to avoid copying large structs. The ring stores a copy
// of the pointed-to value, so the original can be modified after Enqueue
// returns.
//
// Exactly one goroutine may act as the producer of a given ring.
type Producer[T any] interface {
	// Enqueue adds an element to the ring (non-blocking).
	// The element is copied into the ring's arena.
	// Returns nil on success, ErrWouldBlock if the ring is full.
	Enqueue(elem *T) error
}

// Consumer is the interface for the dequeueing side of a ring.
//
// Consumer provides non-blocking, element-at-a-time dequeue. The element is
// returned by value; the vacated slot is cleared so that objects referenced
// by the element become collectable.
//
// Exactly one goroutine may act as the consumer of a given ring.
type Consumer[T any] interface {
	// Dequeue removes and returns the oldest live element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if the ring is empty.
	Dequeue() (T, error)
}

// BatchProducer is the vectored enqueueing side of a ring.
//
// The callback receives windows of vacant slots to fill in place. A batch
// that crosses the end of the arena is presented as two back-to-back spans;
// the callback must not assume contiguity across the arena boundary.
type BatchProducer[T any] interface {
	// Produce hands the callback up to maxBatch vacant slots and publishes
	// them. Returns the number of slots published; 0 when the ring is full
	// (the callback is not invoked). maxBatch <= 0 means no limit.
	Produce(maxBatch int, fn func(span []T)) int
}

// BatchConsumer is the vectored dequeueing side of a ring.
//
// The callback receives windows of live elements, oldest first, split into
// two spans when the batch wraps the arena boundary. Consumed slots are
// cleared after the callback returns.
type BatchConsumer[T any] interface {
	// Consume hands the callback up to maxBatch live elements and retires
	// them. Returns the number of elements retired; 0 when the ring is
	// empty (the callback is not invoked). maxBatch <= 0 means no limit.
	Consume(maxBatch int, fn func(span []T)) int
}
