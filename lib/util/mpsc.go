// This file implements a lock-free Multi-Producer Single-Consumer (MPSC)
// queue. In the benchmark it carries failure events from concurrently
// running workload workers (producers) to the run coordinator (consumer)
// without adding a lock to the reporting path.
//
// Guarantees:
//
//   - Lock-free writes: any number of workers may Push() concurrently
//   - Unbounded size: limited only by available memory
//   - Single consumer: one goroutine reads the Recv() channel
//   - No strict FIFO across producers: ordering between concurrent
//     producers is determined by which Push completes first

package util

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// qnode is a single element of the queue's linked list
type qnode[T any] struct {
	value *T
	next  atomic.Pointer[qnode[T]]
}

// MPSC is a lock-free multi-producer single-consumer queue backed by a
// linked list with atomic append.
type MPSC[T any] struct {
	head     atomic.Pointer[qnode[T]]
	tail     atomic.Pointer[qnode[T]]
	out      chan *T
	consumer sync.WaitGroup
	closed   atomic.Bool

	// condition variable so the consumer can sleep while the queue is empty
	mu   sync.Mutex
	cond *sync.Cond
}

// NewMPSC creates a queue and starts its consumer goroutine.
func NewMPSC[T any]() *MPSC[T] {
	// sentinel node so head/tail are never nil
	sentinel := &qnode[T]{}

	q := &MPSC[T]{
		out: make(chan *T),
	}
	q.cond = sync.NewCond(&q.mu)

	q.head.Store(sentinel)
	q.tail.Store(sentinel)

	q.consumer.Add(1)
	go q.consume()

	return q
}

// Push adds an item to the queue. Returns false if the item is nil or
// the queue has been closed.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (q *MPSC[T]) Push(value *T) bool {
	if value == nil {
		return false
	}
	if q.closed.Load() {
		return false
	}

	newNode := &qnode[T]{value: value}

	var backoff uint8
	for {
		tailNode := q.tail.Load()

		next := tailNode.next.Load()
		if next == nil {
			// the tail has no successor yet, try to append our node
			if tailNode.next.CompareAndSwap(nil, newNode) {
				// appended; the tail CAS may lose to a helping producer,
				// which is fine because the tail still advances
				q.tail.CompareAndSwap(tailNode, newNode)

				// wake the consumer
				q.cond.Signal()

				return true
			}
		} else {
			// another producer appended but has not advanced the tail yet
			q.tail.CompareAndSwap(tailNode, next)
		}

		// exponential backoff under contention: spin first, yield later
		if backoff < 10 {
			backoff++
			for i := 0; i < 1<<backoff; i++ {
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

// consume moves items from the linked list to the output channel and
// frees consumed nodes.
func (q *MPSC[T]) consume() {
	defer q.consumer.Done()
	defer close(q.out)

	for {
		hasItems := false

		for {
			head := q.head.Load()
			next := head.next.Load()
			if next == nil {
				break
			}

			hasItems = true
			value := next.value

			// advance head, releasing the consumed node
			q.head.Store(next)

			q.out <- value

			next.value = nil
		}

		if !hasItems && q.closed.Load() {
			return
		}

		if !hasItems {
			q.mu.Lock()
			// re-check under the lock before sleeping
			head := q.head.Load()
			if head.next.Load() == nil && !q.closed.Load() {
				q.cond.Wait()
			}
			q.mu.Unlock()
		}
	}
}

// Recv returns the receive-only channel for consuming queued items.
// The channel is closed once Close has been called and all remaining
// items have been delivered.
func (q *MPSC[T]) Recv() <-chan *T {
	return q.out
}

// Close prevents further writes. Items already queued are still
// delivered to the consumer before the Recv channel closes.
func (q *MPSC[T]) Close() {
	q.closed.Store(true)
	q.cond.Signal()
}
