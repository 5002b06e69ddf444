// FILE: lixenwraith/sawlog/queue.go
package sawlog

import "sync"

type queueNode struct {
	rec  Record
	next *queueNode
}

// queue is an unbounded FIFO shared by many producers and one consumer.
// Only the list mutex is ever taken by producers, so enqueueing never waits on I/O.
type queue struct {
	mu     sync.Mutex
	head   *queueNode
	tail   *queueNode
	length int
	closed bool

	// wake holds at most one pending signal for the single consumer
	wake chan struct{}
}

func newQueue() *queue {
	return &queue{wake: make(chan struct{}, 1)}
}

// push appends rec and signals the consumer.
// It returns false, leaving the queue unchanged, once the queue is closed.
func (q *queue) push(rec Record) bool {
	n := &queueNode{rec: rec}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.length++
	q.mu.Unlock()

	q.signal()
	return true
}

// signal leaves a wake pending for the consumer unless one already is
func (q *queue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop removes the head record; ok is false when the queue is empty
func (q *queue) pop() (rec Record, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.head
	if n == nil {
		return Record{}, false
	}
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.length--
	return n.rec, true
}

// close stops further pushes; records already queued stay poppable
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.length
}
