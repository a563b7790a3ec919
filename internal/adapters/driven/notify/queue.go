package notify

import (
	"sync"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driven"
)

// Ensure Queue implements the interface.
var _ driven.Notifier = (*Queue)(nil)

// Queue hands notifications to a consumer such as the TUI, in order.
// Notify never blocks and never drops; pending notifications wait in
// memory until the consumer reads them.
type Queue struct {
	mu      sync.Mutex
	pending []domain.Notification

	wake      chan struct{}
	out       chan domain.Notification
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueue creates a Queue and starts delivering to C.
func NewQueue() *Queue {
	q := &Queue{
		wake: make(chan struct{}, 1),
		out:  make(chan domain.Notification),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

// Notify implements driven.Notifier.
func (q *Queue) Notify(n domain.Notification) {
	q.mu.Lock()
	q.pending = append(q.pending, n)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// C returns the receive side of the queue. It is closed by Close.
func (q *Queue) C() <-chan domain.Notification {
	return q.out
}

// Len returns the number of notifications not yet handed to C.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops delivery. Pending notifications are discarded.
func (q *Queue) Close() {
	q.closeOnce.Do(func() { close(q.done) })
}

func (q *Queue) pump() {
	defer close(q.out)
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			select {
			case <-q.wake:
				continue
			case <-q.done:
				return
			}
		}
		n := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		select {
		case q.out <- n:
		case <-q.done:
			return
		}
	}
}
