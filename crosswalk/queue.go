package crosswalk

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const DefaultQueueSize = 64

// Queue is the FIFO between command sources and the Controller. Any number
// of goroutines may Send; exactly one Controller consumes C.
type Queue struct {
	mu      sync.Mutex
	ch      chan Command
	closed  bool
	log     logrus.FieldLogger
	metrics *Metrics
}

func NewQueue(size int, m *Metrics, log logrus.FieldLogger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Queue{ch: make(chan Command, size), log: log, metrics: m}
}

// C is the consumer end.
func (q *Queue) C() <-chan Command { return q.ch }

// Send enqueues cmd without blocking. It reports false if the command was
// dropped because the queue is full or closed.
func (q *Queue) Send(cmd Command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.log.WithField("Command", cmd).Warnln("queue closed, dropping command")
		q.metrics.drop("closed")
		return false
	}
	select {
	case q.ch <- cmd:
		return true
	default:
		q.log.WithField("Command", cmd).Warnln("queue full, dropping command")
		q.metrics.drop("full")
		return false
	}
}

// Close signals the Controller that no more commands will arrive. It is
// safe to call more than once.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}
