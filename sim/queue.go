// Implements the ReadyQueue, which holds processes that have been admitted but not dispatched.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// ReadyQueue is an ordered sequence of processes without duplicates.
// A queue is owned by exactly one scheduler; schedulers hand out the pointer so
// that callers observe live state.
type ReadyQueue struct {
	queue []*Process
}

// Enqueue appends processes to the back of the queue, skipping any already present.
func (rq *ReadyQueue) Enqueue(procs ...*Process) {
	for _, p := range procs {
		if p == nil {
			panic("Enqueue: process must not be nil")
		}
		if rq.Contains(p) {
			continue
		}
		p.State = StateReady
		rq.queue = append(rq.queue, p)
	}
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprint(p))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of queued processes. Safe on a nil queue.
func (rq *ReadyQueue) Len() int {
	if rq == nil {
		return 0
	}
	return len(rq.queue)
}

// Contains reports whether p is queued.
func (rq *ReadyQueue) Contains(p *Process) bool {
	for _, q := range rq.queue {
		if q == p {
			return true
		}
	}
	return false
}

// Peek returns the head of the queue without removing it, or nil when empty.
func (rq *ReadyQueue) Peek() *Process {
	if rq.Len() == 0 {
		return nil
	}
	return rq.queue[0]
}

// Dequeue removes and returns the head of the queue, or nil when empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if rq.Len() == 0 {
		return nil
	}
	p := rq.queue[0]
	rq.queue[0] = nil
	rq.queue = rq.queue[1:]
	return p
}

// Remove deletes p from the queue. Returns false if p was not queued.
func (rq *ReadyQueue) Remove(p *Process) bool {
	for i, q := range rq.queue {
		if q == p {
			rq.queue = append(rq.queue[:i], rq.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage: callers MUST NOT append
// to or reslice it. Use SortBy for reordering.
func (rq *ReadyQueue) Items() []*Process {
	if rq == nil {
		return nil
	}
	return rq.queue
}

// PIDs returns the queued process ids in order.
func (rq *ReadyQueue) PIDs() []int {
	pids := make([]int, 0, rq.Len())
	for _, p := range rq.Items() {
		pids = append(pids, p.PID)
	}
	return pids
}

// SortBy reorders the queue in place with a stable sort.
func (rq *ReadyQueue) SortBy(less func(a, b *Process) bool) {
	if less == nil {
		panic("SortBy: less must not be nil")
	}
	sort.SliceStable(rq.queue, func(i, j int) bool {
		return less(rq.queue[i], rq.queue[j])
	})
}
