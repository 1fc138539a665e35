// Implements the ReadyQueue, which holds processes eligible for dispatch.
// Processes are enqueued on submission and re-enqueued on quantum expiry.

package sim

import (
	"fmt"
	"strings"
)

// ReadyQueue is a slice-backed double-ended queue of ready processes.
// Insertion order is dispatch order for FIFO and Round Robin; the Priority
// discipline keeps it sorted via Reorder. The block of processes is owned
// by the scheduler; callers outside the package observe it only through
// snapshots.
type ReadyQueue struct {
	queue []*Process
}

// NewReadyQueue returns an empty ready queue.
func NewReadyQueue() *ReadyQueue {
	return &ReadyQueue{}
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	rq.queue = append(rq.queue, p)
}

// Dequeue removes and returns the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	head := rq.queue[0]
	rq.queue = rq.queue[1:]
	return head
}

// Peek returns the process at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Peek() *Process {
	if len(rq.queue) == 0 {
		return nil
	}
	return rq.queue[0]
}

// Len returns the number of processes in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers within the
// sim package may iterate over it but MUST NOT append to or reslice it.
// For reordering, use Reorder() instead.
func (rq *ReadyQueue) Items() []*Process {
	return rq.queue
}

// Reorder applies fn to the queue contents, allowing in-place reordering.
// The Priority discipline is the primary consumer:
//
//	rq.Reorder(func(ps []*Process) {
//	    sort.SliceStable(ps, func(i, j int) bool { ... })
//	})
//
// fn receives the underlying slice and may sort it in-place.
// fn MUST NOT change the slice length (no append/delete).
func (rq *ReadyQueue) Reorder(fn func([]*Process)) {
	if fn == nil {
		panic("Reorder: fn must not be nil")
	}
	n := len(rq.queue)
	fn(rq.queue)
	if len(rq.queue) != n {
		panic(fmt.Sprintf("Reorder: fn changed queue length from %d to %d", n, len(rq.queue)))
	}
}

// Clear drops every queued process. Used when the scheduler is
// reconfigured mid-life.
func (rq *ReadyQueue) Clear() {
	rq.queue = nil
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.queue {
		sb.WriteString(fmt.Sprintf("P%d", p.PID))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
