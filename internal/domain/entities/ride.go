package entities

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

const (
	DefaultRideName = "Unnamed Ride"
	DefaultMaxRider = 2
)

// Ride is the central domain entity. It owns a FIFO waiting queue and an
// append-only history of visitors who have taken the ride, and advances
// between the two one cycle at a time.
//
// A Ride is not safe for concurrent use. Whoever owns it (the service layer,
// or a CLI command) must serialize access.
//
// The operator is a non-owning reference: apart from Clone, the Ride never
// creates, copies or releases the Employee it points at.
type Ride struct {
	id         string
	name       string
	operator   *Employee
	maxRider   int
	cycleCount int

	waitingQueue []*Visitor
	history      []*Visitor

	createdAt time.Time
	updatedAt time.Time
}

// RideOption configures a Ride at construction time.
type RideOption func(*Ride)

// WithQueue seeds the waiting queue. Nil entries are dropped.
func WithQueue(visitors ...*Visitor) RideOption {
	return func(r *Ride) {
		r.waitingQueue = appendNonNil(r.waitingQueue, visitors)
	}
}

// WithHistory seeds the ride history. Nil entries are dropped.
func WithHistory(visitors ...*Visitor) RideOption {
	return func(r *Ride) {
		r.history = appendNonNil(r.history, visitors)
	}
}

// NewRide creates a Ride with zero completed cycles. A blank name becomes
// DefaultRideName and a maxRider below 1 becomes DefaultMaxRider. operator
// may be nil; RunOneCycle refuses to run until one is assigned.
func NewRide(id, name string, operator *Employee, maxRider int, opts ...RideOption) *Ride {
	if isBlank(name) {
		name = DefaultRideName
	}
	if maxRider < 1 {
		maxRider = DefaultMaxRider
	}
	now := time.Now()
	r := &Ride{
		id:        id,
		name:      name,
		operator:  operator,
		maxRider:  maxRider,
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Ride) ID() string { return r.id }

func (r *Ride) Name() string { return r.name }

// SetName renames the ride. Blank names are rejected with ErrBlankName.
func (r *Ride) SetName(name string) error {
	if isBlank(name) {
		return ErrBlankName
	}
	r.name = name
	r.touch()
	return nil
}

func (r *Ride) Operator() *Employee { return r.operator }

// SetOperator assigns the ride operator. Passing nil unassigns it.
func (r *Ride) SetOperator(operator *Employee) {
	r.operator = operator
	r.touch()
}

func (r *Ride) HasOperator() bool { return r.operator != nil }

func (r *Ride) MaxRider() int { return r.maxRider }

// SetMaxRider changes the per-cycle capacity. Values below 1 are rejected
// with ErrInvalidMaxRider and the current capacity is kept.
func (r *Ride) SetMaxRider(maxRider int) error {
	if maxRider < 1 {
		return fmt.Errorf("%w: %d (current value remains %d)", ErrInvalidMaxRider, maxRider, r.maxRider)
	}
	r.maxRider = maxRider
	r.touch()
	return nil
}

// CycleCount is the number of successful RunOneCycle calls since creation or
// the last ClearHistory.
func (r *Ride) CycleCount() int { return r.cycleCount }

func (r *Ride) CreatedAt() time.Time { return r.createdAt }

func (r *Ride) UpdatedAt() time.Time { return r.updatedAt }

// Enqueue appends v to the tail of the waiting queue.
func (r *Ride) Enqueue(v *Visitor) error {
	if v == nil {
		return ErrNilVisitor
	}
	r.waitingQueue = append(r.waitingQueue, v)
	r.touch()
	return nil
}

// DequeueOne removes the visitor at the head of the queue. ok is false when
// the queue was already empty.
func (r *Ride) DequeueOne() (v *Visitor, ok bool) {
	if len(r.waitingQueue) == 0 {
		return nil, false
	}
	v = r.waitingQueue[0]
	r.waitingQueue[0] = nil
	r.waitingQueue = r.waitingQueue[1:]
	r.touch()
	return v, true
}

func (r *Ride) QueueSize() int { return len(r.waitingQueue) }

// Queue returns a copy of the waiting queue, head first.
func (r *Ride) Queue() []*Visitor { return slices.Clone(r.waitingQueue) }

// ListQueue yields (position, visitor) pairs in service order, starting at
// position 1. Ranging over it does not modify the queue, and it can be ranged
// over any number of times.
//
// Go Learning Note: Range-over-func Iterators:
// Since Go 1.23 a function of type iter.Seq2[K, V] can be used directly in a
// for-range loop: `for pos, v := range ride.ListQueue() { ... }`. The
// iterator is lazy; nothing is copied until the loop asks for the next pair.
func (r *Ride) ListQueue() iter.Seq2[int, *Visitor] {
	return numbered(func() []*Visitor { return r.waitingQueue })
}

// ClearQueue removes every waiting visitor.
func (r *Ride) ClearQueue() {
	clear(r.waitingQueue)
	r.waitingQueue = r.waitingQueue[:0]
	r.touch()
}

// AppendToHistory records v at the tail of the history without going through
// the queue. Duplicates are allowed.
func (r *Ride) AppendToHistory(v *Visitor) error {
	if v == nil {
		return ErrNilVisitor
	}
	r.history = append(r.history, v)
	r.touch()
	return nil
}

// ContainsInHistory reports whether a visitor equal to v (same id and name)
// has taken the ride.
func (r *Ride) ContainsInHistory(v *Visitor) bool {
	if v == nil {
		return false
	}
	return slices.ContainsFunc(r.history, v.Equal)
}

func (r *Ride) HistorySize() int { return len(r.history) }

// History returns a copy of the ride history in its current order.
func (r *Ride) History() []*Visitor { return slices.Clone(r.history) }

// ListHistory yields (position, visitor) pairs in history order, starting at
// position 1. The order is insertion order until the history is sorted.
func (r *Ride) ListHistory() iter.Seq2[int, *Visitor] {
	return numbered(func() []*Visitor { return r.history })
}

// SortHistory stably sorts the history with cmp; visitors that compare equal
// keep their relative order. A nil comparator or an empty history leaves the
// history untouched and returns ErrNilComparator or ErrHistoryEmpty.
func (r *Ride) SortHistory(cmp Comparator) error {
	if cmp == nil {
		return ErrNilComparator
	}
	if len(r.history) == 0 {
		return ErrHistoryEmpty
	}
	slices.SortStableFunc(r.history, cmp)
	r.touch()
	return nil
}

// SortHistoryDefault sorts the history with CompareVisitors.
func (r *Ride) SortHistoryDefault() error {
	return r.SortHistory(CompareVisitors)
}

// ClearHistory removes every history entry and resets the cycle count.
func (r *Ride) ClearHistory() {
	clear(r.history)
	r.history = r.history[:0]
	r.cycleCount = 0
	r.touch()
}

// CycleResult describes one successful RunOneCycle.
type CycleResult struct {
	Cycle       int        `json:"cycle"`
	Riders      []*Visitor `json:"riders"`
	Remaining   int        `json:"remaining_in_queue"`
	HistorySize int        `json:"history_size"`
}

// RunOneCycle is the ride's only state transition. It moves visitors from the
// head of the queue to the tail of the history, one at a time, until maxRider
// have been moved or the queue runs out, then increments the cycle count by
// exactly one.
//
// Without an operator it fails with ErrNoOperator, and with an empty queue it
// fails with ErrQueueEmpty. In both cases nothing is changed.
func (r *Ride) RunOneCycle() (CycleResult, error) {
	if r.operator == nil {
		return CycleResult{}, &OperationError{
			Op:    "run",
			Ride:  r.name,
			Msg:   "no operator assigned, assign an operator before starting the ride",
			Err:   ErrNoOperator,
			Cause: fmt.Errorf("ride operation attempted without operator assignment (ride %q, status inactive)", r.name),
		}
	}
	if len(r.waitingQueue) == 0 {
		return CycleResult{}, &OperationError{
			Op:   "run",
			Ride: r.name,
			Msg:  "no visitors in queue, add visitors to the queue before running the ride",
			Err:  ErrQueueEmpty,
			Cause: fmt.Errorf("ride operation attempted with empty queue (ride %q, operator %q, max riders %d)",
				r.name, r.operator.Name(), r.maxRider),
		}
	}

	n := min(r.maxRider, len(r.waitingQueue))
	riders := slices.Clone(r.waitingQueue[:n])
	r.history = append(r.history, riders...)
	clear(r.waitingQueue[:n])
	r.waitingQueue = r.waitingQueue[n:]
	r.cycleCount++
	r.touch()

	return CycleResult{
		Cycle:       r.cycleCount,
		Riders:      riders,
		Remaining:   len(r.waitingQueue),
		HistorySize: len(r.history),
	}, nil
}

// Clone returns a deep copy of r: the operator and every queued and recorded
// visitor are copied, so the clone shares no mutable state with r.
func (r *Ride) Clone() *Ride {
	if r == nil {
		return nil
	}
	c := *r
	c.operator = r.operator.Clone()
	c.waitingQueue = cloneVisitors(r.waitingQueue)
	c.history = cloneVisitors(r.history)
	return &c
}

func (r *Ride) touch() {
	r.updatedAt = time.Now()
}

// numbered walks the slice returned by src at iteration time, so an iterator
// created before a mutation still sees the current contents.
func numbered(src func() []*Visitor) iter.Seq2[int, *Visitor] {
	return func(yield func(int, *Visitor) bool) {
		for i, v := range src() {
			if !yield(i+1, v) {
				return
			}
		}
	}
}

func cloneVisitors(src []*Visitor) []*Visitor {
	if src == nil {
		return nil
	}
	out := make([]*Visitor, len(src))
	for i, v := range src {
		out[i] = v.Clone()
	}
	return out
}

func appendNonNil(dst, src []*Visitor) []*Visitor {
	for _, v := range src {
		if v != nil {
			dst = append(dst, v)
		}
	}
	return dst
}
