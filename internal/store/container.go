package store

import "sync"

// Ticket identifies one fetch or mutation against a container. Tickets are
// issued in increasing order per container.
type Ticket struct {
	seq uint64
}

// State is a copy of a container's contents.
type State[T any] struct {
	Items   []T    `json:"items"`
	Current *T     `json:"current"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Container mirrors one backend collection plus an optional current
// selection. A completion carrying a ticket older than the last applied
// one is dropped, so an overlapping slow response never overwrites a
// newer one. Loading stays set while any newer ticket is outstanding.
type Container[T any] struct {
	mu      sync.Mutex
	idOf    func(T) int64
	items   []T
	current *T
	err     string
	issued  uint64
	applied uint64
}

func NewContainer[T any](idOf func(T) int64) *Container[T] {
	return &Container[T]{idOf: idOf, items: []T{}}
}

func (c *Container[T]) Begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	c.err = ""
	return Ticket{seq: c.issued}
}

// Update applies fn to the contents if t is not stale and reports whether
// it ran.
func (c *Container[T]) Update(t Ticket, fn func(items []T, current *T) ([]T, *T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settle(t) {
		return false
	}
	c.err = ""
	c.items, c.current = fn(c.items, c.current)
	if c.items == nil {
		c.items = []T{}
	}
	return true
}

func (c *Container[T]) ReplaceAll(t Ticket, items []T) bool {
	return c.Update(t, func(_ []T, current *T) ([]T, *T) {
		return append([]T{}, items...), current
	})
}

func (c *Container[T]) SetCurrent(t Ticket, item T) bool {
	return c.Update(t, func(items []T, _ *T) ([]T, *T) {
		return items, &item
	})
}

func (c *Container[T]) Prepend(t Ticket, item T) bool {
	return c.Update(t, func(items []T, current *T) ([]T, *T) {
		return append([]T{item}, items...), current
	})
}

func (c *Container[T]) Append(t Ticket, item T) bool {
	return c.Update(t, func(items []T, current *T) ([]T, *T) {
		return append(items, item), current
	})
}

// Replace swaps the item with the same id in the collection and in the
// current selection.
func (c *Container[T]) Replace(t Ticket, item T) bool {
	return c.Update(t, func(items []T, current *T) ([]T, *T) {
		return c.replace(items, current, item)
	})
}

func (c *Container[T]) Remove(t Ticket, id int64) bool {
	return c.Update(t, func(items []T, current *T) ([]T, *T) {
		kept := make([]T, 0, len(items))
		for _, it := range items {
			if c.idOf(it) != id {
				kept = append(kept, it)
			}
		}
		if current != nil && c.idOf(*current) == id {
			current = nil
		}
		return kept, current
	})
}

// Fail records message and leaves the contents untouched.
func (c *Container[T]) Fail(t Ticket, message string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.settle(t) {
		return false
	}
	c.err = message
	return true
}

// Patch replaces an item by id outside the ticket sequence. It never
// touches the loading flag.
func (c *Container[T]) Patch(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = ""
	c.items, c.current = c.replace(c.items, c.current, item)
}

func (c *Container[T]) SetError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = message
}

func (c *Container[T]) ClearError() {
	c.SetError("")
}

func (c *Container[T]) ClearCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// Reset empties the collection and the current selection.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []T{}
	c.current = nil
}

func (c *Container[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T{}, c.items...)
}

func (c *Container[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		var zero T
		return zero, false
	}
	return *c.current, true
}

func (c *Container[T]) Find(id int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.idOf(*c.current) == id {
		return *c.current, true
	}
	for _, it := range c.items {
		if c.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Container[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied < c.issued
}

func (c *Container[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Container[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State[T]{
		Items:   append([]T{}, c.items...),
		Loading: c.applied < c.issued,
		Error:   c.err,
	}
	if c.current != nil {
		cur := *c.current
		s.Current = &cur
	}
	return s
}

func (c *Container[T]) settle(t Ticket) bool {
	if t.seq <= c.applied {
		return false
	}
	c.applied = t.seq
	return true
}

func (c *Container[T]) replace(items []T, current *T, item T) ([]T, *T) {
	id := c.idOf(item)
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if c.idOf(out[i]) == id {
			out[i] = item
		}
	}
	if current != nil && c.idOf(*current) == id {
		current = &item
	}
	return out, current
}
