package course

import "sync"

// Change operations
const (
	OpCreated    = "created"
	OpUpdated    = "updated"
	OpDeleted    = "deleted"
	OpEnrolled   = "enrolled"
	OpUnenrolled = "unenrolled"
	OpGraded     = "graded"
)

// ChangeEvent describes a committed mutation. Collection is the substrate key of the changed collection.
type ChangeEvent struct {
	Collection string
	Op         string
	ID         string
}

type events struct {
	lmu       sync.Mutex
	nextID    int
	listeners map[int]func(ChangeEvent)
}

// Subscribe registers fn to be called after every committed change, from the goroutine that made it.
// Calling the returned func removes the subscription.
func (e *events) Subscribe(fn func(ChangeEvent)) (cancel func()) {
	e.lmu.Lock()
	defer e.lmu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[int]func(ChangeEvent))
	}
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.lmu.Lock()
			delete(e.listeners, id)
			e.lmu.Unlock()
		})
	}
}

// emit must be called without holding the store lock.
func (e *events) emit(evt ChangeEvent) {
	e.lmu.Lock()
	fns := make([]func(ChangeEvent), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.lmu.Unlock()

	for _, fn := range fns {
		fn(evt)
	}
}
