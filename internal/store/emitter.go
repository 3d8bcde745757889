package store

// MultiEmitter fans every event out to each wrapped emitter in order.
type MultiEmitter struct {
	emitters []EventEmitter
}

// NewMultiEmitter combines emitters into one. Nil entries are skipped.
func NewMultiEmitter(emitters ...EventEmitter) *MultiEmitter {
	out := make([]EventEmitter, 0, len(emitters))
	for _, e := range emitters {
		if e != nil {
			out = append(out, e)
		}
	}
	return &MultiEmitter{emitters: out}
}

// Add appends another emitter after construction. The query engine is
// built on top of the store, so it can only be attached once the store
// exists; call this during startup, before the store emits anything.
func (m *MultiEmitter) Add(e EventEmitter) {
	if e != nil {
		m.emitters = append(m.emitters, e)
	}
}

func (m *MultiEmitter) Emit(event any) {
	for _, e := range m.emitters {
		e.Emit(event)
	}
}
