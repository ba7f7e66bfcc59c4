package copilot

import "sync"

// Kind identifies one of the four request kinds for in-flight tracking.
type Kind string

const (
	KindChat       Kind = "chat"
	KindSuggestion Kind = "suggestion"
	KindExtraction Kind = "extraction"
	KindPlan       Kind = "plan"
)

// Inflight tracks outstanding requests per (kind, target entity). The
// orchestrator itself is stateless; suppressing duplicate concurrent
// requests of the same kind for the same target is the caller's job, and
// this type is the marker callers use. There is no timeout: a request that
// never settles leaves its marker set, so callers must pair every Begin
// with an End.
type Inflight struct {
	mu     sync.Mutex
	active map[Kind]map[string]bool
}

// NewInflight creates an empty tracker.
func NewInflight() *Inflight {
	return &Inflight{active: map[Kind]map[string]bool{}}
}

// Begin marks (kind, id) as in flight. It returns false, without marking,
// when a request of that kind is already outstanding for that target.
func (f *Inflight) Begin(kind Kind, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	byID := f.active[kind]
	if byID == nil {
		byID = map[string]bool{}
		f.active[kind] = byID
	}
	if byID[id] {
		return false
	}
	byID[id] = true
	return true
}

// End clears the marker for (kind, id).
func (f *Inflight) End(kind Kind, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.active[kind], id)
}

// Active reports whether (kind, id) is currently in flight.
func (f *Inflight) Active(kind Kind, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active[kind][id]
}
