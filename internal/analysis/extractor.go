package analysis

// Extractor is one stage of the pipeline. Each stage reads the shared
// normalized text and appends its artifacts to the bundle; stages share no
// mutable state with each other.
type Extractor interface {
	Name() string
	Extract(t *NormalizedText, b *Bundle)
}

// Registry holds the registered extractors in registration order. The engine
// runs them in that order, which fixes the bundle's section ordering.
type Registry struct {
	order  []Extractor
	byName map[string]Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Extractor)}
}

// Register adds an extractor, keyed by its Name. Re-registering a name
// replaces the previous extractor but keeps its position.
func (r *Registry) Register(e Extractor) {
	if _, exists := r.byName[e.Name()]; !exists {
		r.order = append(r.order, e)
	} else {
		for i, cur := range r.order {
			if cur.Name() == e.Name() {
				r.order[i] = e
				break
			}
		}
	}
	r.byName[e.Name()] = e
}

// Get retrieves an extractor by name.
func (r *Registry) Get(name string) (Extractor, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// List returns the extractors in registration order.
func (r *Registry) List() []Extractor {
	out := make([]Extractor, len(r.order))
	copy(out, r.order)
	return out
}
