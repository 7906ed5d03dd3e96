package result

// Single pairs one validated value with the file it was parsed from.
type Single[T any] struct {
	// Path is the exact file Value came from, as handed to the loader.
	Path  string `json:"path"`
	Value T      `json:"value"`
}

// NewSingle creates a Single.
func NewSingle[T any](path string, value T) *Single[T] {
	return &Single[T]{Path: path, Value: value}
}

// Collection is an ordered sequence of Single results together with the
// directory (or file, for row loaders) they were read from.
//
// Values are ordered by full path for directory loads and by on-disk position
// for row loads.
type Collection[T any] struct {
	Path   string      `json:"path"`
	Values []Single[T] `json:"values"`
}

// NewCollection creates a Collection. A nil values slice is normalised to an
// empty one so that empty loads never return a nil sequence.
func NewCollection[T any](path string, values []Single[T]) *Collection[T] {
	if values == nil {
		values = []Single[T]{}
	}
	return &Collection[T]{Path: path, Values: values}
}

// Len returns the number of values in the collection.
func (c *Collection[T]) Len() int {
	return len(c.Values)
}

// Records returns the bare validated values in order.
func (c *Collection[T]) Records() []T {
	out := make([]T, len(c.Values))
	for i := range c.Values {
		out[i] = c.Values[i].Value
	}
	return out
}

// Paths returns the source path of every value in order.
func (c *Collection[T]) Paths() []string {
	out := make([]string, len(c.Values))
	for i := range c.Values {
		out[i] = c.Values[i].Path
	}
	return out
}
