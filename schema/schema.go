package schema

// Schema validates and coerces a raw record into T.
//
// raw is whatever the loader decoded from the source: a map[string]any for
// CSV, parquet and SQL rows, any JSON value for JSON and JSON-Lines input.
// JSON numbers arrive as json.Number.
// Implementations return a *types.Error with code SCHEMA_VIOLATION when the
// record is rejected; other errors are wrapped into one by the loaders.
type Schema[T any] interface {
	Validate(raw any) (T, error)
}

// Func adapts an ordinary function to the Schema interface.
type Func[T any] func(raw any) (T, error)

// Validate calls f(raw).
func (f Func[T]) Validate(raw any) (T, error) {
	return f(raw)
}
