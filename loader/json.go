package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// JSONLoader loads a file holding one JSON value and validates it as T.
type JSONLoader[T any] struct {
	schema schema.Schema[T]
	opts   options
}

// NewJSONLoader creates a JSONLoader validating with s.
func NewJSONLoader[T any](s schema.Schema[T], opts ...Option) *JSONLoader[T] {
	return &JSONLoader[T]{schema: s, opts: newOptions(opts)}
}

// Load reads and validates the file at path.
func (l *JSONLoader[T]) Load(ctx context.Context, path string) (_ *result.Single[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, finish := l.opts.begin(ctx, "json", path)
	defer func() { finish(1, err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("json", path)

	r, err := decodeReader(f, l.opts.encoding)
	if err != nil {
		return nil, withPath(err, path)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewError(types.ErrIO, "cannot read file").WithPath(path).WithCause(err)
	}

	raw, err := decodeJSON(data)
	if err != nil {
		return nil, jsonParseError(path, data, err)
	}

	v, err := validateRecord(l.schema, raw, path, 0)
	if err != nil {
		return nil, err
	}
	return result.NewSingle(path, v), nil
}

// SupportedTypes returns the JSON extension.
func (l *JSONLoader[T]) SupportedTypes() []string {
	return []string{".json"}
}

// decodeJSON decodes data as exactly one JSON value. Numbers are kept as
// json.Number so integers wider than float64 survive until validation.
func decodeJSON(data []byte) (any, error) {
	var msg json.RawMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(msg))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// jsonParseError converts a decoding error, computing the line of a syntax
// error from its byte offset.
func jsonParseError(path string, data []byte, err error) *types.Error {
	e := types.NewParseError(path, err)
	if se, ok := err.(*json.SyntaxError); ok {
		e.Line = lineAt(data, se.Offset)
	}
	return e
}

// lineAt returns the 1-based line containing byte offset.
func lineAt(data []byte, offset int64) int {
	line := 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
		}
	}
	return line
}
