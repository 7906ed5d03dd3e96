package loader

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// JSONLLoader loads JSON-Lines files: one JSON value per line. Blank lines
// are skipped.
type JSONLLoader[T any] struct {
	schema schema.Schema[T]
	opts   options
}

// NewJSONLLoader creates a JSONLLoader validating each line with s.
func NewJSONLLoader[T any](s schema.Schema[T], opts ...Option) *JSONLLoader[T] {
	return &JSONLLoader[T]{schema: s, opts: newOptions(opts)}
}

// Load reads every line of path in order. The first malformed or invalid line
// fails the whole load; its 1-based line number is reported.
func (l *JSONLLoader[T]) Load(ctx context.Context, path string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	_, finish := l.opts.begin(ctx, "jsonl", path)
	defer func() { finish(len(values), err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("jsonl", path)

	r, err := decodeReader(f, l.opts.encoding)
	if err != nil {
		return nil, withPath(err, path)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, l.opts.maxLineBytes)), l.opts.maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}

		raw, err := decodeJSON(text)
		if err != nil {
			values = nil
			return nil, types.NewParseError(path, err).WithLine(line)
		}

		v, err := validateRecord(l.schema, raw, path, line)
		if err != nil {
			values = nil
			return nil, err
		}
		values = append(values, *result.NewSingle(path, v))
	}
	if err := scanner.Err(); err != nil {
		values = nil
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, types.NewError(types.ErrParse,
				fmt.Sprintf("line longer than %d bytes", l.opts.maxLineBytes)).WithPath(path).WithLine(line + 1)
		}
		return nil, types.NewError(types.ErrIO, "cannot read file").WithPath(path).WithCause(err)
	}

	return result.NewCollection(path, values), nil
}

// SupportedTypes returns the JSON-Lines extensions.
func (l *JSONLLoader[T]) SupportedTypes() []string {
	return []string{".jsonl", ".ndjson"}
}
