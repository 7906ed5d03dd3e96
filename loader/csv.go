package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// CSVLoader loads CSV files. The first record is the header; every later
// record becomes one map from header name to cell text, validated as T.
//
// Short records leave their missing trailing fields out so that schema
// defaults apply. Fields beyond the header are ignored.
type CSVLoader[T any] struct {
	schema schema.Schema[T]
	opts   options
}

// NewCSVLoader creates a CSVLoader validating each row with s.
func NewCSVLoader[T any](s schema.Schema[T], opts ...Option) *CSVLoader[T] {
	return &CSVLoader[T]{schema: s, opts: newOptions(opts)}
}

// Load reads every data row of path in order.
func (l *CSVLoader[T]) Load(ctx context.Context, path string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	_, finish := l.opts.begin(ctx, "csv", path)
	defer func() { finish(len(values), err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("csv", path)

	r, err := decodeReader(f, l.opts.encoding)
	if err != nil {
		return nil, withPath(err, path)
	}

	reader := csv.NewReader(r)
	reader.Comma = l.opts.delimiter
	reader.LazyQuotes = l.opts.lazyQuotes
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result.NewCollection[T](path, nil), nil
	}
	if err != nil {
		return nil, csvError(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			values = nil
			return nil, csvError(path, err)
		}
		line, _ := reader.FieldPos(0)

		raw := make(map[string]any, len(header))
		for i, name := range header {
			if i >= len(record) {
				break
			}
			raw[name] = record[i]
		}

		v, err := validateRecord(l.schema, raw, path, line)
		if err != nil {
			values = nil
			return nil, err
		}
		values = append(values, *result.NewSingle(path, v))
	}

	return result.NewCollection(path, values), nil
}

// SupportedTypes returns the CSV extensions.
func (l *CSVLoader[T]) SupportedTypes() []string {
	return []string{".csv"}
}

func csvError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return types.NewParseError(path, err).WithLine(pe.Line)
	}
	return types.NewError(types.ErrIO, "cannot read file").WithPath(path).WithCause(err)
}
