package loader

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

const parquetBatch = 128

// ParquetLoader loads parquet files. Each stored row becomes one map from
// column name to value, validated as T. Null cells are left out so that
// schema defaults apply; repeated columns become lists.
type ParquetLoader[T any] struct {
	schema schema.Schema[T]
	opts   options
}

// NewParquetLoader creates a ParquetLoader validating each row with s.
func NewParquetLoader[T any](s schema.Schema[T], opts ...Option) *ParquetLoader[T] {
	return &ParquetLoader[T]{schema: s, opts: newOptions(opts)}
}

// Load reads every row of path in stored order.
func (l *ParquetLoader[T]) Load(ctx context.Context, path string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	_, finish := l.opts.begin(ctx, "parquet", path)
	defer func() { finish(len(values), err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("parquet", path)

	info, err := f.Stat()
	if err != nil {
		return nil, types.NewError(types.ErrIO, "cannot stat file").WithPath(path).WithCause(err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, types.NewParseError(path, err)
	}

	columns := parquetColumns(pf.Schema())
	reader := parquet.NewReader(pf)
	defer reader.Close()

	rows := make([]parquet.Row, parquetBatch)
	line := 0
	for {
		n, readErr := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			line++
			v, err := validateRecord(l.schema, columns.record(row), path, line)
			if err != nil {
				values = nil
				return nil, err
			}
			values = append(values, *result.NewSingle(path, v))
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			values = nil
			return nil, types.NewParseError(path, readErr).WithLine(line + 1)
		}
	}

	return result.NewCollection(path, values), nil
}

// SupportedTypes returns the parquet extension.
func (l *ParquetLoader[T]) SupportedTypes() []string {
	return []string{".parquet"}
}

type parquetColumn struct {
	name     string
	repeated bool
}

type parquetLayout []parquetColumn

func parquetColumns(s *parquet.Schema) parquetLayout {
	paths := s.Columns()
	layout := make(parquetLayout, len(paths))
	for i, p := range paths {
		layout[i].name = strings.Join(p, ".")
		if leaf, ok := s.Lookup(p...); ok {
			layout[i].repeated = leaf.MaxRepetitionLevel > 0
		}
	}
	return layout
}

// record turns one stored row into a raw record.
func (layout parquetLayout) record(row parquet.Row) map[string]any {
	raw := make(map[string]any, len(layout))
	for _, v := range row {
		idx := v.Column()
		if idx < 0 || idx >= len(layout) {
			continue
		}
		col := layout[idx]
		if col.repeated {
			list, _ := raw[col.name].([]any)
			if list == nil {
				list = []any{}
			}
			if !v.IsNull() {
				list = append(list, parquetValue(v))
			}
			raw[col.name] = list
			continue
		}
		if v.IsNull() {
			continue
		}
		raw[col.name] = parquetValue(v)
	}
	return raw
}

func parquetValue(v parquet.Value) any {
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
