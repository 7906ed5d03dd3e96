package result

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/BaSui01/fukinotou/types"
)

// PathColumn is the name of the column added when the source path is exported.
const PathColumn = "path"

// ValueColumn is the single column used for records that are not JSON objects
// (plain text, numbers, arrays).
const ValueColumn = "value"

// Row is one flattened record: its field names in declaration order, the
// matching values, and the path of the file it came from.
type Row struct {
	Path    string
	Columns []string
	Values  []any
}

// Exportable is implemented by result types that can be flattened into a
// table. Each implementation supplies its own row flattening; Flatten and the
// frame backends share the rest.
type Exportable interface {
	Rows() ([]Row, error)
}

// Table is the row-major, backend-neutral form of an exported collection.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns every value of the named column, or nil if there is no such
// column.
func (t *Table) Column(name string) []any {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Rows flattens every value of the collection. Values are encoded with
// encoding/json, so struct tags decide the column names. When T is a struct
// every row carries all of its JSON fields, including omitempty fields a
// record left out, which become nil cells.
func (c *Collection[T]) Rows() ([]Row, error) {
	declared := jsonFields(reflect.TypeFor[T]())
	rows := make([]Row, 0, len(c.Values))
	for i := range c.Values {
		row, err := flattenValue(c.Values[i].Path, c.Values[i].Value, declared)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ToTable exports the collection to a Table. See Flatten.
func (c *Collection[T]) ToTable(includePath bool) (*Table, error) {
	return Flatten(c, includePath)
}

// Flatten builds a Table from src. Every row must carry the same field set as
// the first one; the first row's column order wins. With includePath a trailing
// "path" column holds each row's source path.
func Flatten(src Exportable, includePath bool) (*Table, error) {
	rows, err := src.Rows()
	if err != nil {
		return nil, err
	}

	table := &Table{Rows: make([][]any, 0, len(rows))}
	if len(rows) == 0 {
		return table, nil
	}

	columns := rows[0].Columns
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}
	if includePath {
		if _, clash := index[PathColumn]; clash {
			return nil, types.NewError(types.ErrSchemaMismatch,
				"record already has a \"path\" field; cannot add the path column").WithPath(rows[0].Path)
		}
	}

	for n, row := range rows {
		if len(row.Columns) != len(columns) {
			return nil, mismatch(n, row, columns)
		}
		out := make([]any, len(columns), len(columns)+1)
		for i, c := range row.Columns {
			pos, ok := index[c]
			if !ok {
				return nil, mismatch(n, row, columns)
			}
			out[pos] = row.Values[i]
		}
		if includePath {
			out = append(out, row.Path)
		}
		table.Rows = append(table.Rows, out)
	}

	table.Columns = append(table.Columns, columns...)
	if includePath {
		table.Columns = append(table.Columns, PathColumn)
	}
	return table, nil
}

func mismatch(n int, row Row, want []string) error {
	return types.NewError(types.ErrSchemaMismatch,
		fmt.Sprintf("row %d has fields %v, expected %v", n, row.Columns, want)).WithPath(row.Path)
}

// flattenValue encodes v and walks the result in document order so that struct
// field order is kept as column order. Names in declared always become
// columns, in that order; members outside it follow in document order.
func flattenValue(path string, v any, declared []string) (Row, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Row{}, types.NewError(types.ErrSchemaMismatch, "record cannot be encoded").
			WithPath(path).WithCause(err)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return Row{Path: path, Columns: []string{ValueColumn}, Values: []any{cellValue(doc)}}, nil
	}

	row := Row{Path: path}
	if len(declared) == 0 {
		doc.ForEach(func(key, value gjson.Result) bool {
			row.Columns = append(row.Columns, key.String())
			row.Values = append(row.Values, cellValue(value))
			return true
		})
		return row, nil
	}

	members := make(map[string]gjson.Result)
	var extra []string
	known := make(map[string]bool, len(declared))
	for _, name := range declared {
		known[name] = true
	}
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		members[name] = value
		if !known[name] {
			extra = append(extra, name)
		}
		return true
	})

	for _, name := range append(declared[:len(declared):len(declared)], extra...) {
		row.Columns = append(row.Columns, name)
		if value, ok := members[name]; ok {
			row.Values = append(row.Values, cellValue(value))
		} else {
			row.Values = append(row.Values, nil)
		}
	}
	return row, nil
}

var marshalerType = reflect.TypeFor[json.Marshaler]()

// jsonFields lists the member names encoding/json produces for struct type t,
// in encoding order. It returns nil when t is not a struct, or encodes
// itself, since the members are then only known per value.
func jsonFields(t reflect.Type) []string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType) {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	collectFields(t, seen, &names)
	return names
}

func collectFields(t reflect.Type, seen map[string]bool, names *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectFields(ft, seen, names)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if !seen[name] {
			seen[name] = true
			*names = append(*names, name)
		}
	}
}

// cellValue maps a JSON value onto a Go cell value. Integral numbers stay
// int64 so integer columns survive the trip.
func cellValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return v.Bool()
	case gjson.String:
		return v.Str
	case gjson.Number:
		if i, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return i
		}
		return v.Num
	default:
		return v.Value()
	}
}
