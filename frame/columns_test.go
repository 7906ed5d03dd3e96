package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/fukinotou/result"
)

func TestColumnKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []any
		want  kind
	}{
		{"ints", []any{int64(1), nil, int64(3)}, kindInt},
		{"mixed numbers", []any{int64(1), 2.5}, kindFloat},
		{"bools", []any{true, nil}, kindBool},
		{"strings", []any{"a", int64(1)}, kindString},
		{"all null", []any{nil, nil}, kindString},
		{"bool and number", []any{true, int64(1)}, kindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &result.Table{Columns: []string{"c"}}
			for _, c := range tt.cells {
				table.Rows = append(table.Rows, []any{c})
			}
			assert.Equal(t, tt.want, columnKind(table, 0))
		})
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()

	assert.Nil(t, scalar(nil))
	assert.Equal(t, int64(2), scalar(int64(2)))
	assert.Equal(t, `{"a":1}`, scalar(map[string]any{"a": 1}))
	assert.Equal(t, "2", text(int64(2)))
}
