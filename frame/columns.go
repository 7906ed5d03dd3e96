package frame

import (
	"encoding/json"
	"fmt"

	"github.com/BaSui01/fukinotou/result"
)

// kind is the storage type inferred for one column.
type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
	kindBool
)

// columnKind picks the narrowest type holding every non-null cell of
// column idx. A column with only nulls is a string column.
func columnKind(t *result.Table, idx int) kind {
	seen := false
	allInt, allNumber, allBool := true, true, true
	for _, row := range t.Rows {
		switch row[idx].(type) {
		case nil:
			continue
		case int64:
			allBool = false
		case float64:
			allInt, allBool = false, false
		case bool:
			allInt, allNumber = false, false
		default:
			return kindString
		}
		seen = true
	}
	switch {
	case !seen:
		return kindString
	case allInt:
		return kindInt
	case allNumber:
		return kindFloat
	case allBool:
		return kindBool
	default:
		return kindString
	}
}

// scalar converts a cell to a value every backend stores natively. Objects
// and arrays become their JSON text.
func scalar(v any) any {
	switch x := v.(type) {
	case nil, string, int64, float64, bool:
		return x
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}

// text renders a cell for a string column.
func text(v any) any {
	switch x := scalar(v).(type) {
	case nil, string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
