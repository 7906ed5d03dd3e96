package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/BaSui01/fukinotou/types"
)

// coerceObject converts string members to the scalar type their property
// declares. Text formats such as CSV hand every cell over as a string; this
// gives them the same lax treatment JSON numbers and booleans get.
func coerceObject(obj map[string]any, s *jsonschema.Schema) error {
	if s == nil {
		return nil
	}
	for name, v := range obj {
		str, ok := v.(string)
		if !ok {
			continue
		}
		prop, ok := s.Properties[name]
		if !ok || prop == nil {
			continue
		}
		out, err := coerceString(str, declaredTypes(prop))
		if err != nil {
			return types.NewError(types.ErrSchemaViolation,
				fmt.Sprintf("field %q: %v", name, err))
		}
		obj[name] = out
	}
	return nil
}

func declaredTypes(s *jsonschema.Schema) []string {
	if s.Type != "" {
		return []string{s.Type}
	}
	return s.Types
}

// coerceString converts s to the first declared scalar type it parses as.
// Strings are left alone when the property accepts strings.
func coerceString(s string, declared []string) (any, error) {
	if len(declared) == 0 || slices.Contains(declared, "string") {
		return s, nil
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" && slices.Contains(declared, "null") {
		return nil, nil
	}

	for _, t := range declared {
		switch t {
		case "integer":
			if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				return i, nil
			}
			// "30.0" is still an integer in JSON Schema terms.
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil && f == float64(int64(f)) {
				return int64(f), nil
			}
		case "number":
			if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return f, nil
			}
		case "boolean":
			if b, err := strconv.ParseBool(trimmed); err == nil {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("cannot convert %q to %s", s, strings.Join(declared, " or "))
}
