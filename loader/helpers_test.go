package loader

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/testutil"
)

type person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age,omitempty"`
}

// wideRecord holds an identifier that does not fit a float64 mantissa.
type wideRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

var personSchema = schema.MustFor[person]()

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return testutil.WriteFile(t, dir, name, content)
}

func schemaFor[T any](t *testing.T) *schema.JSONSchema[T] {
	t.Helper()
	s, err := schema.For[T]()
	require.NoError(t, err)
	return s
}
