package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := WriteFiles(t, map[string]string{
		"a.csv":      PeopleCSV,
		"sub/b.json": PersonJSON,
	})

	data, err := os.ReadFile(filepath.Join(dir, "sub", "b.json"))
	require.NoError(t, err)
	assert.Equal(t, PersonJSON, string(data))
	assert.FileExists(t, filepath.Join(dir, "a.csv"))
}

func TestContexts(t *testing.T) {
	assert.ErrorIs(t, CancelledContext().Err(), context.Canceled)

	ctx := TestContext(t)
	_, ok := ctx.Deadline()
	assert.True(t, ok)
}

func TestMustJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, MustJSON(t, map[string]int{"a": 1}))
}
