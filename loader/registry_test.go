package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fukinotou/types"
)

// ============================================================
// Registry Tests
// ============================================================

func TestNewRegistry_HasBuiltinLoaders(t *testing.T) {
	t.Parallel()

	r := NewRegistry(personSchema)
	exts := r.SupportedTypes()

	for _, ext := range []string{".csv", ".json", ".jsonl", ".ndjson", ".parquet", ".db", ".sqlite"} {
		assert.Contains(t, exts, ext)
	}
	assert.IsNonDecreasing(t, exts)
}

func TestRegistry_Register_CustomExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "people.psv", "id|name\n5|Pipe\n")

	r := NewRegistry(personSchema)
	r.Register("PSV", NewCSVLoader(personSchema, WithCSVDelimiter('|')))
	assert.Contains(t, r.SupportedTypes(), ".psv")

	got, err := r.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []person{{ID: 5, Name: "Pipe"}}, got.Records())
}

func TestRegistry_Load_ByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := writeFile(t, dir, "a.CSV", "id,name\n1,A\n2,B\n")
	jsonPath := writeFile(t, dir, "b.json", `{"id": 3, "name": "C"}`)

	r := NewRegistry(personSchema)

	got, err := r.Load(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())

	got, err = r.Load(context.Background(), jsonPath)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, got.Path)
	assert.Equal(t, []person{{ID: 3, Name: "C"}}, got.Records())
}

func TestRegistry_Load_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "id,name\n1,A\n2,B\n")
	writeFile(t, dir, "b.jsonl", "{\"id\":3,\"name\":\"C\"}\n")
	writeFile(t, dir, "c.txt", "skipped")

	got, err := NewRegistry(personSchema).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got.Path)
	assert.Equal(t, []int{1, 2, 3}, []int{got.Values[0].Value.ID, got.Values[1].Value.ID, got.Values[2].Value.ID})
	assert.Equal(t, filepath.Join(dir, "b.jsonl"), got.Values[2].Path)
}

func TestRegistry_Load_NoExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "noextension", "x")

	_, err := NewRegistry(personSchema).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrUnsupported))
	assert.Contains(t, err.Error(), "no extension")
}

func TestRegistry_Load_UnknownExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "file.xyz", "x")

	_, err := NewRegistry(personSchema).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrUnsupported))
	assert.Contains(t, err.Error(), "no loader registered")
}

func TestRegistry_Load_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(personSchema).Load(context.Background(), filepath.Join(t.TempDir(), "x.csv"))
	assert.True(t, types.IsErrorCode(err, types.ErrNotFound))
}
