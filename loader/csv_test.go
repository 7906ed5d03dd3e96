package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fukinotou/testutil"
	"github.com/BaSui01/fukinotou/types"
)

// ============================================================
// CSVLoader Tests
// ============================================================

func TestCSVLoader_Load(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", testutil.PeopleCSV)

	got, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got.Path)
	assert.Equal(t, []person{
		{ID: 1, Name: "John", Age: 30},
		{ID: 2, Name: "Jane", Age: 25},
	}, got.Records())
	for _, v := range got.Values {
		assert.Equal(t, path, v.Path)
	}
}

func TestCSVLoader_HeaderOnly(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "header.csv", testutil.PeopleHeaderOnlyCSV)

	got, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.NoError(t, err)
	assert.NotNil(t, got.Values)
	assert.Equal(t, 0, got.Len())
}

func TestCSVLoader_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "empty.csv", "")

	got, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestCSVLoader_ShortAndLongRows(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ragged.csv", "id,name,age\n1,John\n2,Jane,25,extra\n")

	got, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []person{
		{ID: 1, Name: "John"},
		{ID: 2, Name: "Jane", Age: 25},
	}, got.Records())
}

func TestCSVLoader_InvalidRowAbortsWithLine(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.csv", testutil.PeopleInvalidCSV)

	_, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	e := testutil.AssertErrorCode(t, err, types.ErrSchemaViolation)
	require.NotNil(t, e)
	assert.Equal(t, path, e.Path)
	assert.Equal(t, 3, e.Line)
}

func TestCSVLoader_QuoteErrorIsParseError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "quote.csv", "id,name\n1,\"Jo\"hn\"\n")

	_, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrParse))

	e, _ := types.AsError(err)
	assert.Equal(t, 2, e.Line)
}

func TestCSVLoader_LazyQuotes(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "quote.csv", "id,name\n1,Jo\"hn\n")

	got, err := NewCSVLoader(personSchema, WithLazyQuotes(true)).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `Jo"hn`, got.Values[0].Value.Name)
}

func TestCSVLoader_Delimiter(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "people.csv", "id;name\n7;Semi\n")

	got, err := NewCSVLoader(personSchema, WithCSVDelimiter(';')).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, person{ID: 7, Name: "Semi"}, got.Values[0].Value)
}

func TestCSVLoader_ByteOrderMark(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bom.csv", "\ufeffid,name\n1,A\n")

	got, err := NewCSVLoader(personSchema).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Values[0].Value.ID)
}

func TestCSVLoader_ShiftJIS(t *testing.T) {
	t.Parallel()

	// "id,name\n1,ふき\n" with the name in Shift_JIS.
	path := writeFile(t, t.TempDir(), "sjis.csv", "id,name\n1,\x82\xd3\x82\xab\n")

	got, err := NewCSVLoader(personSchema, WithEncoding("shift_jis")).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "ふき", got.Values[0].Value.Name)
}
