package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/fukinotou/types"
)

type person struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type profile struct {
	Name   string         `json:"name"`
	Values []int          `json:"values,omitempty"`
	Nested map[string]any `json:"nested,omitempty"`
	Active bool           `json:"active,omitempty"`
	Score  *float64       `json:"score,omitempty"`
}

func TestFor_ValidatesJSONObject(t *testing.T) {
	t.Parallel()

	s, err := For[person]()
	require.NoError(t, err)

	got, err := s.Validate(map[string]any{"id": 1.0, "name": "John", "age": 30.0})
	require.NoError(t, err)
	assert.Equal(t, person{ID: 1, Name: "John", Age: 30}, got)
}

func TestFor_CoercesCSVStrings(t *testing.T) {
	t.Parallel()

	s := MustFor[person]()

	got, err := s.Validate(map[string]any{"id": "2", "name": "Jane", "age": " 25 "})
	require.NoError(t, err)
	assert.Equal(t, person{ID: 2, Name: "Jane", Age: 25}, got)
}

func TestFor_CoercesBooleansAndNullableNumbers(t *testing.T) {
	t.Parallel()

	s := MustFor[profile]()

	got, err := s.Validate(map[string]any{"name": "x", "active": "true", "score": "1.5"})
	require.NoError(t, err)
	assert.True(t, got.Active)
	require.NotNil(t, got.Score)
	assert.InDelta(t, 1.5, *got.Score, 1e-9)

	got, err = s.Validate(map[string]any{"name": "x", "score": ""})
	require.NoError(t, err)
	assert.Nil(t, got.Score)
}

func TestFor_RejectsUnconvertibleString(t *testing.T) {
	t.Parallel()

	s := MustFor[person]()

	_, err := s.Validate(map[string]any{"id": "one", "name": "John", "age": "30"})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
	assert.Contains(t, err.Error(), `"id"`)
}

func TestFor_MissingRequiredField(t *testing.T) {
	t.Parallel()

	s := MustFor[person]()

	_, err := s.Validate(map[string]any{"id": 1.0, "name": "John"})
	require.Error(t, err)
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
}

func TestFor_OptionalFieldsDefaultToZero(t *testing.T) {
	t.Parallel()

	s := MustFor[profile]()

	got, err := s.Validate(map[string]any{"name": "Example 1"})
	require.NoError(t, err)
	assert.Equal(t, profile{Name: "Example 1"}, got)
}

func TestFor_UnknownMembersDroppedUnlessStrict(t *testing.T) {
	t.Parallel()

	raw := func() map[string]any {
		return map[string]any{"id": 1.0, "name": "John", "age": 30.0, "extra": "ignored"}
	}

	lax := MustFor[person]()
	got, err := lax.Validate(raw())
	require.NoError(t, err)
	assert.Equal(t, "John", got.Name)

	strict := MustFor[person](Strict())
	_, err = strict.Validate(raw())
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
}

func TestFor_WithoutCoercion(t *testing.T) {
	t.Parallel()

	s := MustFor[person](WithoutCoercion())
	_, err := s.Validate(map[string]any{"id": "1", "name": "John", "age": "30"})
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
}

func TestFor_NonObjectInput(t *testing.T) {
	t.Parallel()

	s := MustFor[person]()
	_, err := s.Validate([]any{1.0, 2.0})
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
}

func TestFor_AcceptsWideIntegers(t *testing.T) {
	t.Parallel()

	s := MustFor[person]()
	got, err := s.Validate(map[string]any{"id": int64(7), "name": "n", "age": int32(40)})
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
	assert.Equal(t, 40, got.Age)
}

func TestFor_KeepsIntegersBeyondFloatPrecision(t *testing.T) {
	t.Parallel()

	type wide struct {
		ID  int64  `json:"id"`
		Max uint64 `json:"max"`
	}
	s := MustFor[wide]()

	got, err := s.Validate(map[string]any{
		"id":  int64(9007199254740993),
		"max": uint64(18446744073709551615),
	})
	require.NoError(t, err)
	assert.Equal(t, wide{ID: 9007199254740993, Max: 18446744073709551615}, got)

	got, err = s.Validate(map[string]any{"id": json.Number("9007199254740993"), "max": "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), got.ID)
}

func TestFromJSON(t *testing.T) {
	t.Parallel()

	doc := []byte(`{
		"type": "object",
		"properties": {
			"id":   {"type": "integer", "minimum": 1},
			"name": {"type": "string"}
		},
		"required": ["id", "name"]
	}`)

	s, err := FromJSON[map[string]any](doc)
	require.NoError(t, err)

	got, err := s.Validate(map[string]any{"id": "3", "name": "X"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 3.0, "name": "X"}, got)

	_, err = s.Validate(map[string]any{"id": 0.0, "name": "X"})
	assert.True(t, types.IsErrorCode(err, types.ErrSchemaViolation))
}

func TestFromJSON_BadDocument(t *testing.T) {
	t.Parallel()

	_, err := FromJSON[person]([]byte(`{"type":`))
	assert.Error(t, err)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var s Schema[string] = Func[string](func(raw any) (string, error) {
		if raw == nil {
			return "", boom
		}
		return raw.(string), nil
	})

	got, err := s.Validate("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	_, err = s.Validate(nil)
	assert.ErrorIs(t, err, boom)
}
