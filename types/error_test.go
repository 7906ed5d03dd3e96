package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrParse, "bad line").
		WithCause(root).
		WithPath("data.jsonl").
		WithLine(3)

	assert.Equal(t, ErrParse, GetErrorCode(err))
	assert.True(t, errors.Is(err, root))
	assert.Equal(t, "[PARSE_ERROR] bad line (data.jsonl:3): root", err.Error())
}

func TestError_CodeSurvivesWrapping(t *testing.T) {
	t.Parallel()

	inner := NewNotFoundError("/missing.json", nil)
	wrapped := fmt.Errorf("jsons loader: %w", inner)

	assert.True(t, IsErrorCode(wrapped, ErrNotFound))
	assert.False(t, IsErrorCode(wrapped, ErrParse))

	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "/missing.json", e.Path)
}

func TestGetErrorCode_PlainError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(nil))
}

func TestNewSchemaViolation_KeepsExistingViolation(t *testing.T) {
	t.Parallel()

	orig := NewError(ErrSchemaViolation, "age: expected integer").WithLine(2)
	got := NewSchemaViolation("people.csv", orig)

	assert.Equal(t, ErrSchemaViolation, got.Code)
	assert.Equal(t, "age: expected integer", got.Message)
	assert.Equal(t, "people.csv", got.Path)
	assert.Equal(t, 2, got.Line)
	assert.Empty(t, orig.Path, "original error must not be mutated")
}

func TestNewSchemaViolation_WrapsForeignError(t *testing.T) {
	t.Parallel()

	cause := errors.New("missing field id")
	got := NewSchemaViolation("a.json", cause)

	assert.Equal(t, ErrSchemaViolation, got.Code)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, "a.json", got.Path)
}
