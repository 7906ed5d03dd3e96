package loader

import (
	"context"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// FileLoader reads exactly one file into one validated value.
type FileLoader[T any] interface {
	// Load reads path. The returned Single carries path unchanged.
	Load(ctx context.Context, path string) (*result.Single[T], error)

	// SupportedTypes returns the file extensions this loader handles (e.g. ".json").
	SupportedTypes() []string
}

// RowLoader reads one file holding many records.
type RowLoader[T any] interface {
	// Load reads every record of path in on-disk order.
	Load(ctx context.Context, path string) (*result.Collection[T], error)

	// SupportedTypes returns the file extensions this loader handles.
	SupportedTypes() []string
}

// validateRecord runs s on raw and locates any failure at path and line.
func validateRecord[T any](s schema.Schema[T], raw any, path string, line int) (T, error) {
	v, err := s.Validate(raw)
	if err != nil {
		e := types.NewSchemaViolation(path, err)
		if line > 0 && e.Line == 0 {
			e.Line = line
		}
		return v, e
	}
	return v, nil
}

// withPath locates a path-less *types.Error at path.
func withPath(err error, path string) error {
	if e, ok := types.AsError(err); ok && e.Path == "" {
		e.Path = path
	}
	return err
}
