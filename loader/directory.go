package loader

import (
	"context"

	"github.com/BaSui01/fukinotou/internal/pathsearch"
	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// DirectoryLoader applies a FileLoader to every matching file of a
// directory. Files are visited in lexicographic order of their full path and
// the first failure aborts the load.
type DirectoryLoader[T any] struct {
	name       string
	file       FileLoader[T]
	extensions []string
	opts       options
}

// NewDirectoryLoader wraps file. name labels logs, spans and metrics.
// extensions is the default filter; WithExtensions overrides it and an empty
// filter selects every regular file.
func NewDirectoryLoader[T any](name string, file FileLoader[T], extensions []string, opts ...Option) *DirectoryLoader[T] {
	o := newOptions(opts)
	return &DirectoryLoader[T]{
		name:       name,
		file:       file,
		extensions: o.extensionsOr(extensions),
		opts:       o,
	}
}

// NewJSONsLoader loads every .json file of a directory, one record per file.
func NewJSONsLoader[T any](s schema.Schema[T], opts ...Option) *DirectoryLoader[T] {
	file := NewJSONLoader(s, opts...)
	return NewDirectoryLoader[T]("jsons", file, file.SupportedTypes(), opts...)
}

// NewTextFilesLoader loads every regular file of a directory as text unless
// WithExtensions narrows the selection.
func NewTextFilesLoader(opts ...Option) *DirectoryLoader[string] {
	return NewDirectoryLoader[string]("texts", NewTextLoader(opts...), nil, opts...)
}

// NewImageFilesLoader loads every image file of a directory.
func NewImageFilesLoader(opts ...Option) *DirectoryLoader[Image] {
	file := NewImageLoader(opts...)
	return NewDirectoryLoader[Image]("images", file, file.SupportedTypes(), opts...)
}

// Load reads every selected file of dir. Collection.Path is dir as given and
// each value carries its own file path.
func (l *DirectoryLoader[T]) Load(ctx context.Context, dir string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	ctx, finish := l.opts.begin(ctx, l.name, dir)
	defer func() { finish(len(values), err) }()

	if err := statDir(dir); err != nil {
		return nil, err
	}

	paths, err := pathsearch.Search(dir, pathsearch.Options{
		Extensions: l.extensions,
		Recursive:  l.opts.recursive,
	})
	if err != nil {
		return nil, types.NewError(types.ErrIO, "cannot list directory").WithPath(dir).WithCause(err)
	}

	values = make([]result.Single[T], 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			values = nil
			return nil, err
		}
		single, err := l.file.Load(ctx, p)
		if err != nil {
			values = nil
			return nil, err
		}
		values = append(values, *single)
	}

	return result.NewCollection(dir, values), nil
}

// SupportedTypes returns the extension filter; nil means every file.
func (l *DirectoryLoader[T]) SupportedTypes() []string {
	return l.extensions
}
