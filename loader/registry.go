package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BaSui01/fukinotou/internal/pathsearch"
	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// Registry routes Load calls to a RowLoader by file extension.
type Registry[T any] struct {
	mu      sync.RWMutex
	loaders map[string]RowLoader[T] // extension (lowercase, with dot) -> loader
	opts    options
}

// NewRegistry creates a registry pre-populated with the built-in row loaders
// (CSV, JSON-Lines, parquet, SQLite) and the JSON file loader, all validating
// with s.
func NewRegistry[T any](s schema.Schema[T], opts ...Option) *Registry[T] {
	r := &Registry[T]{
		loaders: make(map[string]RowLoader[T]),
		opts:    newOptions(opts),
	}

	builtins := []RowLoader[T]{
		NewCSVLoader(s, opts...),
		NewJSONLLoader(s, opts...),
		NewParquetLoader(s, opts...),
		NewSQLiteLoader(s, opts...),
		AsRows[T](NewJSONLoader(s, opts...)),
	}
	for _, l := range builtins {
		for _, ext := range l.SupportedTypes() {
			r.loaders[strings.ToLower(ext)] = l
		}
	}

	return r
}

// Register adds or replaces the loader for ext. A missing leading dot is
// added.
func (r *Registry[T]) Register(ext string, l RowLoader[T]) {
	exts := pathsearch.NormalizeExtensions([]string{ext})
	if len(exts) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[exts[0]] = l
}

// Load reads path with the loader registered for its extension. A directory
// is loaded file by file, in path order, skipping files no loader handles;
// the result then carries the directory as its path.
func (r *Registry[T]) Load(ctx context.Context, path string) (*result.Collection[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, statError(path, err)
	}
	if info.IsDir() {
		return r.loadDir(ctx, path)
	}

	l, err := r.lookup(path)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, path)
}

func (r *Registry[T]) loadDir(ctx context.Context, dir string) (_ *result.Collection[T], err error) {
	values := []result.Single[T]{}
	ctx, finish := r.opts.begin(ctx, "registry", dir)
	defer func() { finish(len(values), err) }()

	paths, err := pathsearch.Search(dir, pathsearch.Options{
		Extensions: r.SupportedTypes(),
		Recursive:  r.opts.recursive,
	})
	if err != nil {
		return nil, types.NewError(types.ErrIO, "cannot list directory").WithPath(dir).WithCause(err)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			values = nil
			return nil, err
		}
		l, err := r.lookup(p)
		if err != nil {
			values = nil
			return nil, err
		}
		c, err := l.Load(ctx, p)
		if err != nil {
			values = nil
			return nil, err
		}
		values = append(values, c.Values...)
	}
	return result.NewCollection(dir, values), nil
}

func (r *Registry[T]) lookup(path string) (RowLoader[T], error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, types.NewError(types.ErrUnsupported, "cannot determine file type (no extension)").WithPath(path)
	}

	r.mu.RLock()
	l, ok := r.loaders[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, types.NewError(types.ErrUnsupported,
			fmt.Sprintf("no loader registered for extension %q", ext)).WithPath(path)
	}
	return l, nil
}

// SupportedTypes returns all registered extensions, sorted.
func (r *Registry[T]) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// singleRows adapts a FileLoader to RowLoader: the file is one row.
type singleRows[T any] struct {
	file FileLoader[T]
}

// AsRows adapts a FileLoader so that each file yields a one-element
// collection.
func AsRows[T any](file FileLoader[T]) RowLoader[T] {
	return singleRows[T]{file: file}
}

func (a singleRows[T]) Load(ctx context.Context, path string) (*result.Collection[T], error) {
	single, err := a.file.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.NewCollection(path, []result.Single[T]{*single}), nil
}

func (a singleRows[T]) SupportedTypes() []string {
	return a.file.SupportedTypes()
}
