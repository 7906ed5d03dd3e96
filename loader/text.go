package loader

import (
	"context"
	"io"
	"unicode/utf8"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/types"
)

// TextLoader loads a whole file as a string.
type TextLoader struct {
	opts options
}

// NewTextLoader creates a TextLoader. Input is UTF-8 unless WithEncoding
// says otherwise.
func NewTextLoader(opts ...Option) *TextLoader {
	return &TextLoader{opts: newOptions(opts)}
}

// Load reads the file at path.
func (l *TextLoader) Load(ctx context.Context, path string) (_ *result.Single[string], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, finish := l.opts.begin(ctx, "text", path)
	defer func() { finish(1, err) }()

	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l.opts.fileRead("text", path)

	r, err := decodeReader(f, l.opts.encoding)
	if err != nil {
		return nil, withPath(err, path)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.NewParseError(path, err)
	}
	if !utf8.Valid(data) {
		return nil, types.NewError(types.ErrParse, "file is not valid UTF-8").WithPath(path)
	}
	return result.NewSingle(path, string(data)), nil
}

// SupportedTypes returns the extensions of plain text files.
func (l *TextLoader) SupportedTypes() []string {
	return []string{".txt"}
}
