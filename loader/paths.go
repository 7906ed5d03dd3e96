package loader

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BaSui01/fukinotou/types"
)

// statFile checks that path exists and is not a directory.
func statFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return statError(path, err)
	}
	if info.IsDir() {
		return types.NewInvalidPathError(path, "input path is a directory")
	}
	return nil
}

// statDir checks that path exists and is a directory.
func statDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return statError(path, err)
	}
	if !info.IsDir() {
		return types.NewInvalidPathError(path, "input path is a file")
	}
	return nil
}

// openFile opens a file that statFile already accepted.
func openFile(path string) (*os.File, error) {
	if err := statFile(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, statError(path, err)
	}
	return f, nil
}

func statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return types.NewNotFoundError(path, err)
	}
	return types.NewError(types.ErrIO, "cannot access path").WithPath(path).WithCause(err)
}
