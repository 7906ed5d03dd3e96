package loader

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/BaSui01/fukinotou/types"
)

func isUTF8(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// decodeReader converts r from the named encoding to UTF-8.
func decodeReader(r io.Reader, label string) (io.Reader, error) {
	if isUTF8(label) {
		return r, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, types.NewError(types.ErrUnsupported,
			fmt.Sprintf("unknown encoding %q", label)).WithCause(err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
