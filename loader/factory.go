package loader

import (
	"unicode/utf8"

	"github.com/BaSui01/fukinotou/config"
)

// DirectoryKind selects the extension list a directory loader takes from
// configuration.
type DirectoryKind string

// Directory kinds.
const (
	DirectoryJSON  DirectoryKind = "json"
	DirectoryText  DirectoryKind = "text"
	DirectoryImage DirectoryKind = "image"
)

// OptionsFromConfig converts the shared loader settings into options.
func OptionsFromConfig(cfg config.LoaderConfig) []Option {
	opts := []Option{
		WithRecursive(cfg.Recursive),
		WithEncoding(cfg.Encoding),
		WithLazyQuotes(cfg.CSVLazyQuotes),
		WithMaxLineBytes(cfg.MaxLineBytes),
		WithTable(cfg.SQLiteTable),
	}
	if r, _ := utf8.DecodeRuneInString(cfg.CSVDelimiter); r != utf8.RuneError {
		opts = append(opts, WithCSVDelimiter(r))
	}
	return opts
}

// ExtensionsFromConfig returns the extension filter configured for kind.
func ExtensionsFromConfig(cfg config.LoaderConfig, kind DirectoryKind) Option {
	switch kind {
	case DirectoryJSON:
		return WithExtensions(cfg.JSONExtensions...)
	case DirectoryImage:
		return WithExtensions(cfg.ImageExtensions...)
	default:
		return WithExtensions(cfg.TextExtensions...)
	}
}
