package loader

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/fukinotou/internal/metrics"
)

const (
	defaultMaxLineBytes = 4 * 1024 * 1024
	defaultTable        = "records"
	tracerName          = "github.com/BaSui01/fukinotou/loader"
)

// Option configures a loader.
type Option func(*options)

type options struct {
	logger         *zap.Logger
	metrics        *metrics.Collector
	tracerProvider trace.TracerProvider

	encoding     string
	recursive    bool
	extensions   []string
	extensionSet bool
	delimiter    rune
	lazyQuotes   bool
	maxLineBytes int
	table        string
}

func newOptions(opts []Option) options {
	o := options{
		delimiter:    ',',
		maxLineBytes: defaultMaxLineBytes,
		table:        defaultTable,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	return o
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics records every Load on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithTracerProvider sets the provider spans are started from. Defaults to
// the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithEncoding declares the character encoding of text input. Any WHATWG
// label is accepted ("shift_jis", "latin1", "utf-16le", ...). Empty means
// UTF-8.
func WithEncoding(label string) Option {
	return func(o *options) { o.encoding = label }
}

// WithRecursive makes directory loaders walk subdirectories.
func WithRecursive(recursive bool) Option {
	return func(o *options) { o.recursive = recursive }
}

// WithExtensions replaces the extension filter of a directory loader. An
// empty list selects every regular file.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
		o.extensionSet = true
	}
}

// WithCSVDelimiter sets the CSV field separator.
func WithCSVDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// WithLazyQuotes tolerates bare quotes in CSV fields.
func WithLazyQuotes(lazy bool) Option {
	return func(o *options) { o.lazyQuotes = lazy }
}

// WithMaxLineBytes bounds the length of a single JSON-Lines line.
func WithMaxLineBytes(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLineBytes = n
		}
	}
}

// WithTable sets the table read by the SQLite file loader.
func WithTable(name string) Option {
	return func(o *options) {
		if name != "" {
			o.table = name
		}
	}
}

// extensionsOr returns the configured extension filter, or def when none was
// set.
func (o *options) extensionsOr(def []string) []string {
	if o.extensionSet {
		return o.extensions
	}
	return def
}
