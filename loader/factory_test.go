package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BaSui01/fukinotou/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultLoaderConfig()
	cfg.Recursive = true
	cfg.Encoding = "shift_jis"
	cfg.CSVDelimiter = "\t"
	cfg.CSVLazyQuotes = true
	cfg.MaxLineBytes = 1024
	cfg.SQLiteTable = "people"

	o := newOptions(OptionsFromConfig(cfg))
	assert.True(t, o.recursive)
	assert.Equal(t, "shift_jis", o.encoding)
	assert.Equal(t, '\t', o.delimiter)
	assert.True(t, o.lazyQuotes)
	assert.Equal(t, 1024, o.maxLineBytes)
	assert.Equal(t, "people", o.table)
}

func TestOptionsFromConfig_Defaults(t *testing.T) {
	t.Parallel()

	o := newOptions(OptionsFromConfig(config.DefaultLoaderConfig()))
	assert.False(t, o.recursive)
	assert.Equal(t, ',', o.delimiter)
	assert.Equal(t, defaultMaxLineBytes, o.maxLineBytes)
	assert.Equal(t, defaultTable, o.table)
}

func TestExtensionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultLoaderConfig()

	json := newOptions([]Option{ExtensionsFromConfig(cfg, DirectoryJSON)})
	assert.Equal(t, []string{".json"}, json.extensionsOr(nil))

	img := newOptions([]Option{ExtensionsFromConfig(cfg, DirectoryImage)})
	assert.Contains(t, img.extensionsOr(nil), ".webp")

	text := newOptions([]Option{ExtensionsFromConfig(cfg, DirectoryText)})
	assert.Empty(t, text.extensionsOr([]string{".txt"}))
}
