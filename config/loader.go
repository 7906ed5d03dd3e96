// =============================================================================
// fukinotou configuration loader
// =============================================================================
// Unified configuration loading: YAML file + environment overrides.
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("fukinotou.yaml").
//	    WithEnvPrefix("FUKINOTOU").
//	    Load()
//
// Precedence: defaults -> YAML file -> environment variables
// =============================================================================
package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Core configuration
// =============================================================================

// Config is the complete configuration.
type Config struct {
	// Loader settings shared by every file loader
	Loader LoaderConfig `yaml:"loader" env:"LOADER"`

	// Database used by table loaders and the SQL export
	Database DatabaseConfig `yaml:"database" env:"DATABASE"`

	// Log settings
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics settings
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`

	// Telemetry (tracing) settings
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// LoaderConfig configures file loading.
type LoaderConfig struct {
	// Recursive makes directory loaders descend into subdirectories
	Recursive bool `yaml:"recursive" env:"RECURSIVE"`
	// Encoding of text input (CSV, JSON-Lines, text); any WHATWG label
	Encoding string `yaml:"encoding" env:"ENCODING"`
	// CSVDelimiter is the single-character CSV field separator
	CSVDelimiter string `yaml:"csv_delimiter" env:"CSV_DELIMITER"`
	// CSVLazyQuotes tolerates bare quotes inside CSV fields
	CSVLazyQuotes bool `yaml:"csv_lazy_quotes" env:"CSV_LAZY_QUOTES"`
	// MaxLineBytes bounds a single JSON-Lines line
	MaxLineBytes int `yaml:"max_line_bytes" env:"MAX_LINE_BYTES"`
	// JSONExtensions selected by the JSON directory loader
	JSONExtensions []string `yaml:"json_extensions" env:"JSON_EXTENSIONS"`
	// TextExtensions selected by the text directory loader; empty = all files
	TextExtensions []string `yaml:"text_extensions" env:"TEXT_EXTENSIONS"`
	// ImageExtensions selected by the image directory loader
	ImageExtensions []string `yaml:"image_extensions" env:"IMAGE_EXTENSIONS"`
	// SQLiteTable is the table read by the SQLite file loader
	SQLiteTable string `yaml:"sqlite_table" env:"SQLITE_TABLE"`
}

// DatabaseConfig configures the optional relational source/sink.
type DatabaseConfig struct {
	// Driver: sqlite, postgres, mysql
	Driver string `yaml:"driver" env:"DRIVER"`
	// DSN passed verbatim to the driver; for sqlite a file path or ":memory:"
	DSN string `yaml:"dsn" env:"DSN"`
	// MaxOpenConns for the underlying pool
	MaxOpenConns int `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	// ConnMaxLifetime for the underlying pool
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// Format: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// OutputPaths for zap
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// EnableCaller adds caller information
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// EnableStacktrace adds stack traces at error level
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled registers the loader collector
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// Namespace prefixes every metric name
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	// Enabled installs an SDK tracer provider
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// OTLPEndpoint of the collector (gRPC)
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	// ServiceName reported on spans
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
	// SampleRate in [0, 1]
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// =============================================================================
// Loader
// =============================================================================

// Loader loads configuration (builder style).
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader creates a configuration loader.
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "FUKINOTOU",
		validators: []func(*Config) error{validate},
	}
}

// WithConfigPath sets the YAML file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator adds a configuration validator.
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load loads the configuration.
// Precedence: defaults -> YAML file -> environment variables.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile reads the YAML file. A missing file keeps the defaults.
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv walks struct fields recursively following env tags.
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// comma separated string slices
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// validate rejects settings the loaders cannot honour.
func validate(cfg *Config) error {
	if n := len([]rune(cfg.Loader.CSVDelimiter)); n != 1 {
		return fmt.Errorf("loader.csv_delimiter must be a single character, got %q", cfg.Loader.CSVDelimiter)
	}
	if cfg.Loader.MaxLineBytes <= 0 {
		return fmt.Errorf("loader.max_line_bytes must be positive")
	}
	switch cfg.Database.Driver {
	case "", "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	if cfg.Telemetry.SampleRate < 0 || cfg.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be within [0, 1]")
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// MustLoad loads the configuration and panics on failure.
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
