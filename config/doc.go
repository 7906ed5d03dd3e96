// Package config provides configuration management for fukinotou.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// YAML file (unknown keys are rejected, values are taken literally) and
// FUKINOTOU_* environment variables.
package config
