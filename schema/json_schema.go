package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/BaSui01/fukinotou/types"
)

// Option configures a JSON Schema backed validator.
type Option func(*options)

type options struct {
	strict   bool
	noCoerce bool
}

// Strict keeps unknown object members so that a closed schema rejects them.
// By default members the schema does not declare are dropped before
// validation.
func Strict() Option {
	return func(o *options) { o.strict = true }
}

// WithoutCoercion disables string to integer/number/boolean conversion.
func WithoutCoercion() Option {
	return func(o *options) { o.noCoerce = true }
}

// JSONSchema validates records against a resolved JSON Schema and decodes
// them into T with encoding/json.
type JSONSchema[T any] struct {
	schema   *jsonschema.Schema
	resolved *jsonschema.Resolved
	opts     options
}

// For infers the JSON Schema of T from its Go type. Fields without
// omitempty are required; json tags decide member names.
func For[T any](opts ...Option) (*JSONSchema[T], error) {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("schema: infer %T: %w", *new(T), err)
	}
	return newJSONSchema[T](s, opts)
}

// MustFor is like For but panics on error. Intended for package-level
// variables.
func MustFor[T any](opts ...Option) *JSONSchema[T] {
	s, err := For[T](opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromJSON builds a validator from a caller-authored JSON Schema document.
func FromJSON[T any](doc []byte, opts ...Option) (*JSONSchema[T], error) {
	var s jsonschema.Schema
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("schema: parse document: %w", err)
	}
	return newJSONSchema[T](&s, opts)
}

func newJSONSchema[T any](s *jsonschema.Schema, opts []Option) (*JSONSchema[T], error) {
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("schema: resolve: %w", err)
	}
	js := &JSONSchema[T]{schema: s, resolved: resolved}
	for _, opt := range opts {
		opt(&js.opts)
	}
	return js, nil
}

// Schema returns the underlying JSON Schema.
func (s *JSONSchema[T]) Schema() *jsonschema.Schema {
	return s.schema
}

// Validate implements Schema.
func (s *JSONSchema[T]) Validate(raw any) (T, error) {
	var out T

	instance, err := normalize(raw)
	if err != nil {
		return out, types.NewError(types.ErrSchemaViolation, "record is not JSON-compatible").WithCause(err)
	}

	if obj, ok := instance.(map[string]any); ok {
		if !s.opts.strict && closed(s.schema) {
			dropUnknown(obj, s.schema)
		}
		if !s.opts.noCoerce {
			if err := coerceObject(obj, s.schema); err != nil {
				return out, err
			}
		}
	}

	if err := s.resolved.Validate(instance); err != nil {
		return out, types.NewError(types.ErrSchemaViolation, "record failed validation").WithCause(err)
	}

	data, err := json.Marshal(instance)
	if err != nil {
		return out, types.NewError(types.ErrSchemaViolation, "record cannot be encoded").WithCause(err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, types.NewError(types.ErrSchemaViolation, "record does not fit target type").WithCause(err)
	}
	return out, nil
}

// normalize re-encodes raw so the validator only ever sees encoding/json
// shapes (map[string]any objects, []any arrays). Numbers are decoded exactly:
// integers become int64 (uint64 above that range), everything else float64.
func normalize(raw any) (any, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return exactNumbers(out), nil
}

// exactNumbers replaces every json.Number in v with int64, uint64 or float64.
func exactNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = exactNumbers(e)
		}
	case []any:
		for i, e := range x {
			x[i] = exactNumbers(e)
		}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(x.String(), 10, 64); err == nil {
			return u
		}
		f, _ := x.Float64()
		return f
	}
	return v
}

// closed reports whether s forbids members it does not declare.
func closed(s *jsonschema.Schema) bool {
	if s == nil || len(s.Properties) == 0 || s.AdditionalProperties == nil {
		return false
	}
	return s.AdditionalProperties.Not != nil
}

func dropUnknown(obj map[string]any, s *jsonschema.Schema) {
	for k := range obj {
		if _, ok := s.Properties[k]; !ok {
			delete(obj, k)
		}
	}
}
