// Package types defines the error taxonomy shared by every fukinotou
// package.
//
// All failures surfaced by loaders, schemas and exporters are *Error values
// carrying an ErrorCode:
//
//   - NOT_FOUND: the input path does not exist
//   - INVALID_PATH: the path exists but is the wrong kind (file vs directory)
//   - IO_ERROR: reading or writing failed
//   - PARSE_ERROR: the content is malformed for its format
//   - SCHEMA_VIOLATION: a record does not satisfy the schema
//   - SCHEMA_MISMATCH: a collection cannot be exported in tabular form
//   - UNSUPPORTED: no loader handles the input
//
// Use IsErrorCode or GetErrorCode to branch on a code; both see through
// wrapping with fmt.Errorf("%w").
package types
