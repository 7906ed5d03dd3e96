package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BaSui01/fukinotou/types"
)

// =============================================================================
// Contexts
// =============================================================================

// TestContext returns a context that times out after 30 seconds.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// CancelledContext returns a context that is already cancelled.
func CancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// =============================================================================
// Fixture files
// =============================================================================

// WriteFile creates name (which may contain subdirectories) under dir and
// returns its full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFiles creates every name -> content pair under a fresh temporary
// directory and returns the directory.
func WriteFiles(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// MustJSON encodes v, failing the test on error.
func MustJSON(t testing.TB, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %T: %v", v, err)
	}
	return string(data)
}

// =============================================================================
// Assertions
// =============================================================================

// AssertErrorCode fails the test unless err carries code. It returns the
// structured error for further checks, or nil.
func AssertErrorCode(t testing.TB, err error, code types.ErrorCode) *types.Error {
	t.Helper()
	if err == nil {
		t.Errorf("expected %s error, got nil", code)
		return nil
	}
	e, ok := types.AsError(err)
	if !ok {
		t.Errorf("expected %s error, got untyped %v", code, err)
		return nil
	}
	if e.Code != code {
		t.Errorf("expected %s error, got %s: %v", code, e.Code, err)
	}
	return e
}
