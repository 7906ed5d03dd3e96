// Package testutil holds fixtures and helpers shared by the package tests:
// contexts that clean up after themselves, fixture files written into
// t.TempDir(), and assertions on error codes.
package testutil
