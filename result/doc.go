// Package result holds the values produced by the loaders: Single pairs one
// validated record with its source file, Collection keeps an ordered sequence
// of them together with the directory or file that was read.
//
// Collections can be flattened into a row-major Table:
//
//	table, err := people.ToTable(true) // adds a trailing "path" column
//
// The frame package turns the same rows into a gota DataFrame or a SQL table.
package result
