// Package frame exports loaded collections to table backends: a column-major
// gota DataFrame and a row-major SQL table written through gorm. Both share
// result.Flatten, so column order, the optional path column and the
// uniformity check behave identically.
package frame
