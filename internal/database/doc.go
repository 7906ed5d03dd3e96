// Package database opens the gorm database that table loaders read from and
// the SQL export writes to. Supported drivers are sqlite (pure Go), postgres
// and mysql.
package database
