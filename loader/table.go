package loader

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/schema"
	"github.com/BaSui01/fukinotou/types"
)

// TableLoader reads every row of a relational table through gorm. Load takes
// a table name instead of a file path; results carry that name as their path.
type TableLoader[T any] struct {
	db     *gorm.DB
	schema schema.Schema[T]
	opts   options
}

// NewTableLoader creates a TableLoader over db validating each row with s.
func NewTableLoader[T any](db *gorm.DB, s schema.Schema[T], opts ...Option) *TableLoader[T] {
	return &TableLoader[T]{db: db, schema: s, opts: newOptions(opts)}
}

// Load reads every row of table.
func (l *TableLoader[T]) Load(ctx context.Context, table string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	ctx, finish := l.opts.begin(ctx, "table", table)
	defer func() { finish(len(values), err) }()

	values, err = readTable(ctx, l.db, table, table, l.schema)
	if err != nil {
		values = nil
		return nil, err
	}
	return result.NewCollection(table, values), nil
}

// SupportedTypes returns nil: tables are not files.
func (l *TableLoader[T]) SupportedTypes() []string {
	return nil
}

// SQLiteLoader reads one table of a SQLite database file.
type SQLiteLoader[T any] struct {
	schema schema.Schema[T]
	opts   options
}

// NewSQLiteLoader creates a SQLiteLoader validating each row with s. The
// table defaults to "records"; see WithTable.
func NewSQLiteLoader[T any](s schema.Schema[T], opts ...Option) *SQLiteLoader[T] {
	return &SQLiteLoader[T]{schema: s, opts: newOptions(opts)}
}

// Load opens the database file at path and reads the configured table.
func (l *SQLiteLoader[T]) Load(ctx context.Context, path string) (_ *result.Collection[T], err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var values []result.Single[T]
	ctx, finish := l.opts.begin(ctx, "sqlite", path)
	defer func() { finish(len(values), err) }()

	// The driver creates missing files, so the path is checked first.
	if err := statFile(path); err != nil {
		return nil, err
	}
	l.opts.fileRead("sqlite", path)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, types.NewError(types.ErrIO, "cannot open database").WithPath(path).WithCause(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	values, err = readTable(ctx, db, l.opts.table, path, l.schema)
	if err != nil {
		values = nil
		return nil, err
	}
	return result.NewCollection(path, values), nil
}

// SupportedTypes returns the SQLite database extensions.
func (l *SQLiteLoader[T]) SupportedTypes() []string {
	return []string{".db", ".sqlite", ".sqlite3"}
}

// readTable selects every row of table and validates it. path is reported
// on results and errors.
func readTable[T any](ctx context.Context, db *gorm.DB, table, path string, s schema.Schema[T]) ([]result.Single[T], error) {
	var rows []map[string]interface{}
	if err := db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, types.NewError(types.ErrIO,
			fmt.Sprintf("cannot read table %q", table)).WithPath(path).WithCause(err)
	}

	values := make([]result.Single[T], 0, len(rows))
	for i, row := range rows {
		for k, v := range row {
			switch b := v.(type) {
			case nil:
				// NULL columns are left out so schema defaults apply.
				delete(row, k)
			case []byte:
				row[k] = string(b)
			}
		}
		v, err := validateRecord(s, row, path, i+1)
		if err != nil {
			return nil, err
		}
		values = append(values, *result.NewSingle(path, v))
	}
	return values, nil
}
