package frame

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/types"
)

const insertBatchSize = 500

// ToSQL exports src into table, one row per record, and returns the number
// of rows written. A missing table is created with column types inferred
// from the data; an existing one is appended to. An empty src writes
// nothing and creates nothing.
func ToSQL(ctx context.Context, db *gorm.DB, table string, src result.Exportable, includePath bool) (int64, error) {
	if table == "" {
		return 0, types.NewError(types.ErrInvalidPath, "table name is empty")
	}
	t, err := result.Flatten(src, includePath)
	if err != nil {
		return 0, err
	}
	if t.Len() == 0 {
		return 0, nil
	}
	if len(t.Columns) == 0 {
		return 0, types.NewError(types.ErrSchemaMismatch, "records have no fields to export")
	}

	kinds := make([]kind, len(t.Columns))
	for j := range t.Columns {
		kinds[j] = columnKind(t, j)
	}

	rows := make([]map[string]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			m[col] = cell(row[j], kinds[j])
		}
		rows[i] = m
	}

	var written int64
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !tx.Migrator().HasTable(table) {
			if err := tx.Exec(createTableSQL(tx, table, t)).Error; err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
		res := tx.Table(table).CreateInBatches(&rows, insertBatchSize)
		if res.Error != nil {
			return fmt.Errorf("insert rows: %w", res.Error)
		}
		written = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, types.NewError(types.ErrIO, fmt.Sprintf("cannot write table %q", table)).WithCause(err)
	}
	return written, nil
}

// createTableSQL builds a CREATE TABLE statement quoted for db's dialect.
func createTableSQL(db *gorm.DB, table string, t *result.Table) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	db.Dialector.QuoteTo(&b, table)
	b.WriteString(" (")
	for i, col := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		db.Dialector.QuoteTo(&b, col)
		b.WriteByte(' ')
		b.WriteString(sqlType(columnKind(t, i)))
	}
	b.WriteString(")")
	return b.String()
}

// cell converts v to the Go type bound for a column of kind k.
func cell(v any, k kind) any {
	switch k {
	case kindString:
		return text(v)
	case kindFloat:
		if i, ok := v.(int64); ok {
			return float64(i)
		}
	}
	return scalar(v)
}

func sqlType(k kind) string {
	switch k {
	case kindInt:
		return "BIGINT"
	case kindFloat:
		return "DOUBLE PRECISION"
	case kindBool:
		return "BOOLEAN"
	default:
		return "TEXT"
	}
}
