package frame

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/BaSui01/fukinotou/result"
	"github.com/BaSui01/fukinotou/types"
)

// ToDataFrame exports src as a column-major DataFrame with one row per
// record. Integer, float and boolean columns keep their type; everything
// else is a string column. Nulls become NaN elements.
func ToDataFrame(src result.Exportable, includePath bool) (dataframe.DataFrame, error) {
	table, err := result.Flatten(src, includePath)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if table.Len() == 0 {
		return dataframe.DataFrame{}, nil
	}
	if len(table.Columns) == 0 {
		return dataframe.DataFrame{}, types.NewError(types.ErrSchemaMismatch, "records have no fields to export")
	}

	columns := make([]series.Series, len(table.Columns))
	for i, name := range table.Columns {
		columns[i] = toSeries(table, i, name)
	}

	df := dataframe.New(columns...)
	if df.Err != nil {
		return dataframe.DataFrame{}, types.NewError(types.ErrSchemaMismatch, "cannot build data frame").WithCause(df.Err)
	}
	return df, nil
}

func toSeries(t *result.Table, idx int, name string) series.Series {
	values := make([]interface{}, len(t.Rows))
	switch columnKind(t, idx) {
	case kindInt:
		for i, row := range t.Rows {
			if v, ok := row[idx].(int64); ok {
				values[i] = int(v)
			}
		}
		return series.New(values, series.Int, name)
	case kindFloat:
		for i, row := range t.Rows {
			switch v := row[idx].(type) {
			case int64:
				values[i] = float64(v)
			case float64:
				values[i] = v
			}
		}
		return series.New(values, series.Float, name)
	case kindBool:
		for i, row := range t.Rows {
			values[i] = row[idx]
		}
		return series.New(values, series.Bool, name)
	default:
		for i, row := range t.Rows {
			values[i] = text(row[idx])
		}
		return series.New(values, series.String, name)
	}
}
