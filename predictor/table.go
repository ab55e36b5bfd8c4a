package predictor

import (
	"errors"
	"fmt"
)

// Column names of the single-record table every model is fed with. Order matters
// for positional encodings (remote models receive rows as arrays).
const (
	ColLikes          = "likes"
	ColCommentCount   = "comment_count"
	ColCategoryID     = "category_id"
	ColChannelTitle   = "channel_title"
	ColPublishHour    = "publish_hour"
	ColDayOfWeek      = "day_of_week"
	ColEngagementRate = "engagement_rate"
)

var Columns = []string{
	ColLikes,
	ColCommentCount,
	ColCategoryID,
	ColChannelTitle,
	ColPublishHour,
	ColDayOfWeek,
	ColEngagementRate,
}

var (
	ErrSchemaMismatch = errors.New("table does not match model schema")
	ErrEmptyTable     = errors.New("table has no rows")
)

// Table is a column-named, row-oriented table. Values are int64, int, float64
// or string.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func NewTable(rows ...[]any) (Table, error) {
	if len(rows) == 0 {
		return Table{}, ErrEmptyTable
	}
	cols := make([]string, len(Columns))
	copy(cols, Columns)
	t := Table{Columns: cols, Rows: rows}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (t Table) Validate() error {
	if len(t.Columns) != len(Columns) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrSchemaMismatch, len(t.Columns), len(Columns))
	}
	for i, c := range Columns {
		if t.Columns[i] != c {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrSchemaMismatch, i, t.Columns[i], c)
		}
	}
	if len(t.Rows) == 0 {
		return ErrEmptyTable
	}
	for r, row := range t.Rows {
		if len(row) != len(Columns) {
			return fmt.Errorf("%w: row %d has %d values", ErrSchemaMismatch, r, len(row))
		}
		for i, v := range row {
			if Columns[i] == ColChannelTitle {
				if _, ok := v.(string); !ok {
					return fmt.Errorf("%w: %s must be a string, got %T", ErrSchemaMismatch, Columns[i], v)
				}
				continue
			}
			if _, err := toFloat(v); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, Columns[i], err)
			}
		}
	}
	return nil
}

func (t Table) Len() int {
	return len(t.Rows)
}

func (t Table) index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Value returns the raw value of col in row r.
func (t Table) Value(r int, col string) (any, error) {
	i := t.index(col)
	if i < 0 {
		return nil, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, col)
	}
	if r < 0 || r >= len(t.Rows) {
		return nil, fmt.Errorf("row %d out of range", r)
	}
	return t.Rows[r][i], nil
}

// Float returns the numeric value of col in row r.
func (t Table) Float(r int, col string) (float64, error) {
	v, err := t.Value(r, col)
	if err != nil {
		return 0, err
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, col, err)
	}
	return f, nil
}

// Key returns the value of col in row r as a lookup key for categorical
// encodings: strings as-is, whole numbers without a fraction.
func (t Table) Key(r int, col string) (string, error) {
	v, err := t.Value(r, col)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	f, err := toFloat(v)
	if err != nil {
		return "", err
	}
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f)), nil
	}
	return fmt.Sprintf("%g", f), nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}
