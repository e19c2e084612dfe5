package series

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of the Date column.
const DateLayout = "2006-01-02"

// DateHeader is the first header of every exported sheet.
const DateHeader = "Date"

// DaysPerYear is the approximate year length used for the date window.
const DaysPerYear = 365

// MaxSheetRows is the row limit of a single worksheet.
const MaxSheetRows = 1048576

// MaxYears is the longest window whose rows and header row fit on one sheet.
const MaxYears = (MaxSheetRows - 2) / DaysPerYear

// Kind is the declared data type of a column
type Kind int

const (
	KindUnknown Kind = iota
	KindInteger
	KindFloat
	KindString
)

// ParseKind maps "integer", "float" or "string" (any case) to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "integer":
		return KindInteger, true
	case "float":
		return KindFloat, true
	case "string":
		return KindString, true
	default:
		return KindUnknown, false
	}
}

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Numeric reports whether the kind is generated from a Range.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Range is a closed numeric interval.
type Range struct {
	Lo float64
	Hi float64
}

// ColumnSpec is one user-declared output column. Range is set for numeric
// kinds, Candidates for KindString.
type ColumnSpec struct {
	Name       string
	Kind       Kind
	Range      *Range
	Candidates []string
}

// Value is an int64, float64, string or nil.
type Value interface{}

// Row is one dated record with a value per column, in column order.
type Row struct {
	Date   string
	Values []Value

	columns []ColumnSpec
}

// NewRow binds values to the columns they were generated for.
func NewRow(date time.Time, columns []ColumnSpec, values []Value) Row {
	return Row{
		Date:    date.Format(DateLayout),
		Values:  values,
		columns: columns,
	}
}

// Value returns the value generated for the named column.
func (r Row) Value(name string) (Value, bool) {
	for i, c := range r.columns {
		if c.Name == name && i < len(r.Values) {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Cells returns the row as it appears in a sheet: date first.
func (r Row) Cells() []interface{} {
	cells := make([]interface{}, 0, len(r.Values)+1)
	cells = append(cells, r.Date)
	for _, v := range r.Values {
		cells = append(cells, v)
	}
	return cells
}

// Series is every generated row for one export, ascending by date.
type Series struct {
	Columns []ColumnSpec
	Start   time.Time
	End     time.Time
	Rows    []Row
}

// Headers returns "Date" followed by the column names in order.
func (s *Series) Headers() []string {
	headers := make([]string, 0, len(s.Columns)+1)
	headers = append(headers, DateHeader)
	for _, c := range s.Columns {
		headers = append(headers, c.Name)
	}
	return headers
}

// FormatValue renders a value the way a reader sees the raw cell.
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return ""
	}
}
