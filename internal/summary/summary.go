// Package summary describes the columns of an exported sheet.
package summary

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fakexlsx/adapters/excel"
	"fakexlsx/domain/series"

	"github.com/montanaflynn/stats"
)

// Column summarizes one non-date column.
type Column struct {
	Name    string
	Count   int
	Empty   int
	Numeric bool

	Min    float64
	Max    float64
	Mean   float64
	StdDev float64

	// Frequencies counts each distinct value of a non-numeric column.
	Frequencies map[string]int
}

// Report is the summary of a whole table.
type Report struct {
	Rows      int
	FirstDate string
	LastDate  string
	Columns   []Column
}

// Summarize computes a Column for every header except Date. A column is
// numeric when every non-empty cell parses as a number.
func Summarize(t *excel.Table) (*Report, error) {
	r := &Report{Rows: len(t.Rows)}
	if dates, ok := t.Column(series.DateHeader); ok && len(dates) > 0 {
		r.FirstDate, r.LastDate = dates[0], dates[len(dates)-1]
	}

	for _, h := range t.Headers {
		if h == series.DateHeader {
			continue
		}
		cells, _ := t.Column(h)
		col, err := summarizeColumn(h, cells)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", h, err)
		}
		r.Columns = append(r.Columns, col)
	}
	return r, nil
}

func summarizeColumn(name string, cells []string) (Column, error) {
	col := Column{Name: name, Numeric: true}
	var data stats.Float64Data
	for _, c := range cells {
		if c == "" {
			col.Empty++
			continue
		}
		col.Count++
		if f, err := strconv.ParseFloat(c, 64); err == nil {
			data = append(data, f)
		} else {
			col.Numeric = false
		}
	}

	if col.Count == 0 || !col.Numeric {
		col.Numeric = false
		col.Frequencies = make(map[string]int)
		for _, c := range cells {
			if c != "" {
				col.Frequencies[c]++
			}
		}
		return col, nil
	}

	var err error
	if col.Min, err = stats.Min(data); err != nil {
		return col, err
	}
	if col.Max, err = stats.Max(data); err != nil {
		return col, err
	}
	if col.Mean, err = stats.Mean(data); err != nil {
		return col, err
	}
	if col.StdDev, err = stats.StandardDeviation(data); err != nil {
		return col, err
	}
	return col, nil
}

// Print writes a plain-text rendering of r.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Rows: %d (%s .. %s)\n", r.Rows, r.FirstDate, r.LastDate)
	for _, c := range r.Columns {
		if c.Numeric {
			fmt.Fprintf(w, "%-20s n=%d min=%g max=%g mean=%.2f stddev=%.2f\n",
				c.Name, c.Count, c.Min, c.Max, c.Mean, c.StdDev)
			continue
		}
		keys := make([]string, 0, len(c.Frequencies))
		for k := range c.Frequencies {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%d", k, c.Frequencies[k])
		}
		fmt.Fprintf(w, "%-20s n=%d empty=%d %s\n", c.Name, c.Count, c.Empty, strings.Join(parts, " "))
	}
}
