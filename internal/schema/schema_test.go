package schema

import (
	"os"
	"path/filepath"
	"testing"

	"fakexlsx/domain/series"
	"fakexlsx/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		in     string
		kind   series.Kind
		lo, hi float64
	}{
		{"5-5", series.KindInteger, 5, 5},
		{"1-100", series.KindInteger, 1, 100},
		{" 1 - 10 ", series.KindInteger, 1, 10},
		{"-5--1", series.KindInteger, -5, -1},
		{"-10-10", series.KindInteger, -10, 10},
		{"0.5-2.75", series.KindFloat, 0.5, 2.75},
		{"-2.5-3", series.KindFloat, -2.5, 3},
		{"1e-3-2", series.KindFloat, 0.001, 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRange(tt.in, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.lo, r.Lo)
			assert.Equal(t, tt.hi, r.Hi)
		})
	}
}

func TestParseRangeErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind series.Kind
	}{
		{"", series.KindInteger},
		{"10", series.KindInteger},
		{"-5", series.KindFloat},
		{"a-b", series.KindFloat},
		{"1.5-3", series.KindInteger},
		{"9-1", series.KindInteger},
		{"2.5-1.5", series.KindFloat},
		{"5-", series.KindInteger},
		{"nan-1", series.KindFloat},
		{"1-99999999999999999", series.KindInteger},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseRange(tt.in, tt.kind)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), "want ConfigError, got %v", err)
		})
	}
}

func TestParseCandidates(t *testing.T) {
	assert.Equal(t, []string{"Active", "Inactive"}, ParseCandidates("Active, Inactive"))
	assert.Equal(t, []string{"a", "b"}, ParseCandidates(" a ,, b ,"))
	assert.Empty(t, ParseCandidates(""))
	assert.Empty(t, ParseCandidates(" , "))
}

func TestParseColumn(t *testing.T) {
	spec, err := ParseColumn(ColumnInput{Name: " Sales ", Type: "Integer", Range: "1-10"})
	require.NoError(t, err)
	assert.Equal(t, "Sales", spec.Name)
	assert.Equal(t, series.KindInteger, spec.Kind)
	assert.Equal(t, &series.Range{Lo: 1, Hi: 10}, spec.Range)
	assert.Nil(t, spec.Candidates)

	spec, err = ParseColumn(ColumnInput{Name: "Status", Type: "STRING", List: "Active,Inactive", Range: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, series.KindString, spec.Kind)
	assert.Nil(t, spec.Range)
	assert.Equal(t, []string{"Active", "Inactive"}, spec.Candidates)

	spec, err = ParseColumn(ColumnInput{Name: "Blank", Type: "string"})
	require.NoError(t, err)
	assert.Empty(t, spec.Candidates)
}

func TestParseColumnErrors(t *testing.T) {
	inputs := []ColumnInput{
		{Name: "", Type: "integer", Range: "1-2"},
		{Name: "Date", Type: "integer", Range: "1-2"},
		{Name: "X", Type: "boolean"},
		{Name: "X", Type: "float"},
	}
	for _, in := range inputs {
		_, err := ParseColumn(in)
		require.Error(t, err, "%+v", in)
		assert.True(t, errors.IsConfigError(err))
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(Input{
		Years: 2,
		Columns: []ColumnInput{
			{Name: "Temp", Type: "float", Range: "-10.5-35"},
			{Name: "Status", Type: "string", List: "Active,Inactive"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Years)
	require.Len(t, s.Columns, 2)
	assert.Equal(t, "Temp", s.Columns[0].Name)
	assert.Equal(t, "Status", s.Columns[1].Name)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(Input{Years: -1, Columns: []ColumnInput{{Name: "X", Type: "integer", Range: "1-2"}}})
	assert.True(t, errors.IsConfigError(err))

	_, err = Parse(Input{Years: 1})
	assert.True(t, errors.IsConfigError(err))

	_, err = Parse(Input{Years: 1, Columns: []ColumnInput{
		{Name: "X", Type: "integer", Range: "1-2"},
		{Name: "X", Type: "float", Range: "1-2"},
	}})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseYearsBoundary(t *testing.T) {
	cols := []ColumnInput{{Name: "X", Type: "integer", Range: "1-2"}}

	s, err := Parse(Input{Years: series.MaxYears, Columns: cols})
	require.NoError(t, err)
	assert.Equal(t, series.MaxYears, s.Years)

	_, err = Parse(Input{Years: series.MaxYears + 1, Columns: cols})
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))

	_, err = Parse(Input{Years: 100000000, Columns: cols})
	assert.True(t, errors.IsConfigError(err))
}

func TestMaxYearsFitsOnOneSheet(t *testing.T) {
	rows := series.MaxYears*series.DaysPerYear + 1
	assert.LessOrEqual(t, rows+1, series.MaxSheetRows)
	assert.Greater(t, rows+series.DaysPerYear+1, series.MaxSheetRows)
}

func TestParseColumnFlag(t *testing.T) {
	in, err := ParseColumnFlag("Sales:integer:1-100")
	require.NoError(t, err)
	assert.Equal(t, ColumnInput{Name: "Sales", Type: "integer", Range: "1-100"}, in)

	in, err = ParseColumnFlag("Status:String:Active, Inactive")
	require.NoError(t, err)
	assert.Equal(t, ColumnInput{Name: "Status", Type: "String", List: "Active, Inactive"}, in)

	in, err = ParseColumnFlag("Note:string")
	require.NoError(t, err)
	assert.Equal(t, ColumnInput{Name: "Note", Type: "string"}, in)

	_, err = ParseColumnFlag("Sales")
	assert.True(t, errors.IsConfigError(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	body := `years: 1
columns:
  - name: Visitors
    type: integer
    range: 100-500
  - name: Conversion
    type: Float
    range: 0.01-0.25
  - name: Channel
    type: string
    list: Organic, Paid, Referral
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Years)
	require.Len(t, s.Columns, 3)
	assert.Equal(t, series.KindFloat, s.Columns[1].Kind)
	assert.Equal(t, []string{"Organic", "Paid", "Referral"}, s.Columns[2].Candidates)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsIOError(err))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years: [oops"), 0o644))
	_, err = LoadFile(path)
	assert.True(t, errors.IsConfigError(err))
}
