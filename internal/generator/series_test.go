package generator

import (
	"testing"
	"time"

	"fakexlsx/domain/series"
	"fakexlsx/internal/errors"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 17, 45, 0, 0, time.Local)
	}
}

func TestBuildZeroYearsIsToday(t *testing.T) {
	b := NewBuilder(NewSeededValueGenerator(1), WithClock(fixedClock(2026, time.October, 19)))

	s, err := b.Build([]series.ColumnSpec{intColumn(5, 5)}, 0)
	require.NoError(t, err)

	require.Len(t, s.Rows, 1)
	assert.Equal(t, "2026-10-19", s.Rows[0].Date)
	v, ok := s.Rows[0].Value("X")
	require.True(t, ok)
	assert.Equal(t, int64(5), v)
	assert.Equal(t, []string{"Date", "X"}, s.Headers())
}

func TestBuildOneYearWindow(t *testing.T) {
	b := NewBuilder(NewSeededValueGenerator(1), WithClock(fixedClock(2025, time.March, 1)))

	s, err := b.Build([]series.ColumnSpec{intColumn(0, 9)}, 1)
	require.NoError(t, err)

	require.Len(t, s.Rows, 366)
	assert.Equal(t, "2024-03-01", s.Rows[0].Date)
	assert.Equal(t, "2025-03-01", s.Rows[len(s.Rows)-1].Date)
	for i := 1; i < len(s.Rows); i++ {
		assert.Greater(t, s.Rows[i].Date, s.Rows[i-1].Date)
	}
}

func TestBuildLeapYearIsNotAdjusted(t *testing.T) {
	b := NewBuilder(NewSeededValueGenerator(1), WithClock(fixedClock(2024, time.December, 31)))

	start, end := b.Window(1)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestBuildStatusColumnOverThreeDays(t *testing.T) {
	status := series.ColumnSpec{Name: "Status", Kind: series.KindString, Candidates: []string{"Active", "Inactive"}}
	b := NewBuilder(NewSeededValueGenerator(8), WithClock(fixedClock(2026, time.January, 3)))

	s, err := b.Build([]series.ColumnSpec{status}, 1)
	require.NoError(t, err)

	last3 := s.Rows[len(s.Rows)-3:]
	assert.Equal(t, "2026-01-01", last3[0].Date)
	for _, row := range last3 {
		v, ok := row.Value("Status")
		require.True(t, ok)
		assert.Contains(t, []string{"Active", "Inactive"}, v)
	}
}

func TestBuildKeepsColumnOrder(t *testing.T) {
	cols := []series.ColumnSpec{
		{Name: "B", Kind: series.KindString, Candidates: []string{"b"}},
		intColumn(1, 1),
		{Name: "A", Kind: series.KindString, Candidates: []string{"a"}},
	}
	b := NewBuilder(NewSeededValueGenerator(1), WithClock(fixedClock(2026, time.May, 5)))

	s, err := b.Build(cols, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "B", "X", "A"}, s.Headers())
	assert.Equal(t, []series.Value{"b", int64(1), "a"}, s.Rows[0].Values)
}

func TestBuildAbortsOnGenerationError(t *testing.T) {
	cols := []series.ColumnSpec{intColumn(1, 2), {Name: "Broken", Kind: series.KindFloat}}
	b := NewBuilder(NewSeededValueGenerator(1), WithClock(fixedClock(2026, time.May, 5)))

	s, err := b.Build(cols, 1)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, errors.IsConfigError(err))
	assert.Contains(t, err.Error(), "Broken")
}

func TestBuildRejectsNegativeYears(t *testing.T) {
	b := NewBuilder(NewSeededValueGenerator(1))

	_, err := b.Build([]series.ColumnSpec{intColumn(1, 2)}, -1)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestBuildRejectsYearsBeyondOneSheet(t *testing.T) {
	b := NewBuilder(NewSeededValueGenerator(1))

	for _, years := range []int{series.MaxYears + 1, 100000000} {
		_, err := b.Build([]series.ColumnSpec{intColumn(1, 2)}, years)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err), "years=%d", years)
	}
}

func TestBuildSameSeedSameSeries(t *testing.T) {
	cols := []series.ColumnSpec{floatColumn(0, 1), intColumn(-50, 50)}
	clock := fixedClock(2026, time.July, 1)

	a, err := NewBuilder(NewSeededValueGenerator(42), WithClock(clock)).Build(cols, 1)
	require.NoError(t, err)
	b, err := NewBuilder(NewSeededValueGenerator(42), WithClock(clock)).Build(cols, 1)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
}

func TestProperty_SeriesLengthAndOrdering(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30
	properties := gopter.NewProperties(parameters)

	properties.Property("series has 365*years+1 strictly ascending days", prop.ForAll(
		func(years int, dayOffset int) bool {
			today := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, dayOffset)
			b := NewBuilder(NewSeededValueGenerator(1), WithClock(func() time.Time { return today }))
			s, err := b.Build([]series.ColumnSpec{intColumn(0, 1)}, years)
			if err != nil || len(s.Rows) != years*series.DaysPerYear+1 {
				return false
			}
			for i := 1; i < len(s.Rows); i++ {
				prev, _ := time.Parse(series.DateLayout, s.Rows[i-1].Date)
				cur, _ := time.Parse(series.DateLayout, s.Rows[i].Date)
				if !cur.Equal(prev.AddDate(0, 0, 1)) {
					return false
				}
			}
			return s.Rows[len(s.Rows)-1].Date == today.Format(series.DateLayout)
		},
		gen.IntRange(0, 3),
		gen.IntRange(0, 20000),
	))

	properties.TestingRun(t)
}
