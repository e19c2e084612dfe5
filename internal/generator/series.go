package generator

import (
	"time"

	"fakexlsx/domain/series"
	"fakexlsx/internal"
	"fakexlsx/internal/errors"
)

// Builder assembles a daily Series ending today.
type Builder struct {
	gen    *ValueGenerator
	now    func() time.Time
	logger *internal.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger sets the builder's logger.
func WithLogger(l *internal.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a Builder drawing values from gen.
func NewBuilder(gen *ValueGenerator, opts ...Option) *Builder {
	b := &Builder{
		gen:    gen,
		now:    time.Now,
		logger: internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Window returns the first and last calendar day of a series spanning years
// approximate (365-day) years back from today. Leap days are not adjusted for.
func (b *Builder) Window(years int) (time.Time, time.Time) {
	now := b.now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -years*series.DaysPerYear)
	return start, end
}

// Build generates one Row per day from start to end inclusive, drawing one
// value per column in column order. The first generation error aborts the build.
func (b *Builder) Build(columns []series.ColumnSpec, years int) (*series.Series, error) {
	if years < 0 || years > series.MaxYears {
		return nil, errors.ConfigInvalidf("years must be between 0 and %d, got %d", series.MaxYears, years)
	}

	start, end := b.Window(years)
	cols := append([]series.ColumnSpec(nil), columns...)
	days := years*series.DaysPerYear + 1

	b.logger.Debug("building series %s..%s (%d days, %d columns)",
		start.Format(series.DateLayout), end.Format(series.DateLayout), days, len(cols))

	rows := make([]series.Row, 0, days)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		values := make([]series.Value, len(cols))
		for i, col := range cols {
			v, err := b.gen.Generate(col)
			if err != nil {
				return nil, errors.Wrapf(err, "generate %s for %s", col.Name, day.Format(series.DateLayout))
			}
			values[i] = v
		}
		rows = append(rows, series.NewRow(day, cols, values))
	}

	b.logger.Info("generated %d rows", len(rows))
	return &series.Series{
		Columns: cols,
		Start:   start,
		End:     end,
		Rows:    rows,
	}, nil
}
