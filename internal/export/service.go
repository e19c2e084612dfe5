package export

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"fakexlsx/adapters/excel"
	"fakexlsx/internal"
	"fakexlsx/internal/errors"
	"fakexlsx/internal/generator"
	"fakexlsx/internal/schema"
)

// Request is one export: a validated schema and where to put it.
type Request struct {
	Schema *schema.Schema
	Path   string
	Sheet  string
	// Seed fixes the random source; zero seeds from the clock.
	Seed int64
}

// Result describes a written file.
type Result struct {
	Path    string
	Format  string
	Rows    int
	Columns int
	Seed    int64
}

// Message is the confirmation shown to the user.
func (r *Result) Message() string {
	return fmt.Sprintf("Fake data saved to %s", r.Path)
}

// Exporter builds a series in memory and writes it once.
type Exporter struct {
	logger *internal.Logger
	now    func() time.Time
}

// NewExporter creates an exporter. A nil logger uses internal.DefaultLogger.
func NewExporter(logger *internal.Logger) *Exporter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Exporter{logger: logger, now: time.Now}
}

// WithClock replaces time.Now for the date window and clock seeding.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Export generates the full series and then writes it. Nothing is written if
// generation fails.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	if req.Schema == nil {
		return nil, errors.ConfigInvalid("schema is required")
	}
	if req.Path == "" {
		return nil, errors.ConfigInvalid("output path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := e.ResolveSeed(req.Seed)
	builder := generator.NewBuilder(
		generator.NewValueGenerator(rand.New(rand.NewSource(seed))),
		generator.WithClock(e.now),
		generator.WithLogger(e.logger),
	)

	s, err := builder.Build(req.Schema.Columns, req.Schema.Years)
	if err != nil {
		e.logger.Error("series generation failed: %v", err)
		return nil, errors.Wrap(err, "generate series")
	}

	path := excel.ResolvePath(req.Path)
	if err := excel.Write(path, s, req.Sheet); err != nil {
		e.logger.Error("writing %s failed: %v", path, err)
		return nil, errors.Wrap(err, "write output")
	}

	res := &Result{
		Path:    path,
		Format:  excel.FormatOf(path),
		Rows:    len(s.Rows),
		Columns: len(s.Columns),
		Seed:    seed,
	}
	e.logger.Info("wrote %d rows x %d columns to %s (seed %d)", res.Rows, res.Columns, res.Path, seed)
	return res, nil
}

// ResolveSeed returns seed, or a clock-derived seed when seed is zero.
func (e *Exporter) ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return e.now().UnixNano()
}
