// Package schema turns raw form input into validated column specifications.
//
// Validation happens here, once, when the configuration is created. A Schema
// that parsed successfully never fails to generate.
package schema

import (
	"math"
	"os"
	"strconv"
	"strings"

	"fakexlsx/domain/series"
	"fakexlsx/internal"
	"fakexlsx/internal/errors"

	"gopkg.in/yaml.v3"
)

// maxExactInt is the largest integer bound that survives a float64 round trip.
const maxExactInt = 1 << 53

// ColumnInput is one column as the user typed it.
type ColumnInput struct {
	Name  string `yaml:"name" json:"name"`
	Type  string `yaml:"type" json:"type"`
	Range string `yaml:"range,omitempty" json:"range,omitempty"`
	List  string `yaml:"list,omitempty" json:"list,omitempty"`
}

// Input is the raw form: a number of years and the value columns.
type Input struct {
	Years   int           `yaml:"years" json:"years"`
	Columns []ColumnInput `yaml:"columns" json:"columns"`
}

// Schema is a validated Input.
type Schema struct {
	Years   int
	Columns []series.ColumnSpec
}

// Parse validates in and converts every column.
func Parse(in Input) (*Schema, error) {
	if err := ValidateYears(in.Years); err != nil {
		return nil, err
	}
	if len(in.Columns) == 0 {
		return nil, errors.ConfigInvalid("at least one column is required")
	}

	seen := make(map[string]bool, len(in.Columns))
	cols := make([]series.ColumnSpec, 0, len(in.Columns))
	for i, ci := range in.Columns {
		spec, err := ParseColumn(ci)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i+1)
		}
		if seen[spec.Name] {
			return nil, errors.ConfigInvalidf("column %d: duplicate name %q", i+1, spec.Name)
		}
		seen[spec.Name] = true
		cols = append(cols, spec)
	}

	return &Schema{Years: in.Years, Columns: cols}, nil
}

// ValidateYears accepts 0..series.MaxYears.
func ValidateYears(years int) error {
	if years < 0 {
		return errors.ConfigInvalidf("years must not be negative, got %d", years)
	}
	if years > series.MaxYears {
		return errors.ConfigInvalidf("years must be at most %d to fit on one sheet, got %d", series.MaxYears, years)
	}
	return nil
}

// ParseColumn converts a single column. Kind names are case-insensitive.
func ParseColumn(in ColumnInput) (series.ColumnSpec, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return series.ColumnSpec{}, errors.ConfigInvalid("name is required")
	}
	if strings.EqualFold(name, series.DateHeader) {
		return series.ColumnSpec{}, errors.ConfigInvalidf("name %q is reserved for the date column", name)
	}

	kind, ok := series.ParseKind(in.Type)
	if !ok {
		return series.ColumnSpec{}, errors.ConfigInvalidf("%s: unknown data type %q (want integer, float or string)", name, in.Type)
	}

	spec := series.ColumnSpec{Name: name, Kind: kind}
	switch kind {
	case series.KindInteger, series.KindFloat:
		r, err := ParseRange(in.Range, kind)
		if err != nil {
			return series.ColumnSpec{}, errors.Wrapf(err, "%s", name)
		}
		spec.Range = &r
	case series.KindString:
		spec.Candidates = ParseCandidates(in.List)
		if len(spec.Candidates) == 0 {
			internal.DefaultLogger.Warn("column %s has no candidates; its cells will be empty", name)
		}
	}
	return spec, nil
}

// ParseRange parses "<lo>-<hi>". Either bound may carry a leading minus sign.
func ParseRange(s string, kind series.Kind) (series.Range, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return series.Range{}, errors.ConfigInvalid("range is required (start-end)")
	}

	sep := rangeSeparator(s)
	if sep < 0 {
		return series.Range{}, errors.ConfigInvalidf("range %q is missing the '-' separator", s)
	}
	loStr, hiStr := s[:sep], s[sep+1:]

	var lo, hi float64
	var err error
	if kind == series.KindInteger {
		lo, err = parseIntBound(loStr)
		if err == nil {
			hi, err = parseIntBound(hiStr)
		}
	} else {
		lo, err = parseFloatBound(loStr)
		if err == nil {
			hi, err = parseFloatBound(hiStr)
		}
	}
	if err != nil {
		return series.Range{}, errors.Wrapf(err, "range %q", s)
	}
	if lo > hi {
		return series.Range{}, errors.ConfigInvalidf("range %q: start is greater than end", s)
	}
	return series.Range{Lo: lo, Hi: hi}, nil
}

// rangeSeparator finds the '-' between the bounds, skipping sign and
// exponent minuses.
func rangeSeparator(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '-' {
			continue
		}
		switch s[i-1] {
		case '-', 'e', 'E':
			continue
		}
		return i
	}
	return -1
}

func parseIntBound(s string) (float64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalidf("%q is not an integer", s)
	}
	if n > maxExactInt || n < -maxExactInt {
		return 0, errors.ConfigInvalidf("%d is outside the supported integer range", n)
	}
	return float64(n), nil
}

func parseFloatBound(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.ConfigInvalidf("%q is not a number", s)
	}
	return f, nil
}

// ParseCandidates splits a comma-separated list, trimming whitespace and
// dropping blank entries.
func ParseCandidates(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseColumnFlag parses the command line form "name:type:range-or-list".
func ParseColumnFlag(s string) (ColumnInput, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return ColumnInput{}, errors.ConfigInvalidf("column %q: want name:type[:range|list]", s)
	}
	in := ColumnInput{Name: parts[0], Type: parts[1]}
	if len(parts) == 3 {
		if kind, _ := series.ParseKind(parts[1]); kind == series.KindString {
			in.List = parts[2]
		} else {
			in.Range = parts[2]
		}
	}
	return in, nil
}

// LoadFile reads a YAML (or JSON) schema file.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IOError("read schema "+path, err)
	}

	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrapf(errors.ConfigInvalid(err.Error()), "parse schema %s", path)
	}
	return Parse(in)
}
