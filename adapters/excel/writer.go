package excel

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"fakexlsx/domain/series"
	"fakexlsx/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	// DefaultSheet is the sheet excelize creates in a new workbook.
	DefaultSheet = "Sheet1"
)

// ResolvePath appends ".xlsx" when path has no extension.
func ResolvePath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".xlsx"
	}
	return path
}

// Write writes s to path in the format implied by its extension.
func Write(path string, s *series.Series, sheet string) error {
	if FormatOf(path) == FormatCSV {
		return WriteCSV(path, s)
	}
	return WriteXLSX(path, s, sheet)
}

// WriteXLSX saves s as a single-sheet workbook. The workbook is written to a
// temporary file next to path and renamed into place, so a failed save leaves
// nothing behind.
func WriteXLSX(path string, s *series.Series, sheet string) error {
	return writeAtomically(path, func(w io.Writer) error {
		return WriteXLSXTo(w, s, sheet)
	})
}

// WriteXLSXTo streams the workbook for s to w.
func WriteXLSXTo(w io.Writer, s *series.Series, sheet string) error {
	f, err := NewWorkbook(s, sheet)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return errors.IOError("write workbook", err)
	}
	return nil
}

// ValidateSheetName reports whether excelize accepts name as a sheet name.
func ValidateSheetName(name string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(DefaultSheet, name); err != nil {
		return errors.ConfigInvalidf("sheet name %q: %v", name, err)
	}
	return nil
}

// NewWorkbook lays s out on a single sheet of a new in-memory workbook. An
// empty sheet means DefaultSheet. The caller closes the returned file.
func NewWorkbook(s *series.Series, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if err := ValidateSheetName(sheet); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, errors.Wrap(err, "rename sheet")
		}
	}

	headers := s.Headers()
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write header row")
	}

	for r, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "address row")
		}
		cells := row.Cells()
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "write row %s", row.Date)
		}
	}
	return f, nil
}

// WriteCSV writes s as comma-separated text with the same layout as the sheet.
func WriteCSV(path string, s *series.Series) error {
	return writeAtomically(path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write(s.Headers()); err != nil {
			return errors.IOError("write csv header", err)
		}
		record := make([]string, len(s.Columns)+1)
		for _, row := range s.Rows {
			record[0] = row.Date
			for i, v := range row.Values {
				record[i+1] = series.FormatValue(v)
			}
			if err := w.Write(record); err != nil {
				return errors.IOError("write csv row", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return errors.IOError("flush csv", err)
		}
		return nil
	})
}

func writeAtomically(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.IOError("create "+path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return errors.IOError("chmod "+path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.IOError("close "+path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.IOError("save "+path, err)
	}
	return nil
}
