package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fakexlsx/internal"
	"fakexlsx/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Table is a sheet read back as strings: one header row and the data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns every cell of the named column, or false if there is no such header.
func (t *Table) Column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.Headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		if idx < len(row) {
			out[r] = row[idx]
		}
	}
	return out, true
}

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files.
// Workbooks are read from their first sheet.
func NewDataReader(filePath string) *DataReader {
	return &DataReader{filePath: filePath, fileType: FormatOf(filePath), logger: internal.DefaultLogger}
}

// WithLogger replaces internal.DefaultLogger.
func (r *DataReader) WithLogger(l *internal.Logger) *DataReader {
	r.logger = l
	return r
}

// WithSheet reads the named sheet instead of the first one.
func (r *DataReader) WithSheet(sheet string) *DataReader {
	r.sheet = sheet
	return r
}

// ReadData reads data from Excel or CSV files into a Table
func (r *DataReader) ReadData() (*Table, error) {
	r.logger.Debug("reading %s file %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		return nil, errors.IOError(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath), err)
	}

	switch r.fileType {
	case FormatCSV:
		return r.readCSVData()
	default:
		return r.readExcelData()
	}
}

func (r *DataReader) readExcelData() (*Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	r.logger.Debug("sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readCSVData() (*Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.IOError("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.IOError("failed to read CSV file", err)
	}
	return r.processRows(rows)
}

// processRows splits off the header row and pads short rows; excelize omits
// trailing empty cells.
func (r *DataReader) processRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, errors.ConfigInvalid(fmt.Sprintf("%s file has no header row", strings.ToUpper(r.fileType)))
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		copy(cells, row)
		data = append(data, cells)
	}

	r.logger.Trace("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(data))
	return &Table{Headers: headers, Rows: data}, nil
}

// FormatOf infers the output format from a path's extension.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatXLSX
}
