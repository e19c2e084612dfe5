package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"fakexlsx/adapters/excel"
	"fakexlsx/internal/errors"
	"fakexlsx/internal/generator"
	"fakexlsx/internal/schema"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxFormColumns  = 64
	maxBodyBytes    = 1 << 20
)

type indexPage struct {
	Rows  []int
	Error string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("values"))
	if err != nil || n <= 0 {
		n = 3
	}
	if n > maxFormColumns {
		n = maxFormColumns
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	a.renderTemplate(w, "index.html", indexPage{Rows: rows})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerateJSON accepts a schema.Input body and answers with a workbook.
func (a *App) handleGenerateJSON(w http.ResponseWriter, r *http.Request) {
	var in schema.Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		a.writeError(w, errors.ConfigInvalidf("invalid JSON body: %v", err))
		return
	}
	a.generate(w, in)
}

// handleGenerateForm accepts the HTML form: years plus parallel name, type,
// range and list fields.
func (a *App) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		a.writeError(w, errors.ConfigInvalidf("invalid form: %v", err))
		return
	}

	years, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("years")))
	if err != nil {
		a.writeError(w, errors.ConfigInvalidf("years: %q is not a whole number", r.PostForm.Get("years")))
		return
	}

	in := schema.Input{Years: years}
	names := r.PostForm["name"]
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		in.Columns = append(in.Columns, schema.ColumnInput{
			Name:  name,
			Type:  formValue(r.PostForm["type"], i),
			Range: formValue(r.PostForm["range"], i),
			List:  formValue(r.PostForm["list"], i),
		})
	}
	a.generate(w, in)
}

func (a *App) generate(w http.ResponseWriter, in schema.Input) {
	sch, err := schema.Parse(in)
	if err != nil {
		a.writeError(w, err)
		return
	}

	seed := a.config.Seed
	if seed == 0 {
		seed = a.config.Now().UnixNano()
	}
	builder := generator.NewBuilder(
		generator.NewValueGenerator(rand.New(rand.NewSource(seed))),
		generator.WithClock(a.config.Now),
		generator.WithLogger(a.logger),
	)
	s, err := builder.Build(sch.Columns, sch.Years)
	if err != nil {
		a.writeError(w, err)
		return
	}

	f, err := excel.NewWorkbook(s, a.config.Sheet)
	if err != nil {
		a.writeError(w, err)
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		a.writeError(w, errors.IOError("write workbook", err))
		return
	}

	filename := fmt.Sprintf("fake_data_%s.xlsx", s.End.Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("X-Fakexlsx-Seed", strconv.FormatInt(seed, 10))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("sending %s: %v", filename, err)
		return
	}
	a.logger.Info("served %s (%d rows)", filename, len(s.Rows))
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.IsConfigError(err) {
		status = http.StatusBadRequest
	} else {
		a.logger.Error("generate failed: %v", err)
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func formValue(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
