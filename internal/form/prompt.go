// Package form collects a schema interactively, one question per line.
package form

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fakexlsx/internal/errors"
	"fakexlsx/internal/schema"
)

const defaultType = "integer"

// Prompter asks the questions of the generator form on out and reads the
// answers from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Collect runs the form: number of years and values first, then name, data
// type, range and list for every value. The result is not validated.
func (p *Prompter) Collect() (schema.Input, error) {
	var in schema.Input

	years, err := p.askInt("Enter number of years")
	if err != nil {
		return in, err
	}
	count, err := p.askInt("Enter number of values")
	if err != nil {
		return in, err
	}
	if count <= 0 {
		return in, errors.ConfigInvalidf("number of values must be positive, got %d", count)
	}

	in.Years = years
	fmt.Fprintln(p.out, "Enter value names and select data types:")
	for i := 1; i <= count; i++ {
		var col schema.ColumnInput
		if col.Name, err = p.ask(fmt.Sprintf("Value %d name", i)); err != nil {
			return in, err
		}
		if col.Type, err = p.ask("Data Type [integer|float|string] (integer)"); err != nil {
			return in, err
		}
		if col.Type == "" {
			col.Type = defaultType
		}
		if strings.EqualFold(col.Type, "string") {
			col.List, err = p.ask("List (comma-separated)")
		} else {
			col.Range, err = p.ask("Range (start-end)")
		}
		if err != nil {
			return in, err
		}
		in.Columns = append(in.Columns, col)
	}
	return in, nil
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.IOError("read answer", err)
		}
		return "", errors.ConfigInvalidf("input ended before %q was answered", question)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) askInt(question string) (int, error) {
	answer, err := p.ask(question)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, errors.ConfigInvalidf("%s: %q is not a whole number", question, answer)
	}
	return n, nil
}
