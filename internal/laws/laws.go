// Package laws loads the legal provisions table the prompts are built from.
package laws

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Required CSV columns.
const (
	ColumnProfession  = "Profession"
	ColumnLawName     = "Law Name"
	ColumnDescription = "Description"
)

var ErrMissingColumn = errors.New("missing required column")

// Law is one row of the provisions table.
type Law struct {
	Profession  string `validate:"required"`
	Name        string `validate:"required"`
	Description string `validate:"required"`
	// Extra holds any further columns of the row, keyed by header name.
	Extra map[string]string
}

// Table is a read-only, ordered view of the provisions. It is loaded once at
// startup and shared by reference between handlers.
type Table struct {
	columns []string
	laws    []Law
}

var requiredColumns = []string{ColumnProfession, ColumnLawName, ColumnDescription}

var validate = validator.New()

// Load reads the CSV file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open laws csv: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a provisions CSV. Columns may appear in any order; extra
// columns are kept in Law.Extra and rendered back by CSV.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	columns := make([]string, 0, len(header))
	for i, name := range header {
		// Excel exports prefix the first header with a BOM.
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = i
		columns = append(columns, name)
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var laws []Law
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}
		law := Law{
			Profession:  field(record, idx[ColumnProfession]),
			Name:        field(record, idx[ColumnLawName]),
			Description: field(record, idx[ColumnDescription]),
		}
		for _, col := range columns {
			if isRequired(col) {
				continue
			}
			if law.Extra == nil {
				law.Extra = map[string]string{}
			}
			law.Extra[col] = field(record, idx[col])
		}
		if err := validate.Struct(law); err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", line, err)
		}
		laws = append(laws, law)
	}
	return &Table{columns: columns, laws: laws}, nil
}

// NewTable builds a table from already parsed rows. Only the required
// columns are rendered by CSV.
func NewTable(laws []Law) *Table {
	return &Table{columns: requiredColumns, laws: append([]Law(nil), laws...)}
}

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// All returns every law in file order.
func (t *Table) All() []Law {
	return append([]Law(nil), t.laws...)
}

// Len reports the number of rows.
func (t *Table) Len() int { return len(t.laws) }

// Professions returns the distinct professions in first-seen order.
func (t *Table) Professions() []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range t.laws {
		if !seen[l.Profession] {
			seen[l.Profession] = true
			out = append(out, l.Profession)
		}
	}
	return out
}

// ByProfession returns the laws whose profession matches exactly.
func (t *Table) ByProfession(profession string) []Law {
	var out []Law
	for _, l := range t.laws {
		if l.Profession == profession {
			out = append(out, l)
		}
	}
	return out
}

// HasProfession reports whether any row belongs to profession.
func (t *Table) HasProfession(profession string) bool {
	for _, l := range t.laws {
		if l.Profession == profession {
			return true
		}
	}
	return false
}

// CSV renders laws as CSV text with the table's full header, in file order,
// and no index column.
func (t *Table) CSV(laws []Law) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(t.columns)
	row := make([]string, len(t.columns))
	for _, l := range laws {
		for i, col := range t.columns {
			switch col {
			case ColumnProfession:
				row[i] = l.Profession
			case ColumnLawName:
				row[i] = l.Name
			case ColumnDescription:
				row[i] = l.Description
			default:
				row[i] = l.Extra[col]
			}
		}
		_ = w.Write(row)
	}
	w.Flush()
	return buf.String()
}

func isRequired(col string) bool {
	for _, c := range requiredColumns {
		if c == col {
			return true
		}
	}
	return false
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
