// Package usage loads the tabular internet-usage dataset: one row per
// (country, year) observation.
package usage

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
)

// Record is one usage observation.
type Record struct {
	Code   string `json:"code" yaml:"code"`
	Entity string `json:"entity,omitempty" yaml:"entity,omitempty"`
	Year   int    `json:"year" yaml:"year"`
	// UsagePercent is nil when the dataset has no value for the year.
	UsagePercent *float64 `json:"usage_percent,omitempty" yaml:"usage_percent,omitempty"`
}

// HasValue reports whether the record carries a usage percentage.
func (r Record) HasValue() bool {
	return r.UsagePercent != nil
}

type options struct {
	valueColumn string
	source      string
}

// Option configures the usage reader.
type Option func(*options)

// WithValueColumn overrides the header of the percentage column.
func WithValueColumn(column string) Option {
	return func(o *options) {
		if column != "" {
			o.valueColumn = column
		}
	}
}

// WithSource names the input in parse errors.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// Load reads the usage CSV at path. The file is closed before Load returns.
func Load(path string, opts ...Option) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Read(bytes.NewReader(data), append([]Option{WithSource(path)}, opts...)...)
}

// Read parses usage records from CSV. The Code, Year and value columns are
// required; Entity is optional. Headers match case-insensitively.
func Read(r io.Reader, opts ...Option) ([]Record, error) {
	o := &options{valueColumn: constants.UsageValueColumn}
	for _, opt := range opts {
		opt(o)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := readHeader(cr)
	if err != nil {
		if err == io.EOF {
			return nil, errors.NewParseError("csv", o.source, "missing header row", err)
		}
		return nil, errors.WrapParse("csv", o.source, err)
	}
	for _, col := range []string{constants.UsageCodeColumn, constants.UsageYearColumn, o.valueColumn} {
		if _, ok := header[normalizeHeader(col)]; !ok {
			return nil, errors.NewParseError("csv", o.source, "missing column "+strconv.Quote(col), nil)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse("csv", o.source, err)
		}
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		line, _ := cr.FieldPos(0)

		rawYear := valueAt(header, row, constants.UsageYearColumn)
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    o.source,
				Line:    line,
				Message: "invalid year " + strconv.Quote(rawYear),
				Err:     err,
			}
		}

		value, err := parseNullFloat(valueAt(header, row, o.valueColumn))
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    o.source,
				Line:    line,
				Message: "invalid usage value",
				Err:     err,
			}
		}

		records = append(records, Record{
			Code:         valueAt(header, row, constants.UsageCodeColumn),
			Entity:       valueAt(header, row, constants.UsageEntityColumn),
			Year:         year,
			UsagePercent: value,
		})
	}

	return records, nil
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[normalizeHeader(name)] = idx
	}
	return header, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[normalizeHeader(key)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// errNonFinite rejects infinite percentages.
var errNonFinite = errors.New("value is not finite")

// parseNullFloat parses a percentage cell. Empty and NaN cells are absent.
func parseNullFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	if math.IsInf(v, 0) {
		return nil, errNonFinite
	}
	return &v, nil
}
