// Package export renders project and grant collections as downloadable
// JSON or CSV files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"catalyst/api/internal/store"
)

// Format represents the export output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat indicates a format outside json/csv.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// Projects renders the given records in the requested format.
func Projects(format Format, items []store.Project) (*Result, error) {
	switch format {
	case FormatJSON:
		return asJSON("projects", items)
	case FormatCSV:
		header := []string{"id", "title", "department", "lead", "status", "startDate", "endDate", "budget", "fundingSource"}
		rows := make([][]string, 0, len(items))
		for _, p := range items {
			rows = append(rows, []string{
				p.ID, p.Title, p.Department, p.Lead, p.Status,
				p.StartDate, p.EndDate, strconv.FormatFloat(p.Budget, 'f', -1, 64), p.FundingSource,
			})
		}
		return asCSV("projects", header, rows)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Grants renders the given records in the requested format.
func Grants(format Format, items []store.Grant) (*Result, error) {
	switch format {
	case FormatJSON:
		return asJSON("grants", items)
	case FormatCSV:
		header := []string{"id", "title", "agency", "pi", "status", "amount", "deadline"}
		rows := make([][]string, 0, len(items))
		for _, g := range items {
			rows = append(rows, []string{
				g.ID, g.Title, g.Agency, g.PI, g.Status,
				strconv.FormatFloat(g.Amount, 'f', -1, 64), g.Deadline,
			})
		}
		return asCSV("grants", header, rows)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func asJSON(name string, items any) (*Result, error) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s export: %w", name, err)
	}
	return &Result{
		Data:     data,
		Filename: exportFilename(name, "json"),
		MimeType: "application/json",
	}, nil
}

func asCSV(name string, header []string, rows [][]string) (*Result, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush %s export: %w", name, err)
	}
	return &Result{
		Data:     buf.Bytes(),
		Filename: exportFilename(name, "csv"),
		MimeType: "text/csv",
	}, nil
}

func exportFilename(name, ext string) string {
	return fmt.Sprintf("%s-export-%s.%s", name, time.Now().Format("2006-01-02"), ext)
}
