// Package export turns list rows into spreadsheet downloads. Every resource
// declares its columns once; FormatRows and WriteXLSX share them so the
// preview and the file always agree.
package export

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// NA fills cells whose source value is missing.
const NA = "N/A"

// ContentType is the MIME type of an .xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column names one output column and how to read it from a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Headers lists the column headers in order.
func Headers[T any](cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Cells returns one row's formatted cells in column order.
func Cells[T any](row T, cols []Column[T]) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = cell(c.Value(row))
	}
	return out
}

// FormatRows maps every row to header → value. Every header is present in
// every map and blank values become NA.
func FormatRows[T any](rows []T, cols []Column[T]) []map[string]string {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]string, len(cols))
		for _, c := range cols {
			m[c.Header] = cell(c.Value(row))
		}
		out = append(out, m)
	}
	return out
}

// cell trims v and substitutes NA for blanks. Values are written as string
// cells, so a leading '=' or '+' is text, never a formula.
func cell(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NA
	}
	return v
}

// WriteXLSX writes a single-sheet workbook with a bold header row.
func WriteXLSX[T any](w io.Writer, sheet string, cols []Column[T], rows []T) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Export"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(cols))
	for i, h := range Headers(cols) {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cells := Cells(row, cols)
		vals := make([]any, len(cells))
		for j, c := range cells {
			vals[j] = c
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if len(cols) > 0 {
		last, err := excelize.ColumnNumberToName(len(cols))
		if err != nil {
			return err
		}
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		if err := f.SetCellStyle(sheet, "A1", last+"1", bold); err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}

	return f.Write(w)
}

// Filename returns "<resource>_<YYYYMMDD>.xlsx".
func Filename(resource string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", resource, now.Format("20060102"))
}

// Serve sends rows as an .xlsx attachment named for resource.
func Serve[T any](w http.ResponseWriter, resource string, now time.Time, cols []Column[T], rows []T) error {
	if resource == "" {
		resource = "export"
	}
	name := Filename(resource, now)
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(name)))
	w.Header().Set("Cache-Control", "no-store")
	return WriteXLSX(w, strings.ToUpper(resource[:1])+resource[1:], cols, rows)
}
