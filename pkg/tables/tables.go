package tables

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrUnreadablePDF = errors.New("unreadable pdf")

// Table is a list of rows, each a list of cell strings.
type Table [][]string

var (
	tableRow  = regexp.MustCompile(`(.+?)\s{2,}(.+)`)
	cellSplit = regexp.MustCompile(`\s{2,}`)
)

// DetectTables finds runs of lines whose cells are separated by two or more
// spaces. A run of one row is not a table.
func DetectTables(text string) []Table {
	var tables []Table
	var current Table

	closeTable := func() {
		if len(current) > 1 {
			tables = append(tables, current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if !tableRow.MatchString(line) {
			closeTable()
			continue
		}
		parts := cellSplit.Split(line, -1)
		row := make([]string, len(parts))
		for i, p := range parts {
			row[i] = strings.TrimSpace(p)
		}
		current = append(current, row)
	}
	closeTable()

	return tables
}

// ExtractPDFTables reads every page of a PDF and returns the tables found on
// each, in page order. Tables do not continue across pages.
func ExtractPDFTables(data []byte) (tables []Table, err error) {
	// The pdf reader panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			tables, err = nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadablePDF, err)
	}

	tables = []Table{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrUnreadablePDF, i, err)
		}

		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			lines = append(lines, RowText(row.Content))
		}
		tables = append(tables, DetectTables(strings.Join(lines, "\n"))...)
	}
	return tables, nil
}

// RowText joins the text runs of one visual row left to right. A horizontal
// gap wider than about one character becomes a double space, so column
// boundaries survive as cell separators.
func RowText(texts []pdf.Text) string {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var b strings.Builder
	for i, t := range sorted {
		if i > 0 {
			prev := sorted[i-1]
			gap := t.X - (prev.X + prev.W)
			size := prev.FontSize
			if size <= 0 {
				size = 10
			}
			switch {
			case gap > size:
				b.WriteString("  ")
			case gap > size*0.2 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " "):
				b.WriteString(" ")
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}
