package scheme

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnreadableWorkbook = errors.New("unreadable workbook")
	ErrNoTopics           = errors.New("no topics found in selected column")
)

// PlaceholderCell marks a week that has no topic in a scheme of work.
const PlaceholderCell = "-"

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// WeekTopic is one row of a scheme of work: the row position is the week.
type WeekTopic struct {
	Week  int    `json:"week"`
	Topic string `json:"topic"`
}

// ReadGrid returns the cell text of the first sheet, starting at the first
// used row. xlsx and xls are detected by signature; anything else that is
// valid UTF-8 is read as CSV.
func ReadGrid(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	case len(data) > 0 && utf8.Valid(data):
		return readCSV(data)
	default:
		return nil, fmt.Errorf("%w: unrecognised file format", ErrUnreadableWorkbook)
	}
}

// ParseColumn reads a spreadsheet and extracts the week plan from the given
// 1-based column. Columns below 1 fall back to the first column.
func ParseColumn(data []byte, column int) ([]WeekTopic, error) {
	grid, err := ReadGrid(data)
	if err != nil {
		return nil, err
	}

	weeks := ExtractWeeks(grid, column)
	if len(weeks) == 0 {
		return nil, ErrNoTopics
	}
	return weeks, nil
}

// ExtractWeeks numbers rows from 1 and keeps those whose cell in the given
// column is neither blank nor the placeholder dash.
func ExtractWeeks(grid [][]string, column int) []WeekTopic {
	col := column - 1
	if col < 0 {
		col = 0
	}

	weeks := make([]WeekTopic, 0, len(grid))
	for i, row := range grid {
		if col >= len(row) {
			continue
		}
		topic := strings.TrimSpace(row[col])
		if topic == "" || topic == PlaceholderCell {
			continue
		}
		weeks = append(weeks, WeekTopic{Week: i + 1, Topic: topic})
	}
	return weeks
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableWorkbook)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	startRow := 1
	if dim, err := f.GetSheetDimension(sheet); err == nil && dim != "" {
		first := strings.Split(dim, ":")[0]
		if _, row, err := excelize.CellNameToCoordinates(first); err == nil && row > 0 {
			startRow = row
		}
	}

	if startRow-1 >= len(rows) {
		return [][]string{}, nil
	}
	return rows[startRow-1:], nil
}

func readXLS(data []byte) (grid [][]string, err error) {
	// The BIFF reader panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, r)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableWorkbook)
	}

	firstUsed := -1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		if firstUsed < 0 {
			firstUsed = i
		}
		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		grid = append(grid, cells)
	}

	if firstUsed < 0 {
		return [][]string{}, nil
	}
	return grid[firstUsed:], nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// The csv reader drops blank lines, but a blank line is still a week,
	// so records are placed by their starting line number.
	grid := [][]string{}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
		}

		line, _ := r.FieldPos(0)
		for len(grid) < line-1 {
			grid = append(grid, nil)
		}
		grid = append(grid, record)
	}
	return grid, nil
}
