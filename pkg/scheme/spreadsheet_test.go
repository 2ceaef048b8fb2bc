package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractWeeksSkipsBlankAndPlaceholderRows(t *testing.T) {
	grid := [][]string{{"Topic A"}, {"-"}, {""}, {"Topic B"}}

	weeks := ExtractWeeks(grid, 1)

	assert.Equal(t, []WeekTopic{{Week: 1, Topic: "Topic A"}, {Week: 4, Topic: "Topic B"}}, weeks)
}

func TestExtractWeeksColumnSelection(t *testing.T) {
	grid := [][]string{
		{"1", "Number bases", "Logic"},
		{"2", "  ", "Sets"},
		{"3"},
		{"4", "Indices", " - "},
	}

	tests := []struct {
		name   string
		column int
		want   []WeekTopic
	}{
		{"second column", 2, []WeekTopic{{1, "Number bases"}, {4, "Indices"}}},
		{"third column", 3, []WeekTopic{{1, "Logic"}, {2, "Sets"}}},
		{"zero falls back to first", 0, []WeekTopic{{1, "1"}, {2, "2"}, {3, "3"}, {4, "4"}}},
		{"out of range", 9, []WeekTopic{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractWeeks(grid, tt.column))
		})
	}
}

func TestParseColumnCSVKeepsBlankLinesAsWeeks(t *testing.T) {
	data := []byte("Topic A\n-\n\nTopic B\n")

	weeks, err := ParseColumn(data, 1)

	require.NoError(t, err)
	assert.Equal(t, []WeekTopic{{Week: 1, Topic: "Topic A"}, {Week: 4, Topic: "Topic B"}}, weeks)
}

func TestParseColumnXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Topic A"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "-"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "ignored"))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", "Topic B"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	weeks, err := ParseColumn(buf.Bytes(), 1)

	require.NoError(t, err)
	assert.Equal(t, []WeekTopic{{Week: 1, Topic: "Topic A"}, {Week: 4, Topic: "Topic B"}}, weeks)
}

func TestParseColumnNoTopics(t *testing.T) {
	_, err := ParseColumn([]byte("-\n\n-\n"), 1)
	assert.ErrorIs(t, err, ErrNoTopics)
}

func TestParseColumnUnreadable(t *testing.T) {
	tests := map[string][]byte{
		"empty":       {},
		"binary":      {0xff, 0xfe, 0x00, 0x01},
		"broken xlsx": []byte("PK\x03\x04garbage"),
		"broken xls":  append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, 0x00),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseColumn(data, 1)
			assert.ErrorIs(t, err, ErrUnreadableWorkbook)
		})
	}
}
