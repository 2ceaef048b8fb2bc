package prompt

import (
	"strings"
	"testing"

	"lesson-notes-be/internal/constant"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/scheme"

	"github.com/stretchr/testify/assert"
)

func TestInputModePrecedence(t *testing.T) {
	weeks := []scheme.WeekTopic{{Week: 1, Topic: "Topic A"}}
	custom := map[int][]string{2: {"Citizenship"}}

	tests := []struct {
		name  string
		input Input
		mode  Mode
		query string
	}{
		{
			name:  "conversational",
			input: Input{LatestUserText: "Civic education SS1 week1"},
			mode:  ModeConversational,
			query: "Civic education SS1 week1",
		},
		{
			name:  "spreadsheet",
			input: Input{SpreadsheetWeeks: weeks, LatestUserText: "ignored"},
			mode:  ModeSpreadsheet,
			query: "Topic A",
		},
		{
			name:  "custom beats spreadsheet",
			input: Input{SpreadsheetWeeks: weeks, WeeklySelections: custom, LatestUserText: "ignored"},
			mode:  ModeCustom,
			query: "Citizenship",
		},
		{
			name:  "blank custom selections fall through",
			input: Input{SpreadsheetWeeks: weeks, WeeklySelections: map[int][]string{1: {"  "}}},
			mode:  ModeSpreadsheet,
			query: "Topic A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.mode, tt.input.Mode())
			assert.Equal(t, tt.query, tt.input.Query())
		})
	}
}

func TestCustomQueryFollowsWeekOrder(t *testing.T) {
	in := Input{WeeklySelections: map[int][]string{
		10: {"Elections"},
		2:  {"Values", "Honesty"},
		1:  {"Citizenship"},
	}}

	assert.Equal(t, "Citizenship Values Honesty Elections", in.Query())
}

func TestBuildConversationalHasNoDirective(t *testing.T) {
	got := NewBuilder(Input{LatestUserText: "Photosynthesis"}, knowledge.ExcerptResult{}).Build()

	assert.Equal(t, constant.LectureNoteSystemPrompt, got)
}

func TestBuildIncludesExcerptBlock(t *testing.T) {
	excerpt := knowledge.ExcerptResult{
		Combined: "# Source: scheme.docx\n\nWeek 1 Citizenship",
		Sources:  []string{"scheme.docx", "syllabus.docx"},
	}

	got := NewBuilder(Input{}, excerpt).Build()

	assert.True(t, strings.HasPrefix(got, constant.LectureNoteSystemPrompt))
	assert.Contains(t, got, "Reference Excerpts (from: scheme.docx, syllabus.docx):\n\n# Source: scheme.docx")
	assert.True(t, strings.HasSuffix(got, "Follow the structure strictly."))
}

func TestBuildCustomModeTakesPrecedence(t *testing.T) {
	in := Input{
		ClassLevel:       "SS1",
		WeeklySelections: map[int][]string{3: {"Values"}, 1: {"Citizenship", "Rights"}},
		SpreadsheetWeeks: []scheme.WeekTopic{{Week: 1, Topic: "Spreadsheet topic"}},
		Column:           1,
	}
	excerpt := knowledge.ExcerptResult{Combined: "# Source: a.docx\n\ntext", Sources: []string{"a.docx"}}

	got := NewBuilder(in, excerpt).Build()

	assert.Contains(t, got, "The user is in custom mode.")
	assert.Contains(t, got, "- Week 1: Citizenship, Rights\n- Week 3: Values")
	assert.NotContains(t, got, "The user uploaded a spreadsheet")
	assert.NotContains(t, got, "Spreadsheet topic")

	excerptAt := strings.Index(got, "Reference Excerpts")
	levelAt := strings.Index(got, "class level: SS1.")
	customAt := strings.Index(got, "custom mode")
	assert.True(t, excerptAt > 0 && excerptAt < levelAt && levelAt < customAt)
	assert.True(t, strings.HasSuffix(got, constant.WeekHeadingReminder))
}

func TestBuildSpreadsheetMode(t *testing.T) {
	in := Input{
		ClassLevel: "JSS2",
		SpreadsheetWeeks: []scheme.WeekTopic{
			{Week: 4, Topic: "Topic B"},
			{Week: 1, Topic: "Topic A"},
		},
		Column: 3,
	}

	got := NewBuilder(in, knowledge.ExcerptResult{}).Build()

	assert.Contains(t, got, "class level: JSS2.")
	assert.Contains(t, got, "found in Column 3 (C)")
	assert.Contains(t, got, "Weeks to generate (skip weeks marked with \"-\"):\n- Week 1: Topic A\n- Week 4: Topic B")
	assert.Contains(t, got, `"Week {N} - {topic}"`)
}
