package prompt

import (
	"fmt"
	"sort"
	"strings"

	"lesson-notes-be/internal/constant"
	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/scheme"

	"github.com/xuri/excelize/v2"
)

// Mode is the request shape that decides the directive and excerpt query.
type Mode string

const (
	ModeConversational Mode = "conversational"
	ModeSpreadsheet    Mode = "spreadsheet"
	ModeCustom         Mode = "custom"
)

// Input carries everything the assembler needs from a chat request.
// Custom selections win over spreadsheet weeks, which win over the
// latest user message.
type Input struct {
	ClassLevel       string
	WeeklySelections map[int][]string
	SpreadsheetWeeks []scheme.WeekTopic
	Column           int
	LatestUserText   string
}

// Mode reports which request shape is active.
func (in Input) Mode() Mode {
	switch {
	case len(in.customWeeks()) > 0:
		return ModeCustom
	case len(in.SpreadsheetWeeks) > 0:
		return ModeSpreadsheet
	default:
		return ModeConversational
	}
}

// Query is the text used to rank knowledge documents for this request.
func (in Input) Query() string {
	switch in.Mode() {
	case ModeCustom:
		var topics []string
		for _, w := range in.customWeeks() {
			topics = append(topics, w.topics...)
		}
		return strings.Join(topics, " ")
	case ModeSpreadsheet:
		topics := make([]string, 0, len(in.SpreadsheetWeeks))
		for _, w := range in.SpreadsheetWeeks {
			topics = append(topics, w.Topic)
		}
		return strings.Join(topics, " ")
	default:
		return in.LatestUserText
	}
}

type customWeek struct {
	week   int
	topics []string
}

// customWeeks returns the selected weeks in ascending order, dropping
// blank fragments and weeks left without any topic.
func (in Input) customWeeks() []customWeek {
	weeks := make([]customWeek, 0, len(in.WeeklySelections))
	for week, fragments := range in.WeeklySelections {
		topics := make([]string, 0, len(fragments))
		for _, f := range fragments {
			if f = strings.TrimSpace(f); f != "" {
				topics = append(topics, f)
			}
		}
		if len(topics) > 0 {
			weeks = append(weeks, customWeek{week: week, topics: topics})
		}
	}

	sort.Slice(weeks, func(i, j int) bool { return weeks[i].week < weeks[j].week })
	return weeks
}

// Builder assembles the system instruction sent to the completion service.
type Builder struct {
	input   Input
	excerpt knowledge.ExcerptResult
}

func NewBuilder(input Input, excerpt knowledge.ExcerptResult) *Builder {
	return &Builder{
		input:   input,
		excerpt: excerpt,
	}
}

// Build returns the template, then the reference excerpts, then the class
// level hint, then the mode directive.
func (b *Builder) Build() string {
	var prompt strings.Builder

	prompt.WriteString(constant.LectureNoteSystemPrompt)
	b.writeReferenceExcerpts(&prompt)
	b.writeClassLevel(&prompt)

	switch b.input.Mode() {
	case ModeCustom:
		b.writeCustomDirective(&prompt)
	case ModeSpreadsheet:
		b.writeSpreadsheetDirective(&prompt)
	}

	return prompt.String()
}

func (b *Builder) writeReferenceExcerpts(prompt *strings.Builder) {
	if b.excerpt.Combined == "" {
		return
	}
	fmt.Fprintf(prompt, constant.ReferenceExcerptsFormat, strings.Join(b.excerpt.Sources, ", "), b.excerpt.Combined)
}

func (b *Builder) writeClassLevel(prompt *strings.Builder) {
	level := strings.TrimSpace(b.input.ClassLevel)
	if level == "" {
		return
	}
	fmt.Fprintf(prompt, constant.ClassLevelFormat, level)
}

func (b *Builder) writeCustomDirective(prompt *strings.Builder) {
	weeks := b.input.customWeeks()
	lines := make([]string, 0, len(weeks))
	for _, w := range weeks {
		lines = append(lines, fmt.Sprintf(constant.WeekLineFormat, w.week, strings.Join(w.topics, ", ")))
	}
	fmt.Fprintf(prompt, constant.CustomModeFormat, strings.Join(lines, "\n"))
}

func (b *Builder) writeSpreadsheetDirective(prompt *strings.Builder) {
	weeks := make([]scheme.WeekTopic, len(b.input.SpreadsheetWeeks))
	copy(weeks, b.input.SpreadsheetWeeks)
	sort.SliceStable(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })

	lines := make([]string, 0, len(weeks))
	for _, w := range weeks {
		lines = append(lines, fmt.Sprintf(constant.WeekLineFormat, w.Week, w.Topic))
	}

	column := b.input.Column
	if column < 1 {
		column = 1
	}
	letter, err := excelize.ColumnNumberToName(column)
	if err != nil {
		letter = "?"
	}

	fmt.Fprintf(prompt, constant.SpreadsheetModeFormat, column, letter, strings.Join(lines, "\n"))
}
