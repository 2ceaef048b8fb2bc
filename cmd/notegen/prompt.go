package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lesson-notes-be/pkg/knowledge"
	"lesson-notes-be/pkg/prompt"
	"lesson-notes-be/pkg/scheme"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [query...]",
	Short: "Print the system prompt a chat request would produce",
	Long: `Assemble the system prompt exactly as the chat endpoint does.

Custom weeks (--week) take precedence over a scheme file (--file), which
takes precedence over the free-text query.`,
	RunE: runPrompt,
}

func init() {
	addPlanFlags(promptCmd)
}

func addPlanFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Scheme of work spreadsheet (xlsx, xls or csv)")
	cmd.Flags().Int("column", 1, "1-based spreadsheet column holding the topics")
	cmd.Flags().StringArray("week", nil, `Custom week selection "N=topic[,topic...]" (repeatable)`)
	cmd.Flags().String("class", "", "Class level, e.g. SS1")
	cmd.Flags().String("dir", "", "Knowledge directory (default: KNOWLEDGE_DIR)")
}

// assemblePrompt mirrors the chat service: parse the plan, pick the
// excerpt, build the instruction.
func assemblePrompt(cmd *cobra.Command, args []string) (prompt.Input, knowledge.ExcerptResult, string, error) {
	file, _ := cmd.Flags().GetString("file")
	column, _ := cmd.Flags().GetInt("column")
	weekFlags, _ := cmd.Flags().GetStringArray("week")
	classLevel, _ := cmd.Flags().GetString("class")
	dir, _ := cmd.Flags().GetString("dir")

	selections, err := parseWeekFlags(weekFlags)
	if err != nil {
		return prompt.Input{}, knowledge.ExcerptResult{}, "", err
	}

	input := prompt.Input{
		ClassLevel:       classLevel,
		WeeklySelections: selections,
		Column:           column,
		LatestUserText:   strings.Join(args, " "),
	}

	if input.Mode() != prompt.ModeCustom && file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return input, knowledge.ExcerptResult{}, "", fmt.Errorf("read scheme: %w", err)
		}
		weeks, err := scheme.ParseColumn(data, column)
		if err != nil {
			return input, knowledge.ExcerptResult{}, "", fmt.Errorf("parse scheme: %w", err)
		}
		input.SpreadsheetWeeks = weeks
	}

	cfg := loadConfig()
	if dir == "" {
		dir = cfg.Knowledge.Dir
	}
	docs := knowledge.NewLoader(dir, cliLogger(cmd)).Load(context.Background())
	excerpt := knowledge.SelectExcerpt(docs, input.Query(), cfg.Knowledge.MaxChars)

	return input, excerpt, prompt.NewBuilder(input, excerpt).Build(), nil
}

// parseWeekFlags turns ["3=Fractions,Decimals"] into {3: [Fractions Decimals]}.
func parseWeekFlags(flags []string) (map[int][]string, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	selections := make(map[int][]string, len(flags))
	for _, f := range flags {
		weekStr, topics, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --week %q: want N=topic", f)
		}
		week, err := strconv.Atoi(strings.TrimSpace(weekStr))
		if err != nil || week < 1 {
			return nil, fmt.Errorf("invalid week number in %q", f)
		}
		for _, t := range strings.Split(topics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				selections[week] = append(selections[week], t)
			}
		}
	}
	return selections, nil
}

func runPrompt(cmd *cobra.Command, args []string) error {
	input, excerpt, system, err := assemblePrompt(cmd, args)
	if err != nil {
		return err
	}

	color.Cyan("Mode: %s", input.Mode())
	color.Cyan("Query: %s", input.Query())
	if len(excerpt.Sources) > 0 {
		color.Cyan("Sources: %s", strings.Join(excerpt.Sources, ", "))
	}
	fmt.Println()
	fmt.Println(system)
	return nil
}
