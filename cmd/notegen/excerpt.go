package main

import (
	"context"
	"fmt"
	"strings"

	"lesson-notes-be/pkg/knowledge"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
)

var excerptCmd = &cobra.Command{
	Use:   "excerpt <query...>",
	Short: "Show which knowledge documents a query would pull into the prompt",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExcerpt,
}

func init() {
	excerptCmd.Flags().String("dir", "", "Knowledge directory (default: KNOWLEDGE_DIR)")
	excerptCmd.Flags().Int("max", 0, "Character budget (default: EXCERPT_MAX_CHARS)")
	excerptCmd.Flags().Bool("full", false, "Print the whole combined excerpt")
}

func runExcerpt(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	maxChars, _ := cmd.Flags().GetInt("max")
	full, _ := cmd.Flags().GetBool("full")

	cfg := loadConfig()
	if dir == "" {
		dir = cfg.Knowledge.Dir
	}
	if maxChars <= 0 {
		maxChars = cfg.Knowledge.MaxChars
	}

	docs := knowledge.NewLoader(dir, cliLogger(cmd)).Load(context.Background())
	query := strings.Join(args, " ")
	result := knowledge.SelectExcerpt(docs, query, maxChars)

	color.Cyan("Query: %s", query)
	fmt.Printf("Documents loaded: %d from %s\n", len(docs), dir)
	if len(result.Sources) == 0 {
		color.Yellow("No excerpt selected.")
		return nil
	}

	color.Yellow("\nSources (ranked):")
	for i, src := range result.Sources {
		fmt.Printf("  %d. %s\n", i+1, src)
	}
	fmt.Printf("\nCombined length: %d of %d characters\n", len([]rune(result.Combined)), maxChars)

	text := result.Combined
	if !full {
		text = preview(text, 600)
	}
	fmt.Println()
	fmt.Println(indent.String(wordwrap.String(text, 96), 2))
	return nil
}

func preview(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + " …"
}
