package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lesson-notes-be/pkg/tables"

	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file.pdf>",
	Short: "Detect tables in a PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runTables,
}

func init() {
	tablesCmd.Flags().Bool("json", false, "Print the tables as JSON")
}

func runTables(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	found, err := tables.ExtractPDFTables(data)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{"tables": found})
	}

	if len(found) == 0 {
		color.Yellow("No tables found.")
		return nil
	}
	for i, t := range found {
		color.Cyan("Table %d (%d rows)", i+1, len(t))
		for _, row := range t {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = truncate.StringWithTail(cell, 28, "…")
			}
			fmt.Println("  " + strings.Join(cells, " | "))
		}
		fmt.Println()
	}
	return nil
}
