package main

import (
	"lesson-notes-be/internal/config"
	"lesson-notes-be/internal/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "notegen",
	Short:         "Offline tools for the lecture-note generator",
	Long:          "notegen renders notes, previews knowledge excerpts and prompts, and extracts PDF tables without running the server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Log to stderr")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(excerptCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(eventsCmd)
}

// cliLogger is silent unless --verbose is given.
func cliLogger(cmd *cobra.Command) logger.ILogger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logger.NewZapLogger("logs/notegen.log", false)
	}
	return logger.NewNopLogger()
}

func loadConfig() *config.Config {
	return config.Load()
}
