package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"lesson-notes-be/pkg/llm"
	"lesson-notes-be/pkg/llm/factory"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [query...]",
	Short: "Generate a note with the configured completion provider",
	Long: `Assemble the prompt like "prompt" does and stream the note from the
provider selected by LLM_PROVIDER. The note is written to stdout or --output.`,
	RunE: runGenerate,
}

func init() {
	addPlanFlags(generateCmd)
	generateCmd.Flags().StringP("output", "o", "", "Write the note to this file instead of stdout")
	generateCmd.Flags().String("provider", "", "Override LLM_PROVIDER")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	providerName, _ := cmd.Flags().GetString("provider")

	input, _, system, err := assemblePrompt(cmd, args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if providerName == "" {
		providerName = cfg.LLM.Provider
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.ChatTimeout)
	defer cancel()

	provider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider:        providerName,
		Model:           cfg.LLM.Model,
		MaxTokens:       cfg.LLM.MaxTokens,
		GoogleAPIKey:    cfg.LLM.GoogleAPIKey,
		OpenAIAPIKey:    cfg.LLM.OpenAIAPIKey,
		OpenAIBaseURL:   cfg.LLM.OpenAIBaseURL,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
		OllamaBaseURL:   cfg.LLM.OllamaBaseURL,
	})
	if err != nil {
		return err
	}
	provider = llm.WithLogging(provider, cliLogger(cmd))

	var out io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	req := llm.Request{System: system}
	if input.LatestUserText != "" {
		req.Messages = []llm.Message{{Role: llm.RoleUser, Content: input.LatestUserText}}
	}

	written := 0
	for chunk, err := range provider.Stream(ctx, req) {
		if err != nil {
			return fmt.Errorf("generation failed after %d characters: %w", written, err)
		}
		n, werr := io.WriteString(out, chunk)
		written += n
		if werr != nil {
			return werr
		}
	}
	if written == 0 {
		return llm.ErrEmptyStream
	}

	if output != "" {
		color.Green("Wrote %s (%d characters, model %s)", output, written, provider.ModelID())
	}
	return nil
}
