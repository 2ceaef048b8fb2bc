package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lesson-notes-be/pkg/render"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <note.md>",
	Short: "Render a markdown note to docx, pdf or html",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("format", "f", "docx", "Output format: docx, pdf or html")
	renderCmd.Flags().StringP("output", "o", "", "Output file (default: input name with the format extension)")
	renderCmd.Flags().String("base-url", "", "Base URL used to resolve the watermark image")
}

func runRender(cmd *cobra.Command, args []string) error {
	formatVal, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	baseURL, _ := cmd.Flags().GetString("base-url")

	format := render.Format(strings.ToLower(formatVal))
	switch format {
	case render.FormatDocx, render.FormatPDF, render.FormatHTML:
	default:
		return fmt.Errorf("invalid format %q: must be docx, pdf or html", formatVal)
	}

	markdown, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}

	cfg := loadConfig()
	log := cliLogger(cmd)
	renderer := render.NewRenderer(render.Options{
		MathCSSPath:   cfg.Export.MathCSSPath,
		WatermarkPath: cfg.Export.WatermarkPath,
	}, render.NewChromePrinter(cfg.Export.ChromePath), log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Export.Timeout)
	defer cancel()

	out, err := renderer.Render(ctx, string(markdown), format, baseURL)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + string(format)
	}
	if err := os.WriteFile(output, out.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	color.Green("Wrote %s (%d bytes)", output, len(out.Body))
	return nil
}
