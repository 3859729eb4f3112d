package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/slidesmith/slidesmith"
	"github.com/slidesmith/slidesmith/config"
	"github.com/slidesmith/slidesmith/outline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a deck from the command line",
	Long: `Generates a single presentation without starting the service. The
outline comes from the configured LLM, or from topic-derived stock
content when no API key is set.`,
	RunE: runGenerate,
}

var generateFlags struct {
	title    string
	topics   []string
	slides   int
	tone     string
	context  string
	template string
	out      string
}

func init() {
	generateCmd.Flags().StringVar(&generateFlags.title, "title", "", "deck title (required)")
	generateCmd.Flags().StringSliceVar(&generateFlags.topics, "topic", nil, "topic to cover (repeatable, required)")
	generateCmd.Flags().IntVar(&generateFlags.slides, "slides", outline.DefaultSlides, "number of content slides (2-15)")
	generateCmd.Flags().StringVar(&generateFlags.tone, "tone", "professional", "writing tone")
	generateCmd.Flags().StringVar(&generateFlags.context, "context", "", "extra context for the outline")
	generateCmd.Flags().StringVar(&generateFlags.template, "template", "", "template file (default from config)")
	generateCmd.Flags().StringVar(&generateFlags.out, "out", "", "output file (default derived from title)")
	generateCmd.MarkFlagRequired("title")
	generateCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	templatePath := generateFlags.template
	if templatePath == "" {
		templatePath = cfg.Template.Path
	}

	outliner, err := outline.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("creating outline generator: %w", err)
	}

	slides, err := outliner.Generate(context.Background(), outline.Request{
		Title:     generateFlags.title,
		Topics:    generateFlags.topics,
		NumSlides: generateFlags.slides,
		Context:   generateFlags.context,
		Tone:      generateFlags.tone,
	})
	if err != nil {
		return fmt.Errorf("generating outline: %w", err)
	}

	builder := slidesmith.FromTemplate(templatePath).
		Fallback().
		Title(generateFlags.title)
	for _, s := range slides {
		builder = builder.Slide(s.Title, s.Content...)
	}

	result, err := builder.Build()
	if err != nil {
		return fmt.Errorf("building deck: %w", err)
	}

	out := generateFlags.out
	if out == "" {
		out = result.Filename
	}
	if err := os.WriteFile(out, result.Data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	if result.UsedFallback {
		fmt.Printf("template unavailable, used built-in theme\n")
	}
	fmt.Printf("wrote %s (%d slides, %d bytes)\n", out, len(slides)+1, len(result.Data))
	return nil
}
