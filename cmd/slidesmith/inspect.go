package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/slidesmith/slidesmith/deck"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pptx>",
	Short: "Dump the structure of a presentation file",
	Long: `Prints every slide's shapes, text runs and relationship table, plus
the dimensions of embedded images. Useful for checking a template
before deploying it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := deck.Open(args[0])
	if err != nil {
		return err
	}

	for i := 0; i < p.SlideCount(); i++ {
		s, err := p.Slide(i)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", strings.Repeat("=", 60))
		fmt.Printf("SLIDE [%d] — %s\n", i, s.Path())

		for _, rel := range s.Rels().All() {
			mode := ""
			if rel.External() {
				mode = " (external)"
			}
			fmt.Printf("  rel %s -> %s%s\n", rel.ID, rel.Target, mode)
		}

		tree := s.Tree()
		if tree == nil {
			fmt.Println("  no shape tree")
			continue
		}
		deck.DescribeShapes(os.Stdout, tree)
	}

	fmt.Printf("\n%s\nMEDIA\n", strings.Repeat("=", 60))
	for _, part := range p.Package().Parts() {
		if !strings.HasPrefix(part.Name, "ppt/media/") {
			continue
		}
		line := fmt.Sprintf("  %s (%s, %d bytes)", part.Name, p.Package().ContentType(part.Name), len(part.Data))
		if config, format, err := image.DecodeConfig(bytes.NewReader(part.Data)); err == nil {
			line += fmt.Sprintf(" %s %dx%d", format, config.Width, config.Height)
		}
		fmt.Println(line)
	}
	return nil
}
