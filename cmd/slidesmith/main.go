package main

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

var rootCmd = &cobra.Command{
	Use:   "slidesmith",
	Short: "Outline-to-PPTX generation service",
	Long: `slidesmith turns structured outlines into PowerPoint decks by cloning
the slides of a pre-authored template. It runs as an HTTP service or as
a one-shot generator on the command line.`,
	SilenceUsage: true,
}

func main() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
