package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/slidesmith/slidesmith/config"
	"github.com/slidesmith/slidesmith/internal/handler"
	"github.com/slidesmith/slidesmith/internal/router"
	"github.com/slidesmith/slidesmith/internal/store"
	"github.com/slidesmith/slidesmith/outline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation HTTP service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	if dir := filepath.Dir(cfg.Database.DSN); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	db, err := store.InitDB(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	outliner, err := outline.New(cfg.LLM)
	if err != nil {
		return fmt.Errorf("creating outline generator: %w", err)
	}

	h := handler.New(outliner, store.NewTokenStore(), store.NewHistory(db), cfg.Template.Path)
	r := router.Setup(cfg, h)

	addr := ":" + cfg.Server.Port
	klog.Infof("listening on %s (template: %s)", addr, cfg.Template.Path)
	return r.Run(addr)
}
