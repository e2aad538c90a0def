// metagen generates the client's entity-metadata bindings from a Burger
// entity dump and a ProGuard mapping file.
//
// Usage:
//
//	go run ./cmd/metagen                       # paths from config/metagen.yaml
//	go run ./cmd/metagen -out metadata.go      # override the output path
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/minefarer/metagen/internal/config"
	"github.com/minefarer/metagen/internal/gen"
	"github.com/minefarer/metagen/internal/schema"
)

const ConfigPath = "config/metagen.yaml"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := ConfigPath
	if p := os.Getenv("METAGEN_CONFIG"); p != "" {
		cfgPath = p
	}

	configFlag := flag.String("config", cfgPath, "path to generator config")
	outFlag := flag.String("out", "", "override the configured output path")
	flag.Parse()

	cfg, err := config.LoadGenerator(*configFlag)
	if err != nil {
		return err
	}
	if *outFlag != "" {
		cfg.OutputPath = *outFlag
	}

	slog.Info("metagen starting", "burger", cfg.BurgerPath, "mappings", cfg.MappingsPath)

	var (
		dump *schema.Dump
		maps *schema.Mappings
	)
	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		var err error
		dump, err = schema.LoadDump(cfg.BurgerPath)
		return err
	})
	g.Go(func() error {
		var err error
		maps, err = schema.LoadMappings(cfg.MappingsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	src, err := gen.Generate(dump, maps, cfg.OutputPackage)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(cfg.OutputPath, src, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}

	slog.Info("generated", "path", cfg.OutputPath, "entities", len(dump.Entities), "bytes", len(src))
	return nil
}
