// Command mazegen generates a batch of maze documents into a directory.
//
//	mazegen [flags] [difficulty] [count]
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"

	"github.com/beka-birhanu/vinom-mazegen/config"
	"github.com/beka-birhanu/vinom-mazegen/infrastruture/filestore"
	logger "github.com/beka-birhanu/vinom-mazegen/infrastruture/log"
	"github.com/beka-birhanu/vinom-mazegen/preset"
	"github.com/beka-birhanu/vinom-mazegen/service"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
)

const (
	defaultDifficulty = "easy"
	defaultCount      = 3
	baseSeedRange     = 1_000_000_000
)

var (
	bannerStyle = color.Style{color.FgCyan, color.OpBold}
	pathStyle   = color.Style{color.FgGreen}
	errorStyle  = color.Style{color.FgRed, color.OpBold}
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		errorStyle.Printf("mazegen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	envs, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("mazegen", flag.ContinueOnError)
	out := fs.String("out", envs.OutputDir, "directory the documents are written to")
	seed := fs.Int64("seed", 0, "base seed; random when unset")
	presetsFile := fs.String("presets", envs.PresetsFile, "YAML file with extra difficulty presets")
	workers := fs.Int("workers", envs.Workers, "concurrent builds")
	show := fs.Bool("print", false, "draw each maze after writing it")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: mazegen [flags] [difficulty] [count]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := i.BatchRequest{Difficulty: defaultDifficulty, Count: defaultCount}
	if fs.NArg() > 0 {
		req.Difficulty = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		req.Count, err = strconv.Atoi(fs.Arg(1))
		if err != nil {
			return fmt.Errorf("count must be an integer: %w", err)
		}
	}
	base := rand.Int63n(baseSeedRange)
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			base = *seed
		}
	})
	req.Seed = &base

	appLogger, err := logger.New("MAZEGEN", config.ColorGreen, os.Stderr)
	if err != nil {
		return err
	}
	if err := logger.SetLevel(appLogger, envs.LogLevel); err != nil {
		return err
	}

	presets := preset.Defaults()
	if *presetsFile != "" {
		presets, err = preset.LoadFile(*presetsFile)
		if err != nil {
			return err
		}
	}

	store := filestore.NewJSONStore(*out)
	batch, err := service.NewBatch(service.BatchConfig{
		Presets: presets,
		Builder: service.NewGenerator(appLogger),
		Store:   store,
		Workers: *workers,
		Logger:  appLogger,
	})
	if err != nil {
		return err
	}

	bannerStyle.Printf("Generating %d mazes, difficulty=%s, base_seed=%d\n", req.Count, req.Difficulty, base)
	result, err := batch.Run(context.Background(), req)
	if err != nil {
		return err
	}

	for _, item := range result.Mazes {
		pathStyle.Printf("  -> %s\n", item.Location)
		if *show {
			if err := draw(store, item.ID); err != nil {
				appLogger.WithFields(logrus.Fields{"id": item.ID}).WithError(err).Warn("drawing maze")
			}
		}
	}
	return nil
}

// draw prints the stored document with its path and traps.
func draw(store *filestore.JSONStore, id string) error {
	doc, err := store.Load(id)
	if err != nil {
		return err
	}
	out, err := doc.Render()
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
