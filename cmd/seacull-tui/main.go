// Command seacull-tui runs the sea culler against the in-memory sea host and
// draws tile activity in the terminal.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"seacull/internal/config"
	"seacull/internal/sea"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	logPath := flag.String("log", "", "write culling logs to this file")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)

	logger := log.New(io.Discard, "", 0)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		logger = log.New(f, "[seacull] ", log.LstdFlags)
	}

	world := sea.NewWorld(cfg)
	if err := world.LoadLayouts(cfg.Sea.LayoutFile); err != nil {
		log.Fatalf("Failed to load scene layouts: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = newApp(cfg, world, screen, logger).Run(ctx)
	stop()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
