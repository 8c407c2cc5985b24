package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/mazegen/audio"
	"github.com/lixenwraith/mazegen/config"
	"github.com/lixenwraith/mazegen/game"
	"github.com/lixenwraith/mazegen/render"
	"github.com/lixenwraith/mazegen/store"
	"github.com/lixenwraith/mazegen/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mMAZEGEN CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mazegen: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		log.Printf("Exit with error: %v", err)
		fmt.Fprintf(os.Stderr, "mazegen: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource that needs cleanup
func run(cfg config.Config) error {
	st, closer, err := store.Open(cfg.StoreOptions())
	if err != nil {
		return err
	}
	defer closer.Close()

	sound, err := audio.NewPlayer(cfg.Sound)
	if err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer sound.Close()

	term, err := terminal.New(cfg.Backend, render.DefaultGlyphs)
	if err != nil {
		return err
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer term.Fini()

	if cols, rows := term.Size(); cols < requiredColumns(cfg.Width) || rows < 2*cfg.Height+3 {
		log.Printf("Terminal %dx%d is smaller than the %dx%d maze needs", cols, rows, requiredColumns(cfg.Width), 2*cfg.Height+3)
	}

	g, err := game.New(game.Options{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Delay:  cfg.Delay(),
		Glyphs: render.DefaultGlyphs,
	}, st, sound, term)
	if err != nil {
		return err
	}

	ctx := context.Background()
	log.Printf("Starting %dx%d session, backend %s, store %s", cfg.Width, cfg.Height, cfg.Backend, cfg.Store)

	// Generation runs to completion before any input is read
	if err := g.Start(ctx); err != nil {
		return err
	}
	for g.Handle(ctx, term.PollCommand()) {
	}
	log.Printf("Session ended: %s", g.Stats())
	return nil
}

func requiredColumns(width int) int {
	units := max(2*width+1, render.MessageWidth/render.ColumnsPerUnit)
	return units * render.ColumnsPerUnit
}
