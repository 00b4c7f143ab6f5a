//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"picotris/app"
	"picotris/config"
	"picotris/hal"
)

func main() {
	var (
		headless   bool
		cfg        hal.HeadlessConfig
		opt        hal.HostOptions
		configPath string
		seed       uint
		scale      int
		mute       bool
	)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 200, "Loop rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N loop iterations in headless mode (0 = run forever).")
	flag.BoolVar(&opt.Demo, "demo", false, "Drive the buttons from a fixed script.")
	flag.StringVar(&configPath, "config", "", "YAML config file (default: embedded defaults).")
	flag.UintVar(&seed, "seed", 0, "Piece generator seed (0 = random).")
	flag.IntVar(&scale, "scale", 4, "Window scale factor.")
	flag.BoolVar(&mute, "mute", false, "Disable sound.")
	flag.Parse()

	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if seed != 0 {
		c.Seed = uint32(seed)
	}
	opt.Audio = !headless && !mute && c.Music.Enabled
	opt.Volume = c.Music.Volume

	newApp := func(h hal.HAL) func() error { return app.New(h, c) }

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, opt, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(opt, newApp, scale); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
