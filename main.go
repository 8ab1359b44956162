package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"Paintix/internal/config"
	"Paintix/internal/geometry"
	pnet "Paintix/internal/net"
	"Paintix/internal/state"
	"Paintix/internal/ui"

	"github.com/hashicorp/mdns"
	"honnef.co/go/curve"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	discover := flag.Duration("discover", 0, "list mirrors on the local network for this long, then exit")
	flag.Parse()

	if *discover > 0 {
		err := pnet.Discover(*discover, func(name, addr string) {
			fmt.Printf("%s\thttp://%s/canvas.svg\n", name, addr)
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	run(cfg, logger)
}

func run(cfg config.Config, logger *slog.Logger) {
	store := state.NewStore(state.Initial(cfg.ToolSetting()), logger)
	logical := curve.Sz(cfg.Canvas.Width, cfg.Canvas.Height)

	var mirror *pnet.Mirror
	if cfg.Mirror.Enabled {
		mirror = pnet.NewMirror(store.View(), logical, logger)
		store.Subscribe(mirror.Publish)
	}

	var board *ui.Board
	translator := geometry.NewTranslator(store,
		geometry.WithLogicalSize(cfg.Canvas.Width, cfg.Canvas.Height),
		geometry.WithLogger(logger),
		geometry.WithFill(func(c string) {
			board.SetBackground(c)
			if mirror != nil {
				mirror.SetBackground(c)
			}
		}),
	)
	board = ui.NewBoard(store, translator, logical)
	defer board.Detach()

	footer := "Mirror off"
	if mirror != nil {
		var stop func()
		footer, stop = startMirror(cfg.Mirror, mirror, logger)
		defer stop()
	}

	ui.RunApp(ui.Options{
		Title:   cfg.Window.Title,
		Width:   cfg.Window.Width,
		Height:  cfg.Window.Height,
		Palette: cfg.Palette,
		Footer:  footer,
	}, store, board)
}

// startMirror serves the mirror in the background and advertises it when
// configured. It returns the footer text and a function that stops both.
func startMirror(mc config.MirrorConfig, mirror *pnet.Mirror, logger *slog.Logger) (string, func()) {
	go func() {
		if err := mirror.ListenAndServe(mc.Addr); err != nil {
			logger.Error("mirror stopped", "err", err)
		}
	}()

	var announcer *mdns.Server
	if mc.MDNS {
		if port, err := pnet.Port(mc.Addr); err != nil {
			logger.Warn("mDNS disabled", "err", err)
		} else if announcer, err = pnet.Advertise(mc.Instance, port); err != nil {
			logger.Warn("mDNS disabled", "err", err)
		} else {
			logger.Info("advertising mirror", "service", pnet.ServiceType, "port", port)
		}
	}

	stop := func() {
		if announcer != nil {
			announcer.Shutdown()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := mirror.Shutdown(ctx); err != nil {
			logger.Warn("mirror shutdown", "err", err)
		}
	}

	url, err := pnet.ShareURL(mc.Addr)
	if err != nil {
		logger.Warn("no share link", "err", err)
		return "Mirror on " + mc.Addr, stop
	}
	logger.Info("mirror ready", "url", url)
	return "Watch at " + url, stop
}
