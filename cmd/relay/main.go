// Command relay fans racer snapshots out to every connected player
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/relay"
)

var (
	addrFlag      = flag.String("addr", parameter.RelayDefaultAddress, "Listen address")
	transportFlag = flag.String("transport", "tcp", "Transport: tcp or ws")
	rateFlag      = flag.Int("rate", int(time.Second/parameter.RelayTickInterval), "Roster broadcasts per second")
	debugFlag     = flag.Bool("debug", false, "Log every join and leave")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debugFlag {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("relay stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	if *rateFlag <= 0 {
		return fmt.Errorf("rate must be positive, got %d", *rateFlag)
	}
	kind, err := network.ParseKind(*transportFlag)
	if err != nil {
		return err
	}

	r := relay.New(time.Second/time.Duration(*rateFlag), log.With("component", "relay"))
	cfg := network.ServerConfig(kind, *addrFlag)

	switch kind {
	case network.KindWS:
		mux := http.NewServeMux()
		mux.Handle(cfg.Path, relay.NewWSHandler(r, cfg, log))
		srv := &http.Server{Addr: cfg.Address, Handler: mux, ReadHeaderTimeout: cfg.ConnectTimeout}

		errCh := make(chan error, 1)
		core.Go(func() { errCh <- srv.ListenAndServe() })
		log.Info("listening", "transport", kind, "addr", cfg.Address, "path", cfg.Path)

		core.Go(func() { r.Run(ctx) })
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

	default:
		t := network.NewTransport(cfg, log.With("component", "transport"))
		relay.AttachTCP(r, t, log)
		if err := t.Start(); err != nil {
			return err
		}
		defer t.Stop()
		log.Info("listening", "transport", kind, "addr", t.Addr())

		r.Run(ctx)
	}

	log.Info("shutdown", "dropped", r.Dropped())
	return nil
}
