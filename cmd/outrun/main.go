// Command outrun races a pseudo-3D road in the terminal, optionally synced with other players through a relay
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/outrun/asset"
	"github.com/lixenwraith/outrun/audio"
	"github.com/lixenwraith/outrun/config"
	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/game"
	"github.com/lixenwraith/outrun/input"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/terminal"
)

var (
	configFlag     = flag.String("config", "", "TOML file with road and camera overrides")
	keymapFlag     = flag.String("keymap", "", "TOML file with key bindings")
	connectFlag    = flag.String("connect", "", "Relay address to join (empty plays offline)")
	transportFlag  = flag.String("transport", "tcp", "Relay transport: tcp or ws")
	resFlag        = flag.String("res", "", "Resolution preset: low, medium, high, ultra (default fits the terminal)")
	seedFlag       = flag.Uint64("seed", 0, "Scenery seed (0 picks one)")
	spritesFlag    = flag.String("sprites", "", "Sprite sheet PNG (default is generated)")
	backgroundFlag = flag.String("background", "", "Background sheet PNG, used with -sprites")
	muteFlag       = flag.Bool("mute", false, "Start with sound off")
	debugFlag      = flag.Bool("debug", false, "Write logs to logs/outrun.log")
	framesFlag     = flag.Int("frames", 0, "Render N frames to PNG without a terminal and exit")
	outFlag        = flag.String("out", "frames", "Output directory for -frames")
)

func main() {
	flag.Parse()

	log, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(log); err != nil {
		log.Error("exit", "error", err)
		fmt.Fprintf(os.Stderr, "outrun: %v\n", err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := *seedFlag
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Info("starting", "seed", seed, "width", cfg.Width, "height", cfg.Height)

	world, err := engine.NewWorld(cfg,
		engine.WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		engine.WithLogger(log.With("component", "world")),
	)
	if err != nil {
		return err
	}

	sheets, err := loadSheets()
	if err != nil {
		return err
	}

	if *framesFlag > 0 {
		paths, err := game.RenderFrames(world, sheets, *framesFlag, *outFlag, log)
		if err != nil {
			return err
		}
		fmt.Printf("wrote %d frames to %s\n", len(paths), *outFlag)
		return nil
	}

	keys := input.DefaultKeyTable()
	if *keymapFlag != "" {
		if keys, err = input.LoadKeyFile(*keymapFlag); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []game.SessionOption{
		game.WithKeyTable(keys),
		game.WithSessionLogger(log.With("component", "session")),
	}

	if *connectFlag != "" {
		kind, err := network.ParseKind(*transportFlag)
		if err != nil {
			return err
		}
		netCfg := network.ClientConfig(kind, *connectFlag)
		dialCtx, cancel := context.WithTimeout(ctx, netCfg.ConnectTimeout)
		client, err := network.Dial(dialCtx, netCfg, log.With("component", "network"))
		cancel()
		if err != nil {
			return fmt.Errorf("connect %s: %w", *connectFlag, err)
		}
		defer client.Close()
		opts = append(opts, game.WithClient(client))
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable", "error", err)
	} else {
		defer sound.Cleanup()
		sound.SetMuted(*muteFlag)
		opts = append(opts, game.WithSound(sound))
	}

	screen, err := terminal.New(nil)
	if err != nil {
		return err
	}
	core.SetCrashTerminal(screen)
	defer func() {
		core.SetCrashTerminal(nil)
		screen.Fini()
	}()
	screen.Start()

	session := game.NewSession(world, sheets, screen, opts...)
	session.FitSurface = *resFlag == ""

	start := time.Now()
	err = session.Run(ctx)
	log.Info("session ended", "elapsed", time.Since(start), "laps", session.Status().Laps)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadConfig layers the config file over the defaults; -res replaces any file size
func loadConfig() (config.Config, error) {
	var ov config.Overrides
	if *configFlag != "" {
		fileOv, err := config.LoadFile(*configFlag)
		if err != nil {
			return config.Config{}, err
		}
		ov = ov.Merge(fileOv)
	}
	if *resFlag != "" {
		res := *resFlag
		ov.Width, ov.Height = nil, nil
		ov = ov.Merge(config.Overrides{Resolution: &res})
	}
	cfg, _, err := config.Apply(config.Default(), ov)
	return cfg, err
}

func loadSheets() (asset.Sheets, error) {
	if *spritesFlag == "" {
		return asset.Generate(), nil
	}
	if *backgroundFlag == "" {
		return asset.Sheets{}, errors.New("-sprites requires -background")
	}
	return asset.Load(*spritesFlag, *backgroundFlag)
}
