// Package game runs the client loop: input, fixed-step simulation, relay sync and presentation
package game

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outrun/asset"
	"github.com/lixenwraith/outrun/config"
	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/input"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/render"
	"github.com/lixenwraith/outrun/render/canvas"
)

// Surface shows frames and produces input events; terminal.Screen implements it
type Surface interface {
	Events() <-chan tcell.Event
	Present(frame image.Image, status string)
	PixelSize() (w, h int)
}

// Sound reacts to the simulation; audio.SoundManager implements it
type Sound interface {
	SetSpeed(percent float64)
	OnEvents(ev engine.Events)
	ToggleMuted() bool
	Muted() bool
}

// Session owns the world and is the only goroutine that touches it
type Session struct {
	World *engine.World

	// FitSurface resizes the logical screen to the surface pixel size
	FitSurface bool
	// FrameInterval paces rendering
	FrameInterval time.Duration

	pipeline *render.Pipeline
	canvas   *canvas.Canvas
	driver   *engine.FrameDriver
	input    *input.Machine
	surface  Surface
	sound    Sound
	client   network.Client
	clock    engine.Clock
	log      *slog.Logger

	drawFailed bool
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithClient syncs with a relay
func WithClient(c network.Client) SessionOption {
	return func(s *Session) { s.client = c }
}

// WithSound plays engine and event sounds
func WithSound(snd Sound) SessionOption {
	return func(s *Session) { s.sound = snd }
}

// WithClock replaces the wall clock
func WithClock(c engine.Clock) SessionOption {
	return func(s *Session) { s.clock = c }
}

// WithKeyTable replaces the default bindings
func WithKeyTable(kt *input.KeyTable) SessionOption {
	return func(s *Session) { s.input = input.NewMachine(kt) }
}

// WithSessionLogger routes session diagnostics
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.log = core.Logger(l) }
}

// NewSession wires a world to a surface
func NewSession(w *engine.World, sheets asset.Sheets, surface Surface, opts ...SessionOption) *Session {
	s := &Session{
		World:         w,
		FitSurface:    true,
		FrameInterval: parameter.FrameInterval,
		pipeline:      render.NewPipeline(sheets.Sprites, sheets.Background),
		input:         input.NewMachine(nil),
		surface:       surface,
		clock:         engine.NewTimeProvider(),
		log:           core.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.driver = engine.NewFrameDriver(s.clock)
	return s
}

// Run drives frames until the player quits, ctx ends or the sync state becomes inconsistent
// Quitting and cancellation return nil
func (s *Session) Run(ctx context.Context) error {
	if err := s.fit(); err != nil {
		return err
	}
	defer s.closeCanvas()

	ticker := time.NewTicker(s.FrameInterval)
	defer ticker.Stop()

	for {
		var linkDone <-chan struct{}
		if s.client != nil {
			linkDone = s.client.Done()
		}

		select {
		case <-ctx.Done():
			return nil

		case ev := <-s.surface.Events():
			switch s.input.Handle(ev, s.clock.Now()) {
			case input.IntentQuit:
				return nil
			case input.IntentToggleMute:
				if s.sound != nil {
					s.log.Debug("mute toggled", "muted", s.sound.ToggleMuted())
				}
			case input.IntentResize:
				if err := s.fit(); err != nil {
					return err
				}
			}

		case <-linkDone:
			s.log.Warn("relay link lost, continuing offline")
			s.client = nil
			if err := s.World.ApplyRoster(network.Roster{}); err != nil {
				return err
			}

		case <-ticker.C:
			if err := s.Frame(); err != nil {
				return err
			}
		}
	}
}

// Frame advances the simulation by the elapsed wall time and presents once
func (s *Session) Frame() error {
	s.World.Player.Controls = s.input.Controls(s.clock.Now())

	if _, err := s.driver.Frame(s.step); err != nil {
		return err
	}
	if s.sound != nil {
		s.sound.SetSpeed(s.World.SpeedPercent())
	}

	if s.canvas == nil {
		if err := s.fit(); err != nil {
			return err
		}
	}
	s.pipeline.Frame(s.canvas, s.World)
	if err := s.canvas.Err(); err != nil && !s.drawFailed {
		s.drawFailed = true
		s.log.Warn("frame draw failed", "error", err)
	}
	s.surface.Present(s.canvas.Image(), s.Status().String())
	return nil
}

// step is one fixed update followed by the relay exchange
func (s *Session) step(dt float64) error {
	ev := s.World.Update(dt)
	if s.sound != nil && ev != 0 {
		s.sound.OnEvents(ev)
	}

	if s.client == nil {
		return nil
	}
	if err := s.client.Send(s.World.Snapshot()); err != nil {
		switch {
		case errors.Is(err, network.ErrQueueFull):
			s.log.Debug("snapshot dropped", "error", err)
		case errors.Is(err, network.ErrClosed):
			// Run notices the closed link and goes offline
		default:
			s.log.Warn("snapshot not sent", "error", err)
		}
	}

	select {
	case r := <-s.client.Rosters():
		if err := s.World.ApplyRoster(r); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
	default:
	}
	return nil
}

// Status collects the HUD line
func (s *Session) Status() Status {
	st := StatusOf(s.World)
	if s.client != nil {
		st.Online = true
		st.ID, _ = s.client.ID()
	}
	if s.sound != nil {
		st.Muted = s.sound.Muted()
	}
	return st
}

// fit matches the logical screen to the surface and reallocates the canvas on size changes
func (s *Session) fit() error {
	if s.FitSurface {
		w, h := s.surface.PixelSize()
		if w > 0 && h > 0 {
			ch, err := s.World.Reconfigure(config.Overrides{Width: &w, Height: &h})
			if err != nil {
				return err
			}
			if ch.Viewport {
				s.log.Debug("viewport resized", "width", w, "height", h)
			}
		}
	}

	cfg := s.World.Config
	if s.canvas != nil && s.canvas.Width() == cfg.Width && s.canvas.Height() == cfg.Height {
		return nil
	}
	s.closeCanvas()
	s.canvas = canvas.New(cfg.Width, cfg.Height)
	return nil
}

func (s *Session) closeCanvas() {
	if s.canvas != nil {
		s.canvas.Close()
		s.canvas = nil
	}
}
