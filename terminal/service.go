package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outrun/core"
)

// Screen owns a tcell screen, its event polling goroutine and the frame presenter
type Screen struct {
	screen  tcell.Screen
	eventCh chan tcell.Event
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool

	presenter
}

// New wraps s, or the real terminal when s is nil, and initializes it
func New(s tcell.Screen) (*Screen, error) {
	if s == nil {
		var err error
		if s, err = tcell.NewScreen(); err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	s.HideCursor()
	s.Clear()

	return &Screen{
		screen:  s,
		eventCh: make(chan tcell.Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start launches input polling
func (s *Screen) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	core.Go(s.pollLoop)
}

func (s *Screen) pollLoop() {
	defer close(s.doneCh)

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.eventCh <- ev:
		case <-s.stopCh:
			return
		}
	}
}

// Events returns the input event channel
func (s *Screen) Events() <-chan tcell.Event {
	return s.eventCh
}

// Size returns the terminal size in cells
func (s *Screen) Size() (cols, rows int) {
	return s.screen.Size()
}

// Fini stops polling and restores the terminal; safe to call more than once
func (s *Screen) Fini() {
	s.mu.Lock()
	wasRunning := s.running
	s.running = false
	select {
	case <-s.stopCh:
		s.mu.Unlock()
		return
	default:
		close(s.stopCh)
	}
	s.mu.Unlock()

	// Fini makes PollEvent return nil, which ends the poll loop
	s.screen.Fini()
	if wasRunning {
		<-s.doneCh
	}
}
