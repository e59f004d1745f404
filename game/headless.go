package game

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lixenwraith/outrun/asset"
	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/render"
	"github.com/lixenwraith/outrun/render/canvas"
)

// RenderFrames drives the world with the accelerator held for n fixed steps and writes
// one PNG per step into dir, returning the written paths
func RenderFrames(w *engine.World, sheets asset.Sheets, n int, dir string, log *slog.Logger) ([]string, error) {
	log = core.Logger(log)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	pipeline := render.NewPipeline(sheets.Sprites, sheets.Background)
	c := canvas.New(w.Config.Width, w.Config.Height)
	defer c.Close()

	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		w.Player.Controls = engine.Controls{Accelerate: true}
		w.Update(parameter.SimulationStep)
		pipeline.Frame(c, w)
		if err := c.Err(); err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("frame%04d.png", i))
		if err := c.SavePNG(path); err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	log.Info("frames written", "count", n, "dir", dir)
	return paths, nil
}
