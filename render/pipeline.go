package render

import (
	"image"
	"math"

	"github.com/lixenwraith/outrun/camera"
	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/vmath"
)

// Pipeline draws a world to a Renderer: background, road far to near, sprites near to far
type Pipeline struct {
	// Sprites is the sprite sheet, Background the parallax sheet; either may be nil
	Sprites    image.Image
	Background image.Image
}

// NewPipeline creates a pipeline over the two sheets
func NewPipeline(sprites, background image.Image) *Pipeline {
	return &Pipeline{Sprites: sprites, Background: background}
}

// Frame renders one frame of w
// Segment projections and the per-frame Fog, Clip and Looped fields are rewritten
func (p *Pipeline) Frame(r Renderer, w *engine.World) {
	cfg := &w.Config
	tr := w.Track
	pl := &w.Player
	width, height := float64(cfg.Width), float64(cfg.Height)
	length := tr.Length()

	baseSegment := tr.FindSegment(pl.Position)
	basePercent := vmath.PercentRemaining(pl.Position, tr.SegmentLength)
	playerSegment := tr.FindSegment(pl.Position + cfg.PlayerZ)
	playerPercent := vmath.PercentRemaining(pl.Position+cfg.PlayerZ, tr.SegmentLength)
	playerY := vmath.Interpolate(playerSegment.P1.World.Y, playerSegment.P2.World.Y, playerPercent)
	maxY := height

	r.Clear(SkyColor)

	p.background(r, width, height, sprite.LayerSky, w.Parallax.Sky, cfg.Resolution*parameter.SkySpeed*playerY)
	p.background(r, width, height, sprite.LayerHills, w.Parallax.Hill, cfg.Resolution*parameter.HillSpeed*playerY)
	p.background(r, width, height, sprite.LayerTrees, w.Parallax.Tree, cfg.Resolution*parameter.TreeSpeed*playerY)

	// Far walk: project and draw road, clipping behind hills already drawn
	x := 0.0
	dx := -(baseSegment.Curve * basePercent)
	n := tr.Len()
	for i := 0; i < cfg.DrawDistance; i++ {
		seg := &tr.Segments[(baseSegment.Index+i)%n]
		seg.Looped = seg.Index < baseSegment.Index
		seg.Fog = vmath.ExponentialFog(float64(i)/float64(cfg.DrawDistance), cfg.FogDensity)
		seg.Clip = maxY

		camZ := pl.Position
		if seg.Looped {
			camZ -= length
		}
		camY := playerY + cfg.CameraHeight
		camera.Project(&seg.P1, camera.Pose{X: pl.X*cfg.RoadWidth - x, Y: camY, Z: camZ, Depth: cfg.CameraDepth},
			cfg.Width, cfg.Height, cfg.RoadWidth)
		camera.Project(&seg.P2, camera.Pose{X: pl.X*cfg.RoadWidth - x - dx, Y: camY, Z: camZ, Depth: cfg.CameraDepth},
			cfg.Width, cfg.Height, cfg.RoadWidth)

		x += dx
		dx += seg.Curve

		if seg.P1.Camera.Z <= cfg.CameraDepth || // behind the camera
			seg.P2.Screen.Y >= seg.P1.Screen.Y || // back face
			seg.P2.Screen.Y >= maxY { // hidden by a nearer hill
			continue
		}

		roadSegment(r, width, cfg.Lanes,
			seg.P1.Screen.X, seg.P1.Screen.Y, seg.P1.Screen.W,
			seg.P2.Screen.X, seg.P2.Screen.Y, seg.P2.Screen.W,
			seg.Fog, PaletteFor(seg.Color))

		maxY = seg.P1.Screen.Y
	}

	// Near walk: sprites far to near so nearer ones overdraw
	for i := cfg.DrawDistance - 1; i >= 0; i-- {
		seg := &tr.Segments[(baseSegment.Index+i)%n]

		// The nearest segment sits under the camera; only the player may be drawn there
		if i > 0 {
			for _, id := range seg.Cars {
				car, ok := w.Vehicle(id)
				if !ok {
					continue
				}
				scale := vmath.Interpolate(seg.P1.Screen.Scale, seg.P2.Screen.Scale, car.Percent)
				sx := vmath.Interpolate(seg.P1.Screen.X, seg.P2.Screen.X, car.Percent) +
					scale*car.Offset*cfg.RoadWidth*width/2
				sy := vmath.Interpolate(seg.P1.Screen.Y, seg.P2.Screen.Y, car.Percent)
				p.sprite(r, width, cfg.RoadWidth, car.Sprite, scale, sx, sy, -0.5, -1, seg.Clip)
			}

			for _, s := range seg.Sprites {
				scale := seg.P1.Screen.Scale
				sx := seg.P1.Screen.X + scale*s.Offset*cfg.RoadWidth*width/2
				sy := seg.P1.Screen.Y
				anchor := 0.0
				if s.Offset < 0 {
					anchor = -1
				}
				p.sprite(r, width, cfg.RoadWidth, s.Sprite, scale, sx, sy, anchor, -1, seg.Clip)
			}
		}

		if seg == playerSegment {
			p.player(r, w, playerPercent)
		}
	}
}

// player draws the local car with a speed dependent shake
func (p *Pipeline) player(r Renderer, w *engine.World, playerPercent float64) {
	cfg := &w.Config
	seg := w.PlayerSegment()
	width, height := float64(cfg.Width), float64(cfg.Height)
	speedPercent := w.SpeedPercent()
	rng := w.Rand()

	scale := cfg.CameraDepth / cfg.PlayerZ
	destX := width / 2
	destY := height/2 - scale*vmath.Interpolate(seg.P1.Camera.Y, seg.P2.Camera.Y, playerPercent)*height/2
	bounce := parameter.PlayerBounce * rng.Float64() * speedPercent * cfg.Resolution * vmath.RandomSign(rng)

	uphill := seg.P2.World.Y-seg.P1.World.Y > 0
	id := sprite.Player(w.Player.Steer(), uphill)
	p.sprite(r, width, cfg.RoadWidth, id, scale, destX, destY+bounce, -0.5, -1, 0)
}

// sprite scales a sheet region to the road, anchors it and clips its bottom at clipY
// clipY of 0 disables clipping
func (p *Pipeline) sprite(r Renderer, width, roadWidth float64, id sprite.ID, scale, destX, destY, offsetX, offsetY, clipY float64) {
	src := id.Rect()
	sw, sh := float64(src.W), float64(src.H)
	destW := (sw * scale * width / 2) * (sprite.Scale * roadWidth)
	destH := (sh * scale * width / 2) * (sprite.Scale * roadWidth)

	destX += destW * offsetX
	destY += destH * offsetY

	clipH := 0.0
	if clipY != 0 {
		clipH = math.Max(0, destY+destH-clipY)
	}
	if clipH >= destH || destH <= 0 {
		return
	}
	r.DrawImageRegion(p.Sprites,
		Rect{X: float64(src.X), Y: float64(src.Y), W: sw, H: sh - sh*clipH/destH},
		Rect{X: destX, Y: destY, W: destW, H: destH - clipH})
}

// background blits half a layer scrolled by rotation, wrapping to the layer start when
// the window runs off its right edge
func (p *Pipeline) background(r Renderer, width, height float64, layer sprite.Layer, rotation, offset float64) {
	if p.Background == nil {
		return
	}
	l := layer.Rect()
	lx, ly, lw, lh := float64(l.X), float64(l.Y), float64(l.W), float64(l.H)
	imageW := lw / 2

	sourceX := lx + math.Floor(lw*rotation)
	sourceW := math.Min(imageW, lx+lw-sourceX)
	destW := math.Floor(width * (sourceW / imageW))

	r.DrawImageRegion(p.Background,
		Rect{X: sourceX, Y: ly, W: sourceW, H: lh},
		Rect{X: 0, Y: offset, W: destW, H: height})
	if sourceW < imageW {
		r.DrawImageRegion(p.Background,
			Rect{X: lx, Y: ly, W: imageW - sourceW, H: lh},
			Rect{X: destW - 1, Y: offset, W: width - destW, H: height})
	}
}
