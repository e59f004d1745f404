// Package asset provides the sprite and background sheets, loaded from PNG files or drawn
// procedurally when no art is supplied
package asset

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/outrun/render"
	"github.com/lixenwraith/outrun/sprite"
)

// ErrSheetTooSmall is returned when a loaded sheet does not cover every atlas region
var ErrSheetTooSmall = errors.New("sheet does not cover the atlas")

// Sheets holds the two images the render pipeline samples from
type Sheets struct {
	Sprites    image.Image
	Background image.Image
}

// Load reads both sheets from PNG files and checks they cover the atlas
func Load(spritesPath, backgroundPath string) (Sheets, error) {
	sprites, err := loadPNG(spritesPath)
	if err != nil {
		return Sheets{}, err
	}
	background, err := loadPNG(backgroundPath)
	if err != nil {
		return Sheets{}, err
	}

	sw, sh := sprite.SheetSize()
	if b := sprites.Bounds(); b.Dx() < sw || b.Dy() < sh {
		return Sheets{}, fmt.Errorf("%w: sprites %dx%d, need %dx%d", ErrSheetTooSmall, b.Dx(), b.Dy(), sw, sh)
	}
	bw, bh := sprite.BackgroundSize()
	if b := background.Bounds(); b.Dx() < bw || b.Dy() < bh {
		return Sheets{}, fmt.Errorf("%w: background %dx%d, need %dx%d", ErrSheetTooSmall, b.Dx(), b.Dy(), bw, bh)
	}
	return Sheets{Sprites: sprites, Background: background}, nil
}

func loadPNG(path string) (image.Image, error) {
	buf, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return buf.ToStdImage(), nil
}

// Generate draws placeholder art for every atlas region
func Generate() Sheets {
	return Sheets{
		Sprites:    generateSprites(),
		Background: generateBackground(),
	}
}

var (
	leafGreen  = color.NRGBA{R: 0x1e, G: 0x7a, B: 0x2c, A: 255}
	darkLeaf   = color.NRGBA{R: 0x10, G: 0x4e, B: 0x1a, A: 255}
	trunkBrown = color.NRGBA{R: 0x6b, G: 0x42, B: 0x1e, A: 255}
	stoneGray  = color.NRGBA{R: 0x8a, G: 0x86, B: 0x80, A: 255}
	columnTan  = color.NRGBA{R: 0xd8, G: 0xc8, B: 0xa0, A: 255}
	glassBlue  = color.NRGBA{R: 0x30, G: 0x40, B: 0x60, A: 255}
	tireBlack  = color.NRGBA{R: 0x18, G: 0x18, B: 0x18, A: 255}
	sandCactus = color.NRGBA{R: 0x4c, G: 0x8c, B: 0x3c, A: 255}
	posterInk  = color.NRGBA{R: 0xf4, G: 0xf0, B: 0xe0, A: 255}
)

var billboardColors = []color.NRGBA{
	{R: 0xe0, G: 0x40, B: 0x40, A: 255}, {R: 0x40, G: 0x70, B: 0xe0, A: 255},
	{R: 0xf0, G: 0xb0, B: 0x20, A: 255}, {R: 0x90, G: 0x40, B: 0xc0, A: 255},
	{R: 0x20, G: 0xa0, B: 0xa0, A: 255},
}

var carColors = []color.NRGBA{
	{R: 0xd0, G: 0x20, B: 0x20, A: 255}, {R: 0x20, G: 0x60, B: 0xd0, A: 255},
	{R: 0xe0, G: 0xd0, B: 0x20, A: 255}, {R: 0x20, G: 0xb0, B: 0x40, A: 255},
	{R: 0xe0, G: 0xe0, B: 0xe0, A: 255}, {R: 0x90, G: 0x60, B: 0x30, A: 255},
}

func generateSprites() image.Image {
	w, h := sprite.SheetSize()
	dc := gg.NewContext(w, h)
	defer dc.Close()

	for i, id := range sprite.All() {
		r := sprite.Rect(id.Rect())
		x, y, rw, rh := float64(r.X), float64(r.Y), float64(r.W), float64(r.H)
		switch {
		case isIn(id, sprite.Billboards):
			billboard(dc, x, y, rw, rh, billboardColors[i%len(billboardColors)])
		case isIn(id, sprite.Cars):
			vehicle(dc, x, y, rw, rh, carColors[i%len(carColors)])
		case id >= sprite.PlayerUphillLeft:
			vehicle(dc, x, y, rw, rh, carColors[0])
		default:
			plant(dc, id, x, y, rw, rh)
		}
	}
	return dc.Image()
}

func isIn(id sprite.ID, group []sprite.ID) bool {
	for _, g := range group {
		if g == id {
			return true
		}
	}
	return false
}

func fill(dc *gg.Context, c color.NRGBA) {
	dc.SetColor(c)
	_ = dc.Fill()
}

func billboard(dc *gg.Context, x, y, w, h float64, c color.NRGBA) {
	dc.DrawRectangle(x+w*0.2, y+h*0.6, w*0.06, h*0.4)
	dc.DrawRectangle(x+w*0.74, y+h*0.6, w*0.06, h*0.4)
	fill(dc, trunkBrown)
	dc.DrawRectangle(x, y, w, h*0.65)
	fill(dc, c)
	dc.DrawRectangle(x+w*0.1, y+h*0.15, w*0.8, h*0.12)
	dc.DrawRectangle(x+w*0.1, y+h*0.38, w*0.55, h*0.1)
	fill(dc, posterInk)
}

func vehicle(dc *gg.Context, x, y, w, h float64, c color.NRGBA) {
	dc.DrawRectangle(x+w*0.05, y+h*0.7, w*0.22, h*0.3)
	dc.DrawRectangle(x+w*0.73, y+h*0.7, w*0.22, h*0.3)
	fill(dc, tireBlack)
	dc.DrawRoundedRectangle(x, y+h*0.3, w, h*0.5, h*0.1)
	fill(dc, c)
	dc.DrawRoundedRectangle(x+w*0.18, y, w*0.64, h*0.4, h*0.08)
	fill(dc, c)
	dc.DrawRectangle(x+w*0.24, y+h*0.06, w*0.52, h*0.26)
	fill(dc, glassBlue)
}

func plant(dc *gg.Context, id sprite.ID, x, y, w, h float64) {
	switch id {
	case sprite.Boulder1, sprite.Boulder2, sprite.Boulder3:
		dc.DrawEllipse(x+w/2, y+h*0.6, w/2, h*0.4)
		fill(dc, stoneGray)
	case sprite.Column:
		dc.DrawRectangle(x+w*0.25, y+h*0.08, w*0.5, h*0.86)
		dc.DrawRectangle(x+w*0.1, y, w*0.8, h*0.08)
		dc.DrawRectangle(x+w*0.1, y+h*0.94, w*0.8, h*0.06)
		fill(dc, columnTan)
	case sprite.Stump, sprite.DeadTree1, sprite.DeadTree2:
		dc.DrawRectangle(x+w*0.35, y, w*0.3, h)
		fill(dc, trunkBrown)
	case sprite.Cactus:
		dc.DrawRoundedRectangle(x+w*0.4, y, w*0.2, h, w*0.1)
		dc.DrawRoundedRectangle(x+w*0.1, y+h*0.3, w*0.8, h*0.18, w*0.08)
		fill(dc, sandCactus)
	case sprite.Bush1, sprite.Bush2:
		dc.DrawEllipse(x+w/2, y+h*0.55, w/2, h*0.45)
		fill(dc, darkLeaf)
	default:
		dc.DrawRectangle(x+w*0.42, y+h*0.5, w*0.16, h*0.5)
		fill(dc, trunkBrown)
		dc.DrawEllipse(x+w/2, y+h*0.3, w/2, h*0.3)
		fill(dc, leafGreen)
	}
}

func generateBackground() image.Image {
	w, h := sprite.BackgroundSize()
	dc := gg.NewContext(w, h)
	defer dc.Close()

	sky := sprite.LayerSky.Rect()
	dc.DrawRectangle(float64(sky.X), float64(sky.Y), float64(sky.W), float64(sky.H))
	fill(dc, render.SkyColor)
	for i := 0; i < 6; i++ {
		cx := float64(sky.X) + float64(sky.W)*(0.08+0.16*float64(i))
		cy := float64(sky.Y) + float64(sky.H)*(0.2+0.1*float64(i%2))
		dc.DrawEllipse(cx, cy, 70, 22)
		fill(dc, color.NRGBA{R: 255, G: 255, B: 255, A: 220})
	}

	hills := sprite.LayerHills.Rect()
	for i := 0; i < 5; i++ {
		cx := float64(hills.X) + float64(hills.W)*(0.1+0.2*float64(i))
		dc.DrawEllipse(cx, float64(hills.Y+hills.H), float64(hills.W)*0.16, float64(hills.H)*(0.35+0.1*float64(i%3)))
		fill(dc, color.NRGBA{R: 0x3c, G: 0x8a, B: 0x4a, A: 255})
	}

	trees := sprite.LayerTrees.Rect()
	for i := 0; i < 32; i++ {
		cx := float64(trees.X) + float64(trees.W)*(float64(i)+0.5)/32
		top := float64(trees.Y+trees.H) - float64(trees.H)*(0.18+0.07*float64(i%4))
		dc.MoveTo(cx-24, float64(trees.Y+trees.H))
		dc.LineTo(cx, top)
		dc.LineTo(cx+24, float64(trees.Y+trees.H))
		dc.ClosePath()
		fill(dc, render.TreeColor)
	}
	return dc.Image()
}
