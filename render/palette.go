package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/lixenwraith/outrun/track"
)

// Palette colors one road segment
type Palette struct {
	Road, Grass, Rumble color.NRGBA
	Lane                color.NRGBA
	HasLanes            bool
}

// Scene colors
var (
	SkyColor  = mustColor("#72D7EE")
	TreeColor = mustColor("#005108")
	FogColor  = mustColor("#005108")
)

var palettes = [...]Palette{
	track.ColorLight: {
		Road: mustColor("#6B6B6B"), Grass: mustColor("#10AA10"), Rumble: mustColor("#555555"),
		Lane: mustColor("#CCCCCC"), HasLanes: true,
	},
	track.ColorDark: {
		Road: mustColor("#696969"), Grass: mustColor("#009A00"), Rumble: mustColor("#BBBBBB"),
	},
	track.ColorStart: {
		Road: mustColor("white"), Grass: mustColor("white"), Rumble: mustColor("white"),
	},
	track.ColorFinish: {
		Road: mustColor("black"), Grass: mustColor("black"), Rumble: mustColor("black"),
	},
}

// PaletteFor returns the palette of a segment color, light for unknown values
func PaletteFor(c track.Color) Palette {
	if int(c) >= len(palettes) {
		return palettes[track.ColorLight]
	}
	return palettes[c]
}

// ParseColor accepts #rrggbb or an SVG color name
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// WithAlpha returns c at opacity a in [0, 1]
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	a = max(0, min(1, a))
	c.A = uint8(a*255 + 0.5)
	return c
}

func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
