package asset

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outrun/sprite"
)

func TestGenerateCoversAtlas(t *testing.T) {
	s := Generate()

	sw, sh := sprite.SheetSize()
	assert.Equal(t, sw, s.Sprites.Bounds().Dx())
	assert.Equal(t, sh, s.Sprites.Bounds().Dy())

	bw, bh := sprite.BackgroundSize()
	assert.Equal(t, bw, s.Background.Bounds().Dx())
	assert.Equal(t, bh, s.Background.Bounds().Dy())
}

func TestGeneratePaintsEverySprite(t *testing.T) {
	s := Generate()
	for _, id := range sprite.All() {
		r := id.Rect()
		painted := false
		for y := r.Y; y < r.Y+r.H && !painted; y += 2 {
			for x := r.X; x < r.X+r.W; x += 2 {
				if _, _, _, a := s.Sprites.At(x, y).RGBA(); a != 0 {
					painted = true
					break
				}
			}
		}
		assert.True(t, painted, "sprite %s has no visible pixels", id)
	}
}

func TestGenerateSkyIsOpaque(t *testing.T) {
	s := Generate()
	r := sprite.LayerSky.Rect()
	_, _, _, a := s.Background.At(r.X+r.W/2, r.Y+r.H-1).RGBA()
	assert.NotZero(t, a)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := Generate()

	sp := filepath.Join(dir, "sprites.png")
	bp := filepath.Join(dir, "background.png")
	writePNG(t, sp, s.Sprites)
	writePNG(t, bp, s.Background)

	loaded, err := Load(sp, bp)
	require.NoError(t, err)
	assert.Equal(t, s.Sprites.Bounds().Size(), loaded.Sprites.Bounds().Size())
	assert.Equal(t, s.Background.Bounds().Size(), loaded.Background.Bounds().Size())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.png"), filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	sp := filepath.Join(dir, "sprites.png")
	writePNG(t, sp, Generate().Sprites)
	tiny := filepath.Join(dir, "tiny.png")
	writePNG(t, tiny, image.NewNRGBA(image.Rect(0, 0, 8, 8)))

	_, err = Load(tiny, sp)
	assert.ErrorIs(t, err, ErrSheetTooSmall)

	_, err = Load(sp, tiny)
	assert.ErrorIs(t, err, ErrSheetTooSmall)
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}
