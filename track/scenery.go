package track

import (
	"math/rand/v2"

	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/vmath"
)

var openingBillboards = []sprite.ID{
	sprite.Billboard07, sprite.Billboard06, sprite.Billboard08, sprite.Billboard09,
	sprite.Billboard01, sprite.Billboard02, sprite.Billboard03, sprite.Billboard04,
	sprite.Billboard05,
}

var sides = []float64{1, -1}

// PlaceScenery scatters roadside sprites in bands along the track
func (b *Builder) PlaceScenery(rng *rand.Rand) {
	n := len(b.t.Segments)

	// Billboard run on the left of the opening straight
	for i, id := range openingBillboards {
		b.AddSprite(20*(i+1), id, -1)
	}

	// Gateway pairs after the opening and before the finish
	for _, at := range []int{240, n - 25} {
		b.AddSprite(at, sprite.Billboard07, -1.2)
		b.AddSprite(at, sprite.Billboard06, 1.2)
	}

	// Palms thinning out over the first 200 segments
	for i := 10; i < 200; i += 4 + i/100 {
		b.AddSprite(i, sprite.PalmTree, 0.5+rng.Float64()*0.5)
		b.AddSprite(i, sprite.PalmTree, 1+rng.Float64()*2)
	}

	// Colonnade on the right, woods on the left
	for i := 250; i < 1000; i += 5 {
		b.AddSprite(i, sprite.Column, 1.1)
		b.AddSprite(i+vmath.RandomInt(rng, 0, 5), sprite.Tree1, -1-rng.Float64()*2)
		b.AddSprite(i+vmath.RandomInt(rng, 0, 5), sprite.Tree2, -1-rng.Float64()*2)
	}

	// Sparse plants everywhere past the opening
	for i := 200; i < n; i += 3 {
		b.AddSprite(i, vmath.RandomChoice(rng, sprite.Plants),
			vmath.RandomChoice(rng, sides)*(2+rng.Float64()*5))
	}

	// Clusters: a billboard facing a thicket every 100 segments
	for i := 1000; i < n-50; i += 100 {
		side := vmath.RandomChoice(rng, sides)
		b.AddSprite(i+vmath.RandomInt(rng, 0, 50), vmath.RandomChoice(rng, sprite.Billboards), -side)
		for j := 0; j < 20; j++ {
			b.AddSprite(i+vmath.RandomInt(rng, 0, 50), vmath.RandomChoice(rng, sprite.Plants), side*(1.5+rng.Float64()))
		}
	}
}
