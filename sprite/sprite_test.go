package sprite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryIDHasRegion(t *testing.T) {
	for _, id := range All() {
		r := id.Rect()
		assert.Positive(t, r.W, id.String())
		assert.Positive(t, r.H, id.String())
		assert.NotEqual(t, "unknown", id.String())
	}
	assert.False(t, None.Valid())
	assert.Equal(t, Rect{}, ID(255).Rect())
}

func TestGroupsAreValid(t *testing.T) {
	for _, group := range [][]ID{Billboards, Plants, Cars} {
		for _, id := range group {
			assert.True(t, id.Valid(), id.String())
		}
	}
	assert.Len(t, Billboards, 9)
	assert.Len(t, Cars, 6)
}

func TestPlayerFrame(t *testing.T) {
	assert.Equal(t, PlayerStraight, Player(0, false))
	assert.Equal(t, PlayerUphillStraight, Player(0, true))
	assert.Equal(t, PlayerLeft, Player(-1, false))
	assert.Equal(t, PlayerUphillLeft, Player(-1, true))
	assert.Equal(t, PlayerRight, Player(1, false))
	assert.Equal(t, PlayerUphillRight, Player(1, true))
}

func TestSheetBounds(t *testing.T) {
	w, h := SheetSize()
	assert.Equal(t, 1487, w)
	assert.Equal(t, 1482, h)

	bw, bh := BackgroundSize()
	assert.Equal(t, 1285, bw)
	assert.Equal(t, 1465, bh)
}
