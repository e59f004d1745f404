// Package sprite defines the sprite sheet atlas: regions for roadside scenery, vehicles, the
// player car and the three parallax background layers
package sprite

import "image"

// ID names a region of the sprite sheet
type ID uint8

const (
	None ID = iota

	PalmTree
	Billboard08
	Tree1
	DeadTree1
	Billboard09
	Boulder3
	Column
	Billboard01
	Billboard06
	Billboard05
	Billboard07
	Boulder2
	Tree2
	Billboard04
	DeadTree2
	Boulder1
	Bush1
	Cactus
	Bush2
	Billboard03
	Billboard02
	Stump

	Semi
	Truck
	Car03
	Car02
	Car04
	Car01

	PlayerUphillLeft
	PlayerUphillStraight
	PlayerUphillRight
	PlayerLeft
	PlayerStraight
	PlayerRight

	idCount
)

// Rect is a sheet region in source pixels
type Rect struct {
	X, Y, W, H int
}

// Image converts the region to an image rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

var rects = [idCount]Rect{
	PalmTree:    {5, 5, 215, 540},
	Billboard08: {230, 5, 385, 265},
	Tree1:       {625, 5, 360, 360},
	DeadTree1:   {5, 555, 135, 332},
	Billboard09: {150, 555, 328, 282},
	Boulder3:    {230, 280, 320, 220},
	Column:      {995, 5, 200, 315},
	Billboard01: {625, 375, 300, 170},
	Billboard06: {488, 555, 298, 190},
	Billboard05: {5, 897, 298, 190},
	Billboard07: {313, 897, 298, 190},
	Boulder2:    {621, 897, 298, 140},
	Tree2:       {1205, 5, 282, 295},
	Billboard04: {1205, 310, 268, 170},
	DeadTree2:   {1205, 490, 150, 260},
	Boulder1:    {1205, 760, 168, 248},
	Bush1:       {5, 1097, 240, 155},
	Cactus:      {929, 897, 235, 118},
	Bush2:       {255, 1097, 232, 152},
	Billboard03: {5, 1262, 230, 220},
	Billboard02: {245, 1262, 215, 220},
	Stump:       {995, 330, 195, 140},

	Semi:  {1365, 490, 122, 144},
	Truck: {1365, 644, 100, 78},
	Car03: {1383, 760, 88, 55},
	Car02: {1383, 825, 80, 59},
	Car04: {1383, 894, 80, 57},
	Car01: {1205, 1018, 80, 56},

	PlayerUphillLeft:     {1383, 961, 80, 45},
	PlayerUphillStraight: {1295, 1018, 80, 45},
	PlayerUphillRight:    {1385, 1018, 80, 45},
	PlayerLeft:           {995, 480, 80, 41},
	PlayerStraight:       {1085, 480, 80, 41},
	PlayerRight:          {995, 531, 80, 41},
}

var names = [idCount]string{
	None: "none", PalmTree: "palm_tree", Billboard08: "billboard08", Tree1: "tree1",
	DeadTree1: "dead_tree1", Billboard09: "billboard09", Boulder3: "boulder3", Column: "column",
	Billboard01: "billboard01", Billboard06: "billboard06", Billboard05: "billboard05",
	Billboard07: "billboard07", Boulder2: "boulder2", Tree2: "tree2", Billboard04: "billboard04",
	DeadTree2: "dead_tree2", Boulder1: "boulder1", Bush1: "bush1", Cactus: "cactus", Bush2: "bush2",
	Billboard03: "billboard03", Billboard02: "billboard02", Stump: "stump",
	Semi: "semi", Truck: "truck", Car03: "car03", Car02: "car02", Car04: "car04", Car01: "car01",
	PlayerUphillLeft: "player_uphill_left", PlayerUphillStraight: "player_uphill_straight",
	PlayerUphillRight: "player_uphill_right", PlayerLeft: "player_left",
	PlayerStraight: "player_straight", PlayerRight: "player_right",
}

// Rect returns the sheet region, zero for unknown IDs
func (id ID) Rect() Rect {
	if id >= idCount {
		return Rect{}
	}
	return rects[id]
}

// Valid reports whether id names a sheet region
func (id ID) Valid() bool {
	return id > None && id < idCount
}

func (id ID) String() string {
	if id >= idCount {
		return "unknown"
	}
	return names[id]
}

// All returns every valid sprite ID in sheet order
func All() []ID {
	ids := make([]ID, 0, idCount-1)
	for id := None + 1; id < idCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Scale converts sheet pixels to world units relative to the player car width
const Scale = 0.3 * (1.0 / 80.0)

// Groups drawn from by scenery placement and remote car spawning
var (
	Billboards = []ID{
		Billboard01, Billboard02, Billboard03, Billboard04, Billboard05,
		Billboard06, Billboard07, Billboard08, Billboard09,
	}
	Plants = []ID{
		Tree1, Tree2, DeadTree1, DeadTree2, PalmTree, Bush1, Bush2, Cactus, Stump,
		Boulder1, Boulder2, Boulder3,
	}
	Cars = []ID{Car01, Car02, Car03, Car04, Semi, Truck}
)

// Player picks the player car frame from steering and slope
// steer is -1, 0 or 1
func Player(steer int, uphill bool) ID {
	switch {
	case steer < 0 && uphill:
		return PlayerUphillLeft
	case steer < 0:
		return PlayerLeft
	case steer > 0 && uphill:
		return PlayerUphillRight
	case steer > 0:
		return PlayerRight
	case uphill:
		return PlayerUphillStraight
	default:
		return PlayerStraight
	}
}
