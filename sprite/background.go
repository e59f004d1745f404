package sprite

// Layer names a parallax band of the background sheet
type Layer uint8

const (
	LayerSky Layer = iota
	LayerHills
	LayerTrees
	layerCount
)

// Layers in back-to-front draw order
var Layers = []Layer{LayerSky, LayerHills, LayerTrees}

var layerRects = [layerCount]Rect{
	LayerHills: {5, 5, 1280, 480},
	LayerSky:   {5, 495, 1280, 480},
	LayerTrees: {5, 985, 1280, 480},
}

// Rect returns the background sheet region of the layer
func (l Layer) Rect() Rect {
	if l >= layerCount {
		return Rect{}
	}
	return layerRects[l]
}

func (l Layer) String() string {
	switch l {
	case LayerSky:
		return "sky"
	case LayerHills:
		return "hills"
	case LayerTrees:
		return "trees"
	default:
		return "unknown"
	}
}

// SheetSize is the minimum size of the sprite sheet covering every region
func SheetSize() (w, h int) {
	for _, id := range All() {
		r := id.Rect()
		w = max(w, r.X+r.W)
		h = max(h, r.Y+r.H)
	}
	return w, h
}

// BackgroundSize is the minimum size of the background sheet covering every layer
func BackgroundSize() (w, h int) {
	for _, l := range Layers {
		r := l.Rect()
		w = max(w, r.X+r.W)
		h = max(h, r.Y+r.H)
	}
	return w, h
}
