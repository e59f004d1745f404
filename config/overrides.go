package config

// Overrides carries optional replacements; nil fields keep the previous value
type Overrides struct {
	Width         *int     `toml:"width"`
	Height        *int     `toml:"height"`
	Lanes         *int     `toml:"lanes"`
	RoadWidth     *float64 `toml:"road_width"`
	CameraHeight  *float64 `toml:"camera_height"`
	DrawDistance  *int     `toml:"draw_distance"`
	FogDensity    *float64 `toml:"fog_density"`
	FieldOfView   *float64 `toml:"field_of_view"`
	SegmentLength *float64 `toml:"segment_length"`
	RumbleLength  *int     `toml:"rumble_length"`

	// Resolution names a preset; explicit width/height win over it
	Resolution *string `toml:"resolution"`
}

// Changes reports which dependent state the caller must refresh
type Changes struct {
	// RebuildTrack is set when segment or rumble length changed
	RebuildTrack bool
	// Camera is set when depth or player distance changed
	Camera bool
	// Viewport is set when the logical screen size changed
	Viewport bool
}

// Any reports whether anything needs refreshing
func (c Changes) Any() bool {
	return c.RebuildTrack || c.Camera || c.Viewport
}

// Merge layers other on top of o
func (o Overrides) Merge(other Overrides) Overrides {
	pick(&o.Width, other.Width)
	pick(&o.Height, other.Height)
	pick(&o.Lanes, other.Lanes)
	pick(&o.RoadWidth, other.RoadWidth)
	pick(&o.CameraHeight, other.CameraHeight)
	pick(&o.DrawDistance, other.DrawDistance)
	pick(&o.FogDensity, other.FogDensity)
	pick(&o.FieldOfView, other.FieldOfView)
	pick(&o.SegmentLength, other.SegmentLength)
	pick(&o.RumbleLength, other.RumbleLength)
	pick(&o.Resolution, other.Resolution)
	return o
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply returns old with ov layered on, revalidated and rederived
// old is never modified; on error the zero Config is returned
func Apply(old Config, ov Overrides) (Config, Changes, error) {
	next := old

	if ov.Resolution != nil {
		w, h, err := ResolutionSize(*ov.Resolution)
		if err != nil {
			return Config{}, Changes{}, err
		}
		next.Width, next.Height = w, h
	}
	set(&next.Width, ov.Width)
	set(&next.Height, ov.Height)
	set(&next.Lanes, ov.Lanes)
	set(&next.RoadWidth, ov.RoadWidth)
	set(&next.CameraHeight, ov.CameraHeight)
	set(&next.DrawDistance, ov.DrawDistance)
	set(&next.FogDensity, ov.FogDensity)
	set(&next.FieldOfView, ov.FieldOfView)
	set(&next.SegmentLength, ov.SegmentLength)
	set(&next.RumbleLength, ov.RumbleLength)

	if err := next.Validate(); err != nil {
		return Config{}, Changes{}, err
	}
	next.derive()

	ch := Changes{
		RebuildTrack: next.SegmentLength != old.SegmentLength || next.RumbleLength != old.RumbleLength,
		Camera:       next.CameraDepth != old.CameraDepth || next.PlayerZ != old.PlayerZ,
		Viewport:     next.Width != old.Width || next.Height != old.Height,
	}
	return next, ch, nil
}
