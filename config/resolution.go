package config

import (
	"fmt"
	"slices"
	"strings"
)

type size struct{ w, h int }

var resolutions = map[string]size{
	"low":    {480, 360},
	"medium": {640, 480},
	"high":   {1024, 768},
	"ultra":  {1280, 960},
}

// ResolutionSize maps a preset name to its logical width and height
func ResolutionSize(name string) (int, int, error) {
	s, ok := resolutions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown resolution %q (want one of %s)",
			ErrInvalidConfig, name, strings.Join(ResolutionNames(), ", "))
	}
	return s.w, s.h, nil
}

// ResolutionNames lists presets from smallest to largest
func ResolutionNames() []string {
	names := make([]string, 0, len(resolutions))
	for n := range resolutions {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		return resolutions[a].w - resolutions[b].w
	})
	return names
}
