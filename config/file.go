package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// LoadFile reads overrides from a TOML file, rejecting unknown keys
func LoadFile(path string) (Overrides, error) {
	var ov Overrides
	md, err := toml.DecodeFile(path, &ov)
	if err != nil {
		return Overrides{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Overrides{}, fmt.Errorf("config %s: %w", path, err)
	}
	return ov, nil
}

// Parse decodes overrides from TOML text
func Parse(data string) (Overrides, error) {
	var ov Overrides
	md, err := toml.Decode(data, &ov)
	if err != nil {
		return Overrides{}, err
	}
	if err := checkUndecoded(md); err != nil {
		return Overrides{}, err
	}
	return ov, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
}
