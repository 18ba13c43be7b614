package config

import (
	"fmt"
	"os"

	"budgetcharts/internal/charts"

	"github.com/BurntSushi/toml"
)

// appearanceFile mirrors the TOML layout:
//
//	[appearance]
//	palette = ["#d14d41", "#879a39"]
//	title_font_size = 18
//
//	[appearance.titles]
//	balance = "Balance"
type appearanceFile struct {
	Appearance charts.Appearance `toml:"appearance"`
}

// LoadAppearance reads chart colours and titles from a TOML file. Keys absent
// from the file keep their defaults, and an empty path or a missing file
// yields the defaults.
func LoadAppearance(path string) (charts.Appearance, error) {
	file := appearanceFile{Appearance: charts.DefaultAppearance()}
	if path == "" {
		return file.Appearance, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return file.Appearance, nil
		}
		return file.Appearance, fmt.Errorf("reading appearance: %w", err)
	}

	if err := toml.Unmarshal(data, &file); err != nil {
		return charts.DefaultAppearance(), fmt.Errorf("parsing appearance: %w", err)
	}
	if err := file.Appearance.Validate(); err != nil {
		return charts.DefaultAppearance(), err
	}

	return file.Appearance, nil
}

// SaveAppearance writes an appearance file, creating or truncating it.
func SaveAppearance(path string, a charts.Appearance) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating appearance file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(appearanceFile{Appearance: a})
}
