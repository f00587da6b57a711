package palette

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/radialstack/pkg/errors"
)

// File is a palette file.
type File struct {
	Colors  Map      `toml:"colors" json:"colors,omitempty"`
	Scheme  []string `toml:"scheme" json:"scheme,omitempty"`
	Unknown string   `toml:"unknown" json:"unknown,omitempty"`
}

// Options returns the ordinal options the file implies.
func (f File) Options() []Option {
	return []Option{WithColors(f.Scheme), WithUnknown(f.Unknown)}
}

// Validate checks that every color in the file parses.
func (f File) Validate() error {
	for k, c := range f.Colors {
		if _, err := ParseColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "color for %q", k)
		}
	}
	for i, c := range f.Scheme {
		if _, err := ParseColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "scheme entry %d", i)
		}
	}
	if f.Unknown != "" {
		if _, err := ParseColor(f.Unknown); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPalette, err, "unknown color")
		}
	}
	return nil
}

// ParseTOML decodes and validates a palette file.
func ParseTOML(data []byte) (File, error) {
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "decode palette")
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// LoadTOML reads a palette file from disk.
func LoadTOML(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "palette %s", path)
		}
		return File{}, errors.Wrap(errors.ErrCodeInvalidPalette, err, "read palette %s", path)
	}
	return ParseTOML(data)
}
