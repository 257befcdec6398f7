package settings

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Overrides is the optional settings file contents. Absent fields leave the
// corresponding setting at its default.
type Overrides struct {
	Verbosity    *string `mapstructure:"verbosity"`
	DisplayLimit *int    `mapstructure:"display_limit"`
	ColumnWidth  *int    `mapstructure:"column_width"`
}

// LoadFile reads a YAML settings file into an Overrides.
func LoadFile(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Decode loosely first so unknown keys are tolerated, then map the known
	// ones into the typed struct.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	var o Overrides
	if err := mapstructure.Decode(raw, &o); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, err)
	}
	return &o, nil
}

// Apply writes the present override values into the store.
func (o *Overrides) Apply(s *Store) error {
	if o.Verbosity != nil {
		v, err := ParseVerbosity(*o.Verbosity)
		if err != nil {
			return err
		}
		s.SetVerbosity(v)
	}
	if o.DisplayLimit != nil {
		s.SetDisplayLimit(*o.DisplayLimit)
	}
	if o.ColumnWidth != nil {
		s.SetColumnWidth(*o.ColumnWidth)
	}
	return nil
}

// ParseVerbosity converts a settings-file verbosity name into a Verbosity.
func ParseVerbosity(name string) (Verbosity, error) {
	switch name {
	case "quiet":
		return Quiet, nil
	case "normal":
		return Normal, nil
	case "extra":
		return Extra, nil
	default:
		return Normal, fmt.Errorf("unknown verbosity %q (want quiet, normal or extra)", name)
	}
}
