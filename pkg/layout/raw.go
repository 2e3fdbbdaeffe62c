package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RawLayout is a layout file as loaded from YAML.
type RawLayout struct {
	Version     string         `yaml:"version"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Tokens      []RawTokenDef  `yaml:"tokens"`
	Formats     []RawFormatDef `yaml:"formats"`
}

// RawTokenDef describes a token type.
type RawTokenDef struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Size        int           `yaml:"size"`       // bits; 0 inherits from parent
	Endianness  string        `yaml:"endianness"` // "little", "big", or empty
	Parent      string        `yaml:"parent"`
	Fields      []RawFieldDef `yaml:"fields"`
}

// RawFieldDef describes one field. Exactly one of Start/End, Bit or Concat
// must be set.
type RawFieldDef struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Start       *int     `yaml:"start"`
	End         *int     `yaml:"end"`
	Bit         *int     `yaml:"bit"`
	Concat      []string `yaml:"concat"`
	Signed      bool     `yaml:"signed"`
}

// RawFormatDef describes an instruction format.
type RawFormatDef struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tokens      []string `yaml:"tokens"`
}

// ParseLayout parses a layout from YAML bytes.
func ParseLayout(data []byte) (*RawLayout, error) {
	var raw RawLayout
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	return &raw, nil
}

// LoadLayout loads and parses a layout file.
func LoadLayout(path string) (*RawLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseLayout(data)
}

// Marshal renders the layout back to YAML.
func (r *RawLayout) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
