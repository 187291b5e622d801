package output

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Style names used by the reporter
const (
	StyleSuccess = "Success"
	StyleWarning = "Warning"
	StyleError   = "Error"
	StyleMuted   = "Muted"
	StyleDetail  = "Detail"
)

//go:embed embedded/styles.yaml
var defaultStyles []byte

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Faint        bool   `yaml:"faint,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// StyleSet is a parsed styles definition
type StyleSet struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// DefaultStyles returns the embedded style set
func DefaultStyles() StyleSet {
	set, err := parseStyles(defaultStyles)
	if err != nil {
		panic(fmt.Sprintf("embedded styles are invalid: %v", err))
	}
	return set
}

// LoadStyles reads a YAML styles file and overlays it on the defaults.
// Colors and styles are replaced by name; names absent from the file keep
// their default definition.
func LoadStyles(path string) (StyleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StyleSet{}, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read styles file %s", path)
	}

	override, err := parseStyles(data)
	if err != nil {
		return StyleSet{}, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse styles file %s", path)
	}

	set := DefaultStyles()
	for name, def := range override.Colors {
		set.Colors[name] = def
	}
	for name, def := range override.Styles {
		set.Styles[name] = def
	}
	return set, nil
}

func parseStyles(data []byte) (StyleSet, error) {
	var set StyleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return StyleSet{}, err
	}
	if set.Colors == nil {
		set.Colors = make(map[string]ColorDef)
	}
	if set.Styles == nil {
		set.Styles = make(map[string]StyleDef)
	}
	return set, nil
}

// build constructs lipgloss styles bound to renderer
func (s StyleSet) build(renderer *lipgloss.Renderer) map[string]lipgloss.Style {
	built := make(map[string]lipgloss.Style, len(s.Styles))
	for name, def := range s.Styles {
		style := renderer.NewStyle()

		if def.Bold {
			style = style.Bold(true)
		}
		if def.Italic {
			style = style.Italic(true)
		}
		if def.Underline {
			style = style.Underline(true)
		}
		if def.Faint {
			style = style.Faint(true)
		}
		if c, ok := s.Colors[def.Foreground]; ok {
			style = style.Foreground(lipgloss.AdaptiveColor{Light: c.Light, Dark: c.Dark})
		}
		if def.PaddingLeft > 0 || def.PaddingRight > 0 {
			style = style.Padding(0, def.PaddingRight, 0, def.PaddingLeft)
		}

		built[name] = style
	}
	return built
}
