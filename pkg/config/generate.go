package config

import (
	"bytes"

	"github.com/arthur-debert/vpath/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

const generatedHeader = "# vpath configuration\n# Save as $XDG_CONFIG_HOME/vpath/config.toml or pass with --config.\n\n"

// GenerateTOML renders cfg as a config file accepted by Load
func GenerateTOML(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(generatedHeader)

	enc := gotoml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}
