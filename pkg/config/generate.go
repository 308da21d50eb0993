package config

import (
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Render serializes cfg as TOML, the format the loader reads back.
func Render(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}
