package config

import (
	"log/slog"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads the JSON configuration file at the given path and returns the
// normalized configuration. An empty path, an unreadable or a malformed file
// all degrade to the full default configuration (with a warning).
func Load(path string) *Config {
	logger := slog.With("name", "config")
	if path == "" {
		logger.Warn("no configuration file provided => using the default configuration")
		return Default()
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		logger.Warn("can't read the configuration file => using the default configuration",
			slog.String("path", path), slog.String("err", err.Error()))
		return Default()
	}
	return Normalize(k.Raw())
}
