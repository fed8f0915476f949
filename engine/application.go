package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/vicki/engine/core"
)

// ApplicationConfig is the fixed startup configuration. There are no CLI
// flags; values come from the optional TOML config file or the compiled-in
// defaults.
type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Window starting width.
	StartWidth uint32 `toml:"width"`
	// Window starting height.
	StartHeight uint32 `toml:"height"`
	// The relative base path for assets.
	AssetBasePath string `toml:"asset_base_path"`
	// Minimum log level: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:          "vicki",
		StartWidth:    1280,
		StartHeight:   720,
		AssetBasePath: "assets",
		LogLevel:      "debug",
	}
}

// LoadApplicationConfig reads the TOML config at path on top of the
// defaults. A missing file is not an error; the defaults are returned.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	if config.StartWidth == 0 || config.StartHeight == 0 {
		return nil, fmt.Errorf("config '%s': window dimensions must be > 0", path)
	}
	return config, nil
}

func (c *ApplicationConfig) logLevel() core.LogLevel {
	switch c.LogLevel {
	case "info":
		return core.InfoLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.DebugLevel
	}
}
