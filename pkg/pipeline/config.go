package pipeline

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jewelry/pkg/errors"
)

// Config is the on-disk configuration file:
//
//	columns = 5
//	column_width = 120.0
//	last_line_reorder = true
//	cache = "redis://localhost:6379/0"
//
//	[[stamp]]
//	endRow = 0
//	column = 4
type Config struct {
	Options
	Cache string `toml:"cache"` // Cache target passed to cache.Open
}

// LoadConfig reads a TOML config file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
	}
	return ParseConfig(string(data))
}

// ParseConfig decodes TOML config text.
func ParseConfig(text string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}
