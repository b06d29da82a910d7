package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/JHertz5/role-assignment/pkg/pipeline"
	"github.com/JHertz5/role-assignment/pkg/server"
	"github.com/JHertz5/role-assignment/pkg/tableio"
)

// Config holds settings read from config.toml. Flags override it.
//
//	default_cost = 3
//	seed = 42
//	shuffle = true
//	clone_aware = false
//	output = "grad_assignments.csv"
//	history = true
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	listen = "127.0.0.1:8080"
type Config struct {
	DefaultCost int    `toml:"default_cost"`
	Seed        uint64 `toml:"seed"`
	Shuffle     bool   `toml:"shuffle"`
	CloneAware  bool   `toml:"clone_aware"`
	Output      string `toml:"output"`

	// History records every assign run.
	History    bool   `toml:"history"`
	HistoryDir string `toml:"history_dir"`
	CacheDir   string `toml:"cache_dir"`

	RedisAddr     string `toml:"redis_addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`

	Listen string `toml:"listen"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		DefaultCost: pipeline.DefaultCost,
		Seed:        pipeline.DefaultSeed,
		Shuffle:     true,
		Output:      tableio.DefaultResultsFile,
		History:     true,
		Listen:      server.DefaultAddr,
	}
}

// configPath returns $XDG_CONFIG_HOME/gradassign/config.toml, falling back
// to the platform config dir.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}

// LoadConfig reads path on top of DefaultConfig. A missing file is only an
// error when required is set, i.e. the path was given explicitly.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) && !required {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return DefaultConfig(), fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
