package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environment variables naming an explicit config file. The project name
// wins over the generic one.
const (
	envConfigFile = "LINGUA_TUTOR_CONFIG"
	envConfigPath = "CONFIG_PATH"
)

// searchPaths are tried in order when no file is named explicitly.
var searchPaths = []string{
	"./config.yaml",
	"./configs/lingua-tutor.yaml",
}

// Load reads the YAML config file, overlays environment variables and
// validates the result. Priority: ENV > YAML > env-default tags.
//
// An explicitly named file must exist. Otherwise the first of searchPaths
// that exists is used, and with none present only ENV and defaults apply.
func Load() (*Config, error) {
	var cfg Config

	path, err := configFile()
	if err != nil {
		return nil, err
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// configFile returns the file to read, or "" for ENV-only configuration.
func configFile() (string, error) {
	for _, name := range []string{envConfigFile, envConfigPath} {
		path := os.Getenv(name)
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: file %s (from %s): %w", path, name, err)
		}
		return path, nil
	}

	for _, path := range searchPaths {
		_, err := os.Stat(path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config: file %s: %w", path, err)
		}
	}
	return "", nil
}
