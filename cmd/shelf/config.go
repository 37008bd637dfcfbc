// Config loading for the shelf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/dukaforge/shelf/internal/paths"
	"github.com/dukaforge/shelf/pkg/model"
)

const (
	configName = "config"
	configType = "yaml"

	cfgKeyPath = "path"

	// defaultDBPath is used when no database path is configured.
	defaultDBPath = "shelf.db"
)

// configFile is the structure written to config.yaml on init.
type configFile struct {
	Path    string `yaml:"path"`
	StoreID string `yaml:"store_id"`
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. A missing config.yaml is not an error; defaults apply.
func loadConfig() (model.Config, error) {
	configDir, err := paths.ResolveConfigDir(configDirFlag)
	if err != nil {
		return model.Config{}, fmt.Errorf("resolving config directory: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyPath, defaultDBPath)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return model.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	return model.Config{Path: v.GetString(cfgKeyPath)}, nil
}

// writeConfigIfMissing creates the config directory and a default
// config.yaml stamped with a fresh store UUID. An existing file is left
// untouched.
func writeConfigIfMissing(configDir, dbPath string) (string, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, paths.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("checking config file: %w", err)
	}

	cfg := configFile{
		Path:    dbPath,
		StoreID: newStoreID(),
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

// newStoreID generates a UUID v7 identifying this store, falling back to a
// random UUID if v7 generation fails.
func newStoreID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
