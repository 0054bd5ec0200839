package am

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/crunch/errors"
	"github.com/teranos/crunch/logger"
)

// Render formats
const (
	FormatTOML = "toml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// redacted returns a copy of cfg without credentials
func redacted(cfg *Config) Config {
	out := *cfg
	out.Generate.Permute = append([]string(nil), cfg.Generate.Permute...)
	out.Upload.S3.AccessKeyID = ""
	out.Upload.S3.SecretKey = ""
	return out
}

// Render serializes cfg as toml, json or yaml. Credentials are never
// rendered.
func Render(cfg *Config, format string) ([]byte, error) {
	out := redacted(cfg)

	switch strings.ToLower(format) {
	case FormatTOML, "":
		data, err := toml.Marshal(out)
		return data, errors.Wrap(err, "failed to marshal config as toml")
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as json")
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		data, err := yaml.Marshal(out)
		return data, errors.Wrap(err, "failed to marshal config as yaml")
	default:
		return nil, errors.WithHint(
			errors.NewInvalidConfigError("unknown format %q", format),
			"use toml, json or yaml")
	}
}

// SavePreset writes cfg to path as TOML, rotating up to three backups of
// any existing file. Credentials are not written.
func SavePreset(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := Render(cfg, FormatTOML)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Oldest backup is dropped; failure here never blocks the save
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup", logger.FieldPath, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
