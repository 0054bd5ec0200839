package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/crunch/errors"
)

var (
	globalConfig  *Config
	viperInstance *viper.Viper

	// explicitConfig is set by --config and replaces the file search
	explicitConfig string

	// boundFlags maps config keys to the flags bound to them
	boundFlags = map[string]*pflag.Flag{}
)

// SetConfigFile makes Load read only path, skipping the system, user and
// project search. Must be called before the first Load.
func SetConfigFile(path string) {
	explicitConfig = path
}

// Load reads the crunch configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, without environment variables
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", configPath)
	}
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	explicitConfig = ""
	boundFlags = map[string]*pflag.Flag{}
	ConfigSources = map[string]SourceInfo{}
}

// BindFlags binds command-line flags to config keys. Flags only override
// when set on the command line.
func BindFlags(flags *pflag.FlagSet, bindings map[string]string) error {
	v, err := initViper()
	if err != nil {
		return err
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return errors.Newf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind --%s to %s", name, key)
		}
		boundFlags[key] = flag
	}
	// Flags change the effective config
	globalConfig = nil
	return nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindSensitiveEnvVars(v)

	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// configFiles lists config files in increasing precedence with their source
func configFiles() []SourceInfo {
	if explicitConfig != "" {
		return []SourceInfo{{Source: SourceExplicit, Path: explicitConfig}}
	}

	files := []SourceInfo{
		{Source: SourceSystem, Path: SystemConfigPath},
		{Source: SourceUser, Path: filepath.Join(UserDir(), FileName)},
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, SourceInfo{Source: SourceProject, Path: project})
	}
	return files
}

// findProjectConfig walks up from the working directory looking for
// crunch.toml. Returns "" when none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	userConfig := filepath.Join(UserDir(), FileName)
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil && candidate != userConfig {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges configuration files in precedence order:
// system < user < project. Missing files are skipped; an explicit
// --config file must exist.
func mergeConfigFiles(v *viper.Viper) error {
	ConfigSources = map[string]SourceInfo{}

	for _, file := range configFiles() {
		if _, err := os.Stat(file.Path); err != nil {
			if file.Source == SourceExplicit {
				return errors.WithHint(
					errors.Wrapf(err, "config file %s", file.Path),
					"check the --config path")
			}
			continue
		}

		layer := viper.New()
		layer.SetConfigFile(file.Path)
		layer.SetConfigType("toml")
		if err := layer.ReadInConfig(); err != nil {
			return errors.WithHintf(
				errors.Wrapf(err, "failed to parse %s", file.Path),
				"run `crunch config lint %s` to check the file", file.Path)
		}

		settings := layer.AllSettings()
		if err := v.MergeConfigMap(settings); err != nil {
			return errors.Wrapf(err, "failed to merge %s", file.Path)
		}
		markSettingsFromSource(settings, "", file.Source, file.Path, ConfigSources)
		// ConfigFileUsed reports the highest-precedence file
		v.SetConfigFile(file.Path)
	}
	return nil
}

// Get returns a configuration value using dot notation
func Get(key string) (interface{}, error) {
	v, err := initViper()
	if err != nil {
		return nil, err
	}
	if !v.IsSet(key) {
		return nil, errors.NewNotFoundError("config key %s", key)
	}
	return v.Get(key), nil
}
