package am

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/teranos/crunch/sink"
)

const (
	// EnvPrefix prefixes every environment override: CRUNCH_GENERATE_MIN_LENGTH
	EnvPrefix = "CRUNCH"

	// DefaultDirPermissions is used for ~/.crunch
	DefaultDirPermissions = 0o750

	// FileName is the config file name searched at every level
	FileName = "crunch.toml"

	// SystemConfigPath is the lowest-precedence config file
	SystemConfigPath = "/etc/crunch/crunch.toml"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.min_length", 1)
	v.SetDefault("generate.max_length", 3)
	v.SetDefault("generate.pattern", "")
	v.SetDefault("generate.start", "")
	v.SetDefault("generate.end", "")
	v.SetDefault("generate.permute", []string{})
	v.SetDefault("generate.charset.lower", "")  // empty = built-in default
	v.SetDefault("generate.charset.upper", "")  // empty = built-in default
	v.SetDefault("generate.charset.digit", "")  // empty = built-in default
	v.SetDefault("generate.charset.symbol", "") // empty = built-in default
	v.SetDefault("generate.limits.lower", 0)    // 0 = unlimited
	v.SetDefault("generate.limits.upper", 0)
	v.SetDefault("generate.limits.digit", 0)
	v.SetDefault("generate.limits.symbol", 0)

	v.SetDefault("output.path", "")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.split_size", "")
	v.SetDefault("output.compression", "")
	v.SetDefault("output.preview_limit", sink.DefaultPreviewLimit)
	v.SetDefault("output.rate_limit", 0)

	v.SetDefault("catalog.enabled", true)
	v.SetDefault("catalog.path", "")

	v.SetDefault("upload.s3.bucket", "")
	v.SetDefault("upload.s3.region", "")
	v.SetDefault("upload.s3.endpoint", "")
	v.SetDefault("upload.s3.prefix", "")
	v.SetDefault("upload.s3.access_key_id", "")
	v.SetDefault("upload.s3.secret_key", "")
	v.SetDefault("upload.s3.force_path_style", false)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// BindSensitiveEnvVars binds credentials to the names the AWS tooling uses
// as well as the CRUNCH_* names.
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("upload.s3.access_key_id", "CRUNCH_UPLOAD_S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID")
	v.BindEnv("upload.s3.secret_key", "CRUNCH_UPLOAD_S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
}

// UserDir returns ~/.crunch.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crunch"
	}
	return filepath.Join(home, ".crunch")
}

// CatalogPath returns the configured catalog path, defaulting to
// ~/.crunch/catalog.db.
func (c *Config) CatalogPath() string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return filepath.Join(UserDir(), "catalog.db")
}
