// Package am holds crunch's layered configuration: built-in defaults,
// system, user and project TOML files, CRUNCH_* environment variables and
// command-line flags, in increasing precedence.
package am

import (
	"github.com/teranos/crunch/charset"
	"github.com/teranos/crunch/runlimit"
	"github.com/teranos/crunch/upload"
)

// Config represents the complete crunch configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Catalog  CatalogConfig  `mapstructure:"catalog" toml:"catalog" yaml:"catalog" json:"catalog"`
	Upload   UploadConfig   `mapstructure:"upload" toml:"upload" yaml:"upload" json:"upload"`
	Log      LogConfig      `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// GenerateConfig describes what to enumerate
type GenerateConfig struct {
	MinLength int    `mapstructure:"min_length" toml:"min_length" yaml:"min_length" json:"min_length"`
	MaxLength int    `mapstructure:"max_length" toml:"max_length" yaml:"max_length" json:"max_length"`
	Pattern   string `mapstructure:"pattern" toml:"pattern" yaml:"pattern" json:"pattern"`
	Start     string `mapstructure:"start" toml:"start" yaml:"start" json:"start"`
	End       string `mapstructure:"end" toml:"end" yaml:"end" json:"end"`

	// Permute switches to permutation mode when non-empty
	Permute []string `mapstructure:"permute" toml:"permute" yaml:"permute" json:"permute"`

	Charset charset.Overrides `mapstructure:"charset" toml:"charset" yaml:"charset" json:"charset"`
	Limits  runlimit.Limits   `mapstructure:"limits" toml:"limits" yaml:"limits" json:"limits"`
}

// OutputConfig selects the sink.
//
// Path "" previews on the terminal, "-" streams to stdout, anything else is
// a file. A non-empty SplitSize writes size-bounded partitions into Dir.
type OutputConfig struct {
	Path         string  `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
	Dir          string  `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
	SplitSize    string  `mapstructure:"split_size" toml:"split_size" yaml:"split_size" json:"split_size"`
	Compression  string  `mapstructure:"compression" toml:"compression" yaml:"compression" json:"compression"`
	PreviewLimit int     `mapstructure:"preview_limit" toml:"preview_limit" yaml:"preview_limit" json:"preview_limit"`
	RateLimit    float64 `mapstructure:"rate_limit" toml:"rate_limit" yaml:"rate_limit" json:"rate_limit"` // words per second, 0 = unlimited
}

// CatalogConfig configures the run catalog
type CatalogConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path" yaml:"path" json:"path"` // empty = ~/.crunch/catalog.db
}

// UploadConfig configures artifact upload
type UploadConfig struct {
	S3 upload.Config `mapstructure:"s3" toml:"s3" yaml:"s3" json:"s3"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Theme string `mapstructure:"theme" toml:"theme" yaml:"theme" json:"theme"` // gruvbox, everforest
}

// Output modes derived from OutputConfig
const (
	OutputDisplay = "display"
	OutputStream  = "stream"
	OutputFile    = "file"
	OutputSplit   = "split"
)

// OutputMode reports which sink the output section selects.
func (o OutputConfig) OutputMode() string {
	switch {
	case o.SplitSize != "":
		return OutputSplit
	case o.Path == "-":
		return OutputStream
	case o.Path != "":
		return OutputFile
	default:
		return OutputDisplay
	}
}
