package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/crunch/errors"
)

// LintResult lists problems found in a config file
type LintResult struct {
	Path string `json:"path"`
	// Unknown holds keys present in the file that no setting consumes
	Unknown []string `json:"unknown,omitempty"`
}

// OK reports whether the file had no unknown keys
func (r *LintResult) OK() bool { return len(r.Unknown) == 0 }

// Lint decodes a TOML config file strictly. Syntax and type errors are
// returned as errors; misspelled or obsolete keys end up in Unknown.
func Lint(path string) (*LintResult, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to decode %s", path),
			"check the TOML syntax and value types")
	}

	result := &LintResult{Path: path}
	for _, key := range md.Undecoded() {
		result.Unknown = append(result.Unknown, key.String())
	}
	sort.Strings(result.Unknown)
	return result, nil
}
