package sink

import (
	"math"
	"strconv"
	"strings"

	"github.com/teranos/crunch/errors"
)

var sizeUnits = []struct {
	suffix string
	factor float64
}{
	{"kib", 1 << 10},
	{"mib", 1 << 20},
	{"gib", 1 << 30},
	{"kb", 1e3},
	{"mb", 1e6},
	{"gb", 1e9},
	{"b", 1},
}

// ParseSize converts a human size such as "10mb", "1.5KiB" or "4096" into
// bytes. Decimal units are powers of 1000, binary units powers of 1024, and
// a bare number is bytes. Fractional results are truncated.
func ParseSize(s string) (int64, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return 0, malformedSize(s)
	}

	number, factor := spec, 1.0
	for _, u := range sizeUnits {
		if strings.HasSuffix(spec, u.suffix) {
			number, factor = strings.TrimSpace(strings.TrimSuffix(spec, u.suffix)), u.factor
			break
		}
	}

	mantissa, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(mantissa) || math.IsInf(mantissa, 0) {
		return 0, malformedSize(s)
	}
	bytes := math.Trunc(mantissa * factor)
	if bytes < 1 || bytes >= math.MaxInt64 {
		return 0, malformedSize(s)
	}
	return int64(bytes), nil
}

func malformedSize(s string) error {
	return errors.WithHint(
		errors.Wrapf(errors.ErrMalformedSizeSpec, "%q", s),
		"use a positive number with an optional unit: kb, mb, gb (x1000) or kib, mib, gib (x1024)")
}
