package display

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators: 1234567 -> 1,234,567
func Count(n int64) string {
	return printer.Sprintf("%d", n)
}

// BigCount formats counts that may not fit in an int64
func BigCount(n *big.Int) string {
	if n == nil {
		return "0"
	}
	if n.IsInt64() {
		return Count(n.Int64())
	}

	digits := n.String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// Bytes formats a byte count in binary units: 1536 -> 1.5 KiB
func Bytes(n *big.Int) string {
	if n == nil || n.Sign() == 0 {
		return "0 B"
	}

	value := new(big.Float).SetInt(n)
	unit := 0
	step := big.NewFloat(1024)
	for unit < len(byteUnits)-1 && value.Cmp(step) >= 0 {
		value.Quo(value, step)
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%s B", n.String())
	}
	f, _ := value.Float64()
	return fmt.Sprintf("%.1f %s", f, byteUnits[unit])
}

// Int64Bytes is Bytes for an int64
func Int64Bytes(n int64) string {
	return Bytes(big.NewInt(n))
}
