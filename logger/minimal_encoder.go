package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the colors for one theme
type palette struct {
	time      string
	component []string // rotated by component name hash
	value     string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var palettes = map[string]palette{
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		time:      "\x1b[38;5;108m",
		component: []string{"\x1b[38;5;208m", "\x1b[38;5;214m"},
		value:     "\x1b[38;5;175m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
	// Everforest Dark (forest greens)
	"everforest": {
		time:      "\x1b[38;5;107m",
		component: []string{"\x1b[38;5;108m", "\x1b[38;5;65m", "\x1b[38;5;208m"},
		value:     "\x1b[38;5;109m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for console output.
// Unknown themes are ignored.
func SetTheme(theme string) {
	if KnownTheme(theme) {
		currentTheme = theme
	}
}

// KnownTheme reports whether theme names a palette.
func KnownTheme(theme string) bool {
	_, ok := palettes[theme]
	return ok
}

var bufferPool = buffer.NewPool()

// minimalEncoder is a calm, compact console encoder.
// Format: "13:04:35  WARN  engine  Skipping length  error=... length=3"
//
// Context fields (logger.With) accumulate in the embedded map encoder so that
// no field is ever dropped from the output.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
	color bool
}

func newMinimalEncoder(color bool) *minimalEncoder {
	return &minimalEncoder{
		MapObjectEncoder: zapcore.NewMapObjectEncoder(),
		color:            color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := newMinimalEncoder(enc.color)
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	all := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		all.Fields[k] = v
	}
	for _, f := range fields {
		f.AddTo(all)
	}

	p := palettes[currentTheme]
	final := bufferPool.Get()

	enc.paint(final, p.time, ent.Time.Format("15:04:05"))

	// Level: only shown for WARN and above
	if ent.Level > zapcore.InfoLevel {
		final.AppendString("  ")
		enc.appendLevel(final, p, ent.Level)
	} else if ent.Level == zapcore.DebugLevel {
		final.AppendString("  ")
		final.AppendString("DEBUG")
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		enc.paint(final, componentColor(p, ent.LoggerName), abbreviateName(ent.LoggerName))
	}

	final.AppendString("  ")
	final.AppendString(ent.Message)

	if kv := enc.formatFields(p, all.Fields); kv != "" {
		final.AppendString("  ")
		final.AppendString(kv)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) paint(buf *buffer.Buffer, color, text string) {
	if enc.color {
		buf.AppendString(color)
		buf.AppendString(text)
		buf.AppendString(colorReset)
		return
	}
	buf.AppendString(text)
}

func (enc *minimalEncoder) appendLevel(buf *buffer.Buffer, p palette, level zapcore.Level) {
	fg, bg := p.err, p.errBg
	if level == zapcore.WarnLevel {
		fg, bg = p.warn, p.warnBg
	}
	enc.paint(buf, colorBold+bg+fg, level.CapitalString())
}

// formatFields renders every field as key=value, sorted by key.
// Verbose error renderings (stack traces) are left to JSON output.
func (enc *minimalEncoder) formatFields(p palette, fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if strings.HasSuffix(k, "Verbose") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		value := fmt.Sprint(fields[k])
		if enc.color {
			value = p.value + value + colorReset
		}
		parts = append(parts, k+"="+value)
	}
	return strings.Join(parts, " ")
}

func componentColor(p palette, name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	return p.component[hash%len(p.component)]
}

// abbreviateName shortens component names: sink.split -> s.split
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
