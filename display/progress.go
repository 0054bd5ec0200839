package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

// CLIEmitter prints per-length progress to the terminal with pterm.
// It implements engine.ProgressEmitter.
type CLIEmitter struct {
	w         io.Writer
	verbosity int
}

// NewCLIEmitter creates a terminal progress emitter. Output goes to w,
// normally stderr so stdout stays free for streamed words.
func NewCLIEmitter(w io.Writer, verbosity int) *CLIEmitter {
	return &CLIEmitter{w: w, verbosity: verbosity}
}

// EmitStage prints a stage announcement
func (e *CLIEmitter) EmitStage(stage string, message string) {
	if e.verbosity < 1 {
		return
	}
	pterm.Fprintln(e.w, fmt.Sprintf("→ %s: %s", pterm.LightCyan(stage), message))
}

// EmitProgress prints a finished length
func (e *CLIEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	if e.verbosity < 1 {
		return
	}
	itemType, ok := metadata["type"].(string)
	if !ok {
		itemType = "items"
	}
	if length, ok := metadata["length"].(int); ok {
		pterm.Fprintln(e.w, fmt.Sprintf("✓ length %d: %s %s", length, pterm.Green(Count(int64(count))), itemType))
		return
	}
	pterm.Fprintln(e.w, fmt.Sprintf("✓ %s %s", pterm.Green(Count(int64(count))), itemType))
}

// EmitError prints a skipped stage. Always shown.
func (e *CLIEmitter) EmitError(stage string, err error) {
	pterm.Fprintln(e.w, fmt.Sprintf("%s %s: %v", pterm.Yellow("⚠"), stage, err))
}

// ProgressEvent is one JSON progress line
type ProgressEvent struct {
	Type      string                 `json:"type"` // "stage", "progress", "error"
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// JSONEmitter writes one JSON object per event, for --json runs
type JSONEmitter struct {
	mu      sync.Mutex
	encoder *json.Encoder
	now     func() time.Time
}

// NewJSONEmitter creates a JSON progress emitter writing to w
func NewJSONEmitter(w io.Writer) *JSONEmitter {
	return &JSONEmitter{encoder: json.NewEncoder(w), now: time.Now}
}

func (e *JSONEmitter) emit(eventType string, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Progress is best effort; a broken pipe must not fail the run
	_ = e.encoder.Encode(ProgressEvent{Type: eventType, Timestamp: e.now().UTC(), Data: data})
}

// EmitStage emits a stage event
func (e *JSONEmitter) EmitStage(stage string, message string) {
	e.emit("stage", map[string]interface{}{"stage": stage, "message": message})
}

// EmitProgress emits a progress event carrying count and metadata
func (e *JSONEmitter) EmitProgress(count int, metadata map[string]interface{}) {
	data := map[string]interface{}{"count": count}
	for k, v := range metadata {
		data[k] = v
	}
	e.emit("progress", data)
}

// EmitError emits an error event
func (e *JSONEmitter) EmitError(stage string, err error) {
	e.emit("error", map[string]interface{}{"stage": stage, "error": err.Error()})
}
