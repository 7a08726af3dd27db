// Package logging builds the structured debug logger.
//
// With debug enabled, every entry is written as one JSON object per line to
// a file so a TUI session can be inspected after the fact. Otherwise a no-op
// logger is returned.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is the debug log file used when none is configured.
const DefaultPath = "tramo-debug.log"

// New returns a JSON file logger at path when enabled, otherwise a no-op
// logger. The returned close function flushes and releases the file.
func New(enabled bool, path string) (*zap.Logger, func(), error) {
	if !enabled {
		return zap.NewNop(), func() {}, nil
	}
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating debug log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.MessageKey = "event"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(f),
		zapcore.DebugLevel,
	)
	logger := zap.New(core).With(zap.String("log_file", path))
	logger.Debug("DEBUG_START")

	closeFn := func() {
		logger.Debug("DEBUG_END")
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, closeFn, nil
}

// Truncate shortens s to max runes for log fields.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
