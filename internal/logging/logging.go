// Package logging builds the zap logger used by the contacts CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output targets besides a file path.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Options selects the level, encoding and destination of log output.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Output string // stderr, stdout or a file path
}

// New builds a logger from opts. The returned closer releases a log file
// when Output names one; it is a no-op otherwise.
func New(opts Options) (*zap.Logger, io.Closer, error) {
	ws, closer, err := buildWriteSyncer(opts.Output)
	if err != nil {
		return nil, nil, err
	}
	core := zapcore.NewCore(buildEncoder(opts.Format), ws, zap.NewAtomicLevelAt(ParseLevel(opts.Level)))
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, closer, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

func buildEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if strings.EqualFold(format, "json") {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func buildWriteSyncer(output string) (zapcore.WriteSyncer, io.Closer, error) {
	switch strings.ToLower(output) {
	case "", OutputStderr:
		return zapcore.Lock(zapcore.AddSync(os.Stderr)), nopCloser{}, nil
	case OutputStdout:
		return zapcore.Lock(zapcore.AddSync(os.Stdout)), nopCloser{}, nil
	}

	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(file), file, nil
}

// ParseLevel maps a level name to a zap level. Unknown names mean warn.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
