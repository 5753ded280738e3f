// Package log wraps logrus with a package-level logger, a custom
// single-line formatter, and a small Init(cfg) that wires level and
// output destinations.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

// Config controls where log output goes and at what level.
type Config struct {
	ErrorLogPath string
	InfoLogPath  string
	Level        string // debug, info, warn, error
}

// timestampFormatter renders one log line per entry.
type timestampFormatter struct{}

func (timestampFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	line := fmt.Sprintf("[%s] [%s] %s\n",
		entry.Time.Format("15:04:05 2006/01/02"), level, entry.Message)
	return []byte(line), nil
}

// Init configures the package logger's level and output destinations.
// Output always goes to stderr, and also to each non-empty path in cfg.
func Init(cfg Config) error {
	base.SetFormatter(timestampFormatter{})

	level := parseLevel(cfg.Level)
	base.SetLevel(level)

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	for _, path := range []string{cfg.ErrorLogPath, cfg.InfoLogPath} {
		if path == "" {
			continue
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		writers = append(writers, f)
	}

	base.SetOutput(io.MultiWriter(writers...))
	return nil
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func Debugf(format string, args ...interface{}) { base.Debugf(format, args...) }
func Infof(format string, args ...interface{})  { base.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { base.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { base.Errorf(format, args...) }
