package logs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// CreateLogger は出力先に応じた JSON ロガーを作ります。
// target is "stdout", "stderr", "/dev/null" or a file path; the file's directory is
// created when missing.
func CreateLogger(target string, level slog.Level) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch target {
	case "/dev/null":
		return slog.New(slog.DiscardHandler), nil
	case "stdout":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
	case "", "stderr":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}

	if err := MakeDirForFile(target); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	fh, err := os.OpenFile(target, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(fh, opts)), nil
}

// MakeDirForFile creates the directory of filename if it does not exist.
func MakeDirForFile(filename string) error {
	dir := filepath.Dir(filename)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	} else if err != nil {
		return err
	}
	return nil
}

// ParseLevel は "debug" などの文字列をレベルに変換します。不明な値は Info です。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
