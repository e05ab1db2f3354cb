package syncer

import (
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultSuccessMessage = "Operation completed successfully."
	DefaultErrorMessage   = "Something went wrong. Please try again."
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification はトースト1件分です。
type Notification struct {
	Level   Level
	Tag     string
	Message string
	At      time.Time
}

// Notifier は操作結果をユーザーに伝えます。
type Notifier interface {
	Notify(n Notification)
}

type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a slog.Logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{slog.String("tag", n.Tag), slog.String("message", n.Message)}
	if n.Level == LevelError {
		logger.Error("operation failed", attrs...)
		return
	}
	logger.Info("operation succeeded", attrs...)
}

// MemoryNotifier は通知を溜めておくだけの Notifier です。
type MemoryNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (m *MemoryNotifier) Notify(n Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, n)
}

func (m *MemoryNotifier) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Notification, len(m.items))
	copy(out, m.items)
	return out
}
