package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ecadmin/apiclient"
)

// ErrRejected is returned by RunE when the server answered with a falsy status.
var ErrRejected = errors.New("operation rejected by server")

// Op はリモート呼び出し1回分です。
type Op func(ctx context.Context) (apiclient.Result, error)

// Entry は決着した操作1件の記録です。
type Entry struct {
	Tag     string
	OK      bool
	Message string
	At      time.Time
}

// Journal stores settled operations.
type Journal interface {
	Append(ctx context.Context, e Entry) error
}

// Coordinator はリモート操作の前後で処理中フラグ、通知、ローカル反映をまとめて扱います。
type Coordinator struct {
	busy     *BusyTracker
	notifier Notifier
	journal  Journal
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Coordinator)

func WithBusyTracker(b *BusyTracker) Option {
	return func(c *Coordinator) {
		if b != nil {
			c.busy = b
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithJournal(j Journal) Option {
	return func(c *Coordinator) { c.journal = j }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		busy:   NewBusyTracker(BusyCounted),
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, fn := range opts {
		fn(c)
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.logger}
	}
	return c
}

func (c *Coordinator) Busy() *BusyTracker { return c.busy }

// Run は op を実行し、成功なら onSuccess を呼んで成功通知を出します。
// On failure onFailure is called when given; otherwise an error notification carries
// the server message. The busy flag is released on every exit, panics included.
// Run reports whether the remote call succeeded and never returns an error.
func (c *Coordinator) Run(ctx context.Context, tag string, op Op, onSuccess func(apiclient.Result), onFailure func(error)) bool {
	return c.run(ctx, tag, op, onSuccess, onFailure) == nil
}

// RunE is Run for callers that must block on the outcome. Failures are still
// notified; the error is returned as well. A falsy status wraps ErrRejected.
func (c *Coordinator) RunE(ctx context.Context, tag string, op Op, onSuccess func(apiclient.Result)) error {
	return c.run(ctx, tag, op, onSuccess, nil)
}

// Fetch は読み込み用です。処理中フラグと失敗通知は Run と同じですが、成功通知は出しません。
func (c *Coordinator) Fetch(ctx context.Context, tag string, op Op) (apiclient.Result, error) {
	c.busy.Begin(tag)
	defer c.busy.End(tag)

	res, err := op(ctx)
	if err == nil && !res.OK {
		err = fmt.Errorf("%w: %s", ErrRejected, messageOr(res.Message, DefaultErrorMessage))
	}
	if err != nil {
		c.logger.Warn("remote fetch failed", slog.String("tag", tag), slog.Any("error", err))
		c.notify(LevelError, tag, failureMessage(res, err))
		return apiclient.Result{}, err
	}
	return res, nil
}

func (c *Coordinator) run(ctx context.Context, tag string, op Op, onSuccess func(apiclient.Result), onFailure func(error)) error {
	c.busy.Begin(tag)
	defer c.busy.End(tag)

	res, err := op(ctx)
	if err == nil && !res.OK {
		err = fmt.Errorf("%w: %s", ErrRejected, messageOr(res.Message, DefaultErrorMessage))
	}

	if err != nil {
		msg := failureMessage(res, err)
		c.record(ctx, tag, false, msg)
		c.logger.Warn("remote operation failed", slog.String("tag", tag), slog.Any("error", err))
		if onFailure != nil {
			onFailure(err)
		} else {
			c.notify(LevelError, tag, msg)
		}
		return err
	}

	msg := messageOr(res.Message, DefaultSuccessMessage)
	c.record(ctx, tag, true, msg)
	if onSuccess != nil {
		onSuccess(res)
	}
	c.notify(LevelSuccess, tag, msg)
	return nil
}

func (c *Coordinator) notify(level Level, tag, msg string) {
	c.notifier.Notify(Notification{Level: level, Tag: tag, Message: msg, At: c.now()})
}

func (c *Coordinator) record(ctx context.Context, tag string, ok bool, msg string) {
	if c.journal == nil {
		return
	}
	e := Entry{Tag: tag, OK: ok, Message: msg, At: c.now()}
	if err := c.journal.Append(ctx, e); err != nil {
		c.logger.Warn("failed to append sync journal", slog.String("tag", tag), slog.Any("error", err))
	}
}

// failureMessage は message → Message → 既定文言の順で表示文言を決めます。
func failureMessage(res apiclient.Result, err error) string {
	if res.Message != "" {
		return res.Message
	}
	return messageOr(apiclient.ServerMessage(err), DefaultErrorMessage)
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
