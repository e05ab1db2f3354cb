package table

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a search-text change is applied.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer は最後の呼び出しから一定時間操作がなければ関数を実行します。
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Do は fn の実行を予約し直します。待機中の前回分は破棄されます。
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// SearchDebounced は入力が落ち着いてから検索文字列を反映し、onApply を呼びます。
// onApply is where a list screen refetches; it may be nil.
func SearchDebounced[T any](d *Debouncer, t *Table[T], text string, onApply func()) {
	d.Do(func() {
		t.SetSearchText(text)
		if onApply != nil {
			onApply()
		}
	})
}
