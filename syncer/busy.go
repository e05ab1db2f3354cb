package syncer

import (
	"fmt"
	"strings"
	"sync"
)

// BusyMode は共有ローディングフラグの数え方です。
type BusyMode int

const (
	// BusyCounted stays busy until the last in-flight operation ends.
	BusyCounted BusyMode = iota
	// BusyLegacy is a plain shared boolean: any end clears it, even while other
	// operations are still running.
	BusyLegacy
)

func ParseBusyMode(s string) (BusyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "counted":
		return BusyCounted, nil
	case "legacy":
		return BusyLegacy, nil
	}
	return BusyCounted, fmt.Errorf("unknown busy mode %q", s)
}

func (m BusyMode) String() string {
	if m == BusyLegacy {
		return "legacy"
	}
	return "counted"
}

// BusyTracker は処理中かどうかを管理します。タグごとの件数も持ちます。
type BusyTracker struct {
	mu       sync.Mutex
	mode     BusyMode
	inflight int
	flag     bool
	tags     map[string]int
	subs     []func(busy bool)
}

func NewBusyTracker(mode BusyMode) *BusyTracker {
	return &BusyTracker{mode: mode, tags: make(map[string]int)}
}

func (b *BusyTracker) Mode() BusyMode { return b.mode }

// Subscribe は共有フラグが変わるたびに fn を呼びます。
func (b *BusyTracker) Subscribe(fn func(busy bool)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Begin marks one operation under tag as started.
func (b *BusyTracker) Begin(tag string) {
	b.mu.Lock()
	b.inflight++
	b.tags[tag]++
	changed := !b.flag
	b.flag = true
	subs := b.subscribers(changed)
	b.mu.Unlock()

	publish(subs, true)
}

// End marks one operation under tag as finished.
func (b *BusyTracker) End(tag string) {
	b.mu.Lock()
	if b.inflight > 0 {
		b.inflight--
	}
	if n := b.tags[tag]; n <= 1 {
		delete(b.tags, tag)
	} else {
		b.tags[tag] = n - 1
	}

	next := b.inflight > 0
	if b.mode == BusyLegacy {
		next = false
	}
	changed := b.flag != next
	b.flag = next
	subs := b.subscribers(changed)
	b.mu.Unlock()

	publish(subs, next)
}

// IsBusy は共有フラグの値です。
func (b *BusyTracker) IsBusy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flag
}

// IsBusyTag reports whether an operation under tag is in flight, whatever the mode.
func (b *BusyTracker) IsBusyTag(tag string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tags[tag] > 0
}

// InFlight is the number of operations that have begun and not ended.
func (b *BusyTracker) InFlight() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inflight
}

func (b *BusyTracker) subscribers(changed bool) []func(bool) {
	if !changed || len(b.subs) == 0 {
		return nil
	}
	out := make([]func(bool), len(b.subs))
	copy(out, b.subs)
	return out
}

func publish(subs []func(bool), busy bool) {
	for _, fn := range subs {
		fn(busy)
	}
}
