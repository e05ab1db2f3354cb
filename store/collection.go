package store

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("record not found")

// Record は一覧系エンティティへのポインタが満たす制約です。
type Record[T any] interface {
	*T
	DisplayID() int
	Key() string
	SetDisplayID(int)
}

// LocateBy は更新対象レコードの探し方です。
type LocateBy int

const (
	ByDisplayID LocateBy = iota
	ByRealID
)

func (l LocateBy) String() string {
	if l == ByRealID {
		return "realId"
	}
	return "id"
}

// AddPolicy は追加時の表示IDの決め方です。
type AddPolicy int

const (
	// AppendMax assigns max(id)+1, so a delete followed by an add never duplicates an id.
	AppendMax AddPolicy = iota
	// AppendLength assigns len+1. Ids can collide after a delete.
	AppendLength
)

// EntityConfig はエンティティごとの更新ルールです。
// Merge copies the mutable fields of src into dst; a nil Merge replaces the record.
type EntityConfig[T any] struct {
	Name   string
	Locate LocateBy
	Merge  func(dst *T, src T)
}

// Collection は1エンティティ分のメモリ上の一覧です。
type Collection[T any, P Record[T]] struct {
	mu      sync.RWMutex
	cfg     EntityConfig[T]
	policy  AddPolicy
	records []T
}

func NewCollection[T any, P Record[T]](cfg EntityConfig[T], policy AddPolicy) *Collection[T, P] {
	return &Collection[T, P]{cfg: cfg, policy: policy, records: []T{}}
}

func (c *Collection[T, P]) Name() string { return c.cfg.Name }

func (c *Collection[T, P]) Config() EntityConfig[T] { return c.cfg }

// ReplaceAll は一覧を丸ごと置き換えます。表示IDはそのまま保持します。
func (c *Collection[T, P]) ReplaceAll(records []T) {
	next := make([]T, len(records))
	copy(next, records)

	c.mu.Lock()
	c.records = next
	c.mu.Unlock()
}

// Add appends record with a fresh display id and returns the stored copy.
func (c *Collection[T, P]) Add(record T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	P(&record).SetDisplayID(c.nextDisplayID())
	c.records = append(c.records, record)
	return record
}

func (c *Collection[T, P]) nextDisplayID() int {
	if c.policy == AppendLength {
		return len(c.records) + 1
	}
	highest := 0
	for i := range c.records {
		highest = max(highest, P(&c.records[i]).DisplayID())
	}
	return highest + 1
}

// Update はエンティティ設定に従ってレコードを更新します。
// It reports false when no record matches, leaving the collection unchanged.
func (c *Collection[T, P]) Update(record T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(P(&record))
	if idx < 0 {
		return false
	}
	if c.cfg.Merge == nil {
		// 置き換えでも表示IDは元のものを残す
		id := P(&c.records[idx]).DisplayID()
		c.records[idx] = record
		if P(&c.records[idx]).DisplayID() == 0 {
			P(&c.records[idx]).SetDisplayID(id)
		}
		return true
	}
	c.cfg.Merge(&c.records[idx], record)
	return true
}

func (c *Collection[T, P]) indexOf(target P) int {
	for i := range c.records {
		p := P(&c.records[i])
		switch c.cfg.Locate {
		case ByRealID:
			if p.Key() == target.Key() {
				return i
			}
		default:
			if p.DisplayID() == target.DisplayID() {
				return i
			}
		}
	}
	return -1
}

// Remove は表示IDが一致するレコードを取り除きます。残りの表示IDは振り直しません。
func (c *Collection[T, P]) Remove(displayID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0:0]
	for i := range c.records {
		if P(&c.records[i]).DisplayID() != displayID {
			kept = append(kept, c.records[i])
		}
	}
	if len(kept) == len(c.records) {
		return false
	}
	c.records = kept
	return true
}

// All returns a copy of the records in stored order.
func (c *Collection[T, P]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Numbered は表示用に 1..n で振り直したコピーを返します。
func (c *Collection[T, P]) Numbered() []T {
	out := c.All()
	for i := range out {
		P(&out[i]).SetDisplayID(i + 1)
	}
	return out
}

func (c *Collection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Find は表示IDでレコードを探します。
func (c *Collection[T, P]) Find(displayID int) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.records {
		if P(&c.records[i]).DisplayID() == displayID {
			return c.records[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (c *Collection[T, P]) FindByRealID(realID string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.records {
		if P(&c.records[i]).Key() == realID {
			return c.records[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
