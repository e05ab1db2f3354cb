package database

import (
	"context"
	"fmt"
	"time"

	"ecadmin/syncer"

	"github.com/jmoiron/sqlx"
)

// Journal は sync_journal テーブルへ操作結果を書き込みます。
type Journal struct {
	db *sqlx.DB
}

func NewJournal(db *sqlx.DB) *Journal {
	return &Journal{db: db}
}

var _ syncer.Journal = (*Journal)(nil)

func (j *Journal) Append(ctx context.Context, e syncer.Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sync_journal (tag, ok, message, at) VALUES (?, ?, ?, ?)`,
		e.Tag, e.OK, e.Message, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append sync journal (tag: %s): %w", e.Tag, err)
	}
	return nil
}

type journalRow struct {
	Tag     string `db:"tag"`
	OK      bool   `db:"ok"`
	Message string `db:"message"`
	At      string `db:"at"`
}

// Recent は新しい順に最大 limit 件を返します。
func (j *Journal) Recent(ctx context.Context, limit int) ([]syncer.Entry, error) {
	var rows []journalRow
	err := j.db.SelectContext(ctx, &rows,
		`SELECT tag, ok, message, at FROM sync_journal ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync journal: %w", err)
	}

	entries := make([]syncer.Entry, 0, len(rows))
	for _, r := range rows {
		at, err := time.Parse(time.RFC3339Nano, r.At)
		if err != nil {
			return nil, fmt.Errorf("failed to parse journal time %q: %w", r.At, err)
		}
		entries = append(entries, syncer.Entry{Tag: r.Tag, OK: r.OK, Message: r.Message, At: at})
	}
	return entries, nil
}
