package database

import (
	"encoding/json"
	"fmt"
	"time"

	"ecadmin/model"

	"github.com/jmoiron/sqlx"
)

type orderRow struct {
	model.OrderRecord
	ItemsJSON string `db:"items_json"`
}

// SaveOrderSnapshotInTx は注文スナップショットを丸ごと置き換えます。
func SaveOrderSnapshotInTx(tx *sqlx.Tx, orders []model.OrderRecord, at time.Time) error {
	if _, err := tx.Exec(`DELETE FROM order_snapshot`); err != nil {
		return fmt.Errorf("failed to clear order_snapshot: %w", err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO order_snapshot (real_id, id, user_email, total_amount, order_date, status, items_json, snapshot_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(real_id) DO UPDATE SET
			id = excluded.id,
			user_email = excluded.user_email,
			total_amount = excluded.total_amount,
			order_date = excluded.order_date,
			status = excluded.status,
			items_json = excluded.items_json,
			snapshot_at = excluded.snapshot_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare order_snapshot insert: %w", err)
	}
	defer stmt.Close()

	stamp := at.UTC().Format(time.RFC3339)
	for _, o := range orders {
		items := o.OrderItems
		if items == nil {
			items = []model.OrderItem{}
		}
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode items of order %s: %w", o.RealID, err)
		}
		if _, err := stmt.Exec(o.RealID, o.ID, o.UserEmail, o.TotalAmount, o.OrderDate, string(o.Status), string(itemsJSON), stamp); err != nil {
			return fmt.Errorf("failed to insert order %s into snapshot: %w", o.RealID, err)
		}
	}
	return nil
}

// SaveOrderSnapshot runs SaveOrderSnapshotInTx in its own transaction.
func SaveOrderSnapshot(db *sqlx.DB, orders []model.OrderRecord, at time.Time) error {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction for order snapshot: %w", err)
	}
	defer tx.Rollback()

	if err := SaveOrderSnapshotInTx(tx, orders, at); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order snapshot: %w", err)
	}
	return nil
}

// GetOrderSnapshot は保存済みの注文を表示ID順に返します。
func GetOrderSnapshot(db *sqlx.DB) ([]model.OrderRecord, error) {
	var rows []orderRow
	err := db.Select(&rows, `
		SELECT id, real_id, user_email, total_amount, order_date, status, items_json
		FROM order_snapshot
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get order snapshot: %w", err)
	}

	orders := make([]model.OrderRecord, 0, len(rows))
	for _, r := range rows {
		o := r.OrderRecord
		if err := json.Unmarshal([]byte(r.ItemsJSON), &o.OrderItems); err != nil {
			return nil, fmt.Errorf("failed to decode items of order %s: %w", o.RealID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// SnapshotTakenAt returns when the snapshot was saved, or the zero time when empty.
func SnapshotTakenAt(db *sqlx.DB) (time.Time, error) {
	var stamp string
	err := db.Get(&stamp, `SELECT COALESCE(MAX(snapshot_at), '') FROM order_snapshot`)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get snapshot time: %w", err)
	}
	if stamp == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, stamp)
}
