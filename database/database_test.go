package database

import (
	"context"
	"testing"
	"time"

	"ecadmin/apiclient"
	"ecadmin/model"
	"ecadmin/syncer"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, ApplySchema(db))
	require.NoError(t, ApplySchema(db), "schema must be re-appliable")
	return db
}

func TestOrderSnapshot_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	orders := []model.OrderRecord{
		{
			Ref:         model.Ref{ID: 1, RealID: "o-1"},
			UserEmail:   "a@example.com",
			TotalAmount: decimal.NewNullDecimal(decimal.RequireFromString("30.50")),
			OrderDate:   "2024-01-05T10:00:00Z",
			Status:      model.StatusShipped,
			OrderItems: []model.OrderItem{
				{ProductName: "Red Shirt", Quantity: 2, UnitPrice: decimal.RequireFromString("15.25")},
			},
		},
		{
			Ref:       model.Ref{ID: 2, RealID: "o-2"},
			OrderDate: "garbage",
			Status:    model.StatusPending,
		},
	}
	require.NoError(t, SaveOrderSnapshot(db, orders, at))

	got, err := GetOrderSnapshot(db)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "o-1", got[0].RealID)
	assert.Equal(t, model.StatusShipped, got[0].Status)
	require.True(t, got[0].TotalAmount.Valid)
	assert.True(t, decimal.RequireFromString("30.5").Equal(got[0].TotalAmount.Decimal))
	require.Len(t, got[0].OrderItems, 1)
	assert.Equal(t, "Red Shirt", got[0].OrderItems[0].ProductName)

	assert.False(t, got[1].TotalAmount.Valid)
	assert.Equal(t, "garbage", got[1].OrderDate)
	assert.Empty(t, got[1].OrderItems)

	taken, err := SnapshotTakenAt(db)
	require.NoError(t, err)
	assert.True(t, at.Equal(taken))
}

func TestOrderSnapshot_Replaces(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	require.NoError(t, SaveOrderSnapshot(db, []model.OrderRecord{
		{Ref: model.Ref{ID: 1, RealID: "a"}}, {Ref: model.Ref{ID: 2, RealID: "b"}},
	}, now))
	require.NoError(t, SaveOrderSnapshot(db, []model.OrderRecord{
		{Ref: model.Ref{ID: 1, RealID: "c"}},
	}, now))

	got, err := GetOrderSnapshot(db)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].RealID)
}

func TestSnapshotTakenAt_Empty(t *testing.T) {
	db := openTestDB(t)
	taken, err := SnapshotTakenAt(db)
	require.NoError(t, err)
	assert.True(t, taken.IsZero())
}

func TestJournal(t *testing.T) {
	db := openTestDB(t)
	j := NewJournal(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, j.Append(ctx, syncer.Entry{Tag: "products", OK: true, Message: "saved", At: base}))
	require.NoError(t, j.Append(ctx, syncer.Entry{Tag: "users", OK: false, Message: "Email taken", At: base.Add(time.Minute)}))

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "users", entries[0].Tag)
	assert.False(t, entries[0].OK)
	assert.True(t, entries[1].OK)
	assert.True(t, base.Equal(entries[1].At))

	one, err := j.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestJournal_WithCoordinator(t *testing.T) {
	db := openTestDB(t)
	j := NewJournal(db)
	c := syncer.New(syncer.WithJournal(j), syncer.WithNotifier(&syncer.MemoryNotifier{}))

	c.Run(context.Background(), "orders", func(context.Context) (apiclient.Result, error) {
		return apiclient.Result{OK: true, Message: "Status updated"}, nil
	}, nil, nil)

	entries, err := j.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Status updated", entries[0].Message)
}
