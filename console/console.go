// Package console は管理画面の保存・削除操作です。
// Each operation validates its input, sends the change through the coordinator and
// patches the store only after the server accepted it.
package console

import (
	"context"
	"fmt"
	"log/slog"

	"ecadmin/apiclient"
	"ecadmin/loader"
	"ecadmin/model"
	"ecadmin/store"
	"ecadmin/syncer"

	"github.com/google/uuid"
)

type Console struct {
	client    apiclient.Client
	coord     *syncer.Coordinator
	store     *store.Store
	loader    *loader.Loader
	confirmer syncer.Confirmer
	newID     func() string
	logger    *slog.Logger
}

type Option func(*Console)

// WithConfirmer sets how deletes are confirmed. Without one every delete is declined.
func WithConfirmer(cf syncer.Confirmer) Option {
	return func(c *Console) { c.confirmer = cf }
}

// WithIDFunc replaces the local id generator used when the server returns no id.
func WithIDFunc(fn func() string) Option {
	return func(c *Console) { c.newID = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Console) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(client apiclient.Client, coord *syncer.Coordinator, st *store.Store, ld *loader.Loader, opts ...Option) *Console {
	c := &Console{
		client:    client,
		coord:     coord,
		store:     st,
		loader:    ld,
		confirmer: syncer.Always(false),
		newID:     uuid.NewString,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// realIDFrom は作成 API の data から ID を取り出します。
// When the server sends none, a local uuid stands in so the row can still be edited
// until the next full reload.
func (c *Console) realIDFrom(res apiclient.Result, pick func(model.CreatedID) string) string {
	var ids model.CreatedID
	if err := res.Decode(&ids); err != nil {
		c.logger.Warn("unexpected create response", slog.Any("error", err))
	}
	if id := pick(ids); id != "" {
		return id
	}
	id := c.newID()
	c.logger.Warn("server returned no id, using a local one", slog.String("id", id))
	return id
}

// post は作成、put は更新のリクエストを組み立てます。
func (c *Console) post(path string, body any) syncer.Op {
	return func(ctx context.Context) (apiclient.Result, error) {
		return c.client.Post(ctx, path, body)
	}
}

func (c *Console) put(path string, body any) syncer.Op {
	return func(ctx context.Context) (apiclient.Result, error) {
		return c.client.Put(ctx, path, body)
	}
}

// deleteRecord は確認のうえ realId で削除し、成功したら表示IDで一覧から外します。
// It reports whether the record was deleted; declining the prompt is not an error.
func deleteRecord[T any, P store.Record[T]](ctx context.Context, c *Console, coll *store.Collection[T, P], base string, displayID int) (bool, error) {
	rec, err := coll.Find(displayID)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s #%d: %w", coll.Name(), displayID, err)
	}
	realID := P(&rec).Key()

	ok := c.coord.RunConfirmed(ctx, c.confirmer, syncer.DeletePrompt, coll.Name(),
		func(ctx context.Context) (apiclient.Result, error) {
			return c.client.Delete(ctx, apiclient.ItemPath(base, realID))
		},
		func(apiclient.Result) { coll.Remove(displayID) },
		nil)
	return ok, nil
}

// find は更新対象を表示IDで取り出します。
func find[T any, P store.Record[T]](coll *store.Collection[T, P], displayID int) (T, error) {
	rec, err := coll.Find(displayID)
	if err != nil {
		return rec, fmt.Errorf("failed to update %s #%d: %w", coll.Name(), displayID, err)
	}
	return rec, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
