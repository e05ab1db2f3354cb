package apiclient

import "context"

// Client は管理APIへの呼び出し口です。
// body is marshalled as JSON; a nil body sends no payload. A non-2xx response is
// returned as *Error.
type Client interface {
	Get(ctx context.Context, path string) (Result, error)
	Post(ctx context.Context, path string, body any) (Result, error)
	Put(ctx context.Context, path string, body any) (Result, error)
	Delete(ctx context.Context, path string) (Result, error)
}
