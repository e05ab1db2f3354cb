package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Call は Fake が受けた1回分の呼び出しです。
type Call struct {
	Method string
	Path   string
	Body   json.RawMessage
}

// Responder returns the raw response body, or an error standing in for a transport
// failure or a non-2xx status.
type Responder func(call Call) ([]byte, error)

// Fake はテストやオフライン実行用のメモリ上の Client です。
// Routes are keyed by "METHOD path"; an unrouted call fails with a 404 *Error.
type Fake struct {
	mu     sync.Mutex
	routes map[string]Responder
	calls  []Call
}

func NewFake() *Fake {
	return &Fake{routes: make(map[string]Responder)}
}

// Handle registers fn for method and path.
func (f *Fake) Handle(method, path string, fn Responder) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fn
	return f
}

// HandleJSON は固定のレスポンスを返すルートを登録します。
func (f *Fake) HandleJSON(method, path, body string) *Fake {
	return f.Handle(method, path, func(Call) ([]byte, error) { return []byte(body), nil })
}

// HandleStatus registers a route that fails with status and body as the server message.
func (f *Fake) HandleStatus(method, path string, status int, body string) *Fake {
	return f.Handle(method, path, func(Call) ([]byte, error) {
		return nil, newError(method, path, status, []byte(body))
	})
}

// Calls returns the calls made so far.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) Get(ctx context.Context, path string) (Result, error) {
	return f.do(ctx, http.MethodGet, path, nil)
}

func (f *Fake) Post(ctx context.Context, path string, body any) (Result, error) {
	return f.do(ctx, http.MethodPost, path, body)
}

func (f *Fake) Put(ctx context.Context, path string, body any) (Result, error) {
	return f.do(ctx, http.MethodPut, path, body)
}

func (f *Fake) Delete(ctx context.Context, path string) (Result, error) {
	return f.do(ctx, http.MethodDelete, path, nil)
}

func (f *Fake) do(ctx context.Context, method, path string, body any) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	call := Call{Method: method, Path: path}
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		call.Body = buf
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	fn, ok := f.routes[method+" "+path]
	f.mu.Unlock()

	if !ok {
		return Result{}, &Error{StatusCode: http.StatusNotFound, Method: method, Path: path}
	}
	raw, err := fn(call)
	if err != nil {
		return Result{}, err
	}
	return Normalize(raw)
}
