package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_RoundTrip(t *testing.T) {
	var gotAuth, gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"Success","message":"Updated","data":null}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "tkn")
	res, err := c.Put(context.Background(), ItemPath(PathProducts, "p 1"), map[string]string{"name": "Hat"})
	require.NoError(t, err)

	assert.True(t, res.OK)
	assert.Equal(t, "Updated", res.Message)
	assert.Equal(t, "Bearer tkn", gotAuth)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/Products/p 1", gotPath)
	assert.JSONEq(t, `{"name":"Hat"}`, gotBody)
}

func TestHTTPClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"Message": "Category is in use"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.Delete(context.Background(), "/Categories/1")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Category is in use", ServerMessage(err))
}

func TestHTTPClient_NoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res, err := NewHTTPClient(srv.URL, "").Get(context.Background(), PathOrdersAll)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, KindBare, res.Kind)
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewHTTPClient(srv.URL, "").Get(ctx, PathBanners)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSalesReportPath(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "/Analytics/sales-report?endDate=2024-01-31&startDate=2024-01-01", SalesReportPath(from, to))
}

func TestFake(t *testing.T) {
	f := NewFake().
		HandleJSON(http.MethodGet, PathSeo, `{"success":true,"data":[]}`).
		HandleStatus(http.MethodDelete, "/seo/1", http.StatusConflict, `{"message":"locked"}`)

	res, err := f.Get(context.Background(), PathSeo)
	require.NoError(t, err)
	assert.True(t, res.OK)

	_, err = f.Delete(context.Background(), "/seo/1")
	assert.Equal(t, "locked", ServerMessage(err))

	_, err = f.Get(context.Background(), "/missing")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	assert.Len(t, f.Calls(), 3)
}
