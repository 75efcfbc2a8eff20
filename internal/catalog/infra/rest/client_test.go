package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dwikikusuma/shopfront/internal/catalog/app"
	"github.com/dwikikusuma/shopfront/internal/catalog/domain"
	"github.com/dwikikusuma/shopfront/pkg/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := rest.New(srv.URL, 5*time.Second, slog.Default())
	require.NoError(t, err)
	return NewClient(api)
}

func TestListPaginatedEnvelope(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "cat", q.Get("q"))
		assert.Equal(t, "Toys", q.Get("category"))
		assert.Equal(t, "u1", q.Get("user_id"))
		assert.Equal(t, "12", q.Get("skip"))
		assert.Equal(t, "12", q.Get("limit"))

		w.Write([]byte(`{"items":[{"id":"p1","name":"Catnip Ball","price":19.9,"category":"Toys","rating":4.5,"sales":120,"stock":8}],"total":37}`))
	})

	page, err := c.List(context.Background(), domain.Filter{
		Query: "cat", Category: "Toys", UserID: "u1", Page: 2, Size: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, 37, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Catnip Ball", page.Items[0].Name)
	assert.Equal(t, 19.9, page.Items[0].Price)
}

func TestListBareArrayFallback(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"p1","name":"Leash","price":35}, {"id":"p2","name":"Collar","price":25}]`))
	})

	page, err := c.List(context.Background(), domain.Filter{Page: 1, Size: 12})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Len(t, page.Items, 2)
}

func TestGetMapsNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Product not found"}`))
	})

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, app.ErrNotFound)
}

func TestListBannersOrdered(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/banners/", r.URL.Path)
		w.Write([]byte(`[{"id":"b1","title":"New Year Sale","image_url":"https://cdn/banner1.jpg","description":"Save big","link_url":"/sale","sort_order":1}]`))
	})

	banners, err := c.ListBanners(context.Background())
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "https://cdn/banner1.jpg", banners[0].ImageURL)
	assert.Equal(t, 1, banners[0].SortOrder)
}

func TestRecordSearchPostsKeyword(t *testing.T) {
	var gotKeyword, gotUser string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products/search-history", r.URL.Path)
		gotKeyword = r.URL.Query().Get("keyword")
		gotUser = r.URL.Query().Get("user_id")
		w.Write([]byte(`{}`))
	})

	require.NoError(t, c.RecordSearch(context.Background(), "u1", "dog bed"))
	assert.Equal(t, "dog bed", gotKeyword)
	assert.Equal(t, "u1", gotUser)
}
