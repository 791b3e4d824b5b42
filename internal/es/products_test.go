package es

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/pkg/config"
)

type call struct {
	Method string
	Path   string
	Body   string
}

type fakeTransport struct {
	mu      sync.Mutex
	calls   []call
	respond func(req *http.Request) (int, string)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body string
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: req.Method, Path: req.URL.Path, Body: body})
	f.mu.Unlock()

	status, payload := f.respond(req)
	h := http.Header{}
	h.Set("X-Elastic-Product", "Elasticsearch")
	h.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(payload)),
		Request:    req,
	}, nil
}

func newTestIndex(t *testing.T, respond func(req *http.Request) (int, string)) (*ProductIndex, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{respond: respond}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://es.test:9200"},
		Transport: ft,
	})
	require.NoError(t, err)
	return NewProductIndex(client, "products"), ft
}

func TestSearchDecodesHits(t *testing.T) {
	idx, ft := newTestIndex(t, func(req *http.Request) (int, string) {
		return http.StatusOK, `{"hits":{"total":{"value":2},"hits":[
			{"_source":{"id":"64b7f0c2a1b2c3d4e5f60718","name":"Red mug","price":9.5}},
			{"_source":{"id":"64b7f0c2a1b2c3d4e5f60719","name":"Blue mug","price":11}}]}}`
	})

	total, items, err := idx.Search(context.Background(), "mug", 10, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	assert.Equal(t, "Red mug", items[0].Name)
	assert.Equal(t, 11.0, items[1].Price)

	require.Len(t, ft.calls, 1)
	assert.Equal(t, "/products/_search", ft.calls[0].Path)
	assert.Contains(t, ft.calls[0].Body, `"multi_match"`)
	assert.Contains(t, ft.calls[0].Body, `"from":10`)
	assert.Contains(t, ft.calls[0].Body, `"size":5`)
}

func TestSearchReportsErrorResponse(t *testing.T) {
	idx, _ := newTestIndex(t, func(req *http.Request) (int, string) {
		return http.StatusBadRequest, `{"error":"bad query"}`
	})

	_, _, err := idx.Search(context.Background(), "mug", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad query")
}

func TestIndexProductUsesDocumentID(t *testing.T) {
	idx, ft := newTestIndex(t, func(req *http.Request) (int, string) {
		return http.StatusCreated, `{"result":"created"}`
	})

	prod := &models.Product{ID: "64b7f0c2a1b2c3d4e5f60718", Name: "Lamp", Images: []string{}}
	require.NoError(t, idx.IndexProduct(context.Background(), prod))

	require.Len(t, ft.calls, 1)
	assert.Equal(t, http.MethodPut, ft.calls[0].Method)
	assert.Equal(t, "/products/_doc/64b7f0c2a1b2c3d4e5f60718", ft.calls[0].Path)
	assert.Contains(t, ft.calls[0].Body, `"name":"Lamp"`)
}

func TestDeleteProductIgnoresMissing(t *testing.T) {
	idx, _ := newTestIndex(t, func(req *http.Request) (int, string) {
		return http.StatusNotFound, `{"result":"not_found"}`
	})
	require.NoError(t, idx.DeleteProduct(context.Background(), "64b7f0c2a1b2c3d4e5f60718"))
}

func TestEnsureIndexCreatesWhenMissing(t *testing.T) {
	idx, ft := newTestIndex(t, func(req *http.Request) (int, string) {
		if req.Method == http.MethodHead {
			return http.StatusNotFound, ``
		}
		return http.StatusOK, `{"acknowledged":true}`
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, ft.calls, 2)
	assert.Equal(t, http.MethodPut, ft.calls[1].Method)
	assert.Equal(t, "/products", ft.calls[1].Path)
	assert.Contains(t, ft.calls[1].Body, `"mappings"`)
}

func TestEnsureIndexSkipsExisting(t *testing.T) {
	idx, ft := newTestIndex(t, func(req *http.Request) (int, string) {
		return http.StatusOK, ``
	})

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Len(t, ft.calls, 1)
}

func TestNewClientChecksInfo(t *testing.T) {
	ft := &fakeTransport{respond: func(req *http.Request) (int, string) {
		return http.StatusOK, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`
	}}
	cfg := config.Config{ESURL: "http://es.test:9200"}

	client, err := NewClient(context.Background(), cfg, ft)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, "/", ft.calls[0].Path)
}
