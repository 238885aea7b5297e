package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

func TestClientProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p1","name":"Brownie","price":6,"image_url":"x","category":"doces","rating":4.8,"review_count":42}]`))
	}))
	defer srv.Close()

	products, err := NewClient(srv.URL+"/", time.Second).Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Brownie", products[0].Name)
	assert.Equal(t, "6.00", entity.FormatCurrency(products[0].Price))
	assert.Equal(t, 42, products[0].ReviewCount)
}

func TestClientProductsFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"payload": func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := NewClient(srv.URL, time.Second).Products(context.Background())
			assert.ErrorIs(t, err, entity.ErrNetwork)
		})
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := NewClient(srv.URL, time.Second).Products(context.Background())
	assert.ErrorIs(t, err, entity.ErrNetwork)
}
