package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafa37412/CeFoods/internal/entity"
)

func TestDefaultSeed(t *testing.T) {
	s, err := DefaultSeed()
	require.NoError(t, err)

	require.Len(t, s.Categories, 4)
	assert.Equal(t, "doces", s.Categories[0].ID)

	require.Len(t, s.Stores, 3)
	for _, st := range s.Stores {
		assert.Equal(t, 2, st.Products, st.Name)
		assert.Zero(t, st.Sales)
		assert.True(t, st.Revenue.IsZero())
	}
	assert.Equal(t, "1", s.Stores[0].OwnerID)

	require.Len(t, s.Products, 6)
	assert.Equal(t, "PH Foods", s.Products[0].StoreName)
	assert.Equal(t, "6.00", entity.FormatCurrency(s.Products[0].Price))
	assert.Equal(t, "8.50", entity.FormatCurrency(s.Products[1].Price))

	assert.Equal(t, "teste", s.DemoAccount.Username)
	assert.Equal(t, "100.00", entity.FormatCurrency(s.DemoBalance))
}

func TestParseSeedErrors(t *testing.T) {
	_, err := ParseSeed([]byte("products: [{id: x, store_id: nope, price: '1'}]"))
	assert.ErrorContains(t, err, "unknown store")

	_, err = ParseSeed([]byte("stores: [{id: '1'}]\nproducts: [{id: x, store_id: '1', price: abc}]"))
	assert.ErrorContains(t, err, "invalid price")

	_, err = ParseSeed([]byte("stores: ["))
	assert.Error(t, err)
}
