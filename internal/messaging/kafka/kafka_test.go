package kafka

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
)

func TestEncode(t *testing.T) {
	event := entity.ProductListed{Product: entity.Product{ID: "p1", Name: "Coxinha", Price: decimal.RequireFromString("6.00")}}

	msg, err := encode(messaging.Topic(event), "p1", event)
	require.NoError(t, err)
	assert.Equal(t, messaging.TopicProductListed, msg.Topic)
	assert.Equal(t, []byte("p1"), msg.Key)

	var decoded entity.ProductListed
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "Coxinha", decoded.Product.Name)
	assert.True(t, decoded.Product.Price.Equal(decimal.RequireFromString("6")))
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	_, err := encode("t", "k", make(chan int))
	assert.Error(t, err)
}
