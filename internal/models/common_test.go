// internal/models/common_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		// No skipping
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusPreparing, OrderStatusDelivered, false},

		// No going back, no staying put
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusShipped, OrderStatusPreparing, false},
		{OrderStatusPreparing, OrderStatusPreparing, false},

		// Terminal state
		{OrderStatusDelivered, OrderStatusPending, false},

		// Unknown values
		{OrderStatusPending, OrderStatus("cancelled"), false},
		{OrderStatus("cancelled"), OrderStatusPreparing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, status.IsValid(), "%s", status)
	}
	assert.False(t, OrderStatus("cancelled").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestDecimalJSONIsUnquoted(t *testing.T) {
	order := Order{Total: decimal.RequireFromString("5999.80")}

	data, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total":5999.8`)
}
