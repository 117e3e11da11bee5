package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanAdvanceTo(t *testing.T) {
	testCases := []struct {
		name     string
		from     OrderStatus
		to       OrderStatus
		expected bool
	}{
		{"pending to processing", OrderPending, OrderProcessing, true},
		{"processing to dispatched", OrderProcessing, OrderDispatched, true},
		{"dispatched to delivered", OrderDispatched, OrderDelivered, true},
		{"pending to dispatched skips processing", OrderPending, OrderDispatched, false},
		{"pending to delivered skips everything", OrderPending, OrderDelivered, false},
		{"processing to delivered skips dispatched", OrderProcessing, OrderDelivered, false},
		{"delivered to anything", OrderDelivered, OrderProcessing, false},
		{"cancelled to anything", OrderCancelled, OrderProcessing, false},
		{"backwards from dispatched", OrderDispatched, OrderProcessing, false},
		{"pending to cancelled", OrderPending, OrderCancelled, true},
		{"processing to cancelled", OrderProcessing, OrderCancelled, true},
		{"dispatched to cancelled", OrderDispatched, OrderCancelled, false},
		{"delivered to cancelled", OrderDelivered, OrderCancelled, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.from.CanAdvanceTo(tc.to))
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderPending.IsTerminal())
	assert.False(t, OrderProcessing.IsTerminal())
	assert.False(t, OrderDispatched.IsTerminal())
}

func TestOrderStatusIsCancellable(t *testing.T) {
	assert.True(t, OrderPending.IsCancellable())
	assert.True(t, OrderProcessing.IsCancellable())
	assert.False(t, OrderDispatched.IsCancellable(), "dispatched orders must be resolved, not cancelled")
	assert.False(t, OrderDelivered.IsCancellable())
	assert.False(t, OrderCancelled.IsCancellable())
}

func TestComputeTotal(t *testing.T) {
	items := []OrderItem{
		{ItemID: "med-1", Name: "Paracetamol 500mg", Quantity: 2, Price: 12000},
		{ItemID: "med-2", Name: "Amoxicillin 250mg", Quantity: 3, Price: 8500},
	}
	assert.Equal(t, float64(49500), ComputeTotal(items))
	assert.Equal(t, float64(0), ComputeTotal(nil))
}
