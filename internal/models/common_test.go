package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusShipped))
	assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusReturned))

	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusShipped))
	assert.False(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusConfirmed))
	assert.False(t, OrderStatusReturned.CanTransitionTo(OrderStatusPending))
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusReturned.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusDelivered.IsTerminal())
}

func TestUserRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAdmin.AtLeast(RoleManager))
	assert.True(t, RoleManager.AtLeast(RoleManager))
	assert.True(t, RoleManager.AtLeast(RoleCustomer))
	assert.False(t, RoleCustomer.AtLeast(RoleManager))
	assert.False(t, RoleManager.AtLeast(RoleAdmin))
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("teleported").IsValid())
	assert.True(t, UserRole("manager").IsValid())
	assert.False(t, UserRole("superuser").IsValid())
	assert.True(t, DiscountType("fixed_amount").IsValid())
	assert.False(t, DiscountType("bogo").IsValid())
}

func TestProductCurrentPrice(t *testing.T) {
	p := &Product{Price: 99.99}
	assert.Equal(t, 99.99, p.CurrentPrice())

	sale := 79.99
	p.SalePrice = &sale
	assert.Equal(t, 79.99, p.CurrentPrice())
}
