package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	API ports.OrderAPI
}

// OrderService proxies checkout and order history to the backend.
type OrderService struct {
	api ports.OrderAPI
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) *OrderService {
	return &OrderService{api: opts.API}
}

// Checkout turns the token's cart into an order.
func (s *OrderService) Checkout(ctx context.Context, token string) (commerce.Order, error) {
	if token == "" {
		return commerce.Order{}, errors.New("token is required")
	}
	order, err := s.api.Checkout(ctx, token)
	if err != nil {
		return commerce.Order{}, fmt.Errorf("checkout: %w", err)
	}
	return order, nil
}

// Orders lists the token's order history.
func (s *OrderService) Orders(ctx context.Context, token string) ([]commerce.Order, error) {
	if token == "" {
		return nil, errors.New("token is required")
	}
	orders, err := s.api.Orders(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

// Order fetches one order by ID.
func (s *OrderService) Order(ctx context.Context, token, id string) (commerce.Order, error) {
	if id == "" {
		return commerce.Order{}, errors.New("order ID is required")
	}
	order, err := s.api.Order(ctx, token, id)
	if err != nil {
		return commerce.Order{}, fmt.Errorf("fetch order %s: %w", id, err)
	}
	return order, nil
}
