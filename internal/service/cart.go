package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// CartServiceOptions groups dependencies for CartService.
type CartServiceOptions struct {
	API ports.CartAPI
}

// CartService proxies cart operations. The backend owns cart state and all
// pricing; after every mutation the cart is re-fetched so the caller always
// sees backend-computed totals.
type CartService struct {
	api ports.CartAPI
}

// NewCartService constructs a new CartService.
func NewCartService(opts CartServiceOptions) *CartService {
	return &CartService{api: opts.API}
}

// Cart returns the current cart for the token's user.
func (s *CartService) Cart(ctx context.Context, token string) (commerce.Cart, error) {
	if token == "" {
		return commerce.Cart{}, errors.New("token is required")
	}
	cart, err := s.api.Cart(ctx, token)
	if err != nil {
		return commerce.Cart{}, fmt.Errorf("fetch cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a product and returns the refreshed cart.
func (s *CartService) AddItem(ctx context.Context, token, productID string, quantity int) (commerce.Cart, error) {
	if productID == "" {
		return commerce.Cart{}, errors.New("product ID is required")
	}
	if quantity <= 0 {
		return commerce.Cart{}, errors.New("quantity must be positive")
	}
	if err := s.api.AddItem(ctx, token, productID, quantity); err != nil {
		return commerce.Cart{}, fmt.Errorf("add cart item: %w", err)
	}
	return s.Cart(ctx, token)
}

// UpdateItem changes a line's quantity and returns the refreshed cart.
// Quantity zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, token, itemID string, quantity int) (commerce.Cart, error) {
	if itemID == "" {
		return commerce.Cart{}, errors.New("item ID is required")
	}
	if quantity < 0 {
		return commerce.Cart{}, errors.New("quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, token, itemID)
	}
	if err := s.api.UpdateItem(ctx, token, itemID, quantity); err != nil {
		return commerce.Cart{}, fmt.Errorf("update cart item: %w", err)
	}
	return s.Cart(ctx, token)
}

// RemoveItem drops a line and returns the refreshed cart.
func (s *CartService) RemoveItem(ctx context.Context, token, itemID string) (commerce.Cart, error) {
	if itemID == "" {
		return commerce.Cart{}, errors.New("item ID is required")
	}
	if err := s.api.RemoveItem(ctx, token, itemID); err != nil {
		return commerce.Cart{}, fmt.Errorf("remove cart item: %w", err)
	}
	return s.Cart(ctx, token)
}
