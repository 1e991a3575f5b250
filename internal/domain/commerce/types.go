package commerce

// Package commerce holds display types for the storefront surface. The
// commerce backend owns all business rules; these shapes only carry what
// the gateway passes through to clients.

import "time"

// Product is a catalog item as served by the commerce API.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CategoryID  string  `json:"categoryId,omitempty"`
	Stock       int     `json:"stock"`
	Featured    bool    `json:"featured,omitempty"`
}

// Category groups catalog items.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartItem is one line in a cart.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the authoritative cart as held by the backend. The gateway never
// computes totals locally; it re-fetches after every mutation.
type Cart struct {
	ID       string     `json:"id"`
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
}

// Order is a placed order, past or present.
type Order struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	Total     float64    `json:"total"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []CartItem `json:"items,omitempty"`
}

// Home is the storefront landing payload.
type Home struct {
	Featured   []Product  `json:"featured"`
	Categories []Category `json:"categories"`
}
