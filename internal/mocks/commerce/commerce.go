package commerce

// Package commerce contains hand-written test doubles for the commerce
// ports. Tests that want call expectations use the gomock versions from
// internal/mocks instead; these fakes are for state-based tests.

import (
	"context"
	"fmt"
	"sync"
	"time"

	domaincommerce "github.com/beanfield/storefront-gateway/internal/domain/commerce"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

var (
	_ ports.CatalogAPI   = (*FakeCatalogAPI)(nil)
	_ ports.CartAPI      = (*FakeCartAPI)(nil)
	_ ports.OrderAPI     = (*FakeOrderAPI)(nil)
	_ ports.CatalogCache = (*MemoryCatalogCache)(nil)
)

// FakeCatalogAPI returns canned catalog data and counts calls so tests can
// assert cache hits.
type FakeCatalogAPI struct {
	ProductsFunc   func(ctx context.Context) ([]domaincommerce.Product, error)
	ProductFunc    func(ctx context.Context, id string) (domaincommerce.Product, error)
	CategoriesFunc func(ctx context.Context) ([]domaincommerce.Category, error)
	FeaturedFunc   func(ctx context.Context) ([]domaincommerce.Product, error)

	ProductList  []domaincommerce.Product
	CategoryList []domaincommerce.Category
	FeaturedList []domaincommerce.Product

	mu              sync.Mutex
	ProductsCalls   int
	CategoriesCalls int
	FeaturedCalls   int
}

func (f *FakeCatalogAPI) Products(ctx context.Context) ([]domaincommerce.Product, error) {
	f.mu.Lock()
	f.ProductsCalls++
	f.mu.Unlock()
	if f.ProductsFunc != nil {
		return f.ProductsFunc(ctx)
	}
	return f.ProductList, nil
}

func (f *FakeCatalogAPI) Product(ctx context.Context, id string) (domaincommerce.Product, error) {
	if f.ProductFunc != nil {
		return f.ProductFunc(ctx, id)
	}
	for _, p := range f.ProductList {
		if p.ID == id {
			return p, nil
		}
	}
	return domaincommerce.Product{}, fmt.Errorf("product %s not found", id)
}

func (f *FakeCatalogAPI) Categories(ctx context.Context) ([]domaincommerce.Category, error) {
	f.mu.Lock()
	f.CategoriesCalls++
	f.mu.Unlock()
	if f.CategoriesFunc != nil {
		return f.CategoriesFunc(ctx)
	}
	return f.CategoryList, nil
}

func (f *FakeCatalogAPI) Featured(ctx context.Context) ([]domaincommerce.Product, error) {
	f.mu.Lock()
	f.FeaturedCalls++
	f.mu.Unlock()
	if f.FeaturedFunc != nil {
		return f.FeaturedFunc(ctx)
	}
	return f.FeaturedList, nil
}

// FakeCartAPI keeps a cart per token in memory.
type FakeCartAPI struct {
	CartFunc       func(ctx context.Context, token string) (domaincommerce.Cart, error)
	AddItemFunc    func(ctx context.Context, token, productID string, quantity int) error
	UpdateItemFunc func(ctx context.Context, token, itemID string, quantity int) error
	RemoveItemFunc func(ctx context.Context, token, itemID string) error

	mu    sync.Mutex
	carts map[string][]domaincommerce.CartItem
}

func NewFakeCartAPI() *FakeCartAPI {
	return &FakeCartAPI{carts: make(map[string][]domaincommerce.CartItem)}
}

func (f *FakeCartAPI) Cart(ctx context.Context, token string) (domaincommerce.Cart, error) {
	if f.CartFunc != nil {
		return f.CartFunc(ctx, token)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return domaincommerce.Cart{Items: append([]domaincommerce.CartItem(nil), f.carts[token]...)}, nil
}

func (f *FakeCartAPI) AddItem(ctx context.Context, token, productID string, quantity int) error {
	if f.AddItemFunc != nil {
		return f.AddItemFunc(ctx, token, productID, quantity)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[token] = append(f.carts[token], domaincommerce.CartItem{
		ID:        fmt.Sprintf("item-%d", len(f.carts[token])+1),
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

func (f *FakeCartAPI) UpdateItem(ctx context.Context, token, itemID string, quantity int) error {
	if f.UpdateItemFunc != nil {
		return f.UpdateItemFunc(ctx, token, itemID, quantity)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.carts[token] {
		if f.carts[token][i].ID == itemID {
			f.carts[token][i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

func (f *FakeCartAPI) RemoveItem(ctx context.Context, token, itemID string) error {
	if f.RemoveItemFunc != nil {
		return f.RemoveItemFunc(ctx, token, itemID)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.carts[token]
	for i := range items {
		if items[i].ID == itemID {
			f.carts[token] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", itemID)
}

// FakeOrderAPI returns canned orders.
type FakeOrderAPI struct {
	CheckoutFunc func(ctx context.Context, token string) (domaincommerce.Order, error)
	OrdersFunc   func(ctx context.Context, token string) ([]domaincommerce.Order, error)
	OrderFunc    func(ctx context.Context, token, id string) (domaincommerce.Order, error)

	OrderList []domaincommerce.Order
}

func (f *FakeOrderAPI) Checkout(ctx context.Context, token string) (domaincommerce.Order, error) {
	if f.CheckoutFunc != nil {
		return f.CheckoutFunc(ctx, token)
	}
	return domaincommerce.Order{ID: "order-1", Status: "pending"}, nil
}

func (f *FakeOrderAPI) Orders(ctx context.Context, token string) ([]domaincommerce.Order, error) {
	if f.OrdersFunc != nil {
		return f.OrdersFunc(ctx, token)
	}
	return f.OrderList, nil
}

func (f *FakeOrderAPI) Order(ctx context.Context, token, id string) (domaincommerce.Order, error) {
	if f.OrderFunc != nil {
		return f.OrderFunc(ctx, token, id)
	}
	for _, o := range f.OrderList {
		if o.ID == id {
			return o, nil
		}
	}
	return domaincommerce.Order{}, fmt.Errorf("order %s not found", id)
}

// MemoryCatalogCache is an in-memory CatalogCache. TTLs are honored so
// expiry paths are testable without Redis.
type MemoryCatalogCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{entries: make(map[string]cacheEntry)}
}

func (c *MemoryCatalogCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		delete(c.entries, key)
		return nil, ports.ErrCacheMiss
	}
	return e.value, nil
}

func (c *MemoryCatalogCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *MemoryCatalogCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
