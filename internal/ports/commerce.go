package ports

import (
	"context"
	"time"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
)

// CatalogAPI is the read-only catalog surface of the commerce API.
type CatalogAPI interface {
	Products(ctx context.Context) ([]commerce.Product, error)
	Product(ctx context.Context, id string) (commerce.Product, error)
	Categories(ctx context.Context) ([]commerce.Category, error)
	Featured(ctx context.Context) ([]commerce.Product, error)
}

// CartAPI is the per-user cart surface. All calls carry the user's bearer
// token; the backend owns the cart state.
type CartAPI interface {
	Cart(ctx context.Context, token string) (commerce.Cart, error)
	AddItem(ctx context.Context, token, productID string, quantity int) error
	UpdateItem(ctx context.Context, token, itemID string, quantity int) error
	RemoveItem(ctx context.Context, token, itemID string) error
}

// OrderAPI covers checkout and order history.
type OrderAPI interface {
	Checkout(ctx context.Context, token string) (commerce.Order, error)
	Orders(ctx context.Context, token string) ([]commerce.Order, error)
	Order(ctx context.Context, token, id string) (commerce.Order, error)
}

// CatalogCache caches serialized catalog payloads with a TTL. Misses return
// ErrCacheMiss.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned by CatalogCache.Get when the key is absent.
type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }

var ErrCacheMiss error = cacheMissError{}
