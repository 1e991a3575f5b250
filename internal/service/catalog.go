package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// Cache keys for catalog payloads.
const (
	cacheKeyProducts   = "products"
	cacheKeyCategories = "categories"
	cacheKeyFeatured   = "featured"
)

// CatalogServiceOptions groups dependencies for CatalogService.
type CatalogServiceOptions struct {
	API    ports.CatalogAPI
	Cache  ports.CatalogCache
	Logger *slog.Logger

	// CacheTTL bounds how long catalog payloads are served from cache.
	// Defaults to 5 minutes.
	CacheTTL time.Duration
}

// CatalogService serves catalog reads, caching list payloads so the public
// pages do not hammer the commerce backend. The cache is best effort: any
// cache failure falls through to the backend.
type CatalogService struct {
	api    ports.CatalogAPI
	cache  ports.CatalogCache
	logger *slog.Logger
	ttl    time.Duration
}

// NewCatalogService constructs a new CatalogService. Cache may be nil, in
// which case every read hits the backend.
func NewCatalogService(opts CatalogServiceOptions) *CatalogService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogService{
		api:    opts.API,
		cache:  opts.Cache,
		logger: logger,
		ttl:    ttl,
	}
}

// Products lists the catalog, served from cache when fresh.
func (s *CatalogService) Products(ctx context.Context) ([]commerce.Product, error) {
	var products []commerce.Product
	if s.fromCache(ctx, cacheKeyProducts, &products) {
		return products, nil
	}

	products, err := s.api.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	s.toCache(ctx, cacheKeyProducts, products)
	return products, nil
}

// Product fetches a single product. Detail pages are not cached; stock
// counts go stale too fast to be worth it.
func (s *CatalogService) Product(ctx context.Context, id string) (commerce.Product, error) {
	if id == "" {
		return commerce.Product{}, errors.New("product ID is required")
	}
	product, err := s.api.Product(ctx, id)
	if err != nil {
		return commerce.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return product, nil
}

// Categories lists categories, served from cache when fresh.
func (s *CatalogService) Categories(ctx context.Context) ([]commerce.Category, error) {
	var categories []commerce.Category
	if s.fromCache(ctx, cacheKeyCategories, &categories) {
		return categories, nil
	}

	categories, err := s.api.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	s.toCache(ctx, cacheKeyCategories, categories)
	return categories, nil
}

// Featured lists featured products, served from cache when fresh.
func (s *CatalogService) Featured(ctx context.Context) ([]commerce.Product, error) {
	var featured []commerce.Product
	if s.fromCache(ctx, cacheKeyFeatured, &featured) {
		return featured, nil
	}

	featured, err := s.api.Featured(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch featured products: %w", err)
	}
	s.toCache(ctx, cacheKeyFeatured, featured)
	return featured, nil
}

// Home assembles the landing payload, fetching featured products and
// categories concurrently.
func (s *CatalogService) Home(ctx context.Context) (commerce.Home, error) {
	var home commerce.Home

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		featured, err := s.Featured(gctx)
		if err != nil {
			return err
		}
		home.Featured = featured
		return nil
	})
	g.Go(func() error {
		categories, err := s.Categories(gctx)
		if err != nil {
			return err
		}
		home.Categories = categories
		return nil
	})
	if err := g.Wait(); err != nil {
		return commerce.Home{}, err
	}
	return home, nil
}

// InvalidateCache drops all cached catalog payloads.
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	var firstErr error
	for _, key := range []string{cacheKeyProducts, cacheKeyCategories, cacheKeyFeatured} {
		if err := s.cache.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("invalidate %s: %w", key, err)
		}
	}
	return firstErr
}

// fromCache loads key into out, reporting whether it was served.
func (s *CatalogService) fromCache(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if unmarshalErr := json.Unmarshal(raw, out); unmarshalErr != nil {
		s.logger.Warn("catalog cache payload corrupt", "key", key, "error", unmarshalErr)
		return false
	}
	return true
}

// toCache stores value under key, best effort.
func (s *CatalogService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("catalog cache marshal failed", "key", key, "error", err)
		return
	}
	if setErr := s.cache.Set(ctx, key, raw, s.ttl); setErr != nil {
		s.logger.Warn("catalog cache write failed", "key", key, "error", setErr)
	}
}
