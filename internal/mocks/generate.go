// Package mocks provides mock implementations for testing the storefront gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// commerce port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockCatalog := mocks.NewMockCatalogAPI(ctrl)
//	mockCatalog.EXPECT().Products(gomock.Any()).Return(products, nil)
package mocks

// Generate mock for CatalogAPI interface from internal/ports package.
// This creates MockCatalogAPI with methods for all CatalogAPI interface methods:
// Products, Product, Categories, Featured
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=catalog_api_mock.go github.com/beanfield/storefront-gateway/internal/ports CatalogAPI

// Generate mock for CartAPI interface from internal/ports package.
// This creates MockCartAPI with methods for all CartAPI interface methods:
// Cart, AddItem, UpdateItem, RemoveItem
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cart_api_mock.go github.com/beanfield/storefront-gateway/internal/ports CartAPI

// Generate mock for OrderAPI interface from internal/ports package.
// This creates MockOrderAPI with methods for all OrderAPI interface methods:
// Checkout, Orders, Order
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=order_api_mock.go github.com/beanfield/storefront-gateway/internal/ports OrderAPI

// Generate mock for CatalogCache interface from internal/ports package.
// This creates MockCatalogCache with methods for all CatalogCache interface methods:
// Get, Set, Delete
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=catalog_cache_mock.go github.com/beanfield/storefront-gateway/internal/ports CatalogCache
