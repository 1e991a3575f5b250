package ports_test

import (
	"testing"

	mockauth "github.com/beanfield/storefront-gateway/internal/mocks/auth"
	mockcommerce "github.com/beanfield/storefront-gateway/internal/mocks/commerce"
	"github.com/beanfield/storefront-gateway/internal/ports"
)

// This test only verifies that our test doubles conform to the ports at
// compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.AuthAPI = (*mockauth.MockAuthAPI)(nil)
	var _ ports.CredentialStore = (*mockauth.MemoryCredentialStore)(nil)
	var _ ports.AuthProvider = (*mockauth.MockAuthProvider)(nil)
	var _ ports.CatalogAPI = (*mockcommerce.FakeCatalogAPI)(nil)
	var _ ports.CartAPI = (*mockcommerce.FakeCartAPI)(nil)
	var _ ports.OrderAPI = (*mockcommerce.FakeOrderAPI)(nil)
	var _ ports.CatalogCache = (*mockcommerce.MemoryCatalogCache)(nil)
}
