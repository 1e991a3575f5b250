package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaincommerce "github.com/beanfield/storefront-gateway/internal/domain/commerce"
	mockcommerce "github.com/beanfield/storefront-gateway/internal/mocks/commerce"
)

func TestCartService_AddItem_RefreshesCart(t *testing.T) {
	api := mockcommerce.NewFakeCartAPI()
	svc := NewCartService(CartServiceOptions{API: api})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "tok", "p1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	svc := NewCartService(CartServiceOptions{API: mockcommerce.NewFakeCartAPI()})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "tok", "", 1)
	assert.Error(t, err)

	_, err = svc.AddItem(ctx, "tok", "p1", 0)
	assert.Error(t, err)
}

func TestCartService_UpdateItem_ZeroQuantityRemoves(t *testing.T) {
	api := mockcommerce.NewFakeCartAPI()
	svc := NewCartService(CartServiceOptions{API: api})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "tok", "p1", 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateItem(ctx, "tok", itemID, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateItem_ChangesQuantity(t *testing.T) {
	api := mockcommerce.NewFakeCartAPI()
	svc := NewCartService(CartServiceOptions{API: api})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "tok", "p1", 1)
	require.NoError(t, err)

	cart, err = svc.UpdateItem(ctx, "tok", cart.Items[0].ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	api := mockcommerce.NewFakeCartAPI()
	svc := NewCartService(CartServiceOptions{API: api})
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "tok", "p1", 1)
	require.NoError(t, err)

	cart, err = svc.RemoveItem(ctx, "tok", cart.Items[0].ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_Cart_RequiresToken(t *testing.T) {
	svc := NewCartService(CartServiceOptions{API: mockcommerce.NewFakeCartAPI()})

	_, err := svc.Cart(context.Background(), "")
	assert.Error(t, err)
}

func TestCartService_MutationFailureSkipsRefresh(t *testing.T) {
	api := mockcommerce.NewFakeCartAPI()
	api.AddItemFunc = func(context.Context, string, string, int) error {
		return errors.New("out of stock")
	}
	cartCalls := 0
	api.CartFunc = func(context.Context, string) (domaincommerce.Cart, error) {
		cartCalls++
		return domaincommerce.Cart{}, nil
	}
	svc := NewCartService(CartServiceOptions{API: api})

	_, err := svc.AddItem(context.Background(), "tok", "p1", 1)
	assert.Error(t, err)
	assert.Equal(t, 0, cartCalls)
}

func TestOrderService_Checkout(t *testing.T) {
	api := &mockcommerce.FakeOrderAPI{}
	svc := NewOrderService(OrderServiceOptions{API: api})

	order, err := svc.Checkout(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
}

func TestOrderService_Checkout_RequiresToken(t *testing.T) {
	svc := NewOrderService(OrderServiceOptions{API: &mockcommerce.FakeOrderAPI{}})

	_, err := svc.Checkout(context.Background(), "")
	assert.Error(t, err)
}

func TestOrderService_OrderLookup(t *testing.T) {
	api := &mockcommerce.FakeOrderAPI{
		OrderList: []domaincommerce.Order{
			{ID: "order-7", Status: "shipped"},
		},
	}
	svc := NewOrderService(OrderServiceOptions{API: api})
	ctx := context.Background()

	orders, err := svc.Orders(ctx, "tok")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	order, err := svc.Order(ctx, "tok", "order-7")
	require.NoError(t, err)
	assert.Equal(t, "shipped", order.Status)

	_, err = svc.Order(ctx, "tok", "")
	assert.Error(t, err)
}
