package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
)

// CartAPI implements ports.CartAPI against the commerce API.
type CartAPI struct {
	client *Client
}

// NewCartAPI creates the cart surface of the commerce API client.
func NewCartAPI(client *Client) *CartAPI {
	return &CartAPI{client: client}
}

func (c *CartAPI) Cart(ctx context.Context, token string) (commerce.Cart, error) {
	body, err := c.client.do(ctx, requestParams{
		Method: http.MethodGet,
		Path:   "/cart",
		Token:  token,
	})
	if err != nil {
		return commerce.Cart{}, err
	}
	var cart commerce.Cart
	if err := decodeInto(body, &cart); err != nil {
		return commerce.Cart{}, err
	}
	return cart, nil
}

func (c *CartAPI) AddItem(ctx context.Context, token, productID string, quantity int) error {
	_, err := c.client.do(ctx, requestParams{
		Method: http.MethodPost,
		Path:   "/cart/items",
		Token:  token,
		Body: map[string]any{
			"productId": productID,
			"quantity":  quantity,
		},
	})
	return err
}

func (c *CartAPI) UpdateItem(ctx context.Context, token, itemID string, quantity int) error {
	_, err := c.client.do(ctx, requestParams{
		Method: http.MethodPut,
		Path:   "/cart/items/" + url.PathEscape(itemID),
		Token:  token,
		Body:   map[string]any{"quantity": quantity},
	})
	return err
}

func (c *CartAPI) RemoveItem(ctx context.Context, token, itemID string) error {
	_, err := c.client.do(ctx, requestParams{
		Method: http.MethodDelete,
		Path:   "/cart/items/" + url.PathEscape(itemID),
		Token:  token,
	})
	return err
}
