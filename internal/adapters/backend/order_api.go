package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
)

// OrderAPI implements ports.OrderAPI against the commerce API.
type OrderAPI struct {
	client *Client
}

// NewOrderAPI creates the order surface of the commerce API client.
func NewOrderAPI(client *Client) *OrderAPI {
	return &OrderAPI{client: client}
}

func (o *OrderAPI) Checkout(ctx context.Context, token string) (commerce.Order, error) {
	body, err := o.client.do(ctx, requestParams{
		Method: http.MethodPost,
		Path:   "/checkout",
		Token:  token,
	})
	if err != nil {
		return commerce.Order{}, err
	}
	var order commerce.Order
	if err := decodeInto(body, &order); err != nil {
		return commerce.Order{}, err
	}
	return order, nil
}

func (o *OrderAPI) Orders(ctx context.Context, token string) ([]commerce.Order, error) {
	body, err := o.client.do(ctx, requestParams{
		Method: http.MethodGet,
		Path:   "/orders",
		Token:  token,
	})
	if err != nil {
		return nil, err
	}
	var orders []commerce.Order
	if err := decodeInto(body, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (o *OrderAPI) Order(ctx context.Context, token, id string) (commerce.Order, error) {
	body, err := o.client.do(ctx, requestParams{
		Method: http.MethodGet,
		Path:   "/orders/" + url.PathEscape(id),
		Token:  token,
	})
	if err != nil {
		return commerce.Order{}, err
	}
	var order commerce.Order
	if err := decodeInto(body, &order); err != nil {
		return commerce.Order{}, err
	}
	return order, nil
}
