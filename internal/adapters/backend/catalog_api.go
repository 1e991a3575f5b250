package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
)

// CatalogAPI implements ports.CatalogAPI against the commerce API.
type CatalogAPI struct {
	client *Client
}

// NewCatalogAPI creates the catalog surface of the commerce API client.
func NewCatalogAPI(client *Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

func (c *CatalogAPI) Products(ctx context.Context) ([]commerce.Product, error) {
	body, err := c.client.do(ctx, requestParams{Method: http.MethodGet, Path: "/products"})
	if err != nil {
		return nil, err
	}
	var products []commerce.Product
	if err := decodeInto(body, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *CatalogAPI) Product(ctx context.Context, id string) (commerce.Product, error) {
	body, err := c.client.do(ctx, requestParams{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(id),
	})
	if err != nil {
		return commerce.Product{}, err
	}
	var product commerce.Product
	if err := decodeInto(body, &product); err != nil {
		return commerce.Product{}, err
	}
	return product, nil
}

func (c *CatalogAPI) Categories(ctx context.Context) ([]commerce.Category, error) {
	body, err := c.client.do(ctx, requestParams{Method: http.MethodGet, Path: "/categories"})
	if err != nil {
		return nil, err
	}
	var categories []commerce.Category
	if err := decodeInto(body, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *CatalogAPI) Featured(ctx context.Context) ([]commerce.Product, error) {
	body, err := c.client.do(ctx, requestParams{Method: http.MethodGet, Path: "/products?featured=true"})
	if err != nil {
		return nil, err
	}
	var products []commerce.Product
	if err := decodeInto(body, &products); err != nil {
		return nil, err
	}
	return products, nil
}
