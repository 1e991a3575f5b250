package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/beanfield/storefront-gateway/internal/domain/commerce"
)

// CatalogServiceInterface defines the catalog reads the handlers need.
type CatalogServiceInterface interface {
	Home(ctx context.Context) (commerce.Home, error)
	Products(ctx context.Context) ([]commerce.Product, error)
	Product(ctx context.Context, id string) (commerce.Product, error)
	Categories(ctx context.Context) ([]commerce.Category, error)
}

// CartServiceInterface defines the cart operations the handlers need.
type CartServiceInterface interface {
	Cart(ctx context.Context, token string) (commerce.Cart, error)
	AddItem(ctx context.Context, token, productID string, quantity int) (commerce.Cart, error)
	UpdateItem(ctx context.Context, token, itemID string, quantity int) (commerce.Cart, error)
	RemoveItem(ctx context.Context, token, itemID string) (commerce.Cart, error)
}

// OrderServiceInterface defines checkout and order history operations.
type OrderServiceInterface interface {
	Checkout(ctx context.Context, token string) (commerce.Order, error)
	Orders(ctx context.Context, token string) ([]commerce.Order, error)
	Order(ctx context.Context, token, id string) (commerce.Order, error)
}

// StorefrontHandlers serves the public catalog and the per-user cart and
// order endpoints.
type StorefrontHandlers struct {
	Catalog CatalogServiceInterface
	Carts   CartServiceInterface
	Orders  OrderServiceInterface
	Errors  *ServiceErrorWriter
}

// Home returns the landing payload.
// GET /api/home.
func (h *StorefrontHandlers) Home(w http.ResponseWriter, r *http.Request) {
	home, err := h.Catalog.Home(r.Context())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, home)
}

// Products lists the catalog. An optional limit query param truncates the
// list for teaser sections.
// GET /api/products?limit=<n>.
func (h *StorefrontHandlers) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Products(r.Context())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	if limit := parseIntQuery(r, "limit", 0); limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	WriteJSON(w, http.StatusOK, products)
}

// Product returns one product.
// GET /api/products/{id}.
func (h *StorefrontHandlers) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, product)
}

// Categories lists the categories.
// GET /api/categories.
func (h *StorefrontHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, categories)
}

// Cart returns the current cart.
// GET /api/cart.
func (h *StorefrontHandlers) Cart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.Cart(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cart)
}

// cartAddRequest is the add-to-cart payload.
type cartAddRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartAdd adds a product to the cart and returns the refreshed cart.
// POST /api/cart/items.
func (h *StorefrontHandlers) CartAdd(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.Carts.AddItem(r.Context(), TokenFromContext(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cart)
}

// cartUpdateRequest is the quantity-change payload.
type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// CartUpdate changes a line's quantity; zero removes it.
// PUT /api/cart/items/{id}.
func (h *StorefrontHandlers) CartUpdate(w http.ResponseWriter, r *http.Request) {
	var req cartUpdateRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	cart, err := h.Carts.UpdateItem(r.Context(), TokenFromContext(r.Context()), r.PathValue("id"), req.Quantity)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cart)
}

// CartRemove drops a line.
// DELETE /api/cart/items/{id}.
func (h *StorefrontHandlers) CartRemove(w http.ResponseWriter, r *http.Request) {
	cart, err := h.Carts.RemoveItem(r.Context(), TokenFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, cart)
}

// Checkout turns the cart into an order.
// POST /api/checkout.
func (h *StorefrontHandlers) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Checkout(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

// OrderList returns the user's order history.
// GET /api/orders.
func (h *StorefrontHandlers) OrderList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Orders(r.Context(), TokenFromContext(r.Context()))
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

// OrderByID returns a single order.
// GET /api/orders/{id}.
func (h *StorefrontHandlers) OrderByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_order_id",
			Err:     errors.New("order ID is required"),
		})
		return
	}
	order, err := h.Orders.Order(r.Context(), TokenFromContext(r.Context()), id)
	if err != nil {
		h.Errors.Write(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}
