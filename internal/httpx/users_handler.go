package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ecofinds/ecofinds-backend/internal/cart"
	kafkax "github.com/ecofinds/ecofinds-backend/internal/kafka"
	"github.com/ecofinds/ecofinds-backend/internal/orders"
)

// UsersHandler serves the authenticated buyer surface: cart, wishlist,
// checkout and order history.
type UsersHandler struct {
	Cart     *cart.Repo
	Orders   *orders.Repo
	Producer *kafkax.Producer
	Auth     *Authenticator
	Service  string
}

func (h *UsersHandler) Register(r *chi.Mux) {
	r.Route("/api/users", func(r chi.Router) {
		r.Use(h.Auth.RequireAuth)

		r.Get("/cart", h.getCart)
		r.Post("/cart", h.addToCart)
		r.Put("/cart/{cart_id}", h.updateCartItem)
		r.Delete("/cart/{cart_id}", h.removeCartItem)

		r.Get("/wishlist", h.getWishlist)
		r.Post("/wishlist", h.addToWishlist)
		r.Delete("/wishlist/{product_id}", h.removeFromWishlist)

		r.Post("/orders", h.checkout)
		r.Get("/orders", h.purchases)
		r.Get("/sales", h.sales)
	})
}

func (h *UsersHandler) getCart(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	lines, err := h.Cart.Lines(ctx, u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"items":   lines,
		"summary": cart.Summarize(lines),
	})
}

type addToCartReq struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1,max=10"`
}

// mapCartErr translates cart domain errors into the response taxonomy.
func mapCartErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, cart.ErrProductUnavailable):
		respondError(w, http.StatusBadRequest, "Product is not available")
	case errors.Is(err, cart.ErrOwnProduct):
		respondError(w, http.StatusBadRequest, "You cannot add your own product")
	case errors.Is(err, cart.ErrLineNotFound):
		respondError(w, http.StatusNotFound, "Cart item not found")
	case errors.Is(err, cart.ErrAlreadyWishlisted):
		respondError(w, http.StatusConflict, "Item already in wishlist")
	case errors.Is(err, cart.ErrNotWishlisted):
		respondError(w, http.StatusNotFound, "Item not found in wishlist")
	default:
		respondInternal(w, err)
	}
}

func (h *UsersHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Cart.Add(ctx, u.ID, req.ProductID, req.Quantity); err != nil {
		mapCartErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Item added to cart successfully", nil)
}

type updateCartReq struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=10"`
}

func urlInt64(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *UsersHandler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := urlInt64(r, "cart_id")
	if !ok {
		respondValidation(w, []FieldError{{Field: "cart_id", Message: "must be a valid ID"}})
		return
	}
	var req updateCartReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Cart.UpdateQuantity(ctx, u.ID, cartID, req.Quantity); err != nil {
		mapCartErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Cart updated successfully", nil)
}

func (h *UsersHandler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartID, ok := urlInt64(r, "cart_id")
	if !ok {
		respondValidation(w, []FieldError{{Field: "cart_id", Message: "must be a valid ID"}})
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Cart.Remove(ctx, u.ID, cartID); err != nil {
		mapCartErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Item removed from cart", nil)
}

func (h *UsersHandler) getWishlist(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	lines, err := h.Cart.WishlistLines(ctx, u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"items": lines})
}

type addToWishlistReq struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
}

func (h *UsersHandler) addToWishlist(w http.ResponseWriter, r *http.Request) {
	var req addToWishlistReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Cart.WishlistAdd(ctx, u.ID, req.ProductID); err != nil {
		mapCartErr(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Item added to wishlist successfully", nil)
}

func (h *UsersHandler) removeFromWishlist(w http.ResponseWriter, r *http.Request) {
	productID, ok := urlInt64(r, "product_id")
	if !ok {
		respondValidation(w, []FieldError{{Field: "product_id", Message: "must be a valid ID"}})
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Cart.WishlistRemove(ctx, u.ID, productID); err != nil {
		mapCartErr(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Item removed from wishlist", nil)
}

type checkoutReq struct {
	Items           []orders.ItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
}

func (h *UsersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if orders.DuplicateProducts(req.Items) {
		respondValidation(w, []FieldError{{Field: "items", Message: "duplicate product in checkout"}})
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 10*time.Second)
	defer cancel()

	result, err := h.Orders.Checkout(ctx, u.ID, req.Items, req.ShippingAddress)
	var unavailable *orders.UnavailableError
	switch {
	case errors.As(err, &unavailable):
		respondError(w, http.StatusBadRequest, unavailable.Error())
		return
	case errors.Is(err, orders.ErrSelfPurchase):
		respondError(w, http.StatusBadRequest, "You cannot purchase your own product")
		return
	case err != nil:
		respondInternal(w, err)
		return
	}

	h.publishOrderCreated(r, u.ID, result)

	respondMessage(w, http.StatusCreated, "Order created successfully", map[string]any{
		"orderIds":        result.OrderIDs,
		"totalAmount":     result.TotalAmount,
		"ecoPointsEarned": result.EcoPointsEarned,
	})
}

// publishOrderCreated emits the post-commit order event; delivery is
// best-effort and never fails the checkout response.
func (h *UsersHandler) publishOrderCreated(r *http.Request, buyerID int64, result orders.CheckoutResult) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: strconv.FormatInt(buyerID, 10),
		Payload: kafkax.MustMarshal(orders.OrderCreatedPayload{
			BuyerID:         buyerID,
			Lines:           result.Lines,
			TotalAmount:     result.TotalAmount,
			EcoPointsEarned: result.EcoPointsEarned,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(buyerID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *UsersHandler) purchases(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	out, err := h.Orders.Purchases(ctx, u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"orders": out})
}

func (h *UsersHandler) sales(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	out, err := h.Orders.Sales(ctx, u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"sales": out})
}
