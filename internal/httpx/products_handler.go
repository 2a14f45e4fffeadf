package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ecofinds/ecofinds-backend/internal/catalog"
	"github.com/ecofinds/ecofinds-backend/internal/redisx"
)

type ProductsHandler struct {
	Catalog *catalog.Repo
	Redis   *redis.Client
	Auth    *Authenticator
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Route("/api/products", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.OptionalAuth)
			r.Get("/", h.list)
			r.Get("/{id}", h.detail)
		})
		r.Get("/meta/categories", h.categories)
		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireAuth)
			r.Post("/", h.create)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
			r.Get("/user/my-listings", h.myListings)
		})
	})
}

const (
	defaultPage  = 1
	defaultLimit = 12
	maxLimit     = 50
)

// parseListQuery walks every filter parameter and reports all violations at
// once, before anything touches the store.
func parseListQuery(q url.Values) (int, int, catalog.ListFilter, []FieldError) {
	page, limit := defaultPage, defaultLimit
	var f catalog.ListFilter
	var errs []FieldError
	bad := func(field, msg string) { errs = append(errs, FieldError{Field: field, Message: msg}) }

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			bad("page", "must be a positive integer")
		} else {
			page = n
		}
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxLimit {
			bad("limit", fmt.Sprintf("must be between 1 and %d", maxLimit))
		} else {
			limit = n
		}
	}
	if s := q.Get("category"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n < 1 {
			bad("category", "must be a valid ID")
		} else {
			f.CategoryID = &n
		}
	}
	if s := q.Get("search"); s != "" {
		if len(s) > 100 {
			bad("search", "search term too long")
		} else {
			f.Search = s
		}
	}
	if s := q.Get("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			bad("minPrice", "must be a positive number")
		} else {
			f.MinPrice = &v
		}
	}
	if s := q.Get("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			bad("maxPrice", "must be a positive number")
		} else {
			f.MaxPrice = &v
		}
	}
	if s := q.Get("condition"); s != "" {
		c := catalog.Condition(s)
		if !c.Valid() {
			bad("condition", "has an invalid value")
		} else {
			f.Condition = c
		}
	}
	if s := q.Get("sortBy"); s != "" {
		if !catalog.ValidSort(s) {
			bad("sortBy", "has an invalid value")
		} else {
			f.SortBy = s
		}
	}
	return page, limit, f, errs
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	page, limit, filter, errs := parseListQuery(r.URL.Query())
	if len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	products, total, err := h.Catalog.List(ctx, filter, page, limit, currentUserID(r.Context()))
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": paginate(page, limit, total),
	})
}

func urlID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *ProductsHandler) detail(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondValidation(w, []FieldError{{Field: "id", Message: "must be a valid ID"}})
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	product, err := h.Catalog.Get(ctx, id, currentUserID(r.Context()))
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}

	related, err := h.Catalog.Related(ctx, product.ID, product.CategoryID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"product":         product,
		"relatedProducts": related,
	})
}

type createProductReq struct {
	Title            string   `json:"title" validate:"required,min=3,max=255"`
	Description      string   `json:"description" validate:"omitempty,max=2000"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice    *float64 `json:"original_price" validate:"omitempty,gt=0"`
	CategoryID       int64    `json:"category_id" validate:"required,min=1"`
	Condition        string   `json:"condition" validate:"required,oneof='New' 'Like New' 'Good' 'Fair' 'Poor'"`
	ImageURL         string   `json:"image_url" validate:"omitempty,max=500"`
	AdditionalImages []string `json:"additional_images"`
	Location         string   `json:"location" validate:"omitempty,max=255"`
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createProductReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	id, err := h.Catalog.Create(ctx, u.ID, catalog.CreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		CategoryID:       req.CategoryID,
		Condition:        catalog.Condition(req.Condition),
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		Location:         req.Location,
	})
	if errors.Is(err, catalog.ErrInvalidCategory) {
		respondError(w, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		respondInternal(w, err)
		return
	}

	product, err := h.Catalog.GetAny(ctx, id)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Product created successfully",
		map[string]any{"product": product})
}

type updateProductReq struct {
	Title            *string  `json:"title" validate:"omitempty,min=3,max=255"`
	Description      *string  `json:"description" validate:"omitempty,max=2000"`
	Price            *float64 `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice    *float64 `json:"original_price" validate:"omitempty,gt=0"`
	CategoryID       *int64   `json:"category_id" validate:"omitempty,min=1"`
	Condition        *string  `json:"condition" validate:"omitempty,oneof='New' 'Like New' 'Good' 'Fair' 'Poor'"`
	ImageURL         *string  `json:"image_url" validate:"omitempty,max=500"`
	AdditionalImages []string `json:"additional_images"`
	Location         *string  `json:"location" validate:"omitempty,max=255"`
}

// requireOwner enforces the owner-only rule for product mutations, keeping
// 404 and 403 distinct.
func (h *ProductsHandler) requireOwner(w http.ResponseWriter, r *http.Request, id int64) bool {
	u, _ := CurrentUser(r.Context())
	sellerID, err := h.Catalog.SellerOf(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return false
	}
	if err != nil {
		respondInternal(w, err)
		return false
	}
	if sellerID != u.ID {
		respondError(w, http.StatusForbidden, "Access denied - you do not own this resource")
		return false
	}
	return true
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondValidation(w, []FieldError{{Field: "id", Message: "must be a valid ID"}})
		return
	}
	var req updateProductReq
	if errs := bindJSON(r, &req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	var cond *catalog.Condition
	if req.Condition != nil {
		c := catalog.Condition(*req.Condition)
		cond = &c
	}
	err := h.Catalog.Update(ctx, id, catalog.UpdateInput{
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		OriginalPrice:    req.OriginalPrice,
		CategoryID:       req.CategoryID,
		Condition:        cond,
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		Location:         req.Location,
	})
	switch {
	case errors.Is(err, catalog.ErrNoFields):
		respondError(w, http.StatusBadRequest, "No fields to update")
		return
	case errors.Is(err, catalog.ErrInvalidCategory):
		respondError(w, http.StatusBadRequest, "Invalid category")
		return
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		respondInternal(w, err)
		return
	}

	product, err := h.Catalog.GetAny(ctx, id)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product updated successfully",
		map[string]any{"product": product})
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondValidation(w, []FieldError{{Field: "id", Message: "must be a valid ID"}})
		return
	}
	if !h.requireOwner(w, r, id) {
		return
	}

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	if err := h.Catalog.SoftDelete(ctx, id); err != nil {
		respondInternal(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductsHandler) myListings(w http.ResponseWriter, r *http.Request) {
	u, _ := CurrentUser(r.Context())

	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	listings, err := h.Catalog.MyListings(ctx, u.ID)
	if err != nil {
		respondInternal(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"products": listings})
}

// categories serves the read-mostly category set from Redis when warm.
func (h *ProductsHandler) categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 3*time.Second)
	defer cancel()

	if cached, err := h.Redis.Get(ctx, redisx.KeyCategories).Result(); err == nil && cached != "" {
		respondData(w, http.StatusOK, map[string]any{"categories": json.RawMessage(cached)})
		return
	}

	categories, err := h.Catalog.Categories(ctx)
	if err != nil {
		respondInternal(w, err)
		return
	}
	if b, err := json.Marshal(categories); err == nil {
		_ = h.Redis.Set(ctx, redisx.KeyCategories, b, redisx.TTLCategories).Err()
	}
	respondData(w, http.StatusOK, map[string]any{"categories": categories})
}
