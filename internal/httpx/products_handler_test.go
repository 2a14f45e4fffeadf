package httpx

import (
	"net/url"
	"testing"

	"github.com/ecofinds/ecofinds-backend/internal/catalog"
)

func TestParseListQueryDefaults(t *testing.T) {
	page, limit, f, errs := parseListQuery(url.Values{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if page != 1 || limit != 12 {
		t.Errorf("page, limit = %d, %d, want 1, 12", page, limit)
	}
	if f.CategoryID != nil || f.Search != "" || f.MinPrice != nil || f.MaxPrice != nil || f.Condition != "" || f.SortBy != "" {
		t.Errorf("filter should be empty, got %+v", f)
	}
}

func TestParseListQueryFull(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	q.Set("limit", "24")
	q.Set("category", "5")
	q.Set("search", "bike")
	q.Set("minPrice", "10.50")
	q.Set("maxPrice", "200")
	q.Set("condition", "Like New")
	q.Set("sortBy", "price_asc")

	page, limit, f, errs := parseListQuery(q)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if page != 3 || limit != 24 {
		t.Errorf("page, limit = %d, %d", page, limit)
	}
	if f.CategoryID == nil || *f.CategoryID != 5 {
		t.Errorf("category = %v", f.CategoryID)
	}
	if f.Search != "bike" {
		t.Errorf("search = %q", f.Search)
	}
	if f.MinPrice == nil || *f.MinPrice != 10.50 {
		t.Errorf("minPrice = %v", f.MinPrice)
	}
	if f.MaxPrice == nil || *f.MaxPrice != 200 {
		t.Errorf("maxPrice = %v", f.MaxPrice)
	}
	if f.Condition != catalog.Condition("Like New") {
		t.Errorf("condition = %q", f.Condition)
	}
	if f.SortBy != catalog.SortPriceAsc {
		t.Errorf("sortBy = %q", f.SortBy)
	}
}

// Every bad parameter shows up in one response instead of failing one at a time.
func TestParseListQueryAccumulatesErrors(t *testing.T) {
	q := url.Values{}
	q.Set("page", "0")
	q.Set("limit", "999")
	q.Set("category", "abc")
	q.Set("minPrice", "-1")
	q.Set("maxPrice", "lots")
	q.Set("condition", "Mint")
	q.Set("sortBy", "random")

	_, _, _, errs := parseListQuery(q)
	if len(errs) != 7 {
		t.Fatalf("got %d errors, want 7: %+v", len(errs), errs)
	}
	seen := map[string]bool{}
	for _, e := range errs {
		seen[e.Field] = true
	}
	for _, want := range []string{"page", "limit", "category", "minPrice", "maxPrice", "condition", "sortBy"} {
		if !seen[want] {
			t.Errorf("missing error for %q", want)
		}
	}
}

func TestParseListQueryLimitBounds(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "50")
	_, limit, _, errs := parseListQuery(q)
	if len(errs) != 0 || limit != 50 {
		t.Fatalf("limit=50 should be accepted, got limit=%d errs=%+v", limit, errs)
	}

	q.Set("limit", "51")
	_, limit, _, errs = parseListQuery(q)
	if len(errs) != 1 || limit != 12 {
		t.Fatalf("limit=51 should be rejected and fall back, got limit=%d errs=%+v", limit, errs)
	}
}
