package catalog

import (
	"strings"
	"testing"
)

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestWhereClauseNoFilters(t *testing.T) {
	where, args := ListFilter{}.whereClause(1)
	if where != "WHERE p.status = 'available'" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestWhereClauseAllFilters(t *testing.T) {
	f := ListFilter{
		CategoryID: int64p(3),
		Search:     "lamp",
		MinPrice:   float64p(5),
		MaxPrice:   float64p(50),
		Condition:  ConditionGood,
	}
	where, args := f.whereClause(1)

	want := "WHERE p.status = 'available'" +
		" AND p.category_id = $1" +
		" AND (p.title ILIKE $2 OR p.description ILIKE $2)" +
		" AND p.price >= $3 AND p.price <= $4" +
		" AND p.condition = $5"
	if where != want {
		t.Errorf("where =\n%q\nwant\n%q", where, want)
	}
	if len(args) != 5 {
		t.Fatalf("args = %v", args)
	}
	if args[1] != "%lamp%" {
		t.Errorf("search arg = %v", args[1])
	}
}

func TestWhereClausePlaceholderOffset(t *testing.T) {
	f := ListFilter{Search: "bike", MaxPrice: float64p(100)}
	where, args := f.whereClause(2)
	if !strings.Contains(where, "$2") || !strings.Contains(where, "$3") {
		t.Errorf("placeholders not offset: %q", where)
	}
	if strings.Contains(where, "$1") {
		t.Errorf("clause reuses reserved placeholder: %q", where)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestWhereClauseSkipsAbsentFilters(t *testing.T) {
	f := ListFilter{MinPrice: float64p(10)}
	where, _ := f.whereClause(1)
	for _, frag := range []string{"category_id", "ILIKE", "p.price <=", "condition"} {
		if strings.Contains(where, frag) {
			t.Errorf("clause contains %q for absent filter: %q", frag, where)
		}
	}
}

func TestOrderClauseMapping(t *testing.T) {
	cases := map[string]string{
		SortPriceAsc:  "ORDER BY p.price ASC",
		SortPriceDesc: "ORDER BY p.price DESC",
		SortOldest:    "ORDER BY p.created_at ASC",
		SortPopular:   "ORDER BY p.view_count DESC",
		SortNewest:    "ORDER BY p.created_at DESC",
		"":            "ORDER BY p.created_at DESC",
		"bogus":       "ORDER BY p.created_at DESC",
	}
	for sort, want := range cases {
		got := ListFilter{SortBy: sort}.orderClause()
		if got != want {
			t.Errorf("orderClause(%q) = %q, want %q", sort, got, want)
		}
	}
}

func TestValidSort(t *testing.T) {
	for _, s := range []string{SortPriceAsc, SortPriceDesc, SortNewest, SortOldest, SortPopular} {
		if !ValidSort(s) {
			t.Errorf("ValidSort(%q) = false", s)
		}
	}
	if ValidSort("rating") {
		t.Error("ValidSort(rating) = true")
	}
}
