package catalog

import (
	"fmt"
	"strings"
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPopular   = "popular"
)

func ValidSort(s string) bool {
	switch s {
	case SortPriceAsc, SortPriceDesc, SortNewest, SortOldest, SortPopular:
		return true
	}
	return false
}

// ListFilter holds the optional listing filters. Nil/zero fields contribute
// no predicate; available-only is always enforced.
type ListFilter struct {
	CategoryID *int64
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Condition  Condition
	SortBy     string
}

// whereClause renders the filter as an AND-ed predicate list. Placeholders
// start at $start so callers can prepend their own arguments; the returned
// args line up with the rendered placeholders. The count query must use the
// identical clause so pagination totals stay exact.
func (f ListFilter) whereClause(start int) (string, []any) {
	clauses := []string{"p.status = 'available'"}
	var args []any
	next := func() int { return start + len(args) }

	if f.CategoryID != nil {
		clauses = append(clauses, fmt.Sprintf("p.category_id = $%d", next()))
		args = append(args, *f.CategoryID)
	}
	if f.Search != "" {
		n := next()
		clauses = append(clauses, fmt.Sprintf("(p.title ILIKE $%d OR p.description ILIKE $%d)", n, n))
		args = append(args, "%"+f.Search+"%")
	}
	if f.MinPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price >= $%d", next()))
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("p.price <= $%d", next()))
		args = append(args, *f.MaxPrice)
	}
	if f.Condition != "" {
		clauses = append(clauses, fmt.Sprintf("p.condition = $%d", next()))
		args = append(args, string(f.Condition))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps a sort key to a fixed ORDER BY; anything unrecognized
// falls back to newest-first.
func (f ListFilter) orderClause() string {
	switch f.SortBy {
	case SortPriceAsc:
		return "ORDER BY p.price ASC"
	case SortPriceDesc:
		return "ORDER BY p.price DESC"
	case SortOldest:
		return "ORDER BY p.created_at ASC"
	case SortPopular:
		return "ORDER BY p.view_count DESC"
	default:
		return "ORDER BY p.created_at DESC"
	}
}
