package product

// MapSortDirection maps the sort query value: "asc" is ascending, anything
// else (including absent) is descending.
func MapSortDirection(raw string) SortDirection {
	if raw == string(SortDirectionAsc) {
		return SortDirectionAsc
	}
	return SortDirectionDesc
}

// Facets returns the distinct non-empty brands and categories of the given
// page in first-seen order. Only the page is inspected, not the full match set.
func Facets(products []Product) (brands, categories []string) {
	brands = distinct(products, func(p Product) string { return p.Brand })
	categories = distinct(products, func(p Product) string { return p.Category })
	return brands, categories
}

func distinct(products []Product, field func(Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))

	for _, p := range products {
		v := field(p)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
