package product

// AllCategories is the pseudo-category that selects every product.
const AllCategories = "All"

// DeriveCategories returns "All" followed by each distinct category in the
// order it first appears. The result depends only on the input.
func DeriveCategories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// FilterByCategory keeps the products whose category equals c exactly,
// preserving order. "All" returns the full list.
func FilterByCategory(products []Product, c string) []Product {
	if c == AllCategories {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
