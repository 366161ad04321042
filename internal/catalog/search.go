package catalog

import "strings"

// Search filters products whose name contains query, ignoring case. The input
// slice is never modified.
func Search(query string, products []Product) []Product {
	needle := strings.ToLower(query)
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the product with the given id.
func Lookup(products []Product, id ProductID) (Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}
