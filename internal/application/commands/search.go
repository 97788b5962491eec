package commands

import (
	"lookbook/internal/domain"
)

// SearchResult is one item matched by a query.
type SearchResult struct {
	Name     string
	Category string
	Trashed  bool
	Pages    []string
}

// SearchCommand filters the catalog with the fuzzy matcher. Results keep
// the catalog's render ordering: category order first, then the
// within-category ordering of the render projection.
type SearchCommand struct {
	catalog *domain.Catalog
	Query   string
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(catalog *domain.Catalog, query string) *SearchCommand {
	return &SearchCommand{catalog: catalog, Query: query}
}

// Execute runs the search. An empty query returns every item.
func (c *SearchCommand) Execute() []SearchResult {
	grouped := c.catalog.CategorizeForRender()

	var results []SearchResult
	for _, category := range renderOrder(c.catalog, grouped) {
		for _, item := range grouped[category] {
			if !domain.Matches(c.Query, item.Name) {
				continue
			}
			results = append(results, SearchResult{
				Name:     item.Name,
				Category: item.Category,
				Trashed:  item.Trashed,
				Pages:    item.Pages,
			})
		}
	}
	return results
}

// renderOrder returns the configured category order with any grouped
// category missing from it (only "Other" can be) appended.
func renderOrder(catalog *domain.Catalog, grouped map[string][]domain.RenderItem) []string {
	order := catalog.Categories()
	seen := make(map[string]bool, len(order))
	for _, category := range order {
		seen[category] = true
	}
	if !seen[domain.DefaultCategory] && len(grouped[domain.DefaultCategory]) > 0 {
		order = append(append([]string(nil), order...), domain.DefaultCategory)
	}
	return order
}
