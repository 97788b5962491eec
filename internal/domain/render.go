package domain

import (
	"sort"
	"strings"
)

// RenderItem is the read-only projection of one item for display.
type RenderItem struct {
	Name     string
	Pages    []string
	Category string
	Trashed  bool
}

// Categories returns the configured category order. The "all" grouping is
// preferred; otherwise the lexicographically first grouping is used so the
// choice stays deterministic.
func (c *Catalog) Categories() []string {
	if order, ok := c.CategoryOrder["all"]; ok {
		return order
	}
	keys := make([]string, 0, len(c.CategoryOrder))
	for key := range c.CategoryOrder {
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)
	return c.CategoryOrder[keys[0]]
}

// CategoryIcon returns the configured icon for a category, or "".
func (c *Catalog) CategoryIcon(category string) string {
	return c.CategoryIcons[category]
}

// CategorizeForRender groups all items by resolved category for display.
// Categories outside the configured order collapse to "Other". Within a
// category, items sort non-trashed first, then by page count descending,
// then by name case-insensitively.
func (c *Catalog) CategorizeForRender() map[string][]RenderItem {
	order := c.Categories()
	inOrder := make(map[string]bool, len(order))
	for _, category := range order {
		inOrder[category] = true
	}

	grouped := map[string][]RenderItem{}
	for name, pages := range c.Items {
		category, trashed := c.ResolveItemMeta(name)
		if !inOrder[category] {
			category = DefaultCategory
		}
		grouped[category] = append(grouped[category], RenderItem{
			Name:     name,
			Pages:    append([]string(nil), pages...),
			Category: category,
			Trashed:  trashed,
		})
	}

	for category := range grouped {
		items := grouped[category]
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Trashed != items[j].Trashed {
				return !items[i].Trashed
			}
			if len(items[i].Pages) != len(items[j].Pages) {
				return len(items[i].Pages) > len(items[j].Pages)
			}
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}

	return grouped
}
