package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ApplyEdit performs the single compound edit the catalog supports:
// rename oldName to newName, set its category and trashed flag everywhere
// it appears, and merge when newName already exists.
//
// The rewrite keeps both indices in agreement:
//   - newName's page list becomes the deduplicated union of oldName's pages
//     (first, in their stored order) and newName's existing pages;
//   - every page entry matching oldName, or newName during a rename, is
//     rewritten to (newName, newCategory, newTrashed);
//   - entries that collide on newName within a page are collapsed to one.
//
// Entries for other items are untouched. The mutation is all-or-nothing:
// validation failures return before anything is modified.
func (c *Catalog) ApplyEdit(oldName, newName, newCategory string, newTrashed bool) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return errors.New("new name is empty")
	}
	if newCategory == "" {
		newCategory = DefaultCategory
	}

	oldPages, ok := c.Items[oldName]
	if !ok {
		return fmt.Errorf("unknown item: %s", oldName)
	}

	// Union of the old item's pages and the merge target's, deduplicated.
	merged := make([]string, 0, len(oldPages)+len(c.Items[newName]))
	seen := make(map[string]bool, len(oldPages))
	for _, key := range oldPages {
		if !seen[key] {
			seen[key] = true
			merged = append(merged, key)
		}
	}
	for _, key := range c.Items[newName] {
		if !seen[key] {
			seen[key] = true
			merged = append(merged, key)
		}
	}

	unionLen := len(merged)

	if oldName != newName {
		delete(c.Items, oldName)
	}

	rename := oldName != newName
	for key, entries := range c.Pages {
		out := entries[:0:0]
		done := false
		for _, entry := range entries {
			if entry.Name == oldName || (rename && entry.Name == newName) {
				if done {
					// Collapsed duplicate; both copies were rewritten to the
					// same name/category/trashed, so dropping one loses nothing.
					continue
				}
				done = true
				entry = PageEntry{Name: newName, Category: newCategory, Trashed: newTrashed}
			}
			out = append(out, entry)
		}
		c.Pages[key] = out

		// A page that carried the entry but was missing from the old index
		// still counts: fold it into the page list so the indices agree.
		if done && !seen[key] {
			seen[key] = true
			merged = append(merged, key)
		}
	}
	// Keys found only during the page sweep were appended in map iteration
	// order; sort that tail so the result is deterministic.
	if unionLen < len(merged) {
		sort.Strings(merged[unionLen:])
	}

	// And the other direction: every page in the list carries the entry.
	for _, key := range merged {
		if !pageHasItem(c.Pages[key], newName) {
			c.Pages[key] = append(c.Pages[key], PageEntry{Name: newName, Category: newCategory, Trashed: newTrashed})
		}
	}

	c.Items[newName] = merged
	return nil
}

func pageHasItem(entries []PageEntry, name string) bool {
	for _, entry := range entries {
		if entry.Name == name {
			return true
		}
	}
	return false
}
