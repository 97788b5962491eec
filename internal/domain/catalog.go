package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Catalog is the full snapshot of the item collection: two denormalized
// indices plus display configuration. The two indices describe the same
// facts and must agree: every (item, page) pair present in one appears in
// the other, with a single resolved category/trashed value per item.
//
// Unknown top-level snapshot keys are preserved in Extra and echoed back on
// write, so the stored blob round-trips through the model unmodified.
type Catalog struct {
	// Items maps item name to the ordered list of page keys it appears on
	// (the "all_index" snapshot key).
	Items map[string][]string
	// Pages maps prefixed page key to the ordered entries on that page
	// (the "all_items" snapshot key).
	Pages map[string][]PageEntry

	SourceImagePaths map[string]string
	SourceLabels     map[string]string
	CategoryOrder    map[string][]string
	CategoryIcons    map[string]string

	Extra map[string]json.RawMessage
}

// NewCatalog returns an empty catalog with all maps initialized.
func NewCatalog() *Catalog {
	return &Catalog{
		Items:            map[string][]string{},
		Pages:            map[string][]PageEntry{},
		SourceImagePaths: map[string]string{},
		SourceLabels:     map[string]string{},
		CategoryOrder:    map[string][]string{},
		CategoryIcons:    map[string]string{},
	}
}

// UnmarshalJSON decodes a snapshot, keeping unrecognized top-level keys.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("snapshot is not a JSON object: %w", err)
	}

	out := NewCatalog()
	known := map[string]any{
		"all_index":          &out.Items,
		"all_items":          &out.Pages,
		"source_image_paths": &out.SourceImagePaths,
		"source_labels":      &out.SourceLabels,
		"category_order":     &out.CategoryOrder,
		"category_icons":     &out.CategoryIcons,
	}

	for key, raw := range top {
		dst, ok := known[key]
		if !ok {
			if out.Extra == nil {
				out.Extra = map[string]json.RawMessage{}
			}
			out.Extra[key] = raw
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("snapshot key %q: %w", key, err)
		}
	}

	// nil map values from explicit JSON nulls would break writers.
	if out.Items == nil {
		out.Items = map[string][]string{}
	}
	if out.Pages == nil {
		out.Pages = map[string][]PageEntry{}
	}

	*c = *out
	return nil
}

// MarshalJSON produces the canonical serialized form: top-level keys and all
// map keys sorted, entries in stored order. Two catalogs with the same
// content marshal to identical bytes.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	top := map[string]any{
		"all_index":          c.Items,
		"all_items":          c.Pages,
		"source_image_paths": c.SourceImagePaths,
		"source_labels":      c.SourceLabels,
		"category_order":     c.CategoryOrder,
		"category_icons":     c.CategoryIcons,
	}
	for key, raw := range c.Extra {
		top[key] = raw
	}
	return json.Marshal(top)
}

// Canonical returns the canonical serialization of the catalog.
func (c *Catalog) Canonical() ([]byte, error) {
	return json.Marshal(c)
}

// Validate rejects snapshots the model cannot represent unambiguously.
// Source ids may not contain an underscore: the page-key format joins
// source and page with the first underscore, so such ids would make the
// split ambiguous.
func (c *Catalog) Validate() error {
	for source := range c.SourceImagePaths {
		if strings.Contains(source, "_") {
			return fmt.Errorf("source id %q contains an underscore", source)
		}
	}
	for source := range c.SourceLabels {
		if strings.Contains(source, "_") {
			return fmt.Errorf("source id %q contains an underscore", source)
		}
	}
	return nil
}

// Clone returns a deep copy, used for edit-session snapshots.
func (c *Catalog) Clone() *Catalog {
	out := NewCatalog()
	for name, pages := range c.Items {
		out.Items[name] = append([]string(nil), pages...)
	}
	for key, entries := range c.Pages {
		out.Pages[key] = append([]PageEntry(nil), entries...)
	}
	for k, v := range c.SourceImagePaths {
		out.SourceImagePaths[k] = v
	}
	for k, v := range c.SourceLabels {
		out.SourceLabels[k] = v
	}
	for k, v := range c.CategoryOrder {
		out.CategoryOrder[k] = append([]string(nil), v...)
	}
	for k, v := range c.CategoryIcons {
		out.CategoryIcons[k] = v
	}
	if c.Extra != nil {
		out.Extra = map[string]json.RawMessage{}
		for k, v := range c.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Replace overwrites the catalog contents in place, so readers holding the
// pointer observe the new state. Used for rollback and for adopting the
// server's echoed payload.
func (c *Catalog) Replace(other *Catalog) {
	*c = *other.Clone()
}

// HasItem reports whether an item exists in the index.
func (c *Catalog) HasItem(name string) bool {
	_, ok := c.Items[name]
	return ok
}

// ItemNames returns all item names, sorted case-insensitively.
func (c *Catalog) ItemNames() []string {
	names := make([]string, 0, len(c.Items))
	for name := range c.Items {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// SortedPageKeys returns all page keys in sorted order.
func (c *Catalog) SortedPageKeys() []string {
	keys := make([]string, 0, len(c.Pages))
	for key := range c.Pages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResolveItemMeta resolves the single category/trashed value for an item
// across all pages it appears on. Category comes from the first entry in
// sorted page-key order; trashed is set if any page marks it trashed.
func (c *Catalog) ResolveItemMeta(name string) (category string, trashed bool) {
	pages := append([]string(nil), c.Items[name]...)
	sort.Strings(pages)

	category = DefaultCategory
	found := false
	for _, key := range pages {
		for _, entry := range c.Pages[key] {
			if entry.Name != name {
				continue
			}
			if !found {
				category = entry.Category
				found = true
			}
			if entry.Trashed {
				trashed = true
			}
		}
	}
	return category, trashed
}
