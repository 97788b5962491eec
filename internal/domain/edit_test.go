package domain

import (
	"reflect"
	"testing"
)

// editCatalog builds a small consistent catalog for edit tests.
func editCatalog() *Catalog {
	c := NewCatalog()
	c.Items = map[string][]string{
		"Hat":   {"src_page_1", "src_page_2"},
		"Cap":   {"src_page_2", "src_page_3"},
		"Scarf": {"src_page_1"},
	}
	c.Pages = map[string][]PageEntry{
		"src_page_1": {
			{Name: "Hat", Category: "Accessories"},
			{Name: "Scarf", Category: "Accessories"},
		},
		"src_page_2": {
			{Name: "Hat", Category: "Accessories"},
			{Name: "Cap", Category: "Accessories"},
		},
		"src_page_3": {
			{Name: "Cap", Category: "Accessories"},
		},
	}
	c.CategoryOrder = map[string][]string{"all": {"Accessories", "Other"}}
	return c
}

// checkConsistent fails the test if the two indices disagree: every
// (item, page) pair must appear in both, and every entry for an item must
// carry the same category and trashed flag.
func checkConsistent(t *testing.T, c *Catalog) {
	t.Helper()

	for name, pages := range c.Items {
		for _, key := range pages {
			if !pageHasItem(c.Pages[key], name) {
				t.Errorf("item %q lists page %q but the page has no entry for it", name, key)
			}
		}
	}
	for key, entries := range c.Pages {
		seen := map[string]PageEntry{}
		for _, entry := range entries {
			if prev, ok := seen[entry.Name]; ok {
				t.Errorf("page %q has duplicate entries for %q: %+v and %+v", key, entry.Name, prev, entry)
			}
			seen[entry.Name] = entry

			found := false
			for _, listed := range c.Items[entry.Name] {
				if listed == key {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("page %q has entry %q but the item does not list the page", key, entry.Name)
			}
		}
	}
	for name := range c.Items {
		var first *PageEntry
		for _, key := range c.Items[name] {
			for _, entry := range c.Pages[key] {
				if entry.Name != name {
					continue
				}
				if first == nil {
					e := entry
					first = &e
					continue
				}
				if entry.Category != first.Category || entry.Trashed != first.Trashed {
					t.Errorf("item %q has diverging entries: %+v vs %+v", name, *first, entry)
				}
			}
		}
	}
}

func TestApplyEdit_Rename(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Scarf", "Wrap", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if c.HasItem("Scarf") {
		t.Error("old name still present after rename")
	}
	if got := c.Items["Wrap"]; !reflect.DeepEqual(got, []string{"src_page_1"}) {
		t.Errorf("Wrap pages = %v, want [src_page_1]", got)
	}
	if !pageHasItem(c.Pages["src_page_1"], "Wrap") {
		t.Error("page entry was not rewritten to the new name")
	}
	checkConsistent(t, c)
}

func TestApplyEdit_Recategorize(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Hat", "Hat", "Headwear", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	// Every entry for the item changes, on every page it appears on.
	for _, key := range []string{"src_page_1", "src_page_2"} {
		for _, entry := range c.Pages[key] {
			if entry.Name == "Hat" && entry.Category != "Headwear" {
				t.Errorf("page %s entry category = %q, want Headwear", key, entry.Category)
			}
		}
	}
	// Other items are untouched.
	category, _ := c.ResolveItemMeta("Scarf")
	if category != "Accessories" {
		t.Errorf("Scarf category changed to %q", category)
	}
	if got := c.Items["Hat"]; !reflect.DeepEqual(got, []string{"src_page_1", "src_page_2"}) {
		t.Errorf("Hat pages reordered: %v", got)
	}
	checkConsistent(t, c)
}

func TestApplyEdit_Trash(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Hat", "Hat", "Accessories", true); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	_, trashed := c.ResolveItemMeta("Hat")
	if !trashed {
		t.Error("item not marked trashed")
	}
	// The item stays in both indices; trashing is soft.
	if !c.HasItem("Hat") {
		t.Error("trashed item removed from the index")
	}
	checkConsistent(t, c)

	// And back out of the trash.
	if err := c.ApplyEdit("Hat", "Hat", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if _, trashed := c.ResolveItemMeta("Hat"); trashed {
		t.Error("item still trashed after restore")
	}
}

func TestApplyEdit_MergeCombinesPages(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Hat", "Cap", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	if c.HasItem("Hat") {
		t.Error("merged-away item still present")
	}
	// Union keeps the old item's pages first, then the target's, deduplicated.
	want := []string{"src_page_1", "src_page_2", "src_page_3"}
	if got := c.Items["Cap"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Cap pages = %v, want %v", got, want)
	}
	// The page that carried both collapses to a single entry.
	count := 0
	for _, entry := range c.Pages["src_page_2"] {
		if entry.Name == "Cap" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("src_page_2 has %d Cap entries, want 1", count)
	}
	checkConsistent(t, c)
}

func TestApplyEdit_MergeDisjointPages(t *testing.T) {
	c := NewCatalog()
	c.Items = map[string][]string{
		"Hat": {"src_page_1"},
		"Cap": {"src_page_3"},
	}
	c.Pages = map[string][]PageEntry{
		"src_page_1": {{Name: "Hat", Category: "Accessories"}},
		"src_page_3": {{Name: "Cap", Category: "Accessories"}},
	}

	if err := c.ApplyEdit("Hat", "Cap", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	want := []string{"src_page_1", "src_page_3"}
	if got := c.Items["Cap"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Cap pages = %v, want %v", got, want)
	}
	checkConsistent(t, c)
}

func TestApplyEdit_TrimsAndValidatesName(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Hat", "  Beanie  ", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	if !c.HasItem("Beanie") {
		t.Error("trimmed name not applied")
	}

	if err := c.ApplyEdit("Beanie", "   ", "Accessories", false); err == nil {
		t.Error("expected error for blank name")
	}
	if !c.HasItem("Beanie") {
		t.Error("failed edit mutated the catalog")
	}
}

func TestApplyEdit_UnknownItem(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Boots", "Shoes", "Footwear", false); err == nil {
		t.Error("expected error for unknown item")
	}
	checkConsistent(t, c)
}

func TestApplyEdit_EmptyCategoryDefaults(t *testing.T) {
	c := editCatalog()

	if err := c.ApplyEdit("Scarf", "Scarf", "", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}
	category, _ := c.ResolveItemMeta("Scarf")
	if category != DefaultCategory {
		t.Errorf("category = %q, want %q", category, DefaultCategory)
	}
}

func TestApplyEdit_RepairsIndexDrift(t *testing.T) {
	// A page carries the entry but the item's page list is missing it, and
	// the list names a page whose entry is missing. Both directions are
	// reconciled by the edit.
	c := NewCatalog()
	c.Items = map[string][]string{
		"Hat": {"src_page_1", "src_page_9"},
	}
	c.Pages = map[string][]PageEntry{
		"src_page_1": {{Name: "Hat", Category: "Accessories"}},
		"src_page_5": {{Name: "Hat", Category: "Accessories"}},
		"src_page_9": {},
	}

	if err := c.ApplyEdit("Hat", "Hat", "Accessories", false); err != nil {
		t.Fatalf("ApplyEdit failed: %v", err)
	}

	want := []string{"src_page_1", "src_page_9", "src_page_5"}
	if got := c.Items["Hat"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Hat pages = %v, want %v", got, want)
	}
	if !pageHasItem(c.Pages["src_page_9"], "Hat") {
		t.Error("listed page did not gain the missing entry")
	}
	checkConsistent(t, c)
}
