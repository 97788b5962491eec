package domain

import "encoding/json"

// DefaultCategory is assigned to entries that carry no category of their own.
const DefaultCategory = "Other"

// PageEntry is one item occurrence on a page.
type PageEntry struct {
	Name     string
	Category string
	Trashed  bool
}

type pageEntryJSON struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Trashed  bool   `json:"trashed,omitempty"`
}

// UnmarshalJSON accepts both the structured form and the legacy form where an
// entry is a bare item-name string. Normalization happens here, once, so the
// rest of the model never re-checks the shape.
func (e *PageEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*e = PageEntry{Name: name, Category: DefaultCategory}
		return nil
	}

	var raw pageEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Category == "" {
		raw.Category = DefaultCategory
	}
	*e = PageEntry{Name: raw.Name, Category: raw.Category, Trashed: raw.Trashed}
	return nil
}

// MarshalJSON always emits the structured form. The trashed flag is omitted
// when false, matching the stored snapshot format.
func (e PageEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(pageEntryJSON{Name: e.Name, Category: e.Category, Trashed: e.Trashed})
}
