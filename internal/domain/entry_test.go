package domain

import (
	"encoding/json"
	"testing"
)

func TestPageEntry_UnmarshalForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PageEntry
	}{
		{
			name: "legacy bare string",
			raw:  `"Scarf"`,
			want: PageEntry{Name: "Scarf", Category: DefaultCategory},
		},
		{
			name: "structured",
			raw:  `{"name": "Red Jacket", "category": "Outerwear"}`,
			want: PageEntry{Name: "Red Jacket", Category: "Outerwear"},
		},
		{
			name: "structured trashed",
			raw:  `{"name": "Hat", "category": "Accessories", "trashed": true}`,
			want: PageEntry{Name: "Hat", Category: "Accessories", Trashed: true},
		},
		{
			name: "missing category defaults",
			raw:  `{"name": "Hat"}`,
			want: PageEntry{Name: "Hat", Category: DefaultCategory},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PageEntry
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPageEntry_MarshalOmitsFalseTrashed(t *testing.T) {
	out, err := json.Marshal(PageEntry{Name: "Hat", Category: "Accessories"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"name":"Hat","category":"Accessories"}` {
		t.Errorf("got %s", out)
	}

	out, err = json.Marshal(PageEntry{Name: "Hat", Category: "Accessories", Trashed: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != `{"name":"Hat","category":"Accessories","trashed":true}` {
		t.Errorf("got %s", out)
	}
}
