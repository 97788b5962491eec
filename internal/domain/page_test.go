package domain

import "testing"

func TestSplitPageKey(t *testing.T) {
	tests := []struct {
		key        string
		wantSource string
		wantPage   string
	}{
		{key: "fall_page_3", wantSource: "fall", wantPage: "page_3"},
		{key: "src_page_12", wantSource: "src", wantPage: "page_12"},
		{key: "nopage", wantSource: "", wantPage: "nopage"},
		{key: "", wantSource: "", wantPage: ""},
	}

	for _, tt := range tests {
		source, page := SplitPageKey(tt.key)
		if source != tt.wantSource || page != tt.wantPage {
			t.Errorf("SplitPageKey(%q) = (%q, %q), want (%q, %q)",
				tt.key, source, page, tt.wantSource, tt.wantPage)
		}
	}
}

func TestDisplayPage(t *testing.T) {
	if got := DisplayPage("page_3"); got != "Page 3" {
		t.Errorf("DisplayPage(page_3) = %q", got)
	}
	if got := DisplayPage("cover"); got != "cover" {
		t.Errorf("DisplayPage(cover) = %q", got)
	}
}

func TestCatalog_PageCaption(t *testing.T) {
	c := NewCatalog()
	c.SourceLabels["fall"] = "Fall Lookbook"

	tests := []struct {
		key  string
		want string
	}{
		{key: "fall_page_3", want: "Fall Lookbook - Page 3"},
		{key: "spring_page_1", want: "spring - Page 1"}, // unlabeled source falls back to its id
		{key: "cover", want: "Pages - cover"},           // key without a source prefix
	}

	for _, tt := range tests {
		if got := c.PageCaption(tt.key); got != tt.want {
			t.Errorf("PageCaption(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestCatalog_ImagePath(t *testing.T) {
	c := NewCatalog()
	c.SourceImagePaths["fall"] = "images/fall"

	if got := c.ImagePath("fall_page_3"); got != "images/fall/page_3.jpg" {
		t.Errorf("ImagePath = %q", got)
	}
	// Unknown sources fall back to the flat images folder.
	if got := c.ImagePath("spring_page_1"); got != "images/page_1.jpg" {
		t.Errorf("ImagePath fallback = %q", got)
	}
}
