package domain

import "strings"

// SplitPageKey splits a prefixed page key "<source>_<page>" on the first
// underscore. Keys without an underscore yield an empty source.
func SplitPageKey(key string) (source, page string) {
	i := strings.Index(key, "_")
	if i == -1 {
		return "", key
	}
	return key[:i], key[i+1:]
}

// DisplayPage turns a raw page id like "page_3" into "Page 3".
func DisplayPage(page string) string {
	return strings.Replace(page, "page_", "Page ", 1)
}

// ImageFolder resolves the image folder for a prefixed page key, falling
// back to "images" when the source is unknown.
func (c *Catalog) ImageFolder(pageKey string) string {
	source, _ := SplitPageKey(pageKey)
	if folder, ok := c.SourceImagePaths[source]; ok && folder != "" {
		return folder
	}
	return "images"
}

// SourceLabel returns the display label for a source id.
func (c *Catalog) SourceLabel(source string) string {
	if label, ok := c.SourceLabels[source]; ok && label != "" {
		return label
	}
	if source != "" {
		return source
	}
	return "Pages"
}

// PageCaption builds the caption shown for a page image, e.g.
// "Fall Lookbook - Page 3".
func (c *Catalog) PageCaption(pageKey string) string {
	source, page := SplitPageKey(pageKey)
	return c.SourceLabel(source) + " - " + DisplayPage(page)
}

// ImagePath returns the image location for a page key, e.g.
// "images/fall/page_3.jpg".
func (c *Catalog) ImagePath(pageKey string) string {
	_, page := SplitPageKey(pageKey)
	return c.ImageFolder(pageKey) + "/" + page + ".jpg"
}
