// Package navigation models the client's view state: URL-fragment routes
// and the history stack that layers a modal overlay on top of them.
package navigation

import "net/url"

// View is the logical view a route points at.
type View int

const (
	ViewCollection View = iota
	ViewItem
	ViewPage
)

func (v View) String() string {
	switch v {
	case ViewItem:
		return "item"
	case ViewPage:
		return "page"
	default:
		return "collection"
	}
}

// Route is a logical location: the collection, one item, or one page.
// Item and Page carry the raw (unescaped) name or page key; only the field
// matching the view is set.
type Route struct {
	View View
	Item string
	Page string
}

// Collection returns the collection route.
func Collection() Route { return Route{View: ViewCollection} }

// ItemRoute returns the route for an item detail view.
func ItemRoute(name string) Route { return Route{View: ViewItem, Item: name} }

// PageRoute returns the route for a page detail view.
func PageRoute(pageKey string) Route { return Route{View: ViewPage, Page: pageKey} }

// Encode renders the route as a URL-fragment value: "item=<name>",
// "page=<pageKey>", or "" for the collection. Values are percent-encoded.
func (r Route) Encode() string {
	switch r.View {
	case ViewItem:
		return "item=" + url.QueryEscape(r.Item)
	case ViewPage:
		return "page=" + url.QueryEscape(r.Page)
	default:
		return ""
	}
}

// Decode parses a fragment value back into a route. A "page" key takes
// precedence over "item"; absence of both, or a malformed fragment, means
// the collection. Decode is the exact inverse of Encode for any route
// carrying a non-empty name.
func Decode(fragment string) Route {
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return Collection()
	}
	if page := values.Get("page"); page != "" {
		return PageRoute(page)
	}
	if item := values.Get("item"); item != "" {
		return ItemRoute(item)
	}
	return Collection()
}
