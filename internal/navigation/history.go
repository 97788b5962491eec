package navigation

// Overlay is the state of the image overlay modal: which image is shown
// and its caption.
type Overlay struct {
	Image   string
	Caption string
}

// Frame is one history entry. A route frame records a navigation; an
// overlay frame (Overlay non-nil) layers the modal on top of the route
// that was current when it opened, without changing the visible route.
// Owned marks entries pushed by this app, as opposed to the entry the
// session started on (a deep link has no prior in-app history).
type Frame struct {
	Route   Route
	Owned   bool
	Overlay *Overlay
}

// History is an explicit stack of tagged frames with a cursor, standing in
// for the browser history. Current view state (route and overlay) is
// reconstructed from frame metadata on every traversal, never tracked on
// the side.
type History struct {
	frames []Frame
	cursor int
}

// NewHistory starts a history at the given route. The initial frame is not
// app-owned: it models however the user arrived (deep link included).
func NewHistory(initial Route) *History {
	return &History{frames: []Frame{{Route: initial}}}
}

// Current returns the frame under the cursor.
func (h *History) Current() Frame {
	return h.frames[h.cursor]
}

// Route returns the current route. An overlay frame keeps the route of the
// frame it was layered on.
func (h *History) Route() Route {
	return h.frames[h.cursor].Route
}

// ActiveOverlay returns the overlay to show, or nil when the current frame
// is a plain route frame.
func (h *History) ActiveOverlay() *Overlay {
	return h.frames[h.cursor].Overlay
}

// CanGoBack reports whether a back traversal is possible.
func (h *History) CanGoBack() bool { return h.cursor > 0 }

// Push navigates to a new route: any forward frames are dropped and an
// app-owned route frame is appended.
func (h *History) Push(r Route) {
	h.frames = append(h.frames[:h.cursor+1], Frame{Route: r, Owned: true})
	h.cursor = len(h.frames) - 1
}

// OpenOverlay pushes an overlay frame carrying the current route, so the
// visible route is unchanged while the modal is up.
func (h *History) OpenOverlay(image, caption string) {
	h.frames = append(h.frames[:h.cursor+1], Frame{
		Route:   h.Route(),
		Owned:   true,
		Overlay: &Overlay{Image: image, Caption: caption},
	})
	h.cursor = len(h.frames) - 1
}

// CloseOverlay handles an explicit close (not a back navigation): the
// pushed overlay entry must be consumed by a back traversal so the stack
// stays balanced. Closing when no overlay is up is a no-op.
func (h *History) CloseOverlay() {
	if h.ActiveOverlay() == nil {
		return
	}
	h.Back()
}

// Back moves the cursor one frame back, reporting whether it moved. The
// caller re-reads Route and ActiveOverlay from the landed frame: landing on
// an overlay frame reopens the modal, landing on a route frame closes it.
func (h *History) Back() bool {
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	return true
}

// Forward moves the cursor one frame forward, reporting whether it moved.
func (h *History) Forward() bool {
	if h.cursor >= len(h.frames)-1 {
		return false
	}
	h.cursor++
	return true
}

// NavigateToCollection returns to the collection view. When the current
// entry is app-owned and a prior entry exists, a native back traversal is
// preferred. Otherwise (a view entered via deep link, with no in-app
// history) an explicit collection entry is pushed.
func (h *History) NavigateToCollection() {
	if h.Current().Owned && h.CanGoBack() {
		h.Back()
		return
	}
	h.Push(Collection())
}
