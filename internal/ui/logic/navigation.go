package logic

// Navigator handles cursor movement and viewport management over a list of
// rows
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 20}
}

// SelectedIndex returns the cursor row
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of visible rows
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// SetTotal updates the number of rows and keeps the cursor in range
func (n *Navigator) SetTotal(total int) {
	n.total = total
	n.clamp()
	n.ensureSelectedVisible()
}

// SetViewportHeight updates the number of visible rows, at least one
func (n *Navigator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.ensureSelectedVisible()
}

// Reset moves the cursor and the viewport back to the top
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Move moves the cursor in direction: up, down, pageup, pagedown, home or end
func (n *Navigator) Move(direction string) {
	if n.total == 0 {
		return
	}

	switch direction {
	case "up":
		n.selectedIndex--
	case "down":
		n.selectedIndex++
	case "pageup":
		n.selectedIndex -= n.viewportHeight
	case "pagedown":
		n.selectedIndex += n.viewportHeight
	case "home":
		n.selectedIndex = 0
	case "end":
		n.selectedIndex = n.total - 1
	}

	n.clamp()
	n.ensureSelectedVisible()
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// ensureSelectedVisible adjusts the viewport to keep the cursor visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	} else if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}

	// Don't leave empty space below the last row
	if maxOffset := n.total - n.viewportHeight; n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
