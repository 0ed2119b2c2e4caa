package widget

// FocusPaths lists, in document order, the route to every selectable leaf
// under w. A selectable container contributes the paths of its selectable
// children; a selectable non-container ends a path.
func FocusPaths(w Widget) [][]int {
	var out [][]int
	collectPaths(w, nil, &out)
	return out
}

func collectPaths(w Widget, path []int, out *[][]int) {
	c, ok := Unwrap(w).(Container)
	if !ok {
		*out = append(*out, append([]int(nil), path...))
		return
	}
	for i, child := range c.Children() {
		if child == nil || !child.Selectable() {
			continue
		}
		next := append(append([]int(nil), path...), i)
		collectPaths(child, next, out)
	}
}

// FocusPath returns the route from w to its currently focused leaf.
func FocusPath(w Widget) []int {
	var path []int
	for {
		c, ok := Unwrap(w).(Container)
		if !ok {
			return path
		}
		pos := c.FocusPosition()
		children := c.Children()
		if pos < 0 || pos >= len(children) {
			return path
		}
		path = append(path, pos)
		w = children[pos]
	}
}

// SetFocusPath moves focus along path and reports whether every step was
// applied.
func SetFocusPath(w Widget, path []int) bool {
	for _, pos := range path {
		c, ok := Unwrap(w).(Container)
		if !ok || !c.SetFocusPosition(pos) {
			return false
		}
		w = c.Children()[pos]
	}
	return true
}

// PathIndex returns the index of path within paths, or -1.
func PathIndex(paths [][]int, path []int) int {
	for i, p := range paths {
		if equalPath(p, path) {
			return i
		}
	}
	return -1
}

func equalPath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FocusedLeaf follows the focus path from w and returns the widget it ends at.
func FocusedLeaf(w Widget) Widget {
	for {
		c, ok := Unwrap(w).(Container)
		if !ok {
			return w
		}
		pos := c.FocusPosition()
		children := c.Children()
		if pos < 0 || pos >= len(children) {
			return w
		}
		w = children[pos]
	}
}
