package treeview

// Cursor returns the cursor row index
func (r *Renderer) Cursor() int {
	return r.cursor
}

// CursorRow returns the row under the cursor
func (r *Renderer) CursorRow() (Row, bool) {
	return r.Row(r.cursor)
}

// CursorPath returns the path under the cursor, or "" when there are no rows
func (r *Renderer) CursorPath() string {
	if r.cursor < 0 || r.cursor >= len(r.rows) {
		return ""
	}
	return r.rows[r.cursor].Node.Path
}

// SetCursor moves the cursor to row i, clamped to the row range
func (r *Renderer) SetCursor(i int) {
	r.cursor = i
	r.clampCursor()
}

// SelectPath moves the cursor to the row with path. Returns false if the
// path is not currently rendered.
func (r *Renderer) SelectPath(path string) bool {
	for i, row := range r.rows {
		if row.Node.Path == path {
			r.cursor = i
			return true
		}
	}
	return false
}

// MoveUp moves the cursor up one row
func (r *Renderer) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
	}
}

// MoveDown moves the cursor down one row
func (r *Renderer) MoveDown() {
	if r.cursor < len(r.rows)-1 {
		r.cursor++
	}
}

// PageUp moves the cursor up by n rows
func (r *Renderer) PageUp(n int) {
	r.SetCursor(r.cursor - n)
}

// PageDown moves the cursor down by n rows
func (r *Renderer) PageDown(n int) {
	r.SetCursor(r.cursor + n)
}

// Top moves the cursor to the first row
func (r *Renderer) Top() {
	r.cursor = 0
}

// Bottom moves the cursor to the last row
func (r *Renderer) Bottom() {
	r.SetCursor(len(r.rows) - 1)
}

// ExpandOrDescend opens a collapsed directory, or steps into an open one
func (r *Renderer) ExpandOrDescend() {
	row, ok := r.CursorRow()
	if !ok || !row.IsDir() {
		return
	}
	if !row.Expanded {
		r.Expand(row.Path())
		return
	}
	if next, ok := r.Row(r.cursor + 1); ok && next.Depth > row.Depth {
		r.cursor++
	}
}

// CollapseOrAscend closes an open directory, or jumps to the parent row
func (r *Renderer) CollapseOrAscend() {
	row, ok := r.CursorRow()
	if !ok {
		return
	}
	if row.IsDir() && r.IsExpanded(row.Path()) {
		r.Collapse(row.Path())
		return
	}
	for i := r.cursor - 1; i >= 0; i-- {
		if r.rows[i].Depth < row.Depth {
			r.cursor = i
			return
		}
	}
}

// VisibleRange returns the half-open row range to draw in a window of
// height lines, scrolling just enough to keep the cursor inside it.
func (r *Renderer) VisibleRange(height int) (start, end int) {
	if len(r.rows) == 0 {
		return 0, 0
	}
	if height <= 0 {
		height = 20
	}

	if r.cursor < r.offset {
		r.offset = r.cursor
	}
	if r.cursor >= r.offset+height {
		r.offset = r.cursor - height + 1
	}
	if r.offset+height > len(r.rows) {
		r.offset = len(r.rows) - height
	}
	if r.offset < 0 {
		r.offset = 0
	}

	end = r.offset + height
	if end > len(r.rows) {
		end = len(r.rows)
	}
	return r.offset, end
}

func (r *Renderer) clampCursor() {
	if r.cursor >= len(r.rows) {
		r.cursor = len(r.rows) - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
}
