package treeview

import (
	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/filter"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/selection"
)

// viewNode is the view-side counterpart of a tree node. Children of a
// directory are only turned into viewNodes on first expansion and are kept
// from then on.
type viewNode struct {
	node         *models.TreeNode
	depth        int
	expanded     bool
	materialized bool
	children     []*viewNode
}

// Row is one rendered line of the tree
type Row struct {
	Node     *models.TreeNode
	Depth    int
	Expanded bool // directories only
	Forced   bool // expanded by the active search term, not by the user
	Checked  bool // files only; read from the store when Rows is called
}

// Path returns the row's node path
func (r Row) Path() string {
	return r.Node.Path
}

// IsDir reports whether the row is a directory
func (r Row) IsDir() bool {
	return r.Node.IsDir
}

// ActivationKind tells what activating a row did
type ActivationKind int

const (
	ActivationNone ActivationKind = iota
	ActivationDirExpanded
	ActivationDirCollapsed
	ActivationFileSelected
	ActivationFileDeselected
)

// Activation describes the effect of Activate
type Activation struct {
	Kind ActivationKind
	Path string
}

// Renderer materializes the visible part of a filetree.Model into rows. It
// owns the per-directory expand/materialize state; the tree itself is never
// touched.
type Renderer struct {
	tree   *filetree.Model
	filter *filter.Engine
	store  *selection.Store

	roots []*viewNode
	dirs  map[string]*viewNode

	visibility *filter.Result
	rows       []Row
	cursor     int
	offset     int
}

// New creates a renderer with every directory collapsed and unmaterialized
func New(tree *filetree.Model, engine *filter.Engine, store *selection.Store) *Renderer {
	r := &Renderer{
		tree:   tree,
		filter: engine,
		store:  store,
		dirs:   make(map[string]*viewNode),
	}
	r.roots = r.buildChildren(tree.Root(), 0)
	r.Rebuild()
	return r
}

func (r *Renderer) buildChildren(parent *models.TreeNode, depth int) []*viewNode {
	out := make([]*viewNode, 0, len(parent.Children))
	for _, child := range parent.Children {
		v := &viewNode{node: child, depth: depth}
		if child.IsDir {
			r.dirs[child.Path] = v
		}
		out = append(out, v)
	}
	return out
}

func (r *Renderer) materialize(v *viewNode) {
	if v.materialized {
		return
	}
	v.children = r.buildChildren(v.node, v.depth+1)
	v.materialized = true
}

// Rebuild recomputes visibility against the full tree and regenerates the
// rows. Call it after the filter term or a directory state changes.
func (r *Renderer) Rebuild() {
	current := r.CursorPath()

	r.visibility = r.filter.Evaluate(r.tree.Root())
	forced := r.filter.HasTerm()

	r.rows = r.rows[:0]
	for _, v := range r.roots {
		r.appendVisible(v, forced)
	}

	if current != "" && r.SelectPath(current) {
		return
	}
	r.clampCursor()
}

func (r *Renderer) appendVisible(v *viewNode, forced bool) {
	if !r.visibility.Visible(v.node) {
		return
	}

	if !v.node.IsDir {
		r.rows = append(r.rows, Row{Node: v.node, Depth: v.depth})
		return
	}

	open := v.expanded || forced
	r.rows = append(r.rows, Row{
		Node:     v.node,
		Depth:    v.depth,
		Expanded: open,
		Forced:   forced && !v.expanded,
	})
	if !open {
		return
	}

	r.materialize(v)
	for _, child := range v.children {
		r.appendVisible(child, forced)
	}
}

// Rows returns the current rows with checkbox state read from the store
func (r *Renderer) Rows() []Row {
	out := make([]Row, len(r.rows))
	copy(out, r.rows)
	for i := range out {
		if !out[i].Node.IsDir {
			out[i].Checked = r.store.IsSelected(out[i].Node.Path)
		}
	}
	return out
}

// Len returns the number of rows
func (r *Renderer) Len() int {
	return len(r.rows)
}

// Row returns row i
func (r *Renderer) Row(i int) (Row, bool) {
	if i < 0 || i >= len(r.rows) {
		return Row{}, false
	}
	row := r.rows[i]
	if !row.Node.IsDir {
		row.Checked = r.store.IsSelected(row.Node.Path)
	}
	return row, true
}

// Activate is the single interaction handler for a row: directories toggle
// between expanded and collapsed, files toggle their selection. Clicking a
// file's checkbox or any other part of its row ends up here.
func (r *Renderer) Activate(i int) Activation {
	if i < 0 || i >= len(r.rows) {
		return Activation{}
	}
	node := r.rows[i].Node
	r.cursor = i

	if !node.IsDir {
		if r.store.ToggleFile(node.Path) {
			return Activation{Kind: ActivationFileSelected, Path: node.Path}
		}
		return Activation{Kind: ActivationFileDeselected, Path: node.Path}
	}

	v := r.dirs[node.Path]
	v.expanded = !v.expanded
	if v.expanded {
		r.materialize(v)
	}
	r.Rebuild()

	if v.expanded {
		return Activation{Kind: ActivationDirExpanded, Path: node.Path}
	}
	return Activation{Kind: ActivationDirCollapsed, Path: node.Path}
}

// ActivateCursor activates the row under the cursor
func (r *Renderer) ActivateCursor() Activation {
	return r.Activate(r.cursor)
}

// Expand opens the directory at path. It is a no-op for files.
func (r *Renderer) Expand(path string) bool {
	v, ok := r.dirs[path]
	if !ok || v.expanded {
		return false
	}
	v.expanded = true
	r.materialize(v)
	r.Rebuild()
	return true
}

// Collapse closes the directory at path, keeping its materialized children
func (r *Renderer) Collapse(path string) bool {
	v, ok := r.dirs[path]
	if !ok || !v.expanded {
		return false
	}
	v.expanded = false
	r.Rebuild()
	return true
}

// ExpandAll opens and materializes every directory, then rebuilds once
func (r *Renderer) ExpandAll() {
	var open func(nodes []*viewNode)
	open = func(nodes []*viewNode) {
		for _, v := range nodes {
			if !v.node.IsDir {
				continue
			}
			v.expanded = true
			r.materialize(v)
			open(v.children)
		}
	}
	open(r.roots)
	r.Rebuild()
}

// CollapseAll closes every directory the user opened
func (r *Renderer) CollapseAll() {
	for _, v := range r.dirs {
		v.expanded = false
	}
	r.Rebuild()
}

// IsExpanded reports the user-controlled state of a directory
func (r *Renderer) IsExpanded(path string) bool {
	v, ok := r.dirs[path]
	return ok && v.expanded
}

// IsMaterialized reports whether a directory's children have been built
func (r *Renderer) IsMaterialized(path string) bool {
	v, ok := r.dirs[path]
	return ok && v.materialized
}

// MaterializedCount returns how many directories have built children
func (r *Renderer) MaterializedCount() int {
	n := 0
	for _, v := range r.dirs {
		if v.materialized {
			n++
		}
	}
	return n
}

// VisibleFileCount returns the number of files matching the filter, or -1
// when nothing is filtered
func (r *Renderer) VisibleFileCount() int {
	return r.visibility.VisibleFileCount()
}
