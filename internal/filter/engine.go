package filter

import (
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/models"
)

// Engine decides which tree nodes are visible for a search term and an
// optional set of gitignore-style hide patterns. It never mutates the tree.
type Engine struct {
	term     string
	patterns []string
	hide     gitignore.GitIgnore
}

// New creates an engine with no term. Blank patterns are dropped.
func New(patterns ...string) *Engine {
	e := &Engine{}
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			e.patterns = append(e.patterns, p)
		}
	}
	if len(e.patterns) > 0 {
		e.hide = gitignore.New(strings.NewReader(strings.Join(e.patterns, "\n")), "", nil)
	}
	return e
}

// SetTerm sets the case-insensitive substring filter. Empty clears it.
func (e *Engine) SetTerm(term string) {
	e.term = strings.ToLower(term)
}

// Term returns the lower-cased term
func (e *Engine) Term() string {
	return e.term
}

// HasTerm reports whether a search term is set
func (e *Engine) HasTerm() bool {
	return e.term != ""
}

// Patterns returns the hide patterns
func (e *Engine) Patterns() []string {
	return append([]string(nil), e.patterns...)
}

// Active reports whether any node can be filtered out
func (e *Engine) Active() bool {
	return e.term != "" || e.hide != nil
}

// MatchFile applies the term to a file's full path
func (e *Engine) MatchFile(node *models.TreeNode) bool {
	if e.term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(node.Path), e.term)
}

// IsVisible evaluates a single node against the full subtree below it. For
// whole-tree rendering use Evaluate, which visits each node once.
func (e *Engine) IsVisible(node *models.TreeNode) bool {
	if node == nil {
		return false
	}
	if !e.Active() {
		return true
	}
	if e.hiddenByAncestors(node.Path, node.IsDir) {
		return false
	}
	if !node.IsDir {
		return e.MatchFile(node)
	}
	return filetree.HasVisibleDescendant(node, func(n *models.TreeNode) bool {
		return !e.hiddenByAncestors(n.Path, false) && e.MatchFile(n)
	})
}

// Evaluate computes visibility for every node under root in one post-order
// pass.
func (e *Engine) Evaluate(root *models.TreeNode) *Result {
	if !e.Active() {
		return &Result{all: true}
	}

	r := &Result{visible: make(map[string]struct{})}
	if root != nil {
		for _, child := range root.Children {
			e.evaluate(child, false, r)
		}
	}
	return r
}

func (e *Engine) evaluate(node *models.TreeNode, hidden bool, r *Result) bool {
	hidden = hidden || e.hidden(node.Path, node.IsDir)

	if !node.IsDir {
		if hidden || !e.MatchFile(node) {
			return false
		}
		r.visible[node.Path] = struct{}{}
		r.files++
		return true
	}

	found := false
	for _, child := range node.Children {
		if e.evaluate(child, hidden, r) {
			found = true
		}
	}
	if found {
		r.visible[node.Path] = struct{}{}
	}
	return found
}

func (e *Engine) hidden(path string, isDir bool) bool {
	if e.hide == nil || path == "" {
		return false
	}
	match := e.hide.Relative(strings.TrimSuffix(path, "/"), isDir)
	return match != nil && match.Ignore()
}

// hiddenByAncestors checks the node and each of its parent directories
func (e *Engine) hiddenByAncestors(path string, isDir bool) bool {
	if e.hide == nil {
		return false
	}
	trimmed := strings.TrimSuffix(path, "/")
	parts := strings.Split(trimmed, "/")
	for i := 1; i < len(parts); i++ {
		if e.hidden(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return e.hidden(trimmed, isDir)
}

// Result is the visibility snapshot of one Evaluate call
type Result struct {
	all     bool
	visible map[string]struct{}
	files   int
}

// Visible reports whether node should be rendered
func (r *Result) Visible(node *models.TreeNode) bool {
	if r.all {
		return true
	}
	_, ok := r.visible[node.Path]
	return ok
}

// Unfiltered reports whether every node is visible
func (r *Result) Unfiltered() bool {
	return r.all
}

// VisibleFileCount returns the number of matching files; -1 when unfiltered
func (r *Result) VisibleFileCount() int {
	if r.all {
		return -1
	}
	return r.files
}
