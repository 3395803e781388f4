package filetree

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jakoblorz/go-depextract/internal/models"
)

// SkipChildren can be returned from a WalkFunc to skip a node's subtree
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in depth-first pre-order
type WalkFunc func(node *models.TreeNode, depth int) error

// Model is the immutable tree produced by one scan. Nothing in this package
// mutates the nodes after New returns.
type Model struct {
	root  *models.TreeNode
	index map[string]*models.TreeNode
	files []string
}

// New takes ownership of root and indexes it. Directories without a path
// (scan responses only carry file paths) get one derived from their parents.
// Paths must be unique across the tree.
func New(root *models.TreeNode) (*Model, error) {
	if root == nil {
		return nil, fmt.Errorf("tree root cannot be nil")
	}
	for _, child := range root.Children {
		assignDirPaths(child, "")
	}

	m := &Model{
		root:  root,
		index: make(map[string]*models.TreeNode),
	}

	err := walk(root, 0, func(node *models.TreeNode, _ int) error {
		if node == root || node.Path == "" {
			return nil
		}
		if _, exists := m.index[node.Path]; exists {
			return fmt.Errorf("duplicate path in tree: %s", node.Path)
		}
		m.index[node.Path] = node
		if node.IsFile() {
			m.files = append(m.files, node.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Root returns the root node
func (m *Model) Root() *models.TreeNode {
	return m.root
}

// Lookup returns the node with the given path
func (m *Model) Lookup(path string) (*models.TreeNode, bool) {
	node, ok := m.index[path]
	return node, ok
}

// Files returns all file paths in pre-order
func (m *Model) Files() []string {
	out := make([]string, len(m.files))
	copy(out, m.files)
	return out
}

// FileCount returns the number of file nodes
func (m *Model) FileCount() int {
	return len(m.files)
}

// Contains reports whether path is a file in the tree
func (m *Model) Contains(path string) bool {
	node, ok := m.index[path]
	return ok && node.IsFile()
}

// Walk visits every node below the root in depth-first pre-order. The root
// itself is not visited; its children are at depth 0.
func (m *Model) Walk(fn WalkFunc) error {
	for _, child := range m.root.Children {
		if err := walk(child, 0, fn); err != nil {
			return err
		}
	}
	return nil
}

func walk(node *models.TreeNode, depth int, fn WalkFunc) error {
	if err := fn(node, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	if !node.IsDir {
		return nil
	}
	for _, child := range node.Children {
		if err := walk(child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

func assignDirPaths(node *models.TreeNode, parent string) {
	if !node.IsDir {
		return
	}
	if node.Path == "" {
		if parent == "" {
			node.Path = node.Name
		} else {
			node.Path = parent + "/" + node.Name
		}
		// Trailing slash keeps a directory from colliding with a file of the same name.
		node.Path += "/"
	}
	for _, child := range node.Children {
		assignDirPaths(child, strings.TrimSuffix(node.Path, "/"))
	}
}

// HasVisibleDescendant reports whether any file below node satisfies pred.
// It is evaluated on every call; nothing is cached.
func HasVisibleDescendant(node *models.TreeNode, pred func(*models.TreeNode) bool) bool {
	if node == nil || !node.IsDir {
		return false
	}
	for _, child := range node.Children {
		if child.IsDir {
			if HasVisibleDescendant(child, pred) {
				return true
			}
			continue
		}
		if pred(child) {
			return true
		}
	}
	return false
}

// Build creates a tree from slash-separated relative file paths. Directories
// get their relative path with a trailing slash so that view state can key
// on them.
func Build(files []string) *models.TreeNode {
	root := &models.TreeNode{Name: "/", IsDir: true}
	dirs := map[string]*models.TreeNode{"": root}

	for _, filePath := range files {
		filePath = strings.Trim(filePath, "/")
		if filePath == "" {
			continue
		}
		parts := strings.Split(filePath, "/")
		current := root

		for i, part := range parts {
			isLast := i == len(parts)-1
			p := strings.Join(parts[:i+1], "/")

			if !isLast {
				dir, ok := dirs[p]
				if !ok {
					dir = &models.TreeNode{Name: part, Path: p + "/", IsDir: true}
					dirs[p] = dir
					current.Children = append(current.Children, dir)
				}
				current = dir
				continue
			}

			exists := false
			for _, c := range current.Children {
				if c.Path == p {
					exists = true
					break
				}
			}
			if !exists {
				current.Children = append(current.Children, &models.TreeNode{Name: part, Path: p})
			}
		}
	}

	sortTree(root)
	return root
}

// sortTree orders directories first, then names case-insensitively
func sortTree(node *models.TreeNode) {
	if len(node.Children) == 0 {
		return
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	for _, child := range node.Children {
		sortTree(child)
	}
}
