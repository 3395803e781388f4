package models

// TreeNode is one entry of a scanned project tree. Path is the identity key
// for selection and view state; it is unique within one tree.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path,omitempty"`
	IsDir    bool        `json:"isDir"`
	Children []*TreeNode `json:"children,omitempty"`
}

// IsFile reports whether the node is a selectable file
func (n *TreeNode) IsFile() bool {
	return n != nil && !n.IsDir
}

// HasChildren reports whether the node has structural children. A directory
// with nil children behaves like a leaf.
func (n *TreeNode) HasChildren() bool {
	return n != nil && n.IsDir && len(n.Children) > 0
}
