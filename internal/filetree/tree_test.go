package filetree

import (
	"testing"

	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/stretchr/testify/require"
)

func buildModel(t *testing.T, files ...string) *Model {
	t.Helper()

	m, err := New(Build(files))
	require.NoError(t, err)
	return m
}

func TestBuild_SortsDirectoriesFirst(t *testing.T) {
	root := Build([]string{"index.php", "src/b.php", "src/A.php", "lib/x.php", "Zeta.php"})

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	require.Equal(t, []string{"lib", "src", "index.php", "Zeta.php"}, names)

	src := root.Children[1]
	require.True(t, src.IsDir)
	require.Equal(t, "src/", src.Path)
	require.Equal(t, "src/A.php", src.Children[0].Path)
	require.Equal(t, "src/b.php", src.Children[1].Path)
}

func TestWalk_PreOrder(t *testing.T) {
	m := buildModel(t, "src/a.php", "src/sub/c.php", "lib/x.php")

	var visited []string
	err := m.Walk(func(node *models.TreeNode, depth int) error {
		visited = append(visited, node.Path)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"lib/", "lib/x.php", "src/", "src/sub/", "src/sub/c.php", "src/a.php"}, visited)
}

func TestWalk_SkipChildren(t *testing.T) {
	m := buildModel(t, "src/a.php", "lib/x.php")

	var visited []string
	err := m.Walk(func(node *models.TreeNode, depth int) error {
		visited = append(visited, node.Path)
		if node.Path == "lib/" {
			return SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"lib/", "src/", "src/a.php"}, visited)
}

func TestNew_IndexesFiles(t *testing.T) {
	m := buildModel(t, "src/a.php", "src/b.php")

	require.Equal(t, 2, m.FileCount())
	require.Equal(t, []string{"src/a.php", "src/b.php"}, m.Files())
	require.True(t, m.Contains("src/a.php"))
	require.False(t, m.Contains("src/"))

	node, ok := m.Lookup("src/")
	require.True(t, ok)
	require.True(t, node.IsDir)
}

func TestNew_AssignsDirectoryPathsFromScanResponse(t *testing.T) {
	// Scan responses only carry paths on files.
	root := &models.TreeNode{Name: "/", IsDir: true, Children: []*models.TreeNode{
		{Name: "app", IsDir: true, Children: []*models.TreeNode{
			{Name: "models", IsDir: true, Children: []*models.TreeNode{
				{Name: "Car.php", Path: "app/models/Car.php"},
			}},
		}},
	}}

	m, err := New(root)
	require.NoError(t, err)

	node, ok := m.Lookup("app/models/")
	require.True(t, ok)
	require.Equal(t, "models", node.Name)
	require.True(t, m.Contains("app/models/Car.php"))
}

func TestNew_RejectsDuplicatePaths(t *testing.T) {
	root := &models.TreeNode{Name: "/", IsDir: true, Children: []*models.TreeNode{
		{Name: "a.php", Path: "a.php"},
		{Name: "a.php", Path: "a.php"},
	}}

	_, err := New(root)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate path")

	_, err = New(nil)
	require.Error(t, err)
}

func TestHasVisibleDescendant(t *testing.T) {
	m := buildModel(t, "src/deep/nested/match.php", "src/other.php", "lib/x.php")
	src, _ := m.Lookup("src/")
	lib, _ := m.Lookup("lib/")

	pred := func(n *models.TreeNode) bool { return n.Name == "match.php" }
	require.True(t, HasVisibleDescendant(src, pred))
	require.False(t, HasVisibleDescendant(lib, pred))

	emptyDir := &models.TreeNode{Name: "empty", IsDir: true}
	require.False(t, HasVisibleDescendant(emptyDir, pred))

	file, _ := m.Lookup("src/other.php")
	require.False(t, HasVisibleDescendant(file, func(*models.TreeNode) bool { return true }))
}
