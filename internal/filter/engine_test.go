package filter

import (
	"testing"

	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *filetree.Model {
	t.Helper()

	m, err := filetree.New(filetree.Build([]string{
		"application/models/Car.php",
		"application/models/Driver.php",
		"application/forms/CarForm.php",
		"library/Util.php",
		"vendor/zend/Loader.php",
		"views/car.tpl.php",
	}))
	require.NoError(t, err)
	return m
}

func lookup(t *testing.T, m *filetree.Model, path string) *models.TreeNode {
	t.Helper()

	node, ok := m.Lookup(path)
	require.True(t, ok, "missing %s", path)
	return node
}

func TestEngine_EmptyTermShowsEverything(t *testing.T) {
	m := fixture(t)
	e := New()

	require.False(t, e.Active())
	r := e.Evaluate(m.Root())
	require.True(t, r.Unfiltered())
	require.Equal(t, -1, r.VisibleFileCount())

	_ = m.Walk(func(node *models.TreeNode, _ int) error {
		require.True(t, r.Visible(node), node.Path)
		require.True(t, e.IsVisible(node), node.Path)
		return nil
	})
}

func TestEngine_DirectoryVisibleOnlyWithMatchingDescendant(t *testing.T) {
	m := fixture(t)
	e := New()
	e.SetTerm("CAR")

	require.Equal(t, "car", e.Term())
	r := e.Evaluate(m.Root())

	// "application" and "models" do not contain "car" themselves.
	require.True(t, r.Visible(lookup(t, m, "application/")))
	require.True(t, r.Visible(lookup(t, m, "application/models/")))
	require.True(t, r.Visible(lookup(t, m, "application/models/Car.php")))
	require.True(t, r.Visible(lookup(t, m, "application/forms/CarForm.php")))
	require.False(t, r.Visible(lookup(t, m, "application/models/Driver.php")))

	// No match below library: pruned entirely.
	require.False(t, r.Visible(lookup(t, m, "library/")))
	require.False(t, e.IsVisible(lookup(t, m, "library/")))
	require.True(t, e.IsVisible(lookup(t, m, "application/")))

	require.Equal(t, 4, r.VisibleFileCount())
}

func TestEngine_MatchesFullPathNotName(t *testing.T) {
	m := fixture(t)
	e := New()
	e.SetTerm("models/")

	r := e.Evaluate(m.Root())
	require.True(t, r.Visible(lookup(t, m, "application/models/Driver.php")))
	require.False(t, r.Visible(lookup(t, m, "application/forms/CarForm.php")))
}

func TestEngine_DoesNotMutateTree(t *testing.T) {
	m := fixture(t)
	before := m.Files()

	e := New("vendor/")
	e.SetTerm("zzz")
	_ = e.Evaluate(m.Root())

	require.Equal(t, before, m.Files())
	require.Len(t, lookup(t, m, "application/").Children, 2)
}

func TestEngine_HidePatterns(t *testing.T) {
	m := fixture(t)
	e := New("vendor/", "*.tpl.php", "  ")

	require.Equal(t, []string{"vendor/", "*.tpl.php"}, e.Patterns())
	require.True(t, e.Active())
	require.False(t, e.HasTerm())

	r := e.Evaluate(m.Root())
	require.False(t, r.Visible(lookup(t, m, "vendor/")))
	require.False(t, r.Visible(lookup(t, m, "vendor/zend/Loader.php")))
	require.False(t, r.Visible(lookup(t, m, "views/")))
	require.True(t, r.Visible(lookup(t, m, "library/Util.php")))

	require.False(t, e.IsVisible(lookup(t, m, "vendor/zend/Loader.php")))
	require.False(t, e.IsVisible(lookup(t, m, "views/")))
	require.True(t, e.IsVisible(lookup(t, m, "library/")))
}

func TestEngine_EvaluateMatchesIsVisible(t *testing.T) {
	m := fixture(t)
	for _, term := range []string{"", "car", "php", "util", "nothing"} {
		e := New("vendor/")
		e.SetTerm(term)
		r := e.Evaluate(m.Root())

		_ = m.Walk(func(node *models.TreeNode, _ int) error {
			require.Equal(t, e.IsVisible(node), r.Visible(node), "term=%q path=%s", term, node.Path)
			return nil
		})
	}
}
