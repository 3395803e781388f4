package treeview

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/filter"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/selection"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tree     *filetree.Model
	engine   *filter.Engine
	store    *selection.Store
	renderer *Renderer
}

func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()

	if len(files) == 0 {
		files = []string{
			"application/models/Car.php",
			"application/models/Driver.php",
			"application/forms/CarForm.php",
			"library/Util.php",
			"index.php",
		}
	}
	tree, err := filetree.New(filetree.Build(files))
	require.NoError(t, err)

	f := &fixture{tree: tree, engine: filter.New(), store: selection.NewStore()}
	f.renderer = New(tree, f.engine, f.store)
	return f
}

func paths(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Path())
	}
	return out
}

func indexOf(t *testing.T, r *Renderer, path string) int {
	t.Helper()

	for i, row := range r.Rows() {
		if row.Path() == path {
			return i
		}
	}
	t.Fatalf("row %s not rendered", path)
	return -1
}

func TestRenderer_StartsCollapsedAndUnmaterialized(t *testing.T) {
	f := newFixture(t)

	require.Equal(t, []string{"application/", "library/", "index.php"}, paths(f.renderer.Rows()))
	require.Zero(t, f.renderer.MaterializedCount())
	require.False(t, f.renderer.IsMaterialized("application/"))
	require.False(t, f.renderer.IsExpanded("application/"))
}

func TestRenderer_DirectoryStateMachine(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	// collapsed/unmaterialized -> expanded
	act := r.Activate(indexOf(t, r, "application/"))
	require.Equal(t, Activation{Kind: ActivationDirExpanded, Path: "application/"}, act)
	require.True(t, r.IsMaterialized("application/"))
	require.False(t, r.IsMaterialized("application/models/"))
	require.Equal(t, []string{"application/", "application/forms/", "application/models/", "library/", "index.php"}, paths(r.Rows()))

	// expanded -> collapsed/materialized
	act = r.Activate(indexOf(t, r, "application/"))
	require.Equal(t, ActivationDirCollapsed, act.Kind)
	require.True(t, r.IsMaterialized("application/"))
	require.Equal(t, []string{"application/", "library/", "index.php"}, paths(r.Rows()))

	// collapsed/materialized -> expanded, reusing the same children
	before := r.dirs["application/"].children
	r.Activate(indexOf(t, r, "application/"))
	require.Same(t, before[0], r.dirs["application/"].children[0])
	require.Equal(t, 1, r.MaterializedCount())
}

func TestRenderer_SiblingsAreIndependent(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.Activate(indexOf(t, r, "application/"))
	r.Activate(indexOf(t, r, "library/"))
	r.Activate(indexOf(t, r, "application/"))

	require.False(t, r.IsExpanded("application/"))
	require.True(t, r.IsExpanded("library/"))
	require.Equal(t, []string{"application/", "library/", "library/Util.php", "index.php"}, paths(r.Rows()))
}

func TestRenderer_FileActivationTogglesSelection(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	i := indexOf(t, r, "index.php")
	act := r.Activate(i)
	require.Equal(t, Activation{Kind: ActivationFileSelected, Path: "index.php"}, act)
	require.True(t, f.store.IsSelected("index.php"))

	row, ok := r.Row(i)
	require.True(t, ok)
	require.True(t, row.Checked)

	act = r.Activate(i)
	require.Equal(t, ActivationFileDeselected, act.Kind)
	require.False(t, f.store.IsSelected("index.php"))
}

func TestRenderer_CheckboxReflectsStoreAtRenderTime(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	f.store.ToggleFile("index.php")
	rows := r.Rows()
	require.True(t, rows[indexOf(t, r, "index.php")].Checked)
}

func TestRenderer_FilterForcesMatchingBranchesOpen(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	f.engine.SetTerm("car")
	r.Rebuild()

	require.Equal(t, []string{
		"application/",
		"application/forms/",
		"application/forms/CarForm.php",
		"application/models/",
		"application/models/Car.php",
	}, paths(r.Rows()))

	for _, row := range r.Rows() {
		if row.IsDir() {
			require.True(t, row.Expanded, row.Path())
			require.True(t, row.Forced, row.Path())
		}
	}
	require.True(t, r.IsMaterialized("application/models/"))
	require.False(t, r.IsExpanded("application/models/"))
	require.Equal(t, 2, r.VisibleFileCount())
}

func TestRenderer_ClearingFilterKeepsSelectionInSync(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	f.engine.SetTerm("car.php")
	r.Rebuild()
	r.Activate(indexOf(t, r, "application/models/Car.php"))
	require.True(t, f.store.IsSelected("application/models/Car.php"))

	f.engine.SetTerm("")
	r.Rebuild()

	// Directories opened only by the filter fall back to collapsed.
	require.Equal(t, []string{"application/", "library/", "index.php"}, paths(r.Rows()))
	require.Equal(t, -1, r.VisibleFileCount())

	r.Activate(indexOf(t, r, "application/"))
	r.Activate(indexOf(t, r, "application/models/"))
	rows := r.Rows()
	require.True(t, rows[indexOf(t, r, "application/models/Car.php")].Checked)
	require.False(t, rows[indexOf(t, r, "application/models/Driver.php")].Checked)
}

func TestRenderer_UserExpandedStateSurvivesFilter(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.Activate(indexOf(t, r, "library/"))
	f.engine.SetTerm("util")
	r.Rebuild()

	rows := r.Rows()
	require.Equal(t, []string{"library/", "library/Util.php"}, paths(rows))
	require.False(t, rows[0].Forced)

	f.engine.SetTerm("")
	r.Rebuild()
	require.True(t, r.IsExpanded("library/"))
	require.Contains(t, paths(r.Rows()), "library/Util.php")
}

func TestRenderer_NoMatchesRendersNothing(t *testing.T) {
	f := newFixture(t)
	f.engine.SetTerm("does-not-exist")
	f.renderer.Rebuild()

	require.Zero(t, f.renderer.Len())
	require.Equal(t, "", f.renderer.CursorPath())
	require.Equal(t, Activation{}, f.renderer.ActivateCursor())

	start, end := f.renderer.VisibleRange(10)
	require.Zero(t, start)
	require.Zero(t, end)
}

func TestRenderer_CursorFollowsPathAcrossRebuild(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.SelectPath("index.php")
	r.Activate(indexOf(t, r, "application/"))
	r.SetCursor(indexOf(t, r, "index.php"))

	f.engine.SetTerm("index")
	r.Rebuild()
	require.Equal(t, "index.php", r.CursorPath())
}

func TestRenderer_NavigationHelpers(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.Top()
	r.ExpandOrDescend()
	require.True(t, r.IsExpanded("application/"))
	require.Equal(t, "application/", r.CursorPath())

	r.ExpandOrDescend()
	require.Equal(t, "application/forms/", r.CursorPath())

	r.CollapseOrAscend()
	require.Equal(t, "application/", r.CursorPath())

	r.CollapseOrAscend()
	require.False(t, r.IsExpanded("application/"))

	r.Bottom()
	require.Equal(t, "index.php", r.CursorPath())
	r.MoveDown()
	require.Equal(t, "index.php", r.CursorPath())
	r.PageUp(10)
	require.Equal(t, "application/", r.CursorPath())
	r.MoveUp()
	require.Equal(t, 0, r.Cursor())
}

func TestRenderer_VisibleRangeKeepsCursorInWindow(t *testing.T) {
	var files []string
	for _, c := range "abcdefghijklmnopqrst" {
		files = append(files, string(c)+".php")
	}
	f := newFixture(t, files...)
	r := f.renderer

	start, end := r.VisibleRange(5)
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)

	r.PageDown(7)
	start, end = r.VisibleRange(5)
	require.Equal(t, 3, start)
	require.Equal(t, 8, end)

	r.Bottom()
	start, end = r.VisibleRange(5)
	require.Equal(t, 15, start)
	require.Equal(t, 20, end)

	r.Top()
	start, _ = r.VisibleRange(5)
	require.Equal(t, 0, start)
}

func TestRenderer_CollapseAll(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.Expand("application/")
	r.Expand("application/models/")
	require.False(t, r.Expand("application/models/"))
	require.False(t, r.Expand("index.php"))

	r.CollapseAll()
	require.Equal(t, []string{"application/", "library/", "index.php"}, paths(r.Rows()))
	require.True(t, r.IsMaterialized("application/models/"))
}

func TestRenderer_ExpandAll(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.ExpandAll()
	require.Equal(t, []string{
		"application/",
		"application/forms/",
		"application/forms/CarForm.php",
		"application/models/",
		"application/models/Car.php",
		"application/models/Driver.php",
		"library/",
		"library/Util.php",
		"index.php",
	}, paths(r.Rows()))
	require.Equal(t, 4, r.MaterializedCount())
	require.True(t, r.IsExpanded("application/forms/"))

	r.CollapseAll()
	require.Equal(t, []string{"application/", "library/", "index.php"}, paths(r.Rows()))
}

func TestRenderer_DirectoryWithoutChildren(t *testing.T) {
	root := &models.TreeNode{Name: "/", IsDir: true, Children: []*models.TreeNode{
		{Name: "empty", IsDir: true},
		{Name: "a.php", Path: "a.php"},
	}}
	tree, err := filetree.New(root)
	require.NoError(t, err)

	r := New(tree, filter.New(), selection.NewStore())
	act := r.Activate(0)
	require.Equal(t, ActivationDirExpanded, act.Kind)
	require.Equal(t, []string{"empty/", "a.php"}, paths(r.Rows()))
}

func TestFormatRows(t *testing.T) {
	f := newFixture(t)
	r := f.renderer

	r.Expand("application/")
	r.Expand("application/models/")
	f.store.ToggleFile("application/models/Car.php")

	snaps.MatchSnapshot(t, FormatRows(r.Rows()))
}
