package internal_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/cli"
	"github.com/jakoblorz/go-depextract/internal/config"
	"github.com/jakoblorz/go-depextract/internal/filesystem"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/plan"
	"github.com/jakoblorz/go-depextract/internal/results"
	"github.com/jakoblorz/go-depextract/internal/session"
	"github.com/jakoblorz/go-depextract/internal/treeview"
)

func TestSelectAnalyzeExportWorkflow(t *testing.T) {
	// Setup mock analyzer with a small ZF1 project
	mock := backend.NewMockClient()
	mock.AddProject("/srv/shop",
		"application/controllers/CartController.php",
		"application/models/Cart.php",
		"application/models/Product.php",
		"library/Shop/Money.php",
		"library/Shop/bootstrap.php",
		"public/index.php",
	)
	mock.AddDependency("application/controllers/CartController.php", models.DependencyRecord{
		FilePath: "application/models/Cart.php", ClassName: "Model_Cart", RefType: "new",
	})
	mock.AddDependency("application/models/Cart.php", models.DependencyRecord{
		FilePath: "application/models/Product.php", ClassName: "Model_Product", RefType: "extends",
	})
	mock.AddDependency("application/models/Cart.php", models.DependencyRecord{
		FilePath: "library/Shop/Money.php", ClassName: "Shop_Money", RefType: "static",
	})
	mock.AddInclude("application/controllers/CartController.php", models.IncludeRecord{
		Type: "require_once", RawPath: "bootstrap.php", Resolved: "library/Shop/bootstrap.php", Line: 3,
	})
	mock.AddInclude("application/controllers/CartController.php", models.IncludeRecord{
		Type: "include", RawPath: "$template", Line: 40,
	})

	fs := filesystem.NewMockFileSystem()
	now := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)
	s := session.New(mock, session.Options{
		Mappings:      models.DefaultZF1Mappings(),
		ParseIncludes: true,
		Now:           func() time.Time { return now },
	})
	ctx := context.Background()

	t.Run("scan builds a collapsed tree", func(t *testing.T) {
		require.NoError(t, s.Scan(ctx, "/srv/shop"))
		require.Equal(t, "Scanned 6 files, indexed 3 classes", s.Status())
		require.Equal(t, "▸ application/\n▸ library/\n▸ public/\n", treeview.FormatRows(s.View().Rows()))
		require.Zero(t, s.View().MaterializedCount())
	})

	t.Run("search finds the controller and activation selects it", func(t *testing.T) {
		s.SetFilterTerm("cartcontroller")
		view := s.View()
		require.Equal(t, 3, view.Len())

		row, ok := view.Row(2)
		require.True(t, ok)
		require.Equal(t, "application/controllers/CartController.php", row.Path())
		require.Equal(t, treeview.ActivationFileSelected, view.Activate(2).Kind)

		s.SetFilterTerm("")
		require.Equal(t, 3, view.Len(), "filter-forced directories collapse again")
		require.True(t, s.Store().IsSelected("application/controllers/CartController.php"))
	})

	t.Run("analysis feeds the results", func(t *testing.T) {
		require.NoError(t, s.Analyze(ctx))
		require.Equal(t, "Found 1 dependencies, 2 includes", s.Status())

		report := results.Present(s.Store())
		require.Equal(t, "1 deps", report.DepCountLabel)
		require.Equal(t, "Selected: 1 | Dependencies: 1 | Total: 2", report.Stats)
		require.Len(t, report.Includes, 2)
	})

	t.Run("adding the model pulls in its dependencies", func(t *testing.T) {
		require.NoError(t, s.Select("application/models/Cart.php"))
		require.NoError(t, s.Analyze(ctx))

		// the unresolved $template include stays unchecked
		require.Equal(t, 1, s.Store().CheckResolvedIncludes())
		require.Equal(t, 2, s.Store().DependencyCount())
		require.Equal(t, []string{
			"application/controllers/CartController.php",
			"application/models/Cart.php",
			"application/models/Product.php",
			"library/Shop/Money.php",
			"library/Shop/bootstrap.php",
		}, s.Coordinator().ComputeExportFiles())
	})

	t.Run("export copies the resolved set", func(t *testing.T) {
		outcome, err := s.Export(ctx)
		require.NoError(t, err)
		require.Equal(t, "/srv/shop_output_20260307_090501", outcome.Destination)
		require.Len(t, outcome.Copied, 5)
		require.Equal(t, "Copied 5 files to /srv/shop_output_20260307_090501", s.Status())
		require.Equal(t, 2, s.Store().SelectedCount(), "export leaves the selection untouched")
	})

	var planPath string
	t.Run("plan captures the session", func(t *testing.T) {
		p := plan.Capture(s)
		manager := plan.NewManager(fs, "/workspace/plans")
		require.NoError(t, manager.Write(p))
		planPath = p.FilePath
		require.Equal(t, []string{"library/Shop/bootstrap.php"}, p.Includes)
	})

	t.Run("cli replays the plan", func(t *testing.T) {
		before := mock.Calls("copy")
		root := cli.NewRootCommand(fs, func(cfg config.Config, logger *slog.Logger) (backend.Client, error) {
			return mock, nil
		})

		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"export", "--plan", planPath, "--output", "/tmp/shop"})
		require.NoError(t, root.Execute())

		require.Equal(t, "Copied 5 files to /tmp/shop\n", out.String())
		require.Equal(t, before+1, mock.Calls("copy"))
		require.Equal(t, s.Coordinator().ComputeExportFiles(), mock.LastCopy().Files)
	})

	t.Run("rescan clears selection and analysis", func(t *testing.T) {
		require.NoError(t, s.Scan(ctx, "/srv/shop"))
		require.Zero(t, s.Store().SelectedCount())
		require.False(t, s.Store().HasAnalysis())
		require.True(t, results.Present(s.Store()).Empty())

		_, err := s.Export(ctx)
		require.True(t, models.IsValidation(err))
	})
}
