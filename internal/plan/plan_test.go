package plan

import (
	"context"
	"testing"
	"time"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/session"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*session.Session, *backend.MockClient) {
	t.Helper()

	mock := backend.NewMockClient()
	mock.AddProject("/srv/app",
		"application/controllers/IndexController.php",
		"application/models/Car.php",
		"library/App/config.php",
		"library/App/db.php",
	)
	mock.AddDependency("application/controllers/IndexController.php", models.DependencyRecord{
		FilePath: "application/models/Car.php", ClassName: "Model_Car", RefType: "new",
	})
	mock.AddInclude("application/controllers/IndexController.php", models.IncludeRecord{
		Type: "require_once", RawPath: "config.php", Resolved: "library/App/config.php",
	})
	mock.AddInclude("application/controllers/IndexController.php", models.IncludeRecord{
		Type: "require_once", RawPath: "db.php", Resolved: "library/App/db.php",
	})

	now := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)
	return session.New(mock, session.Options{Now: func() time.Time { return now }}), mock
}

func TestPlan_ApplyReplaysSelection(t *testing.T) {
	s, mock := newSession(t)

	p := &Plan{
		Project:       "/srv/app",
		ParseIncludes: true,
		Includes:      []string{"library/App/db.php"},
		Files:         []string{"application/controllers/IndexController.php"},
	}
	require.NoError(t, p.Apply(context.Background(), s))

	require.Equal(t, 1, mock.Calls("scan"))
	require.Equal(t, 1, mock.Calls("analyze"))
	require.Equal(t, []int{1}, s.Store().CheckedIncludes())
	require.Equal(t, []string{
		"application/controllers/IndexController.php",
		"application/models/Car.php",
		"library/App/db.php",
	}, s.Coordinator().ComputeExportFiles())
	require.True(t, s.OutputIsAuto())
}

func TestPlan_ApplyUnknownFile(t *testing.T) {
	s, mock := newSession(t)

	p := &Plan{Project: "/srv/app", Files: []string{"missing.php"}}
	err := p.Apply(context.Background(), s)
	require.Error(t, err)
	require.True(t, models.IsValidation(err))
	require.Zero(t, mock.Calls("analyze"))
}

func TestCapture(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	s.SetParseIncludes(true)
	require.NoError(t, s.Scan(ctx, "/srv/app"))
	require.NoError(t, s.Select("application/controllers/IndexController.php"))
	require.NoError(t, s.Analyze(ctx))
	s.CheckIncludes(0)
	s.SetOutputDir("/tmp/out")

	p := Capture(s)
	require.Equal(t, "/srv/app", p.Project)
	require.Equal(t, models.FrameworkZF1, p.Framework)
	require.True(t, p.ParseIncludes)
	require.Equal(t, "/tmp/out", p.Output)
	require.Equal(t, []string{"library/App/config.php"}, p.Includes)
	require.Equal(t, []string{"application/controllers/IndexController.php"}, p.Files)

	// Replaying the capture on a fresh session yields the same export set.
	fresh, _ := newSession(t)
	require.NoError(t, p.Apply(ctx, fresh))
	require.Equal(t, s.Coordinator().ComputeExportFiles(), fresh.Coordinator().ComputeExportFiles())
	require.Equal(t, "/tmp/out", fresh.OutputDir())
}
