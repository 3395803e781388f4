package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAutoOutputPath(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)

	require.Equal(t, "/srv/app_output_20260307_090501", AutoOutputPath("/srv/app", now))
	require.Equal(t, "/srv/app_output_20260307_090501", AutoOutputPath("/srv/app/", now))
	require.Equal(t, "", AutoOutputPath("", now))
}

func TestDestination(t *testing.T) {
	now := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)
	var d Destination

	require.True(t, d.IsAuto())
	require.Equal(t, "Auto: {project}_output_{ts}", d.Placeholder("", now))
	require.Equal(t, "/srv/app_output_20260307_090501", d.Resolve("/srv/app", now))

	d.Set("/tmp/export")
	require.False(t, d.IsAuto())
	require.Equal(t, "/tmp/export", d.Resolve("/srv/app", now))
	require.Equal(t, "/tmp/export", d.Placeholder("/srv/app", now))

	d.Reset()
	require.True(t, d.IsAuto())
	require.Equal(t, "", d.Resolve("", now))
}
