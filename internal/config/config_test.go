package config

import (
	"testing"
	"time"

	"github.com/jakoblorz/go-depextract/internal/filesystem"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()

	cfg, err := Load(fsys, "/home/user/.config/depextract/config.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultServer, cfg.Server)
	require.Equal(t, models.FrameworkZF1, cfg.Framework)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.True(t, cfg.IncludesEnabled())
}

func TestLoad_RequiresPath(t *testing.T) {
	_, err := Load(filesystem.NewMockFileSystem(), "")
	require.Error(t, err)
}

func TestLoad_ParsesFile(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	fsys.AddFile("/etc/depextract.yaml", []byte(`
server: http://10.0.0.5:9000
framework: Laravel
parse_includes: false
timeout: 5s
log_file: /tmp/depextract.log
log_level: DEBUG
hidden_patterns:
  - vendor/
  - "  "
  - "*.tpl.php"
mappings:
  - prefix: App_
    dir: src/
`))

	cfg, err := Load(fsys, "/etc/depextract.yaml")
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:9000", cfg.Server)
	require.Equal(t, models.FrameworkLaravel, cfg.Framework)
	require.False(t, cfg.IncludesEnabled())
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, "/tmp/depextract.log", cfg.LogFile)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"vendor/", "*.tpl.php"}, cfg.HiddenPatterns)
	require.Equal(t, []models.PrefixMapping{{Prefix: "App_", Dir: "src/"}}, cfg.Mappings)
}

func TestLoad_EmptyFile(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	fsys.AddFile("/etc/depextract.yaml", []byte("  \n"))

	cfg, err := Load(fsys, "/etc/depextract.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Server, cfg.Server)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "server: [unterminated"},
		{"bad framework", "framework: symfony"},
		{"bad server", "server: localhost:8080"},
		{"negative timeout", "timeout: -1s"},
		{"bad log level", "log_level: trace"},
		{"bad mapping", "mappings:\n  - prefix: App_\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := filesystem.NewMockFileSystem()
			fsys.AddFile("/etc/depextract.yaml", []byte(tt.content))

			_, err := Load(fsys, "/etc/depextract.yaml")
			require.Error(t, err)
		})
	}
}

func TestApply_Overrides(t *testing.T) {
	cfg, err := DefaultConfig().Apply(Overrides{
		Server:    "https://extractor.internal",
		Framework: "cakephp",
		LogFile:   "/tmp/x.log",
	})
	require.NoError(t, err)
	require.Equal(t, "https://extractor.internal", cfg.Server)
	require.Equal(t, models.FrameworkCakePHP, cfg.Framework)
	require.Equal(t, "/tmp/x.log", cfg.LogFile)
	require.Equal(t, "info", cfg.LogLevel)

	_, err = DefaultConfig().Apply(Overrides{Framework: "rails"})
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	fsys := filesystem.NewMockFileSystem()
	path, err := DefaultPath(fsys)
	require.NoError(t, err)
	require.Equal(t, "/home/user/.config/depextract/config.yaml", path)

	cfg := DefaultConfig()
	cfg.Framework = models.FrameworkLaravel
	cfg.Mappings = models.DefaultZF1Mappings()
	require.NoError(t, Save(fsys, path, cfg))

	loaded, err := Load(fsys, path)
	require.NoError(t, err)
	require.Equal(t, cfg.Framework, loaded.Framework)
	require.Equal(t, cfg.Mappings, loaded.Mappings)
	require.Equal(t, cfg.Timeout, loaded.Timeout)
}
