package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFramework(t *testing.T) {
	fw, err := ParseFramework("")
	require.NoError(t, err)
	require.Equal(t, FrameworkZF1, fw)

	fw, err = ParseFramework(" CakePHP ")
	require.NoError(t, err)
	require.Equal(t, FrameworkCakePHP, fw)

	_, err = ParseFramework("symfony")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid framework")
}

func TestParsePrefixMappings(t *testing.T) {
	mappings, err := ParsePrefixMappings("Model_=models/\n\n# comment\nForm_ -> forms/\n")
	require.NoError(t, err)
	require.Equal(t, []PrefixMapping{
		{Prefix: "Model_", Dir: "models/"},
		{Prefix: "Form_", Dir: "forms/"},
	}, mappings)

	require.Equal(t, "Model_=models/\nForm_=forms/", FormatPrefixMappings(mappings))
}

func TestParsePrefixMappings_Invalid(t *testing.T) {
	_, err := ParsePrefixMappings("Model_=models/\nbroken")
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")

	_, err = ParsePrefixMapping("Model_=")
	require.Error(t, err)
}

func TestIncludeRecord_DisplayPath(t *testing.T) {
	resolved := IncludeRecord{Type: "include", RawPath: "./y.php", Resolved: "lib/y.php"}
	require.True(t, resolved.IsResolved())
	require.Equal(t, "lib/y.php", resolved.DisplayPath())

	unresolved := IncludeRecord{Type: "require", RawPath: "$base . '/z.php'"}
	require.False(t, unresolved.IsResolved())
	require.Equal(t, "$base . '/z.php'", unresolved.DisplayPath())
}

func TestTreeNode_DirWithoutChildrenIsLeafLike(t *testing.T) {
	dir := &TreeNode{Name: "empty", IsDir: true}
	require.False(t, dir.HasChildren())
	require.False(t, dir.IsFile())

	file := &TreeNode{Name: "a.php", Path: "a.php"}
	require.True(t, file.IsFile())
}

func TestErrorKinds(t *testing.T) {
	verr := fmt.Errorf("failed to export: %w", NewValidationError("export", "destination directory is required"))
	require.True(t, IsValidation(verr))
	require.False(t, IsExternal(verr))
	require.Equal(t, "failed to export: export: destination directory is required", verr.Error())

	cause := errors.New("connection refused")
	eerr := fmt.Errorf("failed to scan: %w", NewExternalCallError("scan", cause))
	require.True(t, IsExternal(eerr))
	require.ErrorIs(t, eerr, cause)
}
