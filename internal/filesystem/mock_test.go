package filesystem

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_WriteRequiresParent(t *testing.T) {
	mfs := NewMockFileSystem()

	err := mfs.WriteFile("/plans/a.md", []byte("x"), 0644)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.MkdirAll("/plans", 0755))
	require.NoError(t, mfs.WriteFile("/plans/a.md", []byte("x"), 0644))

	data, err := mfs.ReadFile("/plans/a.md")
	require.NoError(t, err)
	require.Equal(t, "x", string(data))
	require.True(t, mfs.Exists("/plans"))
}

func TestMockFileSystem_OpenAppend(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/var/log")

	w, err := mfs.OpenAppend("/var/log/depextract.log")
	require.NoError(t, err)
	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = mfs.OpenAppend("/var/log/depextract.log")
	require.NoError(t, err)
	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)

	data, err := mfs.ReadFile("/var/log/depextract.log")
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(data))

	_, err = mfs.OpenAppend("/var/log")
	require.Error(t, err)
}

func TestMockFileSystem_UserConfigDir(t *testing.T) {
	mfs := NewMockFileSystem()

	dir, err := mfs.UserConfigDir()
	require.NoError(t, err)
	require.Equal(t, "/home/user/.config", dir)

	mfs.SetConfigDir("")
	_, err = mfs.UserConfigDir()
	require.Error(t, err)
}

func TestMockFileSystem_AddFileCreatesParents(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/home/user/.config/depextract/config.yaml", []byte("framework: zf1\n"))

	require.Equal(t, []string{
		"/home",
		"/home/user",
		"/home/user/.config",
		"/home/user/.config/depextract",
		"/home/user/.config/depextract/config.yaml",
	}, mfs.Paths())

	data, err := mfs.ReadFile("/home/user/.config/depextract/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "framework: zf1\n", string(data))

	_, err = mfs.ReadFile("/home/user/.config")
	require.Error(t, err)
	_, err = mfs.ReadFile("/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
