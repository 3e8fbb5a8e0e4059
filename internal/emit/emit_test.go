package emit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unihub/apispec/internal/specerrors"
)

func TestWriteCreatesDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "nested")

	written, err := Write(root, []File{
		{Name: "top.json", Content: []byte("{}")},
		{Name: "auth/login.json", Content: []byte(`{"ok":true}`)},
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "top.json"),
		filepath.Join(root, "auth", "login.json"),
	}, written)

	data, err := os.ReadFile(filepath.Join(root, "auth", "login.json"))
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, string(data))
}

func TestWriteOverwrites(t *testing.T) {
	root := t.TempDir()

	_, err := Write(root, []File{{Name: "a.txt", Content: []byte("first, longer content")}})
	require.NoError(t, err)
	_, err = Write(root, []File{{Name: "a.txt", Content: []byte("second")}})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestWriteFailsWhenRootIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := Write(filepath.Join(blocker, "dist"), []File{{Name: "a.txt"}})
	require.ErrorIs(t, err, specerrors.ErrIO)

	var ioErr *specerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	require.Equal(t, "mkdir", ioErr.Op)
}
