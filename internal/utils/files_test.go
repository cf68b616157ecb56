package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileCreatesParents(t *testing.T) {
	p := filepath.Join(t.TempDir(), "reports", "out.txt")
	require.NoError(t, SafeWriteFile(p, []byte("first")))
	require.NoError(t, SafeWriteFile(p, []byte("second")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "second", string(b))

	_, err = os.Stat(p + ".tmp")
	require.True(t, os.IsNotExist(err))
}
