package boot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadModuleExportsToLib(t *testing.T) {
	dir := t.TempDir()
	script := `REBOL [Title: "math helpers" Type: "module"]
triple: func [x] [x * 3]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.r"), []byte(script), 0o644))

	opts := DefaultOptions()
	opts.SearchPaths = []string{dir}
	rt, err := Boot(opts)
	require.NoError(t, err)

	require.NoError(t, rt.LoadModule("helpers"))
	require.Equal(t, "15", doMold(t, rt, "triple 5"))

	require.ErrorIs(t, rt.LoadModule("absent"), ErrModuleNotFound)
}
