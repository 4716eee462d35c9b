package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCmd_Use(t *testing.T) {
	assert.Equal(t, "cache", cacheCmd.Use)
	assert.Equal(t, "info", cacheInfoCmd.Use)
	assert.Equal(t, "clear", cacheClearCmd.Use)
}

func runCacheCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()

	originalDir := cacheDir
	cacheDir = dir
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"cache"}, args...))
	t.Cleanup(func() {
		cacheDir = originalDir
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestCacheInfoCmd_EmptyCache(t *testing.T) {
	out := runCacheCmd(t, t.TempDir(), "info")

	assert.Contains(t, out, "schemas.db")
	assert.Contains(t, out, "Schemas: 0")
}

func TestCacheClearCmd(t *testing.T) {
	out := runCacheCmd(t, t.TempDir(), "clear")

	assert.Contains(t, out, "Schema cache cleared.")
}
