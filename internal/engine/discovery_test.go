package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCandidates swaps the probe list for the duration of one test. The real
// candidates need PowerShell installed; these tests substitute standard
// binaries that accept or reject the probe arguments.
func withCandidates(t *testing.T, names ...string) {
	t.Helper()
	saved := powershellCandidates
	powershellCandidates = names
	t.Cleanup(func() { powershellCandidates = saved })
}

func TestDiscoverNothingUsable(t *testing.T) {
	withCandidates(t, "definitely-not-a-real-engine", "also-not-real")

	_, err := Discover(context.Background(), nil)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindEngineUnavailable, kind)
}

func TestDiscoverSkipsMissingCandidates(t *testing.T) {
	// "true" ignores its arguments and exits 0, so it passes the probe.
	withCandidates(t, "definitely-not-a-real-engine", "true")

	path, err := Discover(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "true", path)
}

func TestDiscoverPrefersEarlierCandidate(t *testing.T) {
	// Both candidates probe successfully; preference order decides.
	withCandidates(t, "true", "echo")

	path, err := Discover(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "true", path)
}

func TestModuleInstalled(t *testing.T) {
	// echo prints its arguments, which include the module name, so the
	// availability check sees the expected marker in the output.
	assert.True(t, ModuleInstalled(context.Background(), "echo"))

	// true produces no output, so the module looks absent.
	assert.False(t, ModuleInstalled(context.Background(), "true"))
}

func TestEnsureModuleAlreadyInstalled(t *testing.T) {
	require.NoError(t, EnsureModule(context.Background(), "echo", nil))
}

func TestEnsureModuleInstallFails(t *testing.T) {
	err := EnsureModule(context.Background(), "false", nil)
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindEngineUnavailable, kind)
}
