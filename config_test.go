package iniconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationEnsureSectionIsIdempotent(t *testing.T) {
	cfg := NewConfiguration()
	a := cfg.EnsureSection("common")
	b := cfg.EnsureSection("common")
	assert.Same(t, a, b)
}

func TestConfigurationFindGetFirstValue(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\nk = 2\nk = 3\n", mustAllowDuplicates(t))

	v, ok := cfg.Find("common", "k", GetFirstValue)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
}

func TestConfigurationFindGetNextValueAdvances(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\nk = 2\nk = 3\n", mustAllowDuplicates(t))

	v, ok := cfg.Find("common", "k", GetFirstValue)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())

	v, ok = cfg.Find("common", "k", GetNextValue)
	require.True(t, ok)
	assert.Equal(t, "2", v.String())

	v, ok = cfg.Find("common", "k", GetNextValue)
	require.True(t, ok)
	assert.Equal(t, "3", v.String())

	_, ok = cfg.Find("common", "k", GetNextValue)
	assert.False(t, ok)
}

func TestConfigurationFindGetLastValue(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\nk = 2\nk = 3\n", mustAllowDuplicates(t))

	v, ok := cfg.Find("common", "k", GetLastValue)
	require.True(t, ok)
	assert.Equal(t, "3", v.String())
}

func TestConfigurationResetCursorRestartsGetNextValue(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\nk = 2\n", mustAllowDuplicates(t))

	_, _ = cfg.Find("common", "k", GetFirstValue)
	_, _ = cfg.Find("common", "k", GetNextValue)
	cfg.ResetCursor()

	v, ok := cfg.Find("common", "k", GetNextValue)
	require.True(t, ok)
	assert.Equal(t, "1", v.String())
}

func TestConfigurationCloneIsIndependent(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\n", DefaultParseOptions())
	clone := cfg.Clone()
	clone.EnsureSection("extra")

	_, ok := cfg.Section("extra")
	assert.False(t, ok)
	_, ok = clone.Section("extra")
	assert.True(t, ok)
}

func TestConfigurationRewrapMarksValuesDirty(t *testing.T) {
	cfg := mustParse(t, "[common]\nk = 1\n", DefaultParseOptions())
	sec, _ := cfg.Section("common")
	v, _ := sec.Get("k")
	assert.False(t, v.dirty)

	cfg.Rewrap(40)
	assert.True(t, v.dirty)
	assert.Equal(t, 40, v.WrapBoundary())
}

func mustAllowDuplicates(t *testing.T) ParseOptions {
	t.Helper()
	flags, err := NewCollisionFlags(MV1SAllow, MV2SOverwrite, MSMerge)
	require.NoError(t, err)
	return ParseOptions{Tolerance: ErrorToleranceStopOnNone, Collision: flags}
}
