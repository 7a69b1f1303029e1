package iniconf

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnippet(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestAugmentMergesMatchingFilesInSortedOrder(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "20-second.conf", "[common]\nb = 2\n")
	writeSnippet(t, dir, "10-first.conf", "[common]\na = 1\n")
	writeSnippet(t, dir, "ignore.txt", "[common]\nc = 3\n")

	base := NewConfiguration()
	result := Augment(base, AugmentOptions{
		Dir:     dir,
		Include: regexp.MustCompile(`\.conf$`),
	})

	require.Empty(t, result.FileErrors)
	assert.Equal(t, []string{"10-first.conf", "20-second.conf"}, result.ProcessedFiles)

	sec, ok := result.Config.Section("common")
	require.True(t, ok)
	_, ok = sec.Get("a")
	assert.True(t, ok)
	_, ok = sec.Get("b")
	assert.True(t, ok)
	_, ok = sec.Get("c")
	assert.False(t, ok, "non-matching file must not be merged")
}

func TestAugmentExcludeFilter(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "keep.conf", "[common]\na = 1\n")
	writeSnippet(t, dir, "skip.conf", "[common]\nb = 2\n")

	base := NewConfiguration()
	result := Augment(base, AugmentOptions{
		Dir:     dir,
		Include: regexp.MustCompile(`\.conf$`),
		Exclude: regexp.MustCompile(`^skip`),
	})

	assert.Equal(t, []string{"keep.conf"}, result.ProcessedFiles)
}

func TestAugmentFiltersDisallowedSections(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "snip.conf", "[allowed]\na = 1\n[rogue]\nb = 2\n")

	base := NewConfiguration()
	result := Augment(base, AugmentOptions{
		Dir:             dir,
		Include:         regexp.MustCompile(`\.conf$`),
		AllowedSections: []*regexp.Regexp{regexp.MustCompile(`^allowed$`)},
	})

	_, ok := result.Config.Section("allowed")
	assert.True(t, ok)
	_, ok = result.Config.Section("rogue")
	assert.False(t, ok)
}

// TestAugmentPropagatesSnippetDuplicateKeyMergeDiagnostic confirms a
// snippet file whose own parse reopens a section with a colliding key
// (an MV2SError merge-target duplicate) surfaces ErrDuplicateKeyMerge on
// the augmented result, per augment.go's check for that kind.
func TestAugmentPropagatesSnippetDuplicateKeyMergeDiagnostic(t *testing.T) {
	dir := t.TempDir()
	writeSnippet(t, dir, "snip.conf", "[common]\na = 1\n[common]\na = 2\n")

	base := NewConfiguration()

	flags, err := NewCollisionFlags(MV1SOverwrite, MV2SError, MSMerge)
	require.NoError(t, err)

	result := Augment(base, AugmentOptions{
		Dir:       dir,
		Include:   regexp.MustCompile(`\.conf$`),
		Collision: flags,
	})

	found := false
	for _, pe := range result.Config.Errors {
		if pe.Kind == ErrDuplicateKeyMerge {
			found = true
		}
	}
	assert.True(t, found, "a snippet with an internal reopened-section duplicate key must propagate ErrDuplicateKeyMerge")
}

func TestAugmentUnreadableDirectoryIsNonFatal(t *testing.T) {
	base := NewConfiguration()
	result := Augment(base, AugmentOptions{Dir: filepath.Join(t.TempDir(), "missing")})

	require.NotEmpty(t, result.FileErrors)
	assert.NotNil(t, result.Config)
}
