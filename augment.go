package iniconf

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"golang.org/x/xerrors"
)

// AugmentOptions configures a directory augmentation run (spec.md §4.4).
type AugmentOptions struct {
	Dir             string
	Include         *regexp.Regexp // file names must match; nil matches everything
	Exclude         *regexp.Regexp // file names must NOT match this, if set
	AllowedSections []*regexp.Regexp
	Access          AccessCheck
	Tolerance       ErrorTolerance
	Collision       CollisionFlags
}

// AugmentResult reports the outcome of Augment: the merged configuration,
// plus the two accumulated lists spec.md §4.4 names.
type AugmentResult struct {
	Config         *Configuration
	ProcessedFiles []string
	FileErrors     []error
}

// Augment merges base with every file in opts.Dir that matches the
// inclusion/exclusion filters, filtering each file's sections by the
// allowed-section patterns before merging (spec.md §4.4 "Directory
// augmentation"). The result is always non-nil, even for an empty or
// unreadable directory; per-file errors are non-fatal and collected into
// the result instead.
func Augment(base *Configuration, opts AugmentOptions) *AugmentResult {
	result := &AugmentResult{Config: base.Clone()}

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		result.FileErrors = append(result.FileErrors, xerrors.Errorf("iniconf: read dir %s: %w", opts.Dir, err))
		return result
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	// spec.md §9 Open Question: sort the matched file list exactly once,
	// not twice as the original test harness unintentionally did.
	sort.Strings(names)

	for _, name := range names {
		if opts.Include != nil && !opts.Include.MatchString(name) {
			continue
		}
		if opts.Exclude != nil && opts.Exclude.MatchString(name) {
			continue
		}

		full := filepath.Join(opts.Dir, name)
		if err := opts.Access.Check(full); err != nil {
			result.FileErrors = append(result.FileErrors, xerrors.Errorf("iniconf: access check %s: %w", full, err))
			continue
		}

		snippet, err := ParseFile(full, ParseOptions{Tolerance: opts.Tolerance, Collision: opts.Collision})
		if err != nil {
			result.FileErrors = append(result.FileErrors, xerrors.Errorf("iniconf: parse %s: %w", full, err))
			continue
		}

		filterSections(snippet, opts.AllowedSections)

		merged := Merge(result.Config, snippet, opts.Collision.MS(), opts.Collision.MV2S())
		merged.Errors = append(append([]*ParseError(nil), result.Config.Errors...), merged.Errors...)
		for _, pe := range snippet.Errors {
			if pe.Kind == ErrDuplicateSection || pe.Kind == ErrDuplicateKeyMerge || pe.Kind == ErrDuplicateKeySection {
				merged.Errors = append(merged.Errors, pe)
			}
		}
		result.Config = merged
		result.ProcessedFiles = append(result.ProcessedFiles, name)
	}

	return result
}

// filterSections drops any section from cfg whose name matches none of
// allowed (an empty allowed list keeps everything — the augmentation
// caller who wants no snippets at all should simply not invoke Augment).
func filterSections(cfg *Configuration, allowed []*regexp.Regexp) {
	if len(allowed) == 0 {
		return
	}
	for _, name := range cfg.Sections() {
		keep := false
		for _, re := range allowed {
			if re.MatchString(name) {
				keep = true
				break
			}
		}
		if !keep {
			cfg.DeleteSection(name)
		}
	}
}
