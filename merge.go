package iniconf

// Merge composes donor into a deep copy of acceptor and returns the
// result; neither input is mutated (spec.md §4.4 "Merge Engine", §5
// "neither input is mutated"). For each donor section, a same-named
// acceptor section is resolved under ms/mv2s; otherwise the donor section
// is deep-copied wholesale. After the walk the donor's trailing comment
// is appended to the result's, and if the two configurations differ in
// wrap boundary the result is re-walked to realign it.
func Merge(acceptor, donor *Configuration, ms MS, mv2s MV2S) *Configuration {
	result := acceptor.Clone()

	for _, e := range donor.sections.Items() {
		existing, ok := result.Section(e.key)
		if !ok {
			result.PutSection(e.value.Clone())
			continue
		}
		if ms.HasDetect() {
			result.recordError(0, ErrDuplicateSection)
		}
		switch ms.Mode() {
		case MSMerge:
			mergeSectionInto(existing, e.value, mv2s, func(kind ParseErrorKind) {
				result.recordError(0, kind)
			})
		case MSError:
			if !ms.HasDetect() {
				result.recordError(0, ErrDuplicateSection)
			}
		case MSOverwrite:
			existing.Clear()
			mergeSectionInto(existing, e.value, MV2SOverwrite, func(ParseErrorKind) {})
		case MSPreserve:
			// acceptor's section wins; donor's is dropped
		}
	}

	for _, line := range donor.TrailingComment.Lines() {
		result.TrailingComment.Append(line)
	}

	if donor.WrapBoundary != result.WrapBoundary {
		result.Rewrap(result.WrapBoundary)
	}

	return result
}
