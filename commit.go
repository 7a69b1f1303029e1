package iniconf

// commitValueInto inserts value under key into section according to
// policy (MV1S within a single section's own duplicates, or the MV1S
// projection of an MV2S policy when committing into a reopened/merged
// section — see mv1sFromMV2S), recording diagnostics through report
// without deciding on its own whether to abort (spec.md §4.3). dupKind
// is the ParseErrorKind to report on a collision: ErrDuplicateKeySection
// for an ordinary same-section duplicate, ErrDuplicateKeyMerge when
// section is a merge target (a reopened section or an explicit Merge),
// per spec.md §4.3 "the analogous MV2S mode applies".
func commitValueInto(section *Section, key string, value *Value, policy MV1S, dupKind ParseErrorKind, report func(ParseErrorKind)) {
	n := section.Count(key)
	if n == 0 {
		section.Append(key, value)
		return
	}
	switch policy {
	case MV1SOverwrite:
		section.SetN(key, n-1, value)
	case MV1SError:
		report(dupKind)
	case MV1SPreserve:
		// new value discarded
	case MV1SAllow:
		section.Append(key, value)
	case MV1SDetect:
		section.Append(key, value)
		report(dupKind)
	default:
		section.Append(key, value)
	}
}

// mv1sFromMV2S projects an MV2S policy onto the single-section MV1S
// decision table used when committing a value into a section that is
// the live merge target of a reopened/merging section (spec.md §4.3:
// "When committing into a merge target... the analogous MV2S mode
// applies").
func mv1sFromMV2S(p MV2S) MV1S {
	switch p {
	case MV2SOverwrite:
		return MV1SOverwrite
	case MV2SError:
		return MV1SError
	case MV2SPreserve:
		return MV1SPreserve
	case MV2SAllow:
		return MV1SAllow
	case MV2SDetect:
		return MV1SDetect
	}
	return MV1SOverwrite
}

// mergeSectionInto merges donor's attributes into acceptor under the
// MV2S policy, appending donor entries that don't collide in donor order
// (spec.md §4.4, §5 "donor entries... are appended... in donor order").
// The acceptor's own synthetic INI_SECTION header entry is left alone;
// the donor's is skipped (a reopened/merged section keeps the first
// header comment it was ever given).
func mergeSectionInto(acceptor, donor *Section, policy MV2S, report func(ParseErrorKind)) {
	mv1s := mv1sFromMV2S(policy)
	for _, e := range donor.attr.Items() {
		if e.key == IniSectionKey {
			continue
		}
		commitValueInto(acceptor, e.key, e.value.Clone(), mv1s, ErrDuplicateKeyMerge, report)
	}
}
