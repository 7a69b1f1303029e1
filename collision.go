package iniconf

import "github.com/pkg/errors"

// MV1S governs collision resolution for duplicate keys within a single
// section (spec.md §4.3). Numeric values match the original
// ini_configobj.h INI_MV1S_* constants exactly (SPEC_FULL.md §C.1).
type MV1S uint32

const (
	MV1SOverwrite MV1S = 0x0000
	MV1SError     MV1S = 0x0001
	MV1SPreserve  MV1S = 0x0002
	MV1SAllow     MV1S = 0x0003
	MV1SDetect    MV1S = 0x0004

	mv1sMask = 0x000F
)

// MV2S governs collision resolution for duplicate keys arriving from two
// different sections of the same name, whether via a reopened section
// during parsing or an explicit merge (spec.md §4.3/§4.4). Values are
// pre-shifted into bits 0x0010-0x00F0 to match INI_MV2S_*.
type MV2S uint32

const (
	MV2SOverwrite MV2S = 0x0000
	MV2SError     MV2S = 0x0010
	MV2SPreserve  MV2S = 0x0020
	MV2SAllow     MV2S = 0x0030
	MV2SDetect    MV2S = 0x0040

	mv2sMask = 0x00F0
)

// MS governs collision resolution between two whole sections of the same
// name (spec.md §4.4). The replace/keep mode (Merge/Error/Overwrite/
// Preserve) occupies bits 0x0100-0x0300; Detect is a separate bit
// (0x0400) orthogonal to the mode, matching the original's actual
// semantics: "log the duplicate and still act" rather than a fifth
// mutually exclusive mode (original_source/ini/ini_configobj.h
// INI_MS_*, exercised combined with Preserve/Overwrite in
// ini_augment_ut_check.c's test_ini_augment_merge_sections).
type MS uint32

const (
	MSMerge     MS = 0x0000
	MSError     MS = 0x0100
	MSOverwrite MS = 0x0200
	MSPreserve  MS = 0x0300

	msModeMask = 0x0300

	// MSDetect is OR-ed onto any of the four modes above to additionally
	// record an ErrDuplicateSection diagnostic without changing which
	// mode resolves the collision (e.g. MSDetect|MSPreserve detects and
	// still preserves the acceptor's section).
	MSDetect MS = 0x0400

	msMask = msModeMask | MSDetect
)

// Mode extracts the replace/keep mode, with any Detect bit masked off.
func (m MS) Mode() MS { return m & msModeMask }

// HasDetect reports whether the Detect bit is set, independent of Mode.
func (m MS) HasDetect() bool { return m&MSDetect != 0 }

// CollisionFlags packs the MV1S/MV2S/MS triple into a single 32-bit word,
// as spec.md §4.4/§6 requires: "the three mode fields... must occupy
// disjoint bit-fields so that a single 32-bit word encodes all three."
type CollisionFlags uint32

// NewCollisionFlags composes a CollisionFlags word, rejecting combinations
// that don't resolve to exactly one value per field.
func NewCollisionFlags(mv1s MV1S, mv2s MV2S, ms MS) (CollisionFlags, error) {
	f := CollisionFlags(uint32(mv1s) | uint32(mv2s) | uint32(ms))
	if err := f.Validate(); err != nil {
		return 0, err
	}
	return f, nil
}

// DefaultCollisionFlags is MV1S=Overwrite / MV2S=Overwrite / MS=Merge,
// the original library's own default.
var DefaultCollisionFlags = CollisionFlags(uint32(MV1SOverwrite) | uint32(MV2SOverwrite) | uint32(MSMerge))

// MV1S extracts the same-section duplicate-key policy.
func (f CollisionFlags) MV1S() MV1S { return MV1S(uint32(f) & mv1sMask) }

// MV2S extracts the cross-section duplicate-key policy.
func (f CollisionFlags) MV2S() MV2S { return MV2S(uint32(f) & mv2sMask) }

// MS extracts the duplicate-section policy.
func (f CollisionFlags) MS() MS { return MS(uint32(f) & msMask) }

// Validate rejects unknown bit patterns at the API boundary, as spec.md
// §4.4/§6 requires.
func (f CollisionFlags) Validate() error {
	switch f.MV1S() {
	case MV1SOverwrite, MV1SError, MV1SPreserve, MV1SAllow, MV1SDetect:
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown MV1S bits %#x", uint32(f)&mv1sMask)
	}
	switch f.MV2S() {
	case MV2SOverwrite, MV2SError, MV2SPreserve, MV2SAllow, MV2SDetect:
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown MV2S bits %#x", uint32(f)&mv2sMask)
	}
	switch f.MS().Mode() {
	case MSMerge, MSError, MSOverwrite, MSPreserve:
	default:
		return errors.Wrapf(ErrInvalidArgument, "unknown MS bits %#x", uint32(f)&msModeMask)
	}
	if uint32(f)&^(mv1sMask|mv2sMask|msMask) != 0 {
		return errors.Wrapf(ErrInvalidArgument, "unknown collision flag bits %#x", f)
	}
	return nil
}

// ErrorTolerance controls whether parsing aborts on a diagnostic,
// independent of whether the diagnostic is recorded (spec.md §7.2,
// SPEC_FULL.md §C.3). Matches the original ERR_LEVEL enum order.
type ErrorTolerance int

const (
	ErrorToleranceStopOnAny ErrorTolerance = iota
	ErrorToleranceStopOnNone
	ErrorToleranceStopOnError
)

// ParseFlags are additional parsing-mode bits (SPEC_FULL.md §C.4),
// matching the original INI_PARSE_* constants.
type ParseFlags uint32

const (
	ParseNoWrap       ParseFlags = 1 << iota // never reflow on save; dirty values are emitted as one unfolded line
	ParseNoSpace                             // leading space before a key is an error, not a warning
	ParseNoTab                               // leading tab before a key is an error, not a warning
	ParseIgnoreNonKVP                        // a non-blank, non-comment, non-section line with no '=' is silently skipped instead of recording ErrNoEqualSign
)

// ParseOptions bundles everything spec.md §4.2/§4.4 says governs a single
// parse: tolerance, collision policy, mode flags, and the line-length cap.
type ParseOptions struct {
	Tolerance     ErrorTolerance
	Collision     CollisionFlags
	Flags         ParseFlags
	MaxLineLength int // 0 means DefaultMaxLineLength
	WrapBoundary  int // 0 means DefaultWrapBoundary
}

// DefaultParseOptions mirrors the original library's defaults: best
// effort tolerance, MV1S/MV2S=Overwrite, MS=Merge.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Tolerance: ErrorToleranceStopOnNone,
		Collision: DefaultCollisionFlags,
	}
}

func (o ParseOptions) maxLineLength() int {
	if o.MaxLineLength > 0 {
		return o.MaxLineLength
	}
	return DefaultMaxLineLength
}

func (o ParseOptions) wrapBoundary() int {
	if o.WrapBoundary > 0 {
		return o.WrapBoundary
	}
	return DefaultWrapBoundary
}
