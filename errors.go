package iniconf

import (
	"fmt"

	"github.com/pkg/errors"
)

// API errors returned by fallible operations (spec.md §7.1).
var (
	ErrInvalidArgument = errors.New("iniconf: invalid argument")
	ErrNotSupported    = errors.New("iniconf: not supported")
	ErrNotFound        = errors.New("iniconf: not found")
)

// ParseErrorKind enumerates the parse-diagnostic kinds of spec.md §3,
// numbered 1..14 to match the original ERR_PARSE enumeration so that
// externally persisted diagnostics stay meaningful.
type ParseErrorKind int

const (
	ErrLongLine ParseErrorKind = iota + 1
	ErrNoCloseBracket
	ErrNoSectionName
	ErrSectionNameTooLong
	ErrNoEqualSign
	ErrNoKey
	ErrLongKey
	ErrRead
	ErrUnexpectedSpace
	ErrDuplicateKeySection
	ErrDuplicateKeyMerge
	ErrDuplicateSection
	ErrInvalidCharacters
	ErrUnexpectedTab
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrLongLine:
		return "line too long"
	case ErrNoCloseBracket:
		return "no closing bracket in section header"
	case ErrNoSectionName:
		return "empty section name"
	case ErrSectionNameTooLong:
		return "section name too long"
	case ErrNoEqualSign:
		return "missing equal sign"
	case ErrNoKey:
		return "missing key"
	case ErrLongKey:
		return "key too long"
	case ErrRead:
		return "read failure"
	case ErrUnexpectedSpace:
		return "unexpected leading space"
	case ErrDuplicateKeySection:
		return "duplicate key in section"
	case ErrDuplicateKeyMerge:
		return "duplicate key while merging section"
	case ErrDuplicateSection:
		return "duplicate section"
	case ErrInvalidCharacters:
		return "invalid characters"
	case ErrUnexpectedTab:
		return "unexpected leading tab"
	}
	return "unknown parse error"
}

// isWarning reports whether a kind is a warning (never aborts) or a hard
// error (aborts under ErrorToleranceStopOnAny / ErrorToleranceStopOnError).
// Duplicate-key/section diagnostics are warnings: spec.md §4.3/§4.4 route
// collisions through the MV1S/MV2S/MS policy itself (which can reject the
// insertion outright, a separate failure path from the tolerance-gated
// abort this flag controls) — the Detect variants explicitly say
// "processing continues".
func (k ParseErrorKind) isWarning() bool {
	switch k {
	case ErrDuplicateKeySection, ErrDuplicateKeyMerge, ErrDuplicateSection:
		return true
	}
	return false
}

// ParseError pairs a diagnostic kind with the 1-based source line it was
// found on (spec.md §3 "Parse Error").
type ParseError struct {
	Line int
	Kind ParseErrorKind
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
}

// newParseError builds a *ParseError, wrapped with pkg/errors so callers
// retain a stack trace from the point of detection.
func newParseError(line int, kind ParseErrorKind) error {
	return errors.WithStack(&ParseError{Line: line, Kind: kind})
}
