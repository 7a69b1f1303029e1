package iniconf

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultWrapBoundary is the Configuration-level default folding
// boundary applied to newly created values (spec.md §3: "80").
const DefaultWrapBoundary = 80

// Value is the node holding the raw lines, attached comment, and typed
// accessors for one (key, occurrence) pair (spec.md §3 "Value Object").
type Value struct {
	keyLength int
	firstLine int
	wrap      int
	raw       *rawLines
	comment   *Comment

	// dirty marks a value created or mutated programmatically, so the
	// serializer must recompute wrap points instead of emitting the raw
	// lines verbatim (SPEC_FULL.md §C.7).
	dirty bool
}

// NewValue constructs a Value programmatically (not via parsing) holding a
// single logical string. Its raw-line array is recomputed by the
// serializer on save since it starts out dirty.
func NewValue(key, s string) *Value {
	v := &Value{
		keyLength: len(key),
		wrap:      DefaultWrapBoundary,
		raw:       newRawLines(),
		dirty:     true,
	}
	v.raw.append(key + " = " + s)
	return v
}

// KeyLength is the length of the key that introduced the value on its
// first raw line.
func (v *Value) KeyLength() int { return v.keyLength }

// FirstLine is the 1-based source line number the value's key was found
// on.
func (v *Value) FirstLine() int { return v.firstLine }

// WrapBoundary is the value's folding boundary (>= 2).
func (v *Value) WrapBoundary() int { return v.wrap }

// SetWrapBoundary changes the folding boundary and marks the value dirty
// so the serializer recomputes its wrap points.
func (v *Value) SetWrapBoundary(n int) error {
	if n < 2 {
		return errors.Wrap(ErrInvalidArgument, "wrap boundary must be >= 2")
	}
	v.wrap = n
	v.dirty = true
	return nil
}

// Comment returns the value's attached preceding comment (possibly
// empty, never nil).
func (v *Value) Comment() *Comment {
	if v.comment == nil {
		v.comment = NewComment()
	}
	return v.comment
}

// SetComment replaces the value's attached comment.
func (v *Value) SetComment(c *Comment) { v.comment = c }

// RawLineCount reports how many physical source lines produced this
// value.
func (v *Value) RawLineCount() int { return v.raw.len() }

// Clone deep-copies the value, including its raw-line array and comment.
func (v *Value) Clone() *Value {
	return &Value{
		keyLength: v.keyLength,
		firstLine: v.firstLine,
		wrap:      v.wrap,
		raw:       v.raw.clone(),
		comment:   v.comment.Copy(),
		dirty:     v.dirty,
	}
}

// String reconstructs the value's canonical string: the trimmed
// right-hand side of the first raw line (after its "key=" prefix),
// concatenated with subsequent continuation lines (trimmed), joined by
// single spaces (spec.md §3, §4.5).
func (v *Value) String() string {
	if v.raw.len() == 0 {
		return ""
	}
	first := v.raw.lines[0]
	rhs := first
	if v.keyLength > 0 && v.keyLength <= len(first) {
		rhs = first[v.keyLength:]
	}
	rhs = strings.TrimLeft(rhs, " \t")
	rhs = strings.TrimPrefix(rhs, "=")
	rhs = strings.TrimSpace(rhs)

	parts := make([]string, 0, v.raw.len())
	if rhs != "" || v.raw.len() == 1 {
		parts = append(parts, rhs)
	}
	for _, line := range v.raw.lines[1:] {
		parts = append(parts, strings.TrimSpace(line))
	}
	return strings.Join(parts, " ")
}

// ConstString returns the canonical string without allocating a fresh
// copy beyond what String already returns (Go strings are always
// immutable views, so this is the spec's "non-owning view" variant in
// all but name).
func (v *Value) ConstString() string { return v.String() }

// --- typed accessors (spec.md §4.5) -----------------------------------

// Int32 parses the canonical string as a 32-bit signed integer. If strict
// is true, any trailing non-digit character after the last digit is a
// conversion failure; otherwise trailing junk is ignored. On any failure
// def is returned and err reports the problem out-of-band.
func (v *Value) Int32(def int32, strict bool) (int32, error) {
	n, err := parseInt(v.String(), 32, strict)
	if err != nil {
		return def, err
	}
	return int32(n), nil
}

// Uint32 is the unsigned analogue of Int32.
func (v *Value) Uint32(def uint32, strict bool) (uint32, error) {
	n, err := parseUint(v.String(), 32, strict)
	if err != nil {
		return def, err
	}
	return uint32(n), nil
}

// Int64 parses the canonical string as a 64-bit signed integer.
func (v *Value) Int64(def int64, strict bool) (int64, error) {
	n, err := parseInt(v.String(), 64, strict)
	if err != nil {
		return def, err
	}
	return n, nil
}

// Uint64 is the unsigned analogue of Int64.
func (v *Value) Uint64(def uint64, strict bool) (uint64, error) {
	n, err := parseUint(v.String(), 64, strict)
	if err != nil {
		return def, err
	}
	return n, nil
}

// Long and ULong are the generic long/unsigned-long accessors spec.md
// §4.5 names alongside the fixed-width ones; on this platform they're
// simply aliases for the 64-bit accessors.
func (v *Value) Long(def int64, strict bool) (int64, error)   { return v.Int64(def, strict) }
func (v *Value) ULong(def uint64, strict bool) (uint64, error) { return v.Uint64(def, strict) }

// Float64 parses the canonical string as a floating point number.
func (v *Value) Float64(def float64, strict bool) (float64, error) {
	s := v.String()
	trimmed, rest := splitNumericPrefix(s)
	if trimmed == "" {
		return def, errors.Wrapf(ErrInvalidArgument, "cannot convert %q to float", s)
	}
	if strict && rest != "" {
		return def, errors.Wrapf(ErrInvalidArgument, "trailing characters %q after float", rest)
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return def, errors.Wrapf(err, "cannot convert %q to float", s)
	}
	return f, nil
}

// Bool parses the canonical string case-insensitively as one of
// true/false/yes/no/1/0.
func (v *Value) Bool(def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v.String())) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	}
	return def, errors.Wrapf(ErrInvalidArgument, "cannot convert %q to bool", v.String())
}

// Binary decodes a single-quoted, even-length hex string, e.g. 'deadbeef'.
func (v *Value) Binary() ([]byte, error) {
	s := strings.TrimSpace(v.String())
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return nil, errors.Wrapf(ErrInvalidArgument, "binary value %q is not single-quoted", s)
	}
	hexStr := s[1 : len(s)-1]
	if len(hexStr)%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "binary value %q has odd hex length", s)
	}
	out := make([]byte, len(hexStr)/2)
	for i := range out {
		hi := hexDigit(hexStr[2*i])
		lo := hexDigit(hexStr[2*i+1])
		if hi < 0 || lo < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "binary value %q has non-hex digit", s)
		}
		out[i] = byte(hi<<4 | lo)
	}
	return out, nil
}

// Array splits the canonical string on any rune in seps (default ",").
// Empty tokens are dropped and surrounding space around separators is
// trimmed.
func (v *Value) Array(seps string) []string {
	return splitArray(v.String(), seps, true)
}

// ArrayWithEmpty is Array's variant that retains empty tokens.
func (v *Value) ArrayWithEmpty(seps string) []string {
	return splitArray(v.String(), seps, false)
}

// Int64Array converts Array's tokens to int64. If any token fails to
// parse, it returns nil and an error naming that token.
func (v *Value) Int64Array(seps string) ([]int64, error) {
	toks := v.Array(seps)
	out := make([]int64, 0, len(toks))
	for _, t := range toks {
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot convert array element %q to int64", t)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitArray(s, seps string, dropEmpty bool) []string {
	if seps == "" {
		seps = ","
	}
	var raw []string
	if dropEmpty {
		raw = strings.FieldsFunc(s, func(r rune) bool { return strings.ContainsRune(seps, r) })
	} else {
		raw = splitAnyKeepEmpty(s, seps)
	}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if dropEmpty && t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// splitAnyKeepEmpty splits s on every rune in seps, unlike strings.Split
// which only takes a single multi-byte separator string, preserving empty
// tokens between consecutive separators.
func splitAnyKeepEmpty(s, seps string) []string {
	out := []string{}
	start := 0
	for i, r := range s {
		if strings.ContainsRune(seps, r) {
			out = append(out, s[start:i])
			start = i + len(string(r))
		}
	}
	out = append(out, s[start:])
	return out
}

func hexDigit(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

func splitNumericPrefix(s string) (numeric, rest string) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	seenDigit := false
	seenDot := false
	seenExp := false
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				i++
			}
		default:
			return s[:i], s[i:]
		}
		i++
	}
	return s, ""
}

// splitIntegerPrefix splits s (trimmed) into an optional sign plus the
// digits that follow it, and whatever comes after the last digit.
func splitIntegerPrefix(s string) (numeric, rest string) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func parseInt(s string, bits int, strict bool) (int64, error) {
	numeric, rest := splitIntegerPrefix(s)
	if numeric == "" {
		return 0, errors.Wrapf(ErrInvalidArgument, "cannot convert %q to integer", s)
	}
	if strict && rest != "" {
		return 0, errors.Wrapf(ErrInvalidArgument, "trailing characters %q after integer", rest)
	}
	n, err := strconv.ParseInt(numeric, 10, bits)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errors.Wrapf(ErrInvalidArgument, "integer %q out of range", s)
		}
		return 0, errors.Wrapf(err, "cannot convert %q to integer", s)
	}
	return n, nil
}

func parseUint(s string, bits int, strict bool) (uint64, error) {
	numeric, rest := splitIntegerPrefix(s)
	if numeric == "" {
		return 0, errors.Wrapf(ErrInvalidArgument, "cannot convert %q to unsigned integer", s)
	}
	if strict && rest != "" {
		return 0, errors.Wrapf(ErrInvalidArgument, "trailing characters %q after integer", rest)
	}
	n, err := strconv.ParseUint(numeric, 10, bits)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errors.Wrapf(ErrInvalidArgument, "unsigned integer %q out of range", s)
		}
		return 0, errors.Wrapf(err, "cannot convert %q to unsigned integer", s)
	}
	return n, nil
}
