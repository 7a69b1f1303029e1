package iniconf

// DefaultSectionName is the synthetic section that receives key-value
// pairs appearing before any explicit section header (spec.md §3). Kept
// identical to the teacher's inih.go DEFAULT_SECTION constant and the
// original's INI_DEFAULT_SECTION.
const DefaultSectionName = "default"

// GetMode selects how repeated lookups of the same (section, key) resolve
// (SPEC_FULL.md §C.5, original `enum INI_GET`).
type GetMode int

const (
	GetFirstValue GetMode = iota
	GetNextValue
	GetLastValue
)

// cursor is the Configuration's resumable-lookup state (spec.md §3
// "iterator cursor").
type cursor struct {
	section string
	key     string
	n       int // next occurrence index to try under GetNextValue
}

// Configuration is an ordered multi-map of section name to Section, plus
// the ambient state spec.md §3 attaches to the whole document: a default
// wrap boundary, a trailing comment, a resumable iterator cursor, and an
// append-only parse-error list.
type Configuration struct {
	sections *orderedMultiMap[string, *Section]

	WrapBoundary    int
	TrailingComment *Comment
	Errors          []*ParseError

	// NoWrap, when set, makes Serialize emit every dirty value as a single
	// unfolded line regardless of its wrap boundary; untouched parsed
	// values are still emitted as their raw lines (supplement C.4
	// INI_PARSE_NOWRAP: "never reflow on save").
	NoWrap bool

	cur cursor
}

// NewConfiguration builds an empty configuration with the default wrap
// boundary.
func NewConfiguration() *Configuration {
	return &Configuration{
		sections:        newOrderedMultiMap[string, *Section](),
		WrapBoundary:    DefaultWrapBoundary,
		TrailingComment: NewComment(),
	}
}

// Sections returns section names in first-occurrence insertion order.
func (c *Configuration) Sections() []string { return c.sections.Keys() }

// Section returns the first section named name.
func (c *Configuration) Section(name string) (*Section, bool) { return c.sections.Get(name) }

// EnsureSection returns the section named name, creating an empty one
// (appended at the end) if it doesn't already exist.
func (c *Configuration) EnsureSection(name string) *Section {
	if s, ok := c.sections.Get(name); ok {
		return s
	}
	s := NewSection(name)
	c.sections.Append(name, s)
	return s
}

// PutSection appends s under its own name, regardless of existing
// sections with that name (used by the parser committing a just-closed
// section and by merge; collision policy is applied by the caller before
// calling this).
func (c *Configuration) PutSection(s *Section) { c.sections.Append(s.Name(), s) }

// DeleteSection removes every section named name.
func (c *Configuration) DeleteSection(name string) { c.sections.DeleteAll(name) }

// recordError appends a parse diagnostic. All diagnostics are always
// recorded (spec.md §7.2: "Error-tolerance controls abort, not whether
// the diagnostic is recorded").
func (c *Configuration) recordError(line int, kind ParseErrorKind) {
	c.Errors = append(c.Errors, &ParseError{Line: line, Kind: kind})
}

// Find resolves a (section, key) lookup under mode, updating the
// iterator cursor (spec.md §3 "current iterator cursor", SPEC_FULL.md
// §C.5). GetNextValue only advances if the previous call targeted the
// same section and key; otherwise it behaves like GetFirstValue.
func (c *Configuration) Find(section, key string, mode GetMode) (*Value, bool) {
	sec, ok := c.sections.Get(section)
	if !ok {
		return nil, false
	}
	switch mode {
	case GetFirstValue:
		c.cur = cursor{section: section, key: key, n: 1}
		return sec.GetN(key, 0)
	case GetLastValue:
		n := sec.Count(key)
		if n == 0 {
			return nil, false
		}
		c.cur = cursor{section: section, key: key, n: n}
		return sec.GetN(key, n-1)
	case GetNextValue:
		if c.cur.section != section || c.cur.key != key {
			c.cur = cursor{section: section, key: key, n: 1}
			return sec.GetN(key, 0)
		}
		v, ok := sec.GetN(key, c.cur.n)
		if ok {
			c.cur.n++
		}
		return v, ok
	}
	return nil, false
}

// FindNext is Find under GetNextValue.
func (c *Configuration) FindNext(section, key string) (*Value, bool) {
	return c.Find(section, key, GetNextValue)
}

// FindLast is Find under GetLastValue.
func (c *Configuration) FindLast(section, key string) (*Value, bool) {
	return c.Find(section, key, GetLastValue)
}

// ResetCursor clears the iterator cursor, forcing the next GetNextValue
// call to behave like GetFirstValue.
func (c *Configuration) ResetCursor() { c.cur = cursor{} }

// Clone deep-copies the whole configuration: every section, value, raw
// line, and comment, plus the trailing comment. The iterator cursor and
// error list are not carried over, matching spec.md §8 property 5
// ("destroying one copy does not affect the other") — a clone starts as
// a fresh, unread document.
func (c *Configuration) Clone() *Configuration {
	clone := NewConfiguration()
	clone.WrapBoundary = c.WrapBoundary
	clone.NoWrap = c.NoWrap
	clone.TrailingComment = c.TrailingComment.Copy()
	for _, e := range c.sections.Items() {
		clone.sections.Append(e.key, e.value.Clone())
	}
	return clone
}

// Rewrap re-walks every value and updates its wrap boundary to n,
// marking touched values dirty so the serializer recomputes their fold
// points (spec.md §4.4: "If the donor and acceptor differ in folding
// boundary, the acceptor re-walks its values to realign wrap boundaries").
func (c *Configuration) Rewrap(n int) {
	c.WrapBoundary = n
	for _, se := range c.sections.Items() {
		for _, ve := range se.value.attr.Items() {
			if ve.value.wrap != n {
				ve.value.wrap = n
				ve.value.dirty = true
			}
		}
	}
}
