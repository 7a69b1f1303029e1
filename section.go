package iniconf

// IniSectionKey is the synthetic attribute name that carries a section
// header's own comment and raw header line (spec.md §3 "A distinguished
// synthetic entry named INI_SECTION").
const IniSectionKey = "INI_SECTION"

// IniSpecialKey is the synthetic attribute used to carry a trailing,
// key-less comment discovered at EOF within a section (spec.md §4.2 "End
// of file handling").
const IniSpecialKey = "INI_SPECIAL_KEY"

// Section is an ordered multi-map from attribute name to the list of
// Value occurrences recorded under it (spec.md §3 "Section").
type Section struct {
	name string
	attr *orderedMultiMap[string, *Value]
}

// NewSection creates an empty, named section.
func NewSection(name string) *Section {
	return &Section{name: name, attr: newOrderedMultiMap[string, *Value]()}
}

// Name returns the section's name.
func (s *Section) Name() string { return s.name }

// HeaderComment returns the comment attached to the section header
// (spec.md §3's INI_SECTION synthetic entry), or an empty Comment if
// none was recorded.
func (s *Section) HeaderComment() *Comment {
	if vs, ok := s.attr.Get(IniSectionKey); ok {
		return vs.Comment()
	}
	return NewComment()
}

// SetHeaderComment attaches c as the section header's comment.
func (s *Section) SetHeaderComment(c *Comment) {
	v, ok := s.attr.Get(IniSectionKey)
	if !ok {
		v = &Value{wrap: DefaultWrapBoundary, raw: newRawLines()}
		v.raw.append("[" + s.name + "]")
		s.attr.Append(IniSectionKey, v)
	}
	v.SetComment(c)
}

// Attributes returns the attribute names in first-occurrence insertion
// order, excluding the synthetic INI_SECTION/INI_SPECIAL_KEY entries.
func (s *Section) Attributes() []string {
	keys := s.attr.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == IniSectionKey || k == IniSpecialKey {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Get returns the first value recorded for key.
func (s *Section) Get(key string) (*Value, bool) { return s.attr.Get(key) }

// GetN returns the n-th (0-based) value recorded for key.
func (s *Section) GetN(key string, n int) (*Value, bool) { return s.attr.GetN(key, n) }

// All returns every value recorded for key, in insertion order.
func (s *Section) All(key string) []*Value { return s.attr.All(key) }

// Count reports how many values are recorded for key.
func (s *Section) Count(key string) int { return s.attr.Count(key) }

// Append adds value as a new occurrence of key (used by the Allow/Detect
// MV1S policies and by programmatic construction).
func (s *Section) Append(key string, value *Value) { s.attr.Append(key, value) }

// SetN replaces the n-th occurrence of key (used to implement overwrite
// semantics and the "delete nth" / "replace nth" scenarios of spec.md §8).
func (s *Section) SetN(key string, n int, value *Value) bool { return s.attr.SetN(key, n, value) }

// DeleteN removes the n-th occurrence of key.
func (s *Section) DeleteN(key string, n int) bool { return s.attr.DeleteN(key, n) }

// DeleteAll removes every occurrence of key.
func (s *Section) DeleteAll(key string) { s.attr.DeleteAll(key) }

// Insert adds value at a position relative to an existing occurrence of
// refKey (spec.md §8 property 3).
func (s *Section) Insert(pos InsertPosition, refKey string, refN int, key string, value *Value) error {
	return s.attr.Insert(pos, refKey, refN, key, value)
}

// Clear empties the section's attributes (used by MS=Overwrite).
func (s *Section) Clear() {
	s.attr = newOrderedMultiMap[string, *Value]()
}

// Clone deep-copies the section, including every value and its raw
// lines/comment.
func (s *Section) Clone() *Section {
	c := NewSection(s.name)
	for _, e := range s.attr.Items() {
		c.attr.Append(e.key, e.value.Clone())
	}
	return c
}

// String renders "[name]" for diagnostics (SPEC_FULL.md §C.8).
func (s *Section) String() string { return "[" + s.name + "]" }
