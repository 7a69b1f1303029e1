package iniconf

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Serialize walks cfg in insertion order and writes wrapped,
// comment-annotated INI text to w (spec.md §4.6). Output is always UTF-8
// without a BOM; a caller who wants the original BOM/encoding reproduced
// must re-transcode on write using the Encoding recorded at load time.
func Serialize(cfg *Configuration, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, name := range cfg.Sections() {
		sec, _ := cfg.Section(name)
		if err := serializeSection(bw, sec, cfg.NoWrap); err != nil {
			return errors.Wrapf(err, "iniconf: serialize section %q", name)
		}
	}

	for _, line := range cfg.TrailingComment.Lines() {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.Wrap(err, "iniconf: write trailing comment")
		}
	}

	return errors.Wrap(bw.Flush(), "iniconf: flush output")
}

func serializeSection(bw *bufio.Writer, sec *Section, noWrap bool) error {
	if hv, ok := sec.Get(IniSectionKey); ok {
		if err := writeComment(bw, hv.Comment()); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("[" + sec.Name() + "]\n"); err != nil {
		return err
	}

	for _, e := range sec.attr.Items() {
		if e.key == IniSectionKey || e.key == IniSpecialKey {
			continue
		}
		if err := writeComment(bw, e.value.Comment()); err != nil {
			return err
		}
		if err := writeValue(bw, e.key, e.value, noWrap); err != nil {
			return err
		}
	}

	if sv, ok := sec.Get(IniSpecialKey); ok {
		if err := writeComment(bw, sv.Comment()); err != nil {
			return err
		}
	}
	return nil
}

func writeComment(bw *bufio.Writer, c *Comment) error {
	for _, line := range c.Lines() {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// writeValue emits a value's raw lines. An untouched, parsed value is
// emitted verbatim for round-trip fidelity (spec.md §8 property 1); a
// dirty (programmatically created or rewrapped) value has its wrap
// points recomputed fresh (spec.md §4.6, SPEC_FULL.md §C.7), unless
// noWrap is set, in which case it is emitted as a single unfolded line
// (supplement C.4 INI_PARSE_NOWRAP).
func writeValue(bw *bufio.Writer, key string, v *Value, noWrap bool) error {
	if !v.dirty {
		for _, line := range v.raw.lines {
			if _, err := bw.WriteString(line + "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	first := key + " = " + v.String()
	lines := []string{first}
	if !noWrap {
		lines = wrapLine(first, v.wrap)
	}
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// wrapLine folds a single logical line at or before boundary, splitting
// on a space, and prefixes continuation lines with a single leading space
// (spec.md §4.6 "Wrapping"). A line with no split point within boundary
// is left unfolded (spec.md §8 property 7's stated exception).
func wrapLine(s string, boundary int) []string {
	if boundary <= 0 || len(s) <= boundary {
		return []string{s}
	}

	var out []string
	rest := s
	for len(rest) > boundary {
		splitAt := strings.LastIndex(rest[:boundary+1], " ")
		if splitAt <= 0 {
			break // no split point within boundary; emit the rest unfolded
		}
		out = append(out, rest[:splitAt])
		rest = " " + strings.TrimLeft(rest[splitAt+1:], " ")
	}
	out = append(out, rest)
	return out
}
