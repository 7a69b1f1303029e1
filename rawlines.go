package iniconf

// rawLines is the pair of parallel ordered sequences spec.md §3 calls the
// "Raw-Line Array": the verbatim physical lines that produced a value, and
// their byte lengths. Each Value owns its own instance: Value.Clone
// deep-copies it through clone, so no two values share one, and Go's GC
// supersedes the original's manual strong/weak refcounting.
type rawLines struct {
	lines   []string
	lengths []int
}

func newRawLines() *rawLines {
	return &rawLines{}
}

func (r *rawLines) append(line string) {
	r.lines = append(r.lines, line)
	r.lengths = append(r.lengths, len(line))
}

func (r *rawLines) clone() *rawLines {
	if r == nil {
		return nil
	}
	return &rawLines{
		lines:   append([]string(nil), r.lines...),
		lengths: append([]int(nil), r.lengths...),
	}
}

func (r *rawLines) len() int {
	if r == nil {
		return 0
	}
	return len(r.lines)
}
