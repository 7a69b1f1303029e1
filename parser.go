package iniconf

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// action is one of the five enumerated steps spec.md §4.2 names, driving
// the parser's queue instead of recursive descent — the teacher's
// scannerc.go/parserc.go already shape their scanner/parser as a
// token-queue-plus-dispatch loop; this generalizes that shape from YAML
// tokens to the five actions the spec requires.
type action int

const (
	actionRead action = iota
	actionInspect
	actionPost
	actionError
	actionDone
)

// lineKind classifies a freshly read line (spec.md §4.2 dispatch table).
type lineKind int

const (
	lineComment lineKind = iota
	lineContinuationOrBlank
	lineSectionHeader
	lineKeyValue
)

func classifyLine(s string) lineKind {
	if s == "" {
		return lineComment
	}
	switch s[0] {
	case ';', '#':
		return lineComment
	case ' ', '\t':
		return lineContinuationOrBlank
	case '[':
		return lineSectionHeader
	default:
		return lineKeyValue
	}
}

// Parser drives the action queue over a LineReader, building a
// Configuration (spec.md §4.2).
type Parser struct {
	opts ParseOptions
	lr   *LineReader

	queue []action

	lineNo   int
	lastLine string
	lastErr  error
	done     bool

	curSection     *Section
	mergeTarget    *Section // non-nil when reopening a same-named section under MS=Merge
	curKeyName     string
	curKeyLine     int
	curRaw         *rawLines
	keyOpen        bool
	pendingComment *Comment

	cfg *Configuration
}

// NewParser builds a Parser over lr with opts.
func NewParser(lr *LineReader, opts ParseOptions) *Parser {
	return &Parser{
		opts:           opts,
		lr:             lr,
		queue:          []action{actionRead},
		cfg:            NewConfiguration(),
		pendingComment: NewComment(),
	}
}

// Parse runs the parser to completion and returns the populated
// Configuration. A strict-mode abort still returns the partially built
// Configuration together with the error, per spec.md §7: "The
// configuration object is always in a well-formed state after any
// operation, even a failing one."
func (p *Parser) Parse() (cfg *Configuration, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(parserPanic); ok {
				err = e.err
				return
			}
			panic(r)
		}
	}()

	p.cfg.WrapBoundary = p.opts.wrapBoundary()
	p.cfg.NoWrap = p.opts.Flags&ParseNoWrap != 0

	for !p.done {
		act := p.dequeue()
		switch act {
		case actionRead:
			p.stepRead()
		case actionInspect:
			p.stepInspect()
		case actionPost:
			p.stepPost()
		case actionError:
			p.stepError()
		case actionDone:
			p.finish()
			p.done = true
		}
	}
	return p.cfg, p.lastErr
}

// Parse convenience wrappers.

// ParseString parses an in-memory INI document with opts.
func ParseString(s string, opts ParseOptions) (*Configuration, error) {
	lr := NewMemoryLineReader([]byte(s))
	return NewParser(lr, opts).Parse()
}

// ParseFile opens and parses path with opts.
func ParseFile(path string, opts ParseOptions) (*Configuration, error) {
	lr, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer lr.Close()
	return NewParser(lr, opts).Parse()
}

type parserPanic struct{ err error }

func (p *Parser) fail(err error) {
	panic(parserPanic{err})
}

func (p *Parser) dequeue() action {
	if len(p.queue) == 0 {
		return actionDone
	}
	act := p.queue[0]
	p.queue = p.queue[1:]
	return act
}

func (p *Parser) enqueue(acts ...action) {
	p.queue = append(p.queue, acts...)
}

func (p *Parser) stepRead() {
	line, lineNo, err := p.lr.ReadLine(p.opts.maxLineLength())
	if err == io.EOF {
		p.enqueue(actionDone)
		return
	}
	p.lineNo = lineNo
	p.lastLine = line
	if err != nil {
		if pe, ok := errors.Cause(err).(*ParseError); ok {
			p.cfg.recordError(pe.Line, pe.Kind)
			if !pe.Kind.isWarning() && p.opts.Tolerance != ErrorToleranceStopOnNone {
				p.enqueue(actionError)
				p.lastErr = pe
				return
			}
			// truncated but otherwise usable; keep going with what we read.
		} else {
			p.cfg.recordError(lineNo, ErrRead)
			p.lastErr = err
			p.enqueue(actionError)
			return
		}
	}
	p.enqueue(actionInspect)
}

func (p *Parser) stepInspect() {
	switch classifyLine(p.lastLine) {
	case lineComment:
		p.handleComment()
	case lineContinuationOrBlank:
		p.handleContinuationOrBlank()
	case lineSectionHeader:
		p.handleSectionHeader()
	case lineKeyValue:
		p.handleKeyValue()
	}
	p.enqueue(actionRead)
}

func (p *Parser) stepPost() {
	// Reserved for diagnostics that must run after a successful inspect
	// but before the next read; the current action set needs no
	// additional bookkeeping here, but the step exists so the queue
	// shape stays the five-action machine spec.md §4.2 specifies.
	p.enqueue(actionRead)
}

func (p *Parser) stepError() {
	p.done = true
}

func (p *Parser) finish() {
	// End-of-file handling (spec.md §4.2): commit any open key; attach a
	// trailing key-less comment under INI_SPECIAL_KEY within the open
	// section, or promote it to the configuration's trailing comment if
	// no section is open.
	if p.keyOpen {
		p.commitValue()
	}
	if !p.pendingComment.IsEmpty() {
		if p.curSection != nil {
			v := &Value{wrap: p.cfg.WrapBoundary, raw: newRawLines(), comment: p.pendingComment}
			p.curSection.Append(IniSpecialKey, v)
		} else {
			p.cfg.TrailingComment = p.pendingComment
		}
		p.pendingComment = NewComment()
	}
	if p.curSection != nil {
		p.saveSection()
	}
}

func (p *Parser) handleComment() {
	p.flushValueIfOpen()
	p.pendingComment.Append(p.lastLine)
}

func (p *Parser) handleContinuationOrBlank() {
	if p.keyOpen {
		p.curRaw.append(p.lastLine)
		return
	}
	if strings.TrimSpace(p.lastLine) == "" {
		p.pendingComment.Append(p.lastLine)
		return
	}
	kind := ErrUnexpectedSpace
	if p.lastLine[0] == '\t' {
		kind = ErrUnexpectedTab
	}
	p.cfg.recordError(p.lineNo, kind)
	strict := (kind == ErrUnexpectedSpace && p.opts.Flags&ParseNoSpace != 0) ||
		(kind == ErrUnexpectedTab && p.opts.Flags&ParseNoTab != 0)
	if strict && p.opts.Tolerance != ErrorToleranceStopOnNone {
		p.lastErr = newParseError(p.lineNo, kind)
		p.enqueue(actionError)
	}
}

func (p *Parser) flushValueIfOpen() {
	if p.keyOpen {
		p.commitValue()
	}
}

func (p *Parser) handleSectionHeader() {
	p.flushValueIfOpen()

	inner := p.lastLine[1:]
	if !strings.HasSuffix(inner, "]") {
		p.cfg.recordError(p.lineNo, ErrNoCloseBracket)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrNoCloseBracket)
			p.enqueue(actionError)
		}
		return
	}
	name := strings.TrimSpace(inner[:len(inner)-1])
	if name == "" {
		p.cfg.recordError(p.lineNo, ErrNoSectionName)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrNoSectionName)
			p.enqueue(actionError)
		}
		return
	}
	const maxKeyLen = 4096
	if len(name) > maxKeyLen {
		p.cfg.recordError(p.lineNo, ErrSectionNameTooLong)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrSectionNameTooLong)
			p.enqueue(actionError)
			return
		}
		name = name[:maxKeyLen]
	}

	if p.curSection != nil {
		p.saveSection()
	}

	p.curSection = NewSection(name)
	hv := &Value{wrap: p.cfg.WrapBoundary, raw: newRawLines(), comment: p.pendingComment}
	hv.raw.append(p.lastLine)
	p.curSection.Append(IniSectionKey, hv)
	p.pendingComment = NewComment()

	// Reopening a section already present in the configuration: under a
	// non-error MS policy that merges rather than replaces wholesale,
	// route subsequent value commits straight into the existing section
	// under MV2S, instead of accumulating a scratch section to merge
	// at save time (spec.md §4.2 "optional merge-target section").
	p.mergeTarget = nil
	if existing, ok := p.cfg.Section(name); ok {
		ms := p.opts.Collision.MS()
		if ms.HasDetect() {
			p.cfg.recordError(p.lineNo, ErrDuplicateSection)
		}
		if ms.Mode() == MSMerge {
			p.mergeTarget = existing
		}
	}
}

func (p *Parser) handleKeyValue() {
	p.flushValueIfOpen()

	eq := strings.IndexByte(p.lastLine, '=')
	if eq < 0 {
		if p.opts.Flags&ParseIgnoreNonKVP != 0 {
			return
		}
		p.cfg.recordError(p.lineNo, ErrNoEqualSign)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrNoEqualSign)
			p.enqueue(actionError)
		}
		return
	}
	key := strings.TrimSpace(p.lastLine[:eq])
	if key == "" {
		if p.opts.Flags&ParseIgnoreNonKVP != 0 {
			return
		}
		p.cfg.recordError(p.lineNo, ErrNoKey)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrNoKey)
			p.enqueue(actionError)
		}
		return
	}
	const maxKeyLen = 4096
	if len(key) > maxKeyLen {
		p.cfg.recordError(p.lineNo, ErrLongKey)
		if p.opts.Tolerance != ErrorToleranceStopOnNone {
			p.lastErr = newParseError(p.lineNo, ErrLongKey)
			p.enqueue(actionError)
			return
		}
		key = key[:maxKeyLen]
	}

	p.curKeyName = key
	p.curKeyLine = p.lineNo
	p.curRaw = newRawLines()
	p.curRaw.append(p.lastLine)
	p.keyOpen = true

	if p.curSection == nil {
		p.curSection = NewSection(DefaultSectionName)
	}
}

// commitValue builds a Value from the accumulated raw-line array and
// attached comment, then inserts it into the current section under the
// MV1S policy (spec.md §4.3). Called both mid-parse (a new key/section/
// comment starts) and at EOF.
func (p *Parser) commitValue() {
	v := &Value{
		keyLength: len(p.curKeyName),
		firstLine: p.curKeyLine,
		wrap:      p.cfg.WrapBoundary,
		raw:       p.curRaw,
		comment:   p.pendingComment,
	}
	p.pendingComment = NewComment()
	p.keyOpen = false

	target := p.curSection
	policy := p.opts.Collision.MV1S()
	dupKind := ErrDuplicateKeySection
	if p.mergeTarget != nil {
		target = p.mergeTarget
		policy = mv1sFromMV2S(p.opts.Collision.MV2S())
		dupKind = ErrDuplicateKeyMerge
	}
	commitValueInto(target, p.curKeyName, v, policy, dupKind, func(kind ParseErrorKind) {
		p.cfg.recordError(v.firstLine, kind)
	})
}

// saveSection commits the in-progress section into the configuration
// under the MS policy (spec.md §4.4).
func (p *Parser) saveSection() {
	s := p.curSection
	p.curSection = nil

	if p.mergeTarget != nil {
		// Values were already routed into p.mergeTarget by commitValue
		// as they were parsed; the scratch section s only ever held the
		// synthetic INI_SECTION header entry, which a reopened section
		// doesn't need (the existing section already has one).
		p.mergeTarget = nil
		return
	}

	existing, ok := p.cfg.Section(s.Name())
	if !ok {
		p.cfg.PutSection(s)
		return
	}
	ms := p.opts.Collision.MS()
	if ms.HasDetect() {
		p.cfg.recordError(p.lineNo, ErrDuplicateSection)
	}
	switch ms.Mode() {
	case MSMerge:
		mergeSectionInto(existing, s, p.opts.Collision.MV2S(), func(kind ParseErrorKind) {
			p.cfg.recordError(p.lineNo, kind)
		})
	case MSError:
		if !ms.HasDetect() {
			p.cfg.recordError(p.lineNo, ErrDuplicateSection)
		}
		if p.opts.Tolerance == ErrorToleranceStopOnAny {
			p.lastErr = newParseError(p.lineNo, ErrDuplicateSection)
			p.done = true
		}
	case MSOverwrite:
		existing.Clear()
		mergeSectionInto(existing, s, MV2SOverwrite, func(ParseErrorKind) {})
	case MSPreserve:
		// drop the new section entirely
	}
}
