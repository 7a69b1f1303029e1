package iniconf

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultMaxLineLength is the default line-length cap (spec.md §4.2: "64
// KiB"). Lines longer than this are reported as ErrLongLine.
const DefaultMaxLineLength = 64 * 1024

// growBufferSize is the chunk size of the teacher's readerc.go
// (yaml_parser_update_buffer). LineReader does not use it: NewLineReader
// reads its whole input at once.
const growBufferSize = 4096

// LineReader yields successive UTF-8 lines from a file or in-memory
// buffer (spec.md §4.1), preserving trailing content up to but excluding
// \r and \n. It records the detected encoding so a caller can reproduce
// the original BOM on save.
type LineReader struct {
	enc    Encoding
	r      io.Reader
	closer io.Closer

	raw       []byte // bytes not yet split into lines
	eof       bool
	lineNo    int
	lastError error
}

// OpenFile opens path and prepares a LineReader over its BOM-transcoded
// contents.
func OpenFile(path string) (*LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "iniconf: open %s", path)
	}
	lr, err := NewLineReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	lr.closer = f
	return lr, nil
}

// NewLineReader builds a LineReader over r, consuming and transcoding its
// entire contents immediately (spec.md §1 Non-goals: no streaming partial
// parses — the parser consumes one file at a time in full).
func NewLineReader(r io.Reader) (*LineReader, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "iniconf: read input")
	}
	enc, skip := detectBOM(raw)
	payload := raw[skip:]
	utf8Bytes, err := transcodeToUTF8(enc, payload)
	if err != nil {
		return nil, err
	}
	return &LineReader{enc: enc, raw: utf8Bytes}, nil
}

// NewMemoryLineReader builds a LineReader directly over an in-memory
// buffer already known to be UTF-8 (no BOM detection performed).
func NewMemoryLineReader(data []byte) *LineReader {
	return &LineReader{enc: EncodingUTF8, raw: append([]byte(nil), data...)}
}

// Encoding reports the encoding detected at open time.
func (lr *LineReader) Encoding() Encoding { return lr.enc }

// Close releases the underlying file descriptor, if any. Idempotent.
func (lr *LineReader) Close() error {
	if lr.closer != nil {
		c := lr.closer
		lr.closer = nil
		return c.Close()
	}
	return nil
}

// ReadLine returns the next line (without its terminator), its 1-based
// line number, and io.EOF once exhausted. A line exceeding maxLen yields
// ErrLongLine instead (the offending line is still returned, truncated, so
// callers can record the diagnostic and resume at the next line).
func (lr *LineReader) ReadLine(maxLen int) (string, int, error) {
	if len(lr.raw) == 0 {
		return "", lr.lineNo, io.EOF
	}
	idx := bytes.IndexAny(lr.raw, "\r\n")
	var line []byte
	if idx < 0 {
		line = lr.raw
		lr.raw = nil
	} else {
		line = lr.raw[:idx]
		rest := lr.raw[idx:]
		if rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n' {
			rest = rest[2:]
		} else {
			rest = rest[1:]
		}
		lr.raw = rest
	}
	lr.lineNo++
	if maxLen > 0 && len(line) > maxLen {
		return string(line[:maxLen]), lr.lineNo, newParseError(lr.lineNo, ErrLongLine)
	}
	return string(line), lr.lineNo, nil
}
