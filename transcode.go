package iniconf

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Encoding identifies the byte-order mark (or absence of one) detected on
// an input source (spec.md §4.1). The internal working buffer is always
// UTF-8 without BOM; Encoding is recorded so a later save can reproduce it.
type Encoding int

const (
	EncodingUTF8 Encoding = iota // no BOM (default)
	EncodingUTF8BOM
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingUTF32LE
	EncodingUTF32BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingUTF8BOM:
		return "utf-8 (bom)"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	case EncodingUTF32LE:
		return "utf-32le"
	case EncodingUTF32BE:
		return "utf-32be"
	}
	return "unknown"
}

// detectBOM inspects up to the first 4 bytes of buf and returns the
// detected encoding together with the number of BOM bytes to skip.
func detectBOM(buf []byte) (Encoding, int) {
	switch {
	case len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00:
		return EncodingUTF32LE, 4
	case len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF:
		return EncodingUTF32BE, 4
	case len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF:
		return EncodingUTF8BOM, 3
	case len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE:
		return EncodingUTF16LE, 2
	case len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF:
		return EncodingUTF16BE, 2
	default:
		return EncodingUTF8, 0
	}
}

// transcodeToUTF8 converts the remainder of a source (after its BOM, if
// any, has been stripped) into UTF-8, according to enc. UTF-8 and
// UTF-8-with-BOM sources are returned unchanged (BOM already stripped by
// the caller). A malformed or truncated multibyte sequence is fatal,
// matching spec.md §4.1 ("invalid sequence" / "incomplete sequence at
// EOF").
func transcodeToUTF8(enc Encoding, payload []byte) ([]byte, error) {
	switch enc {
	case EncodingUTF8, EncodingUTF8BOM:
		if !utf8.Valid(payload) {
			return nil, errors.Wrap(ErrRead.toError(), "invalid UTF-8 sequence")
		}
		return payload, nil
	case EncodingUTF16LE, EncodingUTF16BE:
		return transcodeUTF16(enc, payload)
	case EncodingUTF32LE, EncodingUTF32BE:
		return transcodeUTF32(enc, payload)
	}
	return nil, errors.Wrap(ErrRead.toError(), "unsupported encoding")
}

func transcodeUTF16(enc Encoding, payload []byte) ([]byte, error) {
	if len(payload)%2 != 0 {
		return nil, errors.Wrap(ErrRead.toError(), "incomplete UTF-16 sequence at EOF")
	}
	units := make([]uint16, len(payload)/2)
	for i := range units {
		b0, b1 := payload[2*i], payload[2*i+1]
		if enc == EncodingUTF16LE {
			units[i] = uint16(b0) | uint16(b1)<<8
		} else {
			units[i] = uint16(b1) | uint16(b0)<<8
		}
	}
	for i := 0; i < len(units); i++ {
		switch u := units[i]; {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 == len(units) {
				return nil, errors.Wrap(ErrRead.toError(), "incomplete UTF-16 sequence at EOF")
			}
			if next := units[i+1]; next < 0xDC00 || next >= 0xE000 {
				return nil, errors.Wrap(ErrRead.toError(), "invalid UTF-16 sequence")
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return nil, errors.Wrap(ErrRead.toError(), "invalid UTF-16 sequence")
		}
	}
	runes := utf16.Decode(units)
	buf := make([]byte, 0, len(runes)*3)
	tmp := make([]byte, utf8.UTFMax)
	for _, r := range runes {
		n := utf8.EncodeRune(tmp, r)
		buf = append(buf, tmp[:n]...)
	}
	return buf, nil
}

func transcodeUTF32(enc Encoding, payload []byte) ([]byte, error) {
	if len(payload)%4 != 0 {
		return nil, errors.Wrap(ErrRead.toError(), "incomplete UTF-32 sequence at EOF")
	}
	buf := make([]byte, 0, len(payload))
	tmp := make([]byte, utf8.UTFMax)
	for i := 0; i < len(payload); i += 4 {
		var v uint32
		if enc == EncodingUTF32LE {
			v = uint32(payload[i]) | uint32(payload[i+1])<<8 | uint32(payload[i+2])<<16 | uint32(payload[i+3])<<24
		} else {
			v = uint32(payload[i+3]) | uint32(payload[i+2])<<8 | uint32(payload[i+1])<<16 | uint32(payload[i])<<24
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return nil, errors.Wrap(ErrRead.toError(), "invalid UTF-32 code point")
		}
		n := utf8.EncodeRune(tmp, r)
		buf = append(buf, tmp[:n]...)
	}
	return buf, nil
}

// toError lets a ParseErrorKind act as a base sentinel for wrapping
// transcoder-level failures that precede any line number being known.
func (k ParseErrorKind) toError() error {
	return errors.New(k.String())
}
