package iniconf

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderSplitsOnLFAndCRLF(t *testing.T) {
	lr := NewMemoryLineReader([]byte("a\nb\r\nc"))

	line, n, err := lr.ReadLine(0)
	require.NoError(t, err)
	assert.Equal(t, "a", line)
	assert.Equal(t, 1, n)

	line, n, err = lr.ReadLine(0)
	require.NoError(t, err)
	assert.Equal(t, "b", line)
	assert.Equal(t, 2, n)

	line, n, err = lr.ReadLine(0)
	require.NoError(t, err)
	assert.Equal(t, "c", line)
	assert.Equal(t, 3, n)

	_, _, err = lr.ReadLine(0)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineReaderTooLongLineReportsError(t *testing.T) {
	lr := NewMemoryLineReader([]byte("abcdef\n"))
	line, _, err := lr.ReadLine(3)
	require.Error(t, err)
	assert.Equal(t, "abc", line)
}

func TestNewLineReaderDetectsUTF8BOM(t *testing.T) {
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("[common]\n")...)
	lr, err := NewLineReader(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8BOM, lr.Encoding())

	line, _, err := lr.ReadLine(0)
	require.NoError(t, err)
	assert.Equal(t, "[common]", line)
}
