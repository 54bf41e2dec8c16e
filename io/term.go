// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"io"

	"golang.org/x/term"
)

const (
	KEY_INTERRUPT = 0x03 // ^C
	KEY_EOF       = 0x04 // ^D
)

// ReaderOptions configures a TermReader.
type ReaderOptions struct {
	Raw  bool `toml:"raw"`  // Read single keys without waiting for a newline.
	Echo bool `toml:"echo"` // Echo keys read in raw mode.
}

// DefaultReaderOptions returns the options used when none are configured.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Raw:  true,
		Echo: true,
	}
}

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// TermReader reads input bytes one at a time. On a terminal in raw mode
// each key is returned as soon as it is pressed. Anything else is read
// through a buffer.
type TermReader struct {
	Options ReaderOptions

	in   io.Reader
	echo io.Writer
	fd   int
	tty  bool
	buf  *bufio.Reader
	one  [1]byte
}

// NewTermReader creates a reader over in. Raw keys are echoed to echo,
// which may be nil.
func NewTermReader(in io.Reader, echo io.Writer, opts ReaderOptions) (tr *TermReader) {
	tr = &TermReader{
		Options: opts,
		in:      in,
		echo:    echo,
	}

	if file, ok := in.(fder); ok {
		tr.fd = int(file.Fd())
		tr.tty = term.IsTerminal(tr.fd)
	}

	return
}

// Terminal is true when the reader is attached to a terminal.
func (tr *TermReader) Terminal() bool {
	return tr.tty
}

// ReadByte returns the next input byte.
func (tr *TermReader) ReadByte() (c byte, err error) {
	if tr.tty && tr.Options.Raw {
		return tr.readRaw()
	}

	if tr.buf == nil {
		tr.buf = bufio.NewReader(tr.in)
	}

	return tr.buf.ReadByte()
}

// Read implements io.Reader, returning at most one byte per call.
func (tr *TermReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return
	}

	c, err := tr.ReadByte()
	if err != nil {
		return
	}

	p[0] = c
	n = 1

	return
}

// readRaw reads a single key with the terminal in raw mode.
func (tr *TermReader) readRaw() (c byte, err error) {
	state, err := term.MakeRaw(tr.fd)
	if err != nil {
		return
	}
	defer term.Restore(tr.fd, state)

	_, err = io.ReadFull(tr.in, tr.one[:])
	if err != nil {
		return
	}

	c = tr.one[0]
	switch c {
	case KEY_INTERRUPT:
		err = ErrInterrupt
		return
	case KEY_EOF:
		err = io.EOF
		return
	case '\r':
		c = '\n'
	}

	if tr.Options.Echo && tr.echo != nil {
		if c == '\n' {
			tr.echo.Write([]byte("\r\n"))
		} else {
			tr.echo.Write([]byte{c})
		}
	}

	return
}
