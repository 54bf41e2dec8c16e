// Package io binds the input and output instructions of a running program
// to byte streams.
//
// A Tape collects everything the program outputs, and either streams each
// byte to its writer immediately or holds the output until Flush. A
// TermReader supplies input bytes from a terminal one key at a time.
package io

import (
	"io"
)

// Tape provides the byte input and output of a single program run.
type Tape struct {
	Input  io.Reader // Source of input bytes.
	Output io.Writer // Destination of output bytes. May be nil.
	Buffer bool      // If set, output is held until Flush.

	output  []byte
	flushed int
	one     [1]byte
}

// Rewind discards all collected output.
func (tc *Tape) Rewind() {
	tc.output = tc.output[:0]
	tc.flushed = 0
}

// Bytes returns all output collected since the last Rewind.
func (tc *Tape) Bytes() []byte {
	return tc.output
}

// ReadByte reads a single input byte.
func (tc *Tape) ReadByte() (c byte, err error) {
	if tc.Input == nil {
		err = ErrNoInput
		return
	}

	if br, ok := tc.Input.(io.ByteReader); ok {
		return br.ReadByte()
	}

	_, err = io.ReadFull(tc.Input, tc.one[:])
	if err != nil {
		return
	}

	c = tc.one[0]
	return
}

// WriteByte collects an output byte, writing it through unless buffered.
func (tc *Tape) WriteByte(c byte) (err error) {
	tc.output = append(tc.output, c)

	if !tc.Buffer {
		err = tc.Flush()
	}

	return
}

// Flush writes any output not yet written.
func (tc *Tape) Flush() (err error) {
	if tc.Output == nil || tc.flushed == len(tc.output) {
		return
	}

	n, err := tc.Output.Write(tc.output[tc.flushed:])
	tc.flushed += n
	if err == nil && tc.flushed != len(tc.output) {
		err = ErrShortOut
	}

	return
}
