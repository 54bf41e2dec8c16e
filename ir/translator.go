// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log"
)

// Translator is a single pass Brainfuck to instruction tree translator.
type Translator struct {
	Verbose    bool        // If set, verbosely logs loop rewrites.
	Strict     bool        // If set, unbalanced brackets are errors.
	Optimizers []Optimizer // Loop optimizers, in order. nil selects DefaultOptimizers.
}

// scanner tracks the read position in the source stream.
type scanner struct {
	in  io.ByteReader
	pos int
}

func (sc *scanner) next() (c byte, err error) {
	c, err = sc.in.ReadByte()
	if err == nil {
		sc.pos++
	}
	return
}

// optimizers returns the active loop optimizer list.
func (tr *Translator) optimizers() []Optimizer {
	if tr.Optimizers == nil {
		return DefaultOptimizers
	}
	return tr.Optimizers
}

// Parse translates a source stream into a Program.
func (tr *Translator) Parse(input io.Reader) (prog *Program, err error) {
	in, ok := input.(io.ByteReader)
	if !ok {
		in = bufio.NewReader(input)
	}

	sc := &scanner{in: in}

	ops, closed, err := tr.parseOps(sc, false, 0)
	if err != nil {
		return
	}

	if closed && tr.Verbose {
		log.Printf("translate: %d: unmatched ] ends the program", sc.pos-1)
	}

	prog = &Program{Root: MakeRoutine(false, ops...)}

	return
}

// ParseBytes translates an in-memory source into a Program.
func (tr *Translator) ParseBytes(source []byte) (prog *Program, err error) {
	return tr.Parse(bytes.NewReader(source))
}

// parseOps translates bytes until the end of the stream, or until the
// ']' closing the current loop. The loop-open token, if any, was at
// offset open.
func (tr *Translator) parseOps(sc *scanner, nested bool, open int) (ops []Op, closed bool, err error) {
	var workspace *Op

	for {
		pos := sc.pos

		var c byte
		c, err = sc.next()
		if errors.Is(err, io.EOF) {
			err = nil
			if nested && tr.Strict {
				err = &ErrSyntax{Pos: open, Err: ErrLoopUnterminated}
				return
			}
			break
		}
		if err != nil {
			err = &ErrSyntax{Pos: pos, Err: err}
			return
		}

		switch c {
		case '>':
			coalesce(&workspace, &ops, OP_SEEK, 1, pos)
		case '<':
			coalesce(&workspace, &ops, OP_SEEK, -1, pos)
		case '+':
			coalesce(&workspace, &ops, OP_INC, 1, pos)
		case '-':
			coalesce(&workspace, &ops, OP_INC, -1, pos)
		case '.':
			commit(&workspace, &ops)
			ops = append(ops, Op{Kind: OP_OUTPUT, Pos: pos})
		case ',':
			commit(&workspace, &ops)
			ops = append(ops, Op{Kind: OP_INPUT, Pos: pos})
		case '[':
			commit(&workspace, &ops)
			var body []Op
			body, _, err = tr.parseOps(sc, true, pos)
			if err != nil {
				return
			}
			ops = append(ops, tr.loop(body, pos))
		case ']':
			if !nested && tr.Strict {
				err = &ErrSyntax{Pos: pos, Err: ErrLoopUnmatched}
				return
			}
			closed = true
			commit(&workspace, &ops)
			return
		default:
			// Comment
		}
	}

	commit(&workspace, &ops)

	return
}

// loop offers a finished loop body to the optimizers. The first
// replacement wins, otherwise the body is wrapped as a conditional routine.
func (tr *Translator) loop(body []Op, pos int) (op Op) {
	for _, optimize := range tr.optimizers() {
		var ok bool
		op, ok = optimize(body, true)
		if ok {
			if tr.Verbose {
				log.Printf("translate: %d: %v => %v", pos, MakeLoop(body...), op)
			}
			op.Pos = pos
			return
		}
	}

	op = MakeLoop(body...)
	op.Pos = pos

	return
}

// commit moves the workspace op, if any, to the end of ops.
func commit(workspace **Op, ops *[]Op) {
	if *workspace != nil {
		*ops = append(*ops, **workspace)
		*workspace = nil
	}
}

// coalesce folds amount into the workspace op if it is of the same kind,
// otherwise commits the workspace and starts a new op.
func coalesce(workspace **Op, ops *[]Op, kind Kind, amount int, pos int) {
	if *workspace != nil && (*workspace).Kind == kind {
		(*workspace).Amount += amount
		return
	}

	commit(workspace, ops)
	*workspace = &Op{Kind: kind, Amount: amount, Pos: pos}
}
