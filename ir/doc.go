// Package ir implements the instruction tree and translator for bftree.
//
// Brainfuck source is translated into a tree of Op values. Adjacent
// seeks and increments are coalesced as they are read, and every loop
// body is offered to the loop optimizers as soon as its closing bracket
// is seen. Zeroing loops become a single OP_ZERO, and copy/multiply
// loops become a single OP_ADD_AND_ZERO.
//
// The tree is built once and is read-only afterwards. A Program wraps the
// top-level routine and can be saved to and loaded from a compiled image,
// or dumped as YAML for inspection.
package ir
