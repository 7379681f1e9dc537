// Package bytecode implements the bytecode generator (§4.5) and the
// bytecode interpreter (§4.6): an AST is lowered to a Program of named
// Blocks, then executed by a fetch-decode-execute VM with an accumulator,
// an indexed register file, a global variable table, an operand stack and
// a call-frame stack. Grounded directly on the teacher's vm package: the
// Run loop's shape, the functional-options constructor, and the
// Image.Disassemble-style one-line-per-instruction trace.
package bytecode

import "github.com/Yemiez/ysen/value"

// Op identifies a bytecode instruction.
type Op int

// Instruction opcodes. `add` is the only arithmetic opcode; OpLoad is never
// emitted by Generate. See generator.go for which AST shapes are lowered.
const (
	OpLoad Op = iota
	OpLoadI
	OpLoadV
	OpStore
	OpStoreV
	OpAdd
	OpPush
	OpPop
	OpCall
	OpRet
	// JumpIfFalse and Jump are the supplemented pair from spec.md §9,
	// resolving the "If/ElseIf/Else in bytecode" open question.
	OpJumpIfFalse
	OpJump
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpLoadI:
		return "loadi"
	case OpLoadV:
		return "loadv"
	case OpStore:
		return "store"
	case OpStoreV:
		return "storev"
	case OpAdd:
		return "add"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpCall:
		return "call"
	case OpRet:
		return "ret"
	case OpJumpIfFalse:
		return "jump_if_false"
	case OpJump:
		return "jump"
	default:
		return "?"
	}
}

// Instruction is one bytecode operation. Only the fields relevant to Op are
// meaningful: Reg for register-indexed ops, Val for loadi, Name for loadv/
// storev/call, Label/Target for the jump pair (Label before label
// resolution, Target after).
type Instruction struct {
	Op     Op
	Reg    int
	Val    value.Value
	Name   string
	Label  string
	Target int
}

// BlockKind tags what a Block represents, mirroring the AST scope kinds it
// was lowered from.
type BlockKind int

// Block kinds.
const (
	Other BlockKind = iota
	Returnable
	Loopable
)

// Block is a named, ordered list of instructions — the unit `call` targets.
type Block struct {
	Name         string
	Kind         BlockKind
	Instructions []Instruction
}

// Program is the generator's output: a set of named Blocks. The top-level
// Program node always compiles to a Block named "main".
type Program struct {
	Blocks map[string]*Block
	Entry  string
}
