package bytecode

import (
	"bytes"
	"fmt"
	"io"
)

// Disassemble renders one instruction as a single line, mirroring the
// teacher's Image.Disassemble: mnemonic first, then whatever operand the
// opcode actually carries.
func (instr Instruction) Disassemble() string {
	var b bytes.Buffer
	b.WriteString(instr.Op.String())
	switch instr.Op {
	case OpLoadI:
		fmt.Fprintf(&b, " %s", instr.Val.String())
	case OpLoadV, OpStoreV, OpCall:
		fmt.Fprintf(&b, " %s", instr.Name)
	case OpStore, OpAdd:
		fmt.Fprintf(&b, " r%d", instr.Reg)
	case OpJumpIfFalse, OpJump:
		fmt.Fprintf(&b, " %d", instr.Target)
	}
	return b.String()
}

// Disassemble writes one line per instruction of every block in prog to w,
// each line prefixed with its block name and instruction index. The trace
// WithTrace emits during Run uses a different line form (block name,
// disassembly and accumulator, no index; see traceInstruction).
func (p *Program) Disassemble(w io.Writer) error {
	for _, name := range p.blockNames() {
		block := p.Blocks[name]
		for i, instr := range block.Instructions {
			if _, err := fmt.Fprintf(w, "%s:%d  %s\n", block.Name, i, instr.Disassemble()); err != nil {
				return err
			}
		}
	}
	return nil
}

// blockNames returns block names in a stable order (entry first, then the
// rest alphabetically) so repeated disassembly of the same Program is
// deterministic despite Blocks being a map.
func (p *Program) blockNames() []string {
	names := make([]string, 0, len(p.Blocks))
	_, hasEntry := p.Blocks[p.Entry]
	if hasEntry {
		names = append(names, p.Entry)
	}
	for name := range p.Blocks {
		if name != p.Entry {
			names = append(names, name)
		}
	}
	sortFrom := 0
	if hasEntry {
		sortFrom = 1
	}
	for i := sortFrom + 1; i < len(names); i++ {
		for j := i; j > sortFrom && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

// traceInstruction writes a single trace line for instr about to execute in
// block, used by Run when tracing is enabled via WithTrace. Per §4.6 the
// line carries both the disassembly and the accumulator's current formatted
// value.
func (vm *VM) traceInstruction(block *Block, instr Instruction) {
	vm.logger.Printf("%s: %s  acc=%s", block.Name, instr.Disassemble(), vm.Accumulator.Formatted())
}
