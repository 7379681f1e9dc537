package bytecode

import (
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/internal/ngutil"
	"github.com/Yemiez/ysen/value"
)

// frame is one call-frame: the Block currently executing and its program
// counter.
type frame struct {
	block *Block
	pc    int
}

// VM is the bytecode interpreter's state: an accumulator, an indexed
// register file, a global variable table, an operand stack for call
// arguments and a call-frame stack. Grounded on the teacher's vm.Instance —
// same shape (accumulator-centric, register-indexed), adapted from a Forth
// cell-addressed memory image to a named-Block/named-variable program.
type VM struct {
	prog *Program

	Accumulator value.Value
	Registers   map[int]value.Value
	Globals     map[string]value.Value
	Stack       []value.Value
	Frames      []*frame

	logger *log.Logger
}

// Option configures a VM at construction time, mirroring the teacher's
// functional-options vm.Option.
type Option func(*VM) error

// WithTrace enables one-line-per-instruction tracing through a *log.Logger
// writing to w (see disasm.go), the same way the teacher routes its Output
// writer through internal/ngi.ErrWriter — here through ngutil.TraceWriter.
func WithTrace(w io.Writer) Option {
	return func(vm *VM) error {
		vm.logger = log.New(ngutil.NewTraceWriter(w), "", 0)
		return nil
	}
}

// New builds a VM ready to Run prog.
func New(prog *Program, opts ...Option) (*VM, error) {
	vm := &VM{
		prog:      prog,
		Registers: make(map[int]value.Value),
		Globals:   make(map[string]value.Value),
	}
	for _, opt := range opts {
		if err := opt(vm); err != nil {
			return nil, errors.Wrap(err, "applying bytecode VM option")
		}
	}
	return vm, nil
}

func (vm *VM) push(v value.Value) { vm.Stack = append(vm.Stack, v) }

func (vm *VM) pop() (value.Value, error) {
	if len(vm.Stack) == 0 {
		return value.Undef, errors.New("bytecode VM: pop on empty stack")
	}
	top := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	return top, nil
}

func (vm *VM) top() *frame { return vm.Frames[len(vm.Frames)-1] }

// Run executes the named block (typically Program.Entry) to completion and
// returns the accumulator's final value.
//
// The fetch-decode-execute loop advances the current frame's PC before
// executing each instruction, rather than after (spec §4.6's prose
// description is ambiguous about ordering once call/ret is taken into
// account — a frame pushed mid-instruction must resume the CALLER at the
// instruction following the call, and a frame popped by ret must not
// re-execute anything). Advancing first and keeping ret's pop synchronous
// makes both cases fall out of the same rule instead of needing a special
// case for either.
func (vm *VM) Run(entry string) (value.Value, error) {
	block, ok := vm.prog.Blocks[entry]
	if !ok {
		return value.Undef, errors.Errorf("bytecode VM: no block named %q", entry)
	}
	vm.Frames = []*frame{{block: block}}

	for len(vm.Frames) > 0 {
		f := vm.top()
		if f.pc >= len(f.block.Instructions) {
			vm.Frames = vm.Frames[:len(vm.Frames)-1]
			continue
		}
		instr := f.block.Instructions[f.pc]
		f.pc++

		if vm.logger != nil {
			vm.traceInstruction(f.block, instr)
		}

		if err := vm.execute(instr); err != nil {
			return value.Undef, errors.Wrapf(err, "executing %s in block %q", instr.Op, f.block.Name)
		}
	}
	return vm.Accumulator, nil
}

// execute performs one instruction's effect on VM state. call pushes a new
// frame directly (its first iteration of the loop above will execute the
// callee's first instruction); ret pops the current frame immediately so
// the loop resumes the caller at the instruction after the call.
func (vm *VM) execute(instr Instruction) error {
	switch instr.Op {
	case OpLoadI:
		vm.Accumulator = instr.Val
	case OpLoadV:
		vm.Accumulator = vm.Globals[instr.Name]
	case OpStore:
		vm.Registers[instr.Reg] = vm.Accumulator
	case OpStoreV:
		vm.Globals[instr.Name] = vm.Accumulator
	case OpAdd:
		sum, err := value.Add(vm.Accumulator, vm.Registers[instr.Reg])
		if err != nil {
			return err
		}
		vm.Accumulator = sum
	case OpPush:
		vm.push(vm.Accumulator)
	case OpPop:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.Accumulator = v
	case OpCall:
		callee, ok := vm.prog.Blocks[instr.Name]
		if !ok {
			return errors.Errorf("bytecode VM: call to undefined block %q", instr.Name)
		}
		vm.Frames = append(vm.Frames, &frame{block: callee})
	case OpRet:
		vm.Frames = vm.Frames[:len(vm.Frames)-1]
	case OpJumpIfFalse:
		if !vm.Accumulator.Truthy() {
			vm.top().pc = instr.Target
		}
	case OpJump:
		vm.top().pc = instr.Target
	default:
		return errors.Errorf("bytecode VM: unhandled opcode %s", instr.Op)
	}
	return nil
}
