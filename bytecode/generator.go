package bytecode

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/ast"
	"github.com/Yemiez/ysen/value"
)

// pendingRef records a not-yet-resolved jump target within the block
// currently being generated.
type pendingRef struct {
	instrIndex int
	label      string
}

// Generator lowers an *ast.Program into a bytecode Program. Register
// allocation is monotonic across the whole generation run, never freed —
// per spec §4.5.
type Generator struct {
	blocks  map[string]*Block
	current *Block

	nextReg int
	labelN  int

	labelPos map[string]int
	pending  []pendingRef
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{blocks: make(map[string]*Block)}
}

// Generate lowers prog's children into a "main" Block and returns the
// resulting Program.
func Generate(prog *ast.Program) (*Program, error) {
	g := NewGenerator()
	g.startBlock("main", Other)
	for _, child := range prog.Children {
		if err := g.lower(child); err != nil {
			return nil, errors.Wrap(err, "generating main block")
		}
	}
	if err := g.endBlock(); err != nil {
		return nil, err
	}
	return &Program{Blocks: g.blocks, Entry: "main"}, nil
}

func (g *Generator) startBlock(name string, kind BlockKind) {
	g.current = &Block{Name: name, Kind: kind}
	g.labelPos = make(map[string]int)
	g.pending = nil
}

// endBlock resolves any pending jump labels against positions recorded in
// the block just finished, then files it away under its name.
func (g *Generator) endBlock() error {
	for _, ref := range g.pending {
		pos, ok := g.labelPos[ref.label]
		if !ok {
			return errors.Errorf("unresolved jump label %q in block %q", ref.label, g.current.Name)
		}
		g.current.Instructions[ref.instrIndex].Target = pos
	}
	g.blocks[g.current.Name] = g.current
	return nil
}

func (g *Generator) emit(instr Instruction) int {
	g.current.Instructions = append(g.current.Instructions, instr)
	return len(g.current.Instructions) - 1
}

func (g *Generator) emitJump(op Op, label string) {
	idx := g.emit(Instruction{Op: op, Label: label})
	g.pending = append(g.pending, pendingRef{instrIndex: idx, label: label})
}

func (g *Generator) markLabel(label string) {
	g.labelPos[label] = len(g.current.Instructions)
}

func (g *Generator) allocateRegister() int {
	r := g.nextReg
	g.nextReg++
	return r
}

func (g *Generator) newLabel(prefix string) string {
	g.labelN++
	return fmt.Sprintf("%s_%d", prefix, g.labelN)
}

// lower dispatches on node's concrete type, emitting instructions into the
// current block. Node kinds with no lowering rule in spec §4.5 (strings,
// arrays, objects, access, assignment, ranges, floats, and BinOp kinds
// other than Add) return an error rather than silently doing nothing —
// those instruction slots are reserved but unused by this back end.
func (g *Generator) lower(n ast.Node) error {
	switch node := n.(type) {
	case *ast.Integer:
		g.emit(Instruction{Op: OpLoadI, Val: value.NewInt(node.Value)})
		return nil
	case *ast.Identifier:
		g.emit(Instruction{Op: OpLoadV, Name: node.Name})
		return nil
	case *ast.VarDeclaration:
		if node.Init != nil {
			if err := g.lower(node.Init); err != nil {
				return errors.Wrapf(err, "lowering initializer for %q", node.Name)
			}
		} else {
			g.emit(Instruction{Op: OpLoadI, Val: value.Undef})
		}
		g.emit(Instruction{Op: OpStoreV, Name: node.Name})
		return nil
	case *ast.BinOp:
		if node.Op != ast.Add {
			return errors.Errorf("bytecode generator: operator %v is not lowered", node.Op)
		}
		if err := g.lower(node.Left); err != nil {
			return errors.Wrap(err, "lowering left operand")
		}
		reg := g.allocateRegister()
		g.emit(Instruction{Op: OpStore, Reg: reg})
		if err := g.lower(node.Right); err != nil {
			return errors.Wrap(err, "lowering right operand")
		}
		g.emit(Instruction{Op: OpAdd, Reg: reg})
		return nil
	case *ast.FunctionDeclaration:
		return g.lowerFunction(node.Name, node.Params, node.Body)
	case *ast.FunctionCall:
		// Per §4.5: compile each argument and push it, in argument order.
		// Combined with the callee prologue's own front-to-back pop, a call
		// with more than one argument ends up binding parameters to
		// arguments in reverse order (see DESIGN.md) — the lowering rule as
		// literally specified, not "fixed" here.
		for i, arg := range node.Args {
			if err := g.lower(arg); err != nil {
				return errors.Wrapf(err, "lowering argument %d of call to %q", i, node.Callee)
			}
			g.emit(Instruction{Op: OpPush})
		}
		g.emit(Instruction{Op: OpCall, Name: node.Callee})
		return nil
	case *ast.Return:
		if err := g.lower(node.Inner); err != nil {
			return errors.Wrap(err, "lowering return expression")
		}
		g.emit(Instruction{Op: OpRet})
		return nil
	case *ast.If:
		return g.lowerIf(node)
	case *ast.ScopeStatement:
		for _, stmt := range node.Statements {
			if err := g.lower(stmt); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("bytecode generator: %T is not lowered", n)
	}
}

// lowerFunction starts a new Returnable block named after the function,
// pops each declared parameter off the pre-call argument stack into its
// name, then lowers the body.
func (g *Generator) lowerFunction(name string, params []*ast.FunctionParameter, body ast.Node) error {
	outer, outerLabelPos, outerPending := g.current, g.labelPos, g.pending
	g.startBlock(name, Returnable)

	for _, p := range params {
		g.emit(Instruction{Op: OpPop})
		g.emit(Instruction{Op: OpStoreV, Name: p.Name})
	}
	if err := g.lower(body); err != nil {
		return errors.Wrapf(err, "lowering function %q", name)
	}
	if err := g.endBlock(); err != nil {
		return err
	}

	g.current, g.labelPos, g.pending = outer, outerLabelPos, outerPending
	return nil
}

// lowerIf compiles the condition into the accumulator, jumps to the else
// label if falsy, lowers the then-branch, jumps to the end, then lowers
// the else-branch at the else label — the shape spec.md §9 resolves the
// If/ElseIf/Else open question with.
func (g *Generator) lowerIf(node *ast.If) error {
	if node.Decl != nil {
		return errors.New("bytecode generator: if-condition declarations are not lowered")
	}
	elseLabel := g.newLabel("else")
	endLabel := g.newLabel("endif")

	if err := g.lower(node.Cond); err != nil {
		return errors.Wrap(err, "lowering if-condition")
	}
	g.emitJump(OpJumpIfFalse, elseLabel)
	if err := g.lower(node.Then); err != nil {
		return errors.Wrap(err, "lowering if-branch")
	}
	g.emitJump(OpJump, endLabel)
	g.markLabel(elseLabel)
	if node.Else != nil {
		if err := g.lower(node.Else); err != nil {
			return errors.Wrap(err, "lowering else-branch")
		}
	}
	g.markLabel(endLabel)
	return nil
}
