// Package lang wires together the parser and the tree-walking interpreter
// behind a small host-facing façade, the same role db47h-ngaro/lang/retro
// plays for its target language. It does not use the bytecode back end.
package lang

import (
	"io"

	"github.com/pkg/errors"

	"github.com/Yemiez/ysen/interp"
	"github.com/Yemiez/ysen/parser"
	"github.com/Yemiez/ysen/value"
)

// SourceReader loads named source text for EvalFile. The host owns how
// "named" resolves to bytes (filesystem, embed.FS, a network fetch); ysen
// only needs the two-return present/absent contract.
type SourceReader interface {
	ReadSource(name string) (src string, ok bool, err error)
}

// ScriptEnvironment is a single, reusable script execution context: one
// Interpreter (so top-level variables and functions persist across
// sequential Eval calls, matching a REPL's expectations) plus the built-ins
// every ysen script gets for free.
type ScriptEnvironment struct {
	it     *interp.Interpreter
	reader SourceReader
	out    io.Writer
}

// Option configures a ScriptEnvironment at construction time.
type Option func(*ScriptEnvironment) error

// WithSourceReader installs the collaborator EvalFile delegates to.
func WithSourceReader(r SourceReader) Option {
	return func(env *ScriptEnvironment) error { env.reader = r; return nil }
}

// WithOutput sets the writer `print` writes to. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(env *ScriptEnvironment) error { env.out = w; return nil }
}

// New builds a ScriptEnvironment with its built-ins installed.
func New(opts ...Option) (*ScriptEnvironment, error) {
	env := &ScriptEnvironment{it: interp.New(), out: io.Discard}
	for _, opt := range opts {
		if err := opt(env); err != nil {
			return nil, errors.Wrap(err, "applying script environment option")
		}
	}
	env.installBuiltins()
	return env, nil
}

// Eval parses and evaluates src against this environment's persistent
// global scope.
func (env *ScriptEnvironment) Eval(src string) (value.Value, error) {
	prog, err := parser.Parse(src)
	if err != nil {
		return value.Undef, errors.Wrap(err, "parsing source")
	}
	v, err := env.it.Eval(prog)
	if err != nil {
		return value.Undef, errors.Wrap(err, "evaluating source")
	}
	return v, nil
}

// EvalFile loads named via the configured SourceReader and evaluates it.
// The bool return reports whether the source was found at all, per §6's
// host-boundary contract; an EvalFile call with no SourceReader configured
// is itself an error, not a "not found".
func (env *ScriptEnvironment) EvalFile(name string) (value.Value, bool, error) {
	if env.reader == nil {
		return value.Undef, false, errors.New("script environment: no SourceReader configured")
	}
	src, ok, err := env.reader.ReadSource(name)
	if err != nil {
		return value.Undef, false, errors.Wrapf(err, "reading %q", name)
	}
	if !ok {
		return value.Undef, false, nil
	}
	v, err := env.Eval(src)
	return v, true, err
}

// Global exposes the underlying interpreter's global scope, for hosts that
// want to install additional native functions beyond the three built-ins.
func (env *ScriptEnvironment) Global() *interp.Scope { return env.it.Global() }
