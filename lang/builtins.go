package lang

import (
	"fmt"

	"github.com/Yemiez/ysen/internal/ngutil"
	"github.com/Yemiez/ysen/value"
)

// installBuiltins populates the global scope with the three host functions
// spec §6 names: print, to_string, to_formatted_string.
func (env *ScriptEnvironment) installBuiltins() {
	g := env.it.Global()
	out := ngutil.NewTraceWriter(env.out)

	g.Funcs["print"] = &value.Function{
		Name: "print",
		Native: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				fmt.Fprintln(out)
				return value.NewInt(0), nil
			}
			fmtArg := args[0]
			if len(args) > 1 && fmtArg.Kind != value.String {
				return value.NewInt(1), nil
			}
			if fmtArg.Kind != value.String {
				fmt.Fprintln(out, fmtArg.Formatted())
				return value.NewInt(0), nil
			}
			fmt.Fprintln(out, formatPlaceholders(fmtArg.Str, args[1:]))
			return value.NewInt(0), nil
		},
	}

	g.Funcs["to_string"] = &value.Function{
		Name: "to_string",
		Native: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.NewString(""), nil
			}
			return value.NewString(args[0].String()), nil
		},
	}

	g.Funcs["to_formatted_string"] = &value.Function{
		Name: "to_formatted_string",
		Native: func(args []value.Value) (value.Value, error) {
			if len(args) == 0 {
				return value.NewString(""), nil
			}
			return value.NewString(args[0].Formatted()), nil
		},
	}
}
