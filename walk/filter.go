package walk

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is what a filter expression sees for each candidate file. Paths are
// root-relative with forward slashes. Size is -1 when selecting snippet
// files.
type Env struct {
	Path string `expr:"path"`
	Name string `expr:"name"`
	Dir  string `expr:"dir"`
	Ext  string `expr:"ext"`
	Size int64  `expr:"size"`
}

// Filter is a compiled boolean expression over Env, for example
//
//	!(dir startsWith "Drivers/") && ext != ".h"
type Filter struct {
	src string
	prg *vm.Program
}

func NewFilter(src string) (*Filter, error) {
	prg, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return &Filter{src: src, prg: prg}, nil
}

func (f *Filter) String() string {
	return f.src
}

// Match evaluates the filter. A nil filter matches everything.
func (f *Filter) Match(env Env) (bool, error) {
	if f == nil {
		return true, nil
	}
	out, err := expr.Run(f.prg, env)
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", f.src, env.Path, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
