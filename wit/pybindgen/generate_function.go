package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// generateFunction builds the host wrapper for one freestanding function in
// the given direction, registering its source into the import or export
// registry as appropriate. Only freestanding functions are supported
// (spec.md §9: "method-like kinds are reserved for future extension").
func (g *genContext) generateFunction(f *wit.Function, dir wit.Direction) error {
	if !f.IsFreestanding() {
		return fmt.Errorf("translating function %s: unsupported function kind %T", f.Name, f.Kind)
	}

	switch dir {
	case wit.Imported:
		return g.generateLinkerTrampoline(f)
	case wit.Exported:
		return g.generateGuestCallWrapper(f)
	default:
		return fmt.Errorf("translating function %s: unknown direction %v", f.Name, dir)
	}
}

// generateGuestCallWrapper emits a host-callable wrapper for a function the
// guest exports: it lowers host argument values into linear memory, invokes
// the guest's wasm export, and lifts the guest's results back to host
// values. Registered on the export registry (spec.md §4.5's per-guest-export
// wrapper class).
func (g *genContext) generateGuestCallWrapper(f *wit.Function) error {
	name := FieldName(f.Name)
	e := newEngine(g, LowerArgsLiftResults, f.Params)

	argNames := make([]string, len(f.Params))
	var wasmArgs []string
	for i, p := range f.Params {
		argNames[i] = FieldName(p.Name)
		wasmArgs = append(wasmArgs, e.Lower(p.Type, argNames[i])...)
	}

	retTypes := make([]wit.Type, len(f.Results))
	for i, r := range f.Results {
		retTypes[i] = r.Type
	}
	rets := e.CallWasm(name, flattenAll(retTypes), wasmArgs)

	var retExprs []string
	idx := 0
	for _, rt := range f.Results {
		n := len(rt.Type.Flat())
		if n == 0 {
			n = 1
		}
		retExprs = append(retExprs, e.Lift(rt.Type, rets[idx:idx+n]...))
		idx += n
	}

	if functionNeedsPostReturn(f) {
		e.emitPostReturn(name, rets[0])
		g.exports.fields = append(g.exports.fields, exportField{
			name:     fmt.Sprintf("cabi_post_%s", name),
			wasmType: "Func",
		})
	}
	e.emitReturn(retExprs)

	sig := fmt.Sprintf("def %s(self, caller%s):", name, paramSuffix(argNames))
	body := e.b.String()

	wrapper := &builder{buffer: newBuffer()}
	wrapper.Printf("%s\n", sig)
	wrapper.Indent()
	wrapper.Printf("%s", body)
	wrapper.Dedent()

	g.exports.wrappers = append(g.exports.wrappers, wrapper.String())
	g.exports.fields = append(g.exports.fields, exportField{name: name, wasmType: "Func"})
	return nil
}

// generateLinkerTrampoline emits a guest-callable trampoline for a function
// the host implements: it lifts arguments out of the guest's call, calls
// the user-supplied host implementation object, and lowers the result back
// for return to the guest. Registered on the import registry (spec.md
// §4.5's per-guest-import Protocol class and add_<name>_to_linker).
func (g *genContext) generateLinkerTrampoline(f *wit.Function) error {
	name := FieldName(f.Name)
	e := newEngine(g, LiftArgsLowerResults, f.Params)

	var flatArgs []string
	var argExprs []string
	for _, p := range f.Params {
		n := len(p.Type.Flat())
		if n == 0 {
			n = 1
		}
		argNames := make([]string, n)
		for i := range argNames {
			argNames[i] = e.tmp("a")
			flatArgs = append(flatArgs, argNames[i])
		}
		argExprs = append(argExprs, e.Lift(p.Type, argNames...))
	}

	var hostResults []string
	for i := range f.Results {
		hostResults = append(hostResults, e.tmp(fmt.Sprintf("out%d", i)))
	}
	hostFn := f.BaseName()
	e.CallInterface(hostFn, hostResults, argExprs)

	var retOperands []string
	for i, r := range f.Results {
		retOperands = append(retOperands, e.Lower(r.Type, hostResults[i])...)
	}

	e.emitReturn(retOperands)

	sig := fmt.Sprintf("def %s(caller%s):", name, paramSuffix(flatArgs))
	wrapper := &builder{buffer: newBuffer()}
	wrapper.Printf("%s\n", sig)
	wrapper.Indent()
	wrapper.Printf("%s", e.b.String())
	wrapper.Dedent()

	protoSig := fmt.Sprintf("def %s(self%s): ...", name, paramSuffix(flatArgs))

	g.imports.wrappers = append(g.imports.wrappers, importWrapper{
		name:          name,
		protocolStub:  protoSig,
		linkerBody:    wrapper.String(),
		wrapperSource: wrapper.String(),
	})
	return nil
}

// functionNeedsPostReturn reports whether f's canonical ABI requires a
// post-return trampoline: any function whose results carry a pointer
// (a lowered string or list leaves host-owned guest memory to free).
func functionNeedsPostReturn(f *wit.Function) bool {
	for _, r := range f.Results {
		if wit.HasPointer(r.Type) {
			return true
		}
	}
	return false
}

func flattenAll(types []wit.Type) []wit.Type {
	var out []wit.Type
	for _, t := range types {
		out = append(out, t.Flat()...)
	}
	return out
}

func paramSuffix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return ", " + joinComma(names)
}

// emitReturn emits the function's return statement with 0, 1, or n
// operands as a tuple, per spec.md §4.4's "Return" instruction.
func (e *engine) emitReturn(exprs []string) {
	switch len(exprs) {
	case 0:
		e.emit("return\n")
	case 1:
		e.emit("return %s\n", exprs[0])
	default:
		e.emit("return (%s)\n", joinComma(exprs))
	}
}
