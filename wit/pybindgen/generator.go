// Package pybindgen translates a resolved WIT interface graph into
// Python source that speaks the WebAssembly Component Model canonical ABI
// against a dynamically typed host runtime.
package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// Option configures the generator. Grounded on the donor's functional-option
// pattern in wit/bindgen (GeneratedBy, World, PackageRoot, ...).
type Option func(*options)

type options struct {
	generatedBy   string
	outputModule  string
	runtimeModule string
}

// GeneratedBy sets the attribution comment emitted at the top of every
// generated file.
func GeneratedBy(tool string) Option {
	return func(o *options) { o.generatedBy = tool }
}

// OutputModule overrides the base name used for generated file pairs
// (defaults to the sanitized world name).
func OutputModule(name string) Option {
	return func(o *options) { o.outputModule = name }
}

// RuntimeModule overrides the module path generated code imports the
// canonical-ABI host runtime facade from (defaults to "wasm_host_runtime").
func RuntimeModule(module string) Option {
	return func(o *options) { o.runtimeModule = module }
}

func newOptions(opts []Option) *options {
	o := &options{runtimeModule: "wasm_host_runtime"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// genContext is the one generation context for a single interface,
// per-direction, per spec.md §5: it owns the sizes table, dependency
// ledger, union-representation table, and import/export registries for
// exactly one interface and is never shared across interfaces.
type genContext struct {
	iface *wit.Interface
	opts  *options

	sizes *sizeAlign
	deps  *deps

	// names memoizes the sanitized Python name for every declared TypeDef,
	// computed once the first time it's referenced.
	names map[*wit.TypeDef]string

	// unionReprs records the raw/wrapped decision for every union,
	// keyed by the union's sanitized type name, computed once at
	// declaration time and consulted by the ABI engine thereafter.
	unionReprs map[string]unionRepr

	imports importRegistry
	exports exportRegistry
}

func newGenContext(iface *wit.Interface, opts *options) *genContext {
	return &genContext{
		iface:      iface,
		opts:       opts,
		sizes:      newSizeAlign(iface),
		deps:       newDeps(),
		names:      make(map[*wit.TypeDef]string),
		unionReprs: make(map[string]unionRepr),
	}
}

// typeName returns the memoized, sanitized Python class/alias name for a
// declared TypeDef.
func (g *genContext) typeName(t *wit.TypeDef) string {
	if name, ok := g.names[t]; ok {
		return name
	}
	name := ExportedName(t.TypeName())
	g.names[t] = name
	return name
}

// typeRef returns the Python type expression to use at a reference site for
// t: the sanitized name for a declared (named) type, or an inline
// expression built from primitives/typing generics for an anonymous
// compound type, or a Python builtin name for a primitive leaf type.
func (g *genContext) typeRef(t wit.Type) string {
	switch prim := t.(type) {
	case *wit.TypeDef:
		if prim.Name != nil {
			return g.typeName(prim)
		}
		return g.kindRef(prim.Kind)
	case wit.Bool:
		return "bool"
	case wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32, wit.S64, wit.U64:
		return "int"
	case wit.F32, wit.F64:
		return "float"
	case wit.Char, wit.String:
		return "str"
	default:
		return "object"
	}
}

// kindRef returns a Python type expression for an anonymous (unnamed)
// compound TypeDefKind, recursing structurally since these never get their
// own top-level declaration (spec.md §9: "no structural recursion into
// type bodies occurs during emission" applies to *named* types only).
func (g *genContext) kindRef(kind wit.TypeDefKind) string {
	switch k := kind.(type) {
	case *wit.List:
		g.deps.ImportFrom("typing", "List")
		return fmt.Sprintf("List[%s]", g.typeRef(k.Type))
	case *wit.Tuple:
		g.deps.ImportFrom("typing", "Tuple")
		elems := make([]string, len(k.Types))
		for i, et := range k.Types {
			elems[i] = g.typeRef(et)
		}
		return fmt.Sprintf("Tuple[%s]", joinComma(elems))
	case *wit.Option:
		g.deps.ImportFrom("typing", "Optional")
		return fmt.Sprintf("Optional[%s]", g.typeRef(k.Type))
	case *wit.Result:
		g.deps.needsResult = true
		ok, errT := "None", "None"
		if k.OK != nil {
			ok = g.typeRef(k.OK)
		}
		if k.Err != nil {
			errT = g.typeRef(k.Err)
		}
		return fmt.Sprintf("Result[%s, %s]", ok, errT)
	case *wit.TypeDef:
		return g.typeRef(k)
	default:
		if prim, ok := kind.(wit.Type); ok {
			return g.typeRef(prim)
		}
		return "object"
	}
}

// importRegistry accumulates host-callable wrapper sources for one
// interface's imported functions, per spec.md §3's "Import / Export
// registries".
type importRegistry struct {
	wrappers []importWrapper
}

type importWrapper struct {
	name          string // sanitized function name
	wasmSig       string // wasm-level signature, for documentation/linker registration
	hostSig       string // host-level signature
	protocolStub  string // abstract method body for the Protocol class
	linkerBody    string // body of add_<iface>_to_linker's registration for this function
	wrapperSource string // the full lowering/calling wrapper function source
}

// exportRegistry accumulates host wrapper bodies plus the table of guest
// exports table fields (memory, realloc, each function, each post-return
// trampoline) that must be pulled out and type-checked during __init__.
type exportRegistry struct {
	fields   []exportField
	wrappers []string
}

type exportField struct {
	name     string // sanitized field name
	wasmType string // expected runtime type tag, e.g. "Func" or "Memory"
}
