package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
	"github.com/component-model/witpy/wit/ordered"
)

// Output is the result of translating a resolved WIT graph: a set of
// generated Python source files keyed by file name.
type Output struct {
	Files map[string][]byte
}

// Generate translates every world in res into a pair of Python source files,
// one per direction (spec.md §6's "a single host-language source file... per
// direction"): "<name>_import.py" holds the Protocol/linker wiring for
// interfaces the world imports (host-implemented, guest-called), and
// "<name>_export.py" holds the wrapper classes for interfaces the world
// exports (guest-implemented, host-called). Interfaces are the only
// supported world items; bare functions or types attached directly to a
// world are out of scope (spec.md §6: input is interface objects) and are
// skipped.
func Generate(res *wit.Resolve, opts ...Option) (*Output, error) {
	o := newOptions(opts)
	out := &Output{Files: make(map[string][]byte)}

	for _, w := range res.Worlds {
		name := o.outputModule
		if name == "" {
			name = ModuleName(w.Name)
		}

		importIfaces := worldItemInterfaces(w.Imports)
		exportIfaces := worldItemInterfaces(w.Exports)

		importSrc, err := generateDirectionFile(o, w.Name, importIfaces, wit.Imported)
		if err != nil {
			return nil, fmt.Errorf("translating world %s imports: %w", w.Name, err)
		}
		exportSrc, err := generateDirectionFile(o, w.Name, exportIfaces, wit.Exported)
		if err != nil {
			return nil, fmt.Errorf("translating world %s exports: %w", w.Name, err)
		}

		out.Files[name+"_import.py"] = []byte(importSrc)
		out.Files[name+"_export.py"] = []byte(exportSrc)
	}

	return out, nil
}

// worldItemInterfaces extracts the interfaces referenced by a world's
// import or export item map, in declaration order.
func worldItemInterfaces(items ordered.Map[string, wit.WorldItem]) []*wit.Interface {
	var ifaces []*wit.Interface
	items.All()(func(_ string, item wit.WorldItem) bool {
		if ref, ok := item.(*wit.InterfaceRef); ok {
			ifaces = append(ifaces, ref.Interface)
		}
		return true
	})
	return ifaces
}

// generateDirectionFile builds one complete Python source file for every
// interface of a single direction, in the strict section order of spec.md
// §4.5.
func generateDirectionFile(o *options, worldName string, ifaces []*wit.Interface, dir wit.Direction) (string, error) {
	fileDeps := newDeps()
	typeDecls := newBuffer()
	var sections []string

	for _, iface := range ifaces {
		g := newGenContext(iface, o)

		var declOrder []*wit.TypeDef
		iface.TypeDefs.All()(func(_ string, t *wit.TypeDef) bool {
			declOrder = append(declOrder, t)
			return true
		})
		for _, t := range declOrder {
			if err := g.emitTypeDecl(typeDecls, t); err != nil {
				return "", err
			}
		}

		var functions []*wit.Function
		iface.Functions.All()(func(_ string, f *wit.Function) bool {
			functions = append(functions, f)
			return true
		})
		for _, f := range functions {
			if err := g.generateFunction(f, dir); err != nil {
				return "", err
			}
		}

		mergeDeps(fileDeps, g.deps)

		switch dir {
		case wit.Imported:
			sections = append(sections, renderImportInterface(g))
		case wit.Exported:
			sections = append(sections, renderExportInterface(g, o))
		}
	}

	b := newBuffer()
	if o.generatedBy != "" {
		b.Printf("# Code generated by %s. DO NOT EDIT.\n\n", o.generatedBy)
	}

	if needsAnyBitcast(fileDeps) {
		fileDeps.Import("struct")
	}
	if fileDeps.needsResult {
		fileDeps.ImportFrom("dataclasses", "dataclass")
		fileDeps.ImportFrom("typing", "Generic")
		fileDeps.ImportFrom("typing", "TypeVar")
		fileDeps.ImportFrom("typing", "Union")
	}
	writeDepsImports(b, fileDeps)
	b.Printf("import %s\n", o.runtimeModule)
	b.NewLine()

	b.Printf("try:\n")
	b.Indent()
	b.Printf("from typing import Protocol\n")
	b.Dedent()
	b.Printf("except ImportError:\n")
	b.Indent()
	b.Printf("class Protocol:\n")
	b.Indent()
	b.Printf("pass\n")
	b.Dedent()
	b.Dedent()
	b.NewLine()

	if fileDeps.needsTTypeVar {
		b.Printf("from typing import TypeVar\n")
		b.Printf("T = TypeVar(\"T\")\n")
		b.NewLine()
	}

	writeIntrinsics(b, fileDeps)

	b.WriteString(typeDecls.String())

	if len(sections) == 0 {
		b.Printf("class %s:\n", ExportedName(worldName))
		b.Indent()
		b.Printf("pass\n")
		b.Dedent()
		b.NewLine()
	} else {
		for _, s := range sections {
			b.WriteString(s)
		}
	}

	return b.String(), nil
}

// mergeDeps folds src's needs-flags and import sets into dst, used to
// combine the per-interface dependency ledgers built while walking a
// world's interfaces into one file-level ledger for the finisher.
func mergeDeps(dst, src *deps) {
	dst.needsClamp = dst.needsClamp || src.needsClamp
	dst.needsLoad = dst.needsLoad || src.needsLoad
	dst.needsStore = dst.needsStore || src.needsStore
	dst.needsValidateGuestChar = dst.needsValidateGuestChar || src.needsValidateGuestChar
	dst.needsI32ToF32 = dst.needsI32ToF32 || src.needsI32ToF32
	dst.needsF32ToI32 = dst.needsF32ToI32 || src.needsF32ToI32
	dst.needsI64ToF64 = dst.needsI64ToF64 || src.needsI64ToF64
	dst.needsF64ToI64 = dst.needsF64ToI64 || src.needsF64ToI64
	dst.needsListCanonLower = dst.needsListCanonLower || src.needsListCanonLower
	dst.needsListCanonLift = dst.needsListCanonLift || src.needsListCanonLift
	dst.needsEncodeUTF8 = dst.needsEncodeUTF8 || src.needsEncodeUTF8
	dst.needsDecodeUTF8 = dst.needsDecodeUTF8 || src.needsDecodeUTF8
	dst.needsResult = dst.needsResult || src.needsResult
	dst.needsTTypeVar = dst.needsTTypeVar || src.needsTTypeVar

	src.imports.All()(func(module string, _ struct{}) bool {
		dst.Import(module)
		return true
	})
	src.fromImports.All()(func(module string, symbols *ordered.Map[string, struct{}]) bool {
		symbols.All()(func(symbol string, _ struct{}) bool {
			dst.ImportFrom(module, symbol)
			return true
		})
		return true
	})
}

func writeDepsImports(b *buffer, d *deps) {
	d.imports.All()(func(module string, _ struct{}) bool {
		b.Printf("import %s\n", module)
		return true
	})
	d.fromImports.All()(func(module string, symbols *ordered.Map[string, struct{}]) bool {
		var names []string
		symbols.All()(func(symbol string, _ struct{}) bool {
			names = append(names, symbol)
			return true
		})
		b.Printf("from %s import %s\n", module, joinComma(names))
		return true
	})
}

// renderImportInterface builds the Protocol class and add_<name>_to_linker
// free function for one guest-import interface, per spec.md §4.5.
func renderImportInterface(g *genContext) string {
	name := interfaceName(g.iface)
	b := newBuffer()

	b.Printf("class %sHost(Protocol):\n", name)
	b.Indent()
	if len(g.imports.wrappers) == 0 {
		b.Printf("pass\n")
	}
	for _, w := range g.imports.wrappers {
		b.Printf("%s\n", w.protocolStub)
	}
	b.Dedent()
	b.NewLine()

	b.Printf("def add_%s_to_linker(linker, store, host):\n", ModuleName(name))
	b.Indent()
	for _, w := range g.imports.wrappers {
		b.WriteString(w.linkerBody)
		b.Printf("linker.define_func(store, %q, %q, %s)\n", rawInterfaceName(g.iface), w.name, w.name)
	}
	if len(g.imports.wrappers) == 0 {
		b.Printf("pass\n")
	}
	b.Dedent()
	b.NewLine()

	return b.String()
}

// renderExportInterface builds the host wrapper class for one guest-export
// interface, per spec.md §4.5: typed fields for memory, realloc, each
// exported function, and each post-return trampoline, an __init__ that
// instantiates the linker against the module and asserts each required
// export's runtime type, followed by the wrapper methods.
func renderExportInterface(g *genContext, o *options) string {
	name := interfaceName(g.iface)
	b := newBuffer()

	b.Printf("class %s:\n", name)
	b.Indent()
	b.Printf("def __init__(self, store, module, linker):\n")
	b.Indent()
	b.Printf("instance = linker.instantiate(store, module)\n")
	b.Printf("exports = instance.exports(store)\n")
	b.Printf("self.memory = exports[\"memory\"]\n")
	b.Printf("assert isinstance(self.memory, %s.Memory)\n", o.runtimeModule)
	b.Printf("self.realloc = exports[\"cabi_realloc\"]\n")
	b.Printf("assert isinstance(self.realloc, %s.Func)\n", o.runtimeModule)
	for _, f := range g.exports.fields {
		b.Printf("self._%s = exports[%q]\n", f.name, f.name)
		b.Printf("assert isinstance(self._%s, %s.%s)\n", f.name, o.runtimeModule, f.wasmType)
	}
	b.Dedent()
	b.NewLine()

	for _, w := range g.exports.wrappers {
		b.WriteString(w)
	}
	if len(g.exports.wrappers) == 0 {
		b.Printf("pass\n")
	}
	b.Dedent()
	b.NewLine()

	return b.String()
}

func interfaceName(iface *wit.Interface) string {
	if iface.Name == nil {
		return "Anonymous"
	}
	return ExportedName(*iface.Name)
}

func rawInterfaceName(iface *wit.Interface) string {
	if iface.Name == nil {
		return ""
	}
	return *iface.Name
}
