package pybindgen

import "github.com/component-model/witpy/wit/ordered"

// deps is the dependency ledger: a set of boolean intrinsic flags plus an
// ordered import table, accumulated as emission proceeds and rendered once
// by the finisher. Grounded on the donor's per-file Imports map
// (internal/go/gen/package.go's File.Imports), generalized from Go's single
// import-path convention to Python's import/from-import duality.
type deps struct {
	// imports holds `import module` entries with no symbol list, in
	// first-registration order.
	imports *ordered.Map[string, struct{}]

	// fromImports holds `from module import symbol, ...` entries; the
	// inner set is itself insertion-ordered so generated code is stable
	// across runs.
	fromImports *ordered.Map[string, *ordered.Map[string, struct{}]]

	needsClamp             bool
	needsLoad              bool
	needsStore             bool
	needsValidateGuestChar bool
	needsI32ToF32          bool
	needsF32ToI32          bool
	needsI64ToF64          bool
	needsF64ToI64          bool
	needsListCanonLower    bool
	needsListCanonLift     bool
	needsEncodeUTF8        bool
	needsDecodeUTF8        bool
	needsResult            bool
	needsTTypeVar          bool
}

func newDeps() *deps {
	return &deps{
		imports:     &ordered.Map[string, struct{}]{},
		fromImports: &ordered.Map[string, *ordered.Map[string, struct{}]]{},
	}
}

// Import registers a bare `import module` dependency. Idempotent.
func (d *deps) Import(module string) {
	if _, ok := d.imports.GetOK(module); !ok {
		d.imports.Set(module, struct{}{})
	}
}

// ImportFrom registers `from module import symbol`. Idempotent; symbols
// for a given module accumulate into an insertion-ordered set.
func (d *deps) ImportFrom(module, symbol string) {
	symbols, ok := d.fromImports.GetOK(module)
	if !ok {
		symbols = &ordered.Map[string, struct{}]{}
		d.fromImports.Set(module, symbols)
	}
	symbols.Set(symbol, struct{}{})
}

// bitcastFlag sets the needs-flag for one of the eight canonical-ABI
// bitcast intrinsics, keyed by the instruction name the ABI engine uses.
func (d *deps) bitcastFlag(name string) {
	switch name {
	case "i32_to_f32":
		d.needsI32ToF32 = true
	case "f32_to_i32":
		d.needsF32ToI32 = true
	case "i64_to_f64":
		d.needsI64ToF64 = true
	case "f64_to_i64":
		d.needsF64ToI64 = true
	}
}
