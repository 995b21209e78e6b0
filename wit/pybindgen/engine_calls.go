package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// flatCType names the load/store ctype for one flattened canonical-ABI
// slot, per spec.md §4.4's "Loads/stores" instruction.
func flatCType(t wit.Type) string {
	switch t.(type) {
	case wit.S64:
		return "\"s64\""
	case wit.U64:
		return "\"u64\""
	case wit.F32:
		return "\"f32\""
	case wit.F64:
		return "\"f64\""
	default:
		return "\"u32\""
	}
}

// loadFlat emits one load() instruction per flattened slot of t starting at
// base, returning the bound operand names, for use as the Lift operands of
// a compound value read out of linear memory (a list element, a record
// field pulled through a pointer).
func (e *engine) loadFlat(t wit.Type, base string) []string {
	e.markMemory()
	e.gen.deps.needsLoad = true
	flat := t.Flat()
	if len(flat) == 0 {
		flat = []wit.Type{wit.U32{}}
	}
	operands := make([]string, len(flat))
	offset := uintptr(0)
	for i, ft := range flat {
		name := e.tmp("v")
		e.emit("%s = load(%s, memory, caller, %s, %d)\n", name, flatCType(ft), base, offset)
		// load()'s signature is (ctype, memory, caller, ptr, offset); the
		// ctype argument above is positionally first to match that order.
		operands[i] = name
		offset += ft.Size()
	}
	return operands
}

// storeFlat emits one store() instruction per operand at sequential
// offsets from base, per spec.md §4.4's "Loads/stores" instruction, used
// to write a lowered compound value's flattened operands into memory (a
// list element, a record field reached through a pointer).
func (e *engine) storeFlat(t wit.Type, base string, operands []string) {
	e.markMemory()
	e.gen.deps.needsStore = true
	flat := t.Flat()
	if len(flat) == 0 {
		flat = []wit.Type{wit.U32{}}
	}
	offset := uintptr(0)
	for i, ft := range flat {
		if i < len(operands) {
			e.emit("store(%s, memory, caller, %s, %d, %s)\n", flatCType(ft), base, offset, operands[i])
		}
		offset += ft.Size()
	}
}

// Malloc emits an allocator call, per spec.md §4.4's "Malloc" instruction.
func (e *engine) Malloc(size, align uintptr) string {
	e.markRealloc("realloc")
	p := e.tmp("p")
	e.emit("%s = realloc(caller, 0, 0, %d, %d)\n", p, align, size)
	e.emit("assert isinstance(%s, int)\n", p)
	return p
}

// CallWasm emits a call into the guest, asserting each raw ABI-level
// return is the host type the canonical ABI promises (int for i32/i64,
// float for f32/f64), per spec.md §4.4's "Calls" instruction.
func (e *engine) CallWasm(name string, rets []wit.Type, args []string) []string {
	results := make([]string, len(rets))
	for i := range results {
		results[i] = e.tmp(fmt.Sprintf("ret%d", i))
	}
	e.emit("%s = self._%s(caller, %s)\n", joinAssignTargets(results), name, joinComma(args))
	for i, rt := range rets {
		switch rt.(type) {
		case wit.F32, wit.F64:
			e.emit("assert isinstance(%s, float)\n", results[i])
		default:
			e.emit("assert isinstance(%s, int)\n", results[i])
		}
	}
	return results
}

// CallInterface emits a call into the user-supplied host implementation
// object, per spec.md §4.4's "Calls" instruction.
func (e *engine) CallInterface(name string, results []string, args []string) {
	e.emit("%s = host.%s(%s)\n", joinAssignTargets(results), name, joinComma(args))
}

func joinAssignTargets(names []string) string {
	if len(names) == 0 {
		return "_"
	}
	return joinComma(names)
}

// emitPostReturn emits the post-return cleanup call an exported function's
// canonical ABI requires, per spec.md §4.4's "Return" instruction. The
// caller records the required trampoline on the export registry.
func (e *engine) emitPostReturn(funcName string, retPtr string) {
	e.emit("self._cabi_post_%s(caller, %s)\n", funcName, retPtr)
}
