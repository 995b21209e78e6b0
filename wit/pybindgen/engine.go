package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// Mode selects which side of a function boundary the ABI engine is
// generating code for, per spec.md §3's Direction/mode reversal: a
// guest-import wrapper lowers arguments and lifts results; a guest-export
// trampoline lifts arguments and lowers the result.
type Mode int

const (
	// LowerArgsLiftResults is used for host-callable wrappers around a
	// guest import: host values in, lowered to the guest; guest return
	// lifted back to host values.
	LowerArgsLiftResults Mode = iota
	// LiftArgsLowerResults is used for guest-callable export trampolines:
	// guest values in, lifted to host values; host return lowered back
	// to the guest.
	LiftArgsLowerResults
)

// block is one completed sub-block of emitted statements — the body of a
// variant/union/option/result arm, or a list-iteration body — captured so
// the enclosing Lift/Lower instruction can splice it back in, per spec.md
// §4.4's block-stack discipline.
type block struct {
	source       string
	exitOperands []string
}

// engine is the per-function ABI engine state, per spec.md §4.4. One
// engine is constructed per function; it holds a transient reference to
// the parent genContext only to mutate the dependency ledger and read the
// (read-only) sizes and union-representation tables — no back-edges are
// stored beyond the lifetime of one function's generation.
type engine struct {
	gen *genContext
	b   *buffer

	mode Mode

	localSeq map[string]int // next suffix to try for a given tmp prefix
	reserved map[string]bool
	payloads []string // payload-stack: names reserved for the enclosing arm/iteration
	blocks   []block  // completed sub-blocks, consumed LIFO
	srcStack []*buffer
	operands []string // the virtual operand stack

	needsMemory  bool
	needsRealloc string // the name of the required allocator export, or "" if none
}

func newEngine(gen *genContext, mode Mode, params []wit.Param) *engine {
	e := &engine{
		gen:      gen,
		b:        newBuffer(),
		mode:     mode,
		localSeq: make(map[string]int),
		reserved: make(map[string]bool),
	}
	for _, reserved := range []string{"len", "base", "i"} {
		e.reserved[reserved] = true
	}
	for _, p := range params {
		e.reserved[FieldName(p.Name)] = true
	}
	return e
}

// tmp returns an unused local name of the form prefix or prefix{n}.
func (e *engine) tmp(prefix string) string {
	if !e.reserved[prefix] {
		e.reserved[prefix] = true
		return prefix
	}
	n := e.localSeq[prefix]
	for {
		n++
		name := fmt.Sprintf("%s%d", prefix, n)
		if !e.reserved[name] {
			e.reserved[name] = true
			e.localSeq[prefix] = n
			return name
		}
	}
}

// pushBlock snapshots and clears the statement buffer, per spec.md §4.4's
// block_storage stack, so a sub-block (variant arm body, list-iteration
// body) can be built in isolation and later spliced back in.
func (e *engine) pushBlock() {
	e.srcStack = append(e.srcStack, e.b)
	e.b = newBuffer()
}

// finishBlock records the current buffer's content plus the given exit
// operands as a completed block, and restores the parent buffer.
func (e *engine) finishBlock(exitOperands ...string) {
	e.blocks = append(e.blocks, block{source: e.b.String(), exitOperands: exitOperands})
	e.b = e.srcStack[len(e.srcStack)-1]
	e.srcStack = e.srcStack[:len(e.srcStack)-1]
}

// popBlocks pops the n most recently completed blocks in the order they
// were pushed (oldest of the n first), matching how a variant/union with n
// cases pushes n blocks in case order before the enclosing Lower/Lift
// consumes them.
func (e *engine) popBlocks(n int) []block {
	if len(e.blocks) < n {
		panic("BUG: block stack underflow")
	}
	start := len(e.blocks) - n
	popped := append([]block(nil), e.blocks[start:]...)
	e.blocks = e.blocks[:start]
	return popped
}

func (e *engine) pushPayload(name string) { e.payloads = append(e.payloads, name) }

func (e *engine) popPayload() string {
	if len(e.payloads) == 0 {
		panic("BUG: payload stack underflow")
	}
	name := e.payloads[len(e.payloads)-1]
	e.payloads = e.payloads[:len(e.payloads)-1]
	return name
}

func (e *engine) emit(format string, args ...any) { e.b.Printf(format, args...) }

// Lower emits the statements that write host value operand into the
// canonical-ABI representation of t, pushing and returning the resulting
// operand expression(s).
func (e *engine) Lower(t wit.Type, operand string) []string {
	switch k := unwrap(t).(type) {
	case wit.Bool:
		return []string{fmt.Sprintf("int(%s)", operand)}
	case wit.S8:
		return []string{e.clamp(operand, "-128", "127")}
	case wit.U8:
		return []string{e.clamp(operand, "0", "255")}
	case wit.S16:
		return []string{e.clamp(operand, "-32768", "32767")}
	case wit.U16:
		return []string{e.clamp(operand, "0", "65535")}
	case wit.S32:
		return []string{e.clamp(operand, "-2147483648", "2147483647")}
	case wit.U32:
		return []string{e.clamp(operand, "0", "4294967295")}
	case wit.S64:
		return []string{e.clamp(operand, "-9223372036854775808", "9223372036854775807")}
	case wit.U64:
		return []string{e.clamp(operand, "0", "18446744073709551615")}
	case wit.F32, wit.F64:
		return []string{operand}
	case wit.Char:
		return []string{fmt.Sprintf("ord(%s)", operand)}
	case wit.String:
		return e.lowerString(operand)
	case *wit.Record:
		return e.lowerRecord(k, operand)
	case *wit.Tuple:
		return e.lowerTuple(k, operand)
	case *wit.Flags:
		return e.lowerFlags(k, operand)
	case *wit.Enum:
		return []string{fmt.Sprintf("%s.value", operand)}
	case *wit.Variant:
		return e.lowerVariant(t, k, operand)
	case *wit.Union:
		return e.lowerUnion(t, k, operand, e.gen.unionReprs[e.gen.typeRef(t)])
	case *wit.Option:
		return e.lowerOption(k, operand)
	case *wit.Result:
		return e.lowerResult(t, k, operand)
	case *wit.List:
		return e.lowerList(k, operand)
	default:
		panic(fmt.Sprintf("BUG: unsupported type kind in Lower: %T", k))
	}
}

// Lift emits the statements that read a canonical-ABI representation
// (carried by operands) back into a host value of type t.
func (e *engine) Lift(t wit.Type, operands ...string) string {
	switch k := unwrap(t).(type) {
	case wit.Bool:
		v := e.tmp("v")
		e.emit("if %s == 0:\n", operands[0])
		e.b.Indent()
		e.emit("%s = False\n", v)
		e.b.Dedent()
		e.emit("elif %s == 1:\n", operands[0])
		e.b.Indent()
		e.emit("%s = True\n", v)
		e.b.Dedent()
		e.emit("else:\n")
		e.b.Indent()
		e.emit("raise ValueError(\"invalid variant for bool\")\n")
		e.b.Dedent()
		return v
	case wit.S8:
		return e.clamp(operands[0], "-128", "127")
	case wit.U8:
		return e.clamp(operands[0], "0", "255")
	case wit.S16:
		return e.clamp(operands[0], "-32768", "32767")
	case wit.U16:
		return e.clamp(operands[0], "0", "65535")
	case wit.S32:
		return operands[0]
	case wit.U32:
		return fmt.Sprintf("(%s & 0xffffffff)", operands[0])
	case wit.S64:
		return operands[0]
	case wit.U64:
		return fmt.Sprintf("(%s & 0xffffffffffffffff)", operands[0])
	case wit.F32, wit.F64:
		return operands[0]
	case wit.Char:
		e.gen.deps.needsValidateGuestChar = true
		return fmt.Sprintf("validate_guest_char(%s)", operands[0])
	case wit.String:
		return e.liftString(operands)
	case *wit.Record:
		return e.liftRecord(t, k, operands)
	case *wit.Tuple:
		return e.liftTuple(k, operands)
	case *wit.Flags:
		return e.liftFlags(k, operands)
	case *wit.Enum:
		return fmt.Sprintf("%s(%s)", e.gen.typeRef(t), operands[0])
	case *wit.Variant:
		return e.liftVariant(t, k, operands)
	case *wit.Union:
		return e.liftUnion(t, k, operands, e.gen.unionReprs[e.gen.typeRef(t)])
	case *wit.Option:
		return e.liftOption(t, k, operands)
	case *wit.Result:
		return e.liftResult(t, k, operands)
	case *wit.List:
		return e.liftList(k, operands)
	default:
		panic(fmt.Sprintf("BUG: unsupported type kind in Lift: %T", k))
	}
}

// unwrap resolves a possibly-anonymous named-type reference down to its
// underlying TypeDefKind, without following through to a sanitized name —
// the ABI engine always operates on shape, never on the declared name.
func unwrap(t wit.Type) wit.TypeDefKind {
	if td, ok := t.(*wit.TypeDef); ok {
		return unwrapKind(td.Kind)
	}
	if k, ok := t.(wit.TypeDefKind); ok {
		return k
	}
	panic(fmt.Sprintf("BUG: %T does not implement TypeDefKind", t))
}

func unwrapKind(k wit.TypeDefKind) wit.TypeDefKind {
	if td, ok := k.(*wit.TypeDef); ok {
		return unwrapKind(td.Kind)
	}
	return k
}

// clamp emits a call to the clamp intrinsic, bounding operand to [min, max].
// min and max are passed as literal text rather than a numeric type since
// the u64/s64 bounds overflow int64.
func (e *engine) clamp(operand, min, max string) string {
	e.gen.deps.needsClamp = true
	return fmt.Sprintf("clamp(%s, %s, %s)", operand, min, max)
}

// markMemory records that this function's wrapper needs access to guest
// linear memory, per spec.md §4.4's needs_memory flag.
func (e *engine) markMemory() { e.needsMemory = true }

// markRealloc records that this function's wrapper needs the named
// allocator export, per spec.md §4.4's needs_realloc flag.
func (e *engine) markRealloc(name string) { e.needsRealloc = name }
