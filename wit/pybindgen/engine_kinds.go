package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// --- records, tuples, flags ---------------------------------------------

func (e *engine) lowerRecord(r *wit.Record, operand string) []string {
	if len(r.Fields) == 0 {
		return nil
	}
	tmp := e.tmp("tmp")
	e.emit("%s = %s\n", tmp, operand)
	operands := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		field := fmt.Sprintf("%s.%s", tmp, FieldName(f.Name))
		operands = append(operands, e.Lower(f.Type, field)...)
	}
	return operands
}

func (e *engine) liftRecord(t wit.Type, r *wit.Record, operands []string) string {
	className := e.gen.typeRef(t)
	if len(r.Fields) == 0 {
		return fmt.Sprintf("%s()", className)
	}
	args := make([]string, len(r.Fields))
	i := 0
	for fi, f := range r.Fields {
		n := len(f.Type.Flat())
		if n == 0 {
			n = 1
		}
		args[fi] = e.Lift(f.Type, operands[i:i+n]...)
		i += n
	}
	return fmt.Sprintf("%s(%s)", className, joinComma(args))
}

func (e *engine) lowerTuple(t *wit.Tuple, operand string) []string {
	if len(t.Types) == 0 {
		return nil
	}
	names := make([]string, len(t.Types))
	for i := range t.Types {
		names[i] = e.tmp(fmt.Sprintf("e%d", i))
	}
	e.emit("%s = %s\n", joinComma(names), operand)
	var operands []string
	for i, et := range t.Types {
		operands = append(operands, e.Lower(et, names[i])...)
	}
	return operands
}

func (e *engine) liftTuple(t *wit.Tuple, operands []string) string {
	if len(t.Types) == 0 {
		return "None"
	}
	args := make([]string, len(t.Types))
	i := 0
	for ti, et := range t.Types {
		n := len(et.Flat())
		if n == 0 {
			n = 1
		}
		args[ti] = e.Lift(et, operands[i:i+n]...)
		i += n
	}
	return fmt.Sprintf("(%s)", joinComma(args))
}

func (e *engine) lowerFlags(f *wit.Flags, operand string) []string {
	n := numFlagsChunks(len(f.Flags))
	if n == 1 {
		return []string{fmt.Sprintf("%s.value", operand)}
	}
	operands := make([]string, n)
	for i := 0; i < n; i++ {
		operands[i] = fmt.Sprintf("(%s.value >> %d) & 0xffffffff", operand, 32*i)
	}
	return operands
}

func (e *engine) liftFlags(f *wit.Flags, operands []string) string {
	ref := ""
	if len(operands) == 1 {
		ref = operands[0]
	} else {
		parts := make([]string, len(operands))
		for i, op := range operands {
			parts[i] = fmt.Sprintf("(%s << %d)", op, 32*i)
		}
		ref = joinOr(parts)
	}
	return ref
}

func numFlagsChunks(n int) int {
	if n == 0 {
		return 1
	}
	return (n + 31) / 32
}

func joinOr(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " | "
		}
		out += p
	}
	return out
}

// --- variants, unions, options, results, enums --------------------------

func (e *engine) lowerVariant(t wit.Type, v *wit.Variant, operand string) []string {
	resultFlat := v.Flat()
	results := make([]string, len(resultFlat))
	for i := range results {
		results[i] = e.tmp(fmt.Sprintf("r%d", i))
	}
	caseName := e.gen.typeRef(t)
	for i, c := range v.Cases {
		armClass := fmt.Sprintf("%s%s", caseName, caseClassSuffix(c.Name))
		e.pushBlock()
		var exits []string
		if c.Type != nil {
			payload := e.tmp("payload")
			e.emit("%s = %s.value\n", payload, operand)
			exits = e.Lower(c.Type, payload)
		}
		e.finishBlock(exits...)
		blk := e.popBlocks(1)[0]
		verb := "if"
		if i > 0 {
			verb = "elif"
		}
		e.emit("%s isinstance(%s, %s):\n", verb, operand, armClass)
		e.b.Indent()
		e.emit("%s\n", blk.source)
		for ri, res := range results {
			val := "0"
			if ri == 0 {
				val = fmt.Sprintf("%d", i)
			} else if ri-1 < len(blk.exitOperands) {
				val = blk.exitOperands[ri-1]
			}
			e.emit("%s = %s\n", res, val)
		}
		e.b.Dedent()
	}
	e.emit("else:\n")
	e.b.Indent()
	e.emit("raise TypeError(\"invalid variant value for %s\")\n", caseName)
	e.b.Dedent()
	return results
}

func (e *engine) liftVariant(t wit.Type, v *wit.Variant, operands []string) string {
	disc := operands[0]
	rest := operands[1:]
	name := e.gen.typeRef(t)
	result := e.tmp("v")
	for i, c := range v.Cases {
		armClass := fmt.Sprintf("%s%s", name, caseClassSuffix(c.Name))
		e.pushBlock()
		var ctor string
		if c.Type != nil {
			payload := e.Lift(c.Type, rest...)
			ctor = fmt.Sprintf("%s(%s)", armClass, payload)
		} else {
			ctor = fmt.Sprintf("%s()", armClass)
		}
		e.finishBlock(ctor)
		blk := e.popBlocks(1)[0]
		verb := "if"
		if i > 0 {
			verb = "elif"
		}
		e.emit("%s %s == %d:\n", verb, disc, i)
		e.b.Indent()
		e.emit("%s\n", blk.source)
		e.emit("%s = %s\n", result, blk.exitOperands[0])
		e.b.Dedent()
	}
	e.emit("else:\n")
	e.b.Indent()
	e.emit("raise ValueError(\"invalid variant discriminant for %s\")\n", name)
	e.b.Dedent()
	return result
}

// caseClassSuffix returns the suffix that names a case's class. The
// positional case names of a despecialized wrapped union ("0", "1", ...)
// are used as they are, matching the UnionName0, UnionName1, ... classes
// emitUnion declares; every other case name goes through ExportedName.
func caseClassSuffix(name string) string {
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		return name
	}
	return ExportedName(name)
}

func (e *engine) lowerUnion(t wit.Type, u *wit.Union, operand string, repr unionRepr) []string {
	if repr == unionRaw {
		return e.lowerRawUnion(u, operand)
	}
	v := u.Despecialize().(*wit.Variant)
	return e.lowerVariant(t, v, operand)
}

func (e *engine) lowerRawUnion(u *wit.Union, operand string) []string {
	result := e.tmp("r")
	for i, armType := range u.Arms {
		e.pushBlock()
		exits := e.Lower(armType, operand)
		e.finishBlock(exits...)
		blk := e.popBlocks(1)[0]
		verb := "if"
		if i > 0 {
			verb = "elif"
		}
		e.emit("%s isinstance(%s, %s):\n", verb, operand, pythonRuntimeClass(armType))
		e.b.Indent()
		e.emit("%s\n", blk.source)
		e.emit("%s = (%d, %s)\n", result, i, joinComma(blk.exitOperands))
		e.b.Dedent()
	}
	e.emit("else:\n")
	e.b.Indent()
	e.emit("raise TypeError(\"value does not match any union arm\")\n")
	e.b.Dedent()
	return []string{result}
}

func (e *engine) liftUnion(t wit.Type, u *wit.Union, operands []string, repr unionRepr) string {
	if repr == unionRaw {
		return e.liftRawUnion(u, operands)
	}
	v := u.Despecialize().(*wit.Variant)
	return e.liftVariant(t, v, operands)
}

func (e *engine) liftRawUnion(u *wit.Union, operands []string) string {
	disc := operands[0]
	rest := operands[1:]
	result := e.tmp("v")
	for i, armType := range u.Arms {
		e.pushBlock()
		val := e.Lift(armType, rest...)
		e.finishBlock(val)
		blk := e.popBlocks(1)[0]
		verb := "if"
		if i > 0 {
			verb = "elif"
		}
		e.emit("%s %s == %d:\n", verb, disc, i)
		e.b.Indent()
		e.emit("%s\n", blk.source)
		e.emit("%s = %s\n", result, blk.exitOperands[0])
		e.b.Dedent()
	}
	e.emit("else:\n")
	e.b.Indent()
	e.emit("raise ValueError(\"invalid union discriminant\")\n")
	e.b.Dedent()
	return result
}

// pythonRuntimeClass names the Python runtime type used to dispatch a raw
// union arm via isinstance, per spec.md §4.3.1's "raw" union contract.
func pythonRuntimeClass(t wit.Type) string {
	switch classify(t) {
	case classInt:
		return "int"
	case classFloat:
		return "float"
	case classStr:
		return "str"
	default:
		return "object"
	}
}

func (e *engine) lowerOption(o *wit.Option, operand string) []string {
	results := make([]string, 1+len(o.Type.Flat()))
	for i := range results {
		results[i] = e.tmp(fmt.Sprintf("r%d", i))
	}
	e.emit("if %s is None:\n", operand)
	e.b.Indent()
	e.emit("%s = 0\n", results[0])
	for _, r := range results[1:] {
		e.emit("%s = 0\n", r)
	}
	e.b.Dedent()
	e.emit("else:\n")
	e.b.Indent()
	payload := e.tmp("payload")
	e.emit("%s = %s\n", payload, operand)
	exits := e.Lower(o.Type, payload)
	e.emit("%s = 1\n", results[0])
	for i, r := range results[1:] {
		if i < len(exits) {
			e.emit("%s = %s\n", r, exits[i])
		}
	}
	e.b.Dedent()
	return results
}

func (e *engine) liftOption(t wit.Type, o *wit.Option, operands []string) string {
	disc, rest := operands[0], operands[1:]
	result := e.tmp("v")
	e.emit("if %s == 0:\n", disc)
	e.b.Indent()
	e.emit("%s = None\n", result)
	e.b.Dedent()
	e.emit("elif %s == 1:\n", disc)
	e.b.Indent()
	val := e.Lift(o.Type, rest...)
	e.emit("%s = %s\n", result, val)
	e.b.Dedent()
	e.emit("else:\n")
	e.b.Indent()
	e.emit("raise ValueError(\"invalid variant discriminant for %s\")\n", e.gen.typeRef(t))
	e.b.Dedent()
	return result
}

func (e *engine) lowerResult(t wit.Type, r *wit.Result, operand string) []string {
	v := r.Despecialize().(*wit.Variant)
	return e.lowerVariant(t, v, operand)
}

func (e *engine) liftResult(t wit.Type, r *wit.Result, operands []string) string {
	e.gen.deps.needsResult = true
	v := r.Despecialize().(*wit.Variant)
	return e.liftVariant(t, v, operands)
}

// --- strings, lists ------------------------------------------------------

func (e *engine) lowerString(operand string) []string {
	e.gen.deps.needsEncodeUTF8 = true
	e.markMemory()
	e.markRealloc("realloc")
	ptr, length := e.tmp("ptr"), e.tmp("len")
	e.emit("%s, %s = encode_utf8(%s, realloc, memory, caller)\n", ptr, length, operand)
	return []string{ptr, length}
}

func (e *engine) liftString(operands []string) string {
	e.gen.deps.needsDecodeUTF8 = true
	e.markMemory()
	return fmt.Sprintf("decode_utf8(memory, caller, %s, %s)", operands[0], operands[1])
}

func (e *engine) lowerList(l *wit.List, operand string) []string {
	e.markMemory()
	e.markRealloc("realloc")
	if isCanonical(l.Type) {
		e.gen.deps.needsListCanonLower = true
		ptr, length := e.tmp("ptr"), e.tmp("len")
		e.emit("%s, %s = list_canon_lower(%s, %s, realloc, memory, caller)\n",
			ptr, length, operand, ctypeOf(l.Type))
		return []string{ptr, length}
	}
	size, align := l.Type.Size(), l.Type.Align()
	n := e.tmp("n")
	p := e.tmp("p")
	e.emit("%s = len(%s)\n", n, operand)
	e.emit("%s = realloc(caller, 0, 0, %d, %s * %d)\n", p, align, n, size)

	e.pushBlock()
	elem := e.tmp("e")
	base := e.tmp("base")
	e.pushPayload(elem)
	e.pushPayload(base)
	exits := e.Lower(l.Type, elem)
	e.storeFlat(l.Type, base, exits)
	e.popPayload()
	e.popPayload()
	e.finishBlock()
	blk := e.popBlocks(1)[0]

	i := e.tmp("i")
	e.emit("for %s in range(%s):\n", i, n)
	e.b.Indent()
	e.emit("%s = %s[%s]\n", elem, operand, i)
	e.emit("%s = %s + %s * %d\n", base, p, i, size)
	e.emit("%s\n", blk.source)
	e.b.Dedent()
	return []string{p, n}
}

func (e *engine) liftList(l *wit.List, operands []string) string {
	e.markMemory()
	p, n := operands[0], operands[1]
	if isCanonical(l.Type) {
		e.gen.deps.needsListCanonLift = true
		return fmt.Sprintf("list_canon_lift(%s, %s, %s, memory, caller)", p, n, ctypeOf(l.Type))
	}
	size := l.Type.Size()
	acc := e.tmp("acc")
	e.emit("%s = []\n", acc)

	e.pushBlock()
	base := e.tmp("base")
	e.pushPayload(base)
	elemOps := e.loadFlat(l.Type, base)
	val := e.Lift(l.Type, elemOps...)
	e.popPayload()
	e.finishBlock(val)
	blk := e.popBlocks(1)[0]

	i := e.tmp("i")
	e.emit("for %s in range(%s):\n", i, n)
	e.b.Indent()
	e.emit("%s = %s + %s * %d\n", base, p, i, size)
	e.emit("%s\n", blk.source)
	e.emit("%s.append(%s)\n", acc, blk.exitOperands[0])
	e.b.Dedent()
	return acc
}

// isCanonical reports whether t is a fixed-width numeric type eligible for
// the memcpy fast path (spec.md §4.4 "Canonical lists").
func isCanonical(t wit.Type) bool {
	switch unwrap(t).(type) {
	case wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32, wit.S64, wit.U64, wit.F32, wit.F64:
		return true
	default:
		return false
	}
}

// ctypeOf names one of the twelve numeric ctypes used by load/store and
// the canonical-list fast path.
func ctypeOf(t wit.Type) string {
	switch unwrap(t).(type) {
	case wit.S8:
		return "\"s8\""
	case wit.U8:
		return "\"u8\""
	case wit.S16:
		return "\"s16\""
	case wit.U16:
		return "\"u16\""
	case wit.S32:
		return "\"s32\""
	case wit.U32:
		return "\"u32\""
	case wit.S64:
		return "\"s64\""
	case wit.U64:
		return "\"u64\""
	case wit.F32:
		return "\"f32\""
	case wit.F64:
		return "\"f64\""
	default:
		return "\"u8\""
	}
}
