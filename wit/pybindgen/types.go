package pybindgen

import (
	"fmt"

	"github.com/component-model/witpy/wit"
)

// unionRepr is the chosen runtime representation for a union type: raw
// (each arm is its own host value, dispatched by runtime type) or wrapped
// (each arm wrapped in a position-indexed tagged dataclass).
type unionRepr int

const (
	unionRaw unionRepr = iota
	unionWrapped
)

// typeClass classifies a union arm's type for the purpose of deciding raw
// vs wrapped representation (spec.md §4.3.1).
type typeClass int

const (
	classInt typeClass = iota
	classFloat
	classStr
	classCustom
)

func classify(t wit.Type) typeClass {
	switch t.(type) {
	case wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32, wit.S64, wit.U64:
		return classInt
	case wit.F32, wit.F64:
		return classFloat
	case wit.Char, wit.String:
		return classStr
	default:
		return classCustom
	}
}

// unionRepresentation computes the raw/wrapped decision for a union's arms,
// per spec.md §4.3.1: if every arm's type class is distinct, the union is
// raw; otherwise wrapped. The decision must be computed exactly once and
// reused by both the type emitter and the ABI engine, so the generation
// context caches it in unionReprs (see generator.go) the first time a
// union's declaration is emitted.
func unionRepresentation(arms []wit.Type) unionRepr {
	seen := make(map[typeClass]bool, len(arms))
	for _, t := range arms {
		c := classify(t)
		if seen[c] {
			return unionWrapped
		}
		seen[c] = true
	}
	return unionRaw
}

// emitTypeDecl writes one declaration for t's kind to b, per the table in
// spec.md §4.3, and records any dependency the shape requires (e.g. a
// record needing dataclasses, a result needing needs_result).
//
// Grounded on the donor's wit/bindgen/generator.go per-kind dispatch
// (recordRep, tupleRep, flagsRep, enumRep, variantRep, resultRep,
// optionRep, listRep), reworked for Python dataclass/Enum/alias output
// instead of Go struct/const-block output.
func (g *genContext) emitTypeDecl(b *buffer, t *wit.TypeDef) error {
	name := g.typeName(t)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		return g.emitRecord(b, name, kind)
	case *wit.Tuple:
		return g.emitTuple(b, name, kind)
	case *wit.Flags:
		return g.emitFlags(b, name, kind)
	case *wit.Variant:
		return g.emitVariant(b, name, kind)
	case *wit.Union:
		return g.emitUnion(b, name, kind)
	case *wit.Enum:
		return g.emitEnum(b, name, kind)
	case *wit.Option:
		return g.emitOption(b, name, kind)
	case *wit.Result:
		return g.emitResult(b, name, kind)
	case *wit.List:
		return g.emitListAlias(b, name, kind)
	case *wit.TypeDef:
		// Transparent alias to another named type.
		b.Printf("%s = %s\n\n", name, g.typeRef(kind))
		return nil
	default:
		return fmt.Errorf("translating type %s: unsupported type kind %T", name, kind)
	}
}

func (g *genContext) emitRecord(b *buffer, name string, r *wit.Record) error {
	g.deps.ImportFrom("dataclasses", "dataclass")
	b.Printf("@dataclass\n")
	b.Printf("class %s:\n", name)
	b.Indent()
	if len(r.Fields) == 0 {
		b.Printf("pass\n")
	}
	for _, f := range r.Fields {
		b.Printf("%s: %s\n", FieldName(f.Name), g.typeRef(f.Type))
	}
	b.Dedent()
	b.Printf("\n")
	return nil
}

func (g *genContext) emitTuple(b *buffer, name string, t *wit.Tuple) error {
	g.deps.ImportFrom("typing", "Tuple")
	elems := make([]string, len(t.Types))
	for i, et := range t.Types {
		elems[i] = g.typeRef(et)
	}
	b.Printf("%s = Tuple[%s]\n\n", name, joinComma(elems))
	return nil
}

func (g *genContext) emitFlags(b *buffer, name string, f *wit.Flags) error {
	g.deps.ImportFrom("enum", "IntFlag")
	b.Printf("class %s(IntFlag):\n", name)
	b.Indent()
	if len(f.Flags) == 0 {
		b.Printf("pass\n")
	}
	for i, flag := range f.Flags {
		b.Printf("%s = 1 << %d\n", ShoutyName(flag.Name), i)
	}
	b.Dedent()
	b.Printf("\n")
	return nil
}

func (g *genContext) emitVariant(b *buffer, name string, v *wit.Variant) error {
	g.deps.ImportFrom("dataclasses", "dataclass")
	g.deps.ImportFrom("typing", "Union")
	caseNames := make([]string, len(v.Cases))
	for i, c := range v.Cases {
		caseName := fmt.Sprintf("%s%s", name, ExportedName(c.Name))
		caseNames[i] = caseName
		b.Printf("@dataclass\n")
		b.Printf("class %s:\n", caseName)
		b.Indent()
		if c.Type == nil {
			b.Printf("pass\n")
		} else {
			b.Printf("value: %s\n", g.typeRef(c.Type))
		}
		b.Dedent()
		b.Printf("\n")
	}
	b.Printf("%s = Union[%s]\n\n", name, joinComma(caseNames))
	return nil
}

func (g *genContext) emitUnion(b *buffer, name string, u *wit.Union) error {
	repr := unionRepresentation(u.Arms)
	g.unionReprs[name] = repr
	if repr == unionRaw {
		// Raw unions need no declaration of their own: each value is a
		// bare host value of its arm's type, dispatched by isinstance.
		g.deps.ImportFrom("typing", "Union")
		refs := make([]string, len(u.Arms))
		for i, t := range u.Arms {
			refs[i] = g.typeRef(t)
		}
		b.Printf("%s = Union[%s]\n\n", name, joinComma(refs))
		return nil
	}
	g.deps.ImportFrom("dataclasses", "dataclass")
	g.deps.ImportFrom("typing", "Union")
	armNames := make([]string, len(u.Arms))
	for i, t := range u.Arms {
		armName := fmt.Sprintf("%s%d", name, i)
		armNames[i] = armName
		b.Printf("@dataclass\n")
		b.Printf("class %s:\n", armName)
		b.Indent()
		b.Printf("value: %s\n", g.typeRef(t))
		b.Dedent()
		b.Printf("\n")
	}
	b.Printf("%s = Union[%s]\n\n", name, joinComma(armNames))
	return nil
}

func (g *genContext) emitEnum(b *buffer, name string, e *wit.Enum) error {
	g.deps.ImportFrom("enum", "IntEnum")
	b.Printf("class %s(IntEnum):\n", name)
	b.Indent()
	for i, c := range e.Cases {
		b.Printf("%s = %d\n", ShoutyName(c.Name), i)
	}
	b.Dedent()
	b.Printf("\n")
	return nil
}

func (g *genContext) emitOption(b *buffer, name string, o *wit.Option) error {
	g.deps.ImportFrom("typing", "Optional")
	b.Printf("%s = Optional[%s]\n\n", name, g.typeRef(o.Type))
	return nil
}

func (g *genContext) emitResult(b *buffer, name string, r *wit.Result) error {
	g.deps.needsResult = true
	ok, errT := "None", "None"
	if r.OK != nil {
		ok = g.typeRef(r.OK)
	}
	if r.Err != nil {
		errT = g.typeRef(r.Err)
	}
	b.Printf("%s = Result[%s, %s]\n\n", name, ok, errT)
	return nil
}

func (g *genContext) emitListAlias(b *buffer, name string, l *wit.List) error {
	g.deps.ImportFrom("typing", "List")
	b.Printf("%s = List[%s]\n\n", name, g.typeRef(l.Type))
	return nil
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
