package pybindgen

import "github.com/component-model/witpy/wit"

// abiSize is the canonical-ABI size and alignment of one type, in bytes.
type abiSize struct {
	Size  uintptr
	Align uintptr
}

// sizeAlign memoizes Size/Align for every named type in an interface, keyed
// by TypeDef identity. Built once per interface by the preprocessor and
// read-only to the type emitter and ABI engine afterward.
//
// The donor computes wit.TypeDef.Size/Align on demand per call, which is
// cheap because the underlying recursion is already memoization-free and
// WIT type trees are shallow. This spec requires an explicit memo table, so
// sizeAlign wraps that same Size()/Align() arithmetic once and caches it.
// The type emitter (types.go) and the ABI engine (engine.go) do not read
// this table; they call Size()/Align() on the types directly.
type sizeAlign struct {
	sizes map[*wit.TypeDef]abiSize
}

// newSizeAlign walks every TypeDef declared in iface, in declaration order,
// and records its size and alignment.
func newSizeAlign(iface *wit.Interface) *sizeAlign {
	sa := &sizeAlign{sizes: make(map[*wit.TypeDef]abiSize)}
	iface.TypeDefs.All()(func(_ string, t *wit.TypeDef) bool {
		sa.fill(t)
		return true
	})
	return sa
}

func (sa *sizeAlign) fill(t *wit.TypeDef) abiSize {
	if s, ok := sa.sizes[t]; ok {
		return s
	}
	s := abiSize{Size: t.Size(), Align: t.Align()}
	sa.sizes[t] = s
	return s
}

// Size returns the memoized byte size of t, computing and caching it if
// this is the first lookup.
func (sa *sizeAlign) Size(t *wit.TypeDef) uintptr {
	return sa.fill(t).Size
}

// Align returns the memoized byte alignment of t, computing and caching it
// if this is the first lookup.
func (sa *sizeAlign) Align(t *wit.TypeDef) uintptr {
	return sa.fill(t).Align
}

// alignTo rounds offset up to the next multiple of align, mirroring the
// donor's wit.Align helper (wit/abi.go), used here to derive per-field
// record offsets left-to-right.
func alignTo(offset, align uintptr) uintptr {
	return wit.Align(offset, align)
}

// fieldOffsets returns the byte offset of each field in a record, computed
// by running alignment over the fields left-to-right, per spec.md §3's
// SizeAlign invariant.
func fieldOffsets(fields []wit.Field) []uintptr {
	offsets := make([]uintptr, len(fields))
	var offset uintptr
	for i, f := range fields {
		offset = alignTo(offset, f.Type.Align())
		offsets[i] = offset
		offset += f.Type.Size()
	}
	return offsets
}
