package pybindgen

// writeIntrinsics emits the fixed intrinsics library body (spec.md §6),
// conditionally per the dependency ledger's needs-flags: clamp, load/store,
// validate_guest_char, the four bitcasts, encode/decode_utf8,
// list_canon_lower/lift, and the Result algebraic type. Each helper's
// signature is fixed by spec.md §4.4; only presence is conditional.
func writeIntrinsics(b *buffer, d *deps) {
	if d.needsClamp {
		b.Printf("def clamp(v, lo, hi):\n")
		b.Indent()
		b.Printf("if v < lo or v > hi:\n")
		b.Indent()
		b.Printf("raise ValueError(f\"value {v} out of range [{lo}, {hi}]\")\n")
		b.Dedent()
		b.Printf("return v\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsLoad {
		b.Printf("def load(ctype, memory, caller, ptr, offset):\n")
		b.Indent()
		b.Printf("return memory.read(caller, ptr + offset, ctype)\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsStore {
		b.Printf("def store(ctype, memory, caller, ptr, offset, value):\n")
		b.Indent()
		b.Printf("memory.write(caller, ptr + offset, ctype, value)\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsValidateGuestChar {
		b.Printf("def validate_guest_char(v):\n")
		b.Indent()
		b.Printf("if v > 0x10FFFF or (0xD800 <= v <= 0xDFFF):\n")
		b.Indent()
		b.Printf("raise ValueError(f\"{v} is not a valid unicode scalar value\")\n")
		b.Dedent()
		b.Printf("return chr(v)\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsI32ToF32 {
		writeBitcast(b, "i32_to_f32", "i", "<I", "<f")
	}
	if d.needsF32ToI32 {
		writeBitcast(b, "f32_to_i32", "f", "<f", "<I")
	}
	if d.needsI64ToF64 {
		writeBitcast(b, "i64_to_f64", "i", "<Q", "<d")
	}
	if d.needsF64ToI64 {
		writeBitcast(b, "f64_to_i64", "f", "<d", "<Q")
	}
	if d.needsI32ToF32 || d.needsF32ToI32 || d.needsI64ToF64 || d.needsF64ToI64 {
		d.Import("struct")
	}

	if d.needsEncodeUTF8 {
		b.Printf("def encode_utf8(s, realloc, memory, caller):\n")
		b.Indent()
		b.Printf("data = s.encode(\"utf-8\")\n")
		b.Printf("ptr = realloc(caller, 0, 0, 1, len(data))\n")
		b.Printf("assert isinstance(ptr, int)\n")
		b.Printf("memory.write_bytes(caller, ptr, data)\n")
		b.Printf("return ptr, len(data)\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsDecodeUTF8 {
		b.Printf("def decode_utf8(memory, caller, ptr, length):\n")
		b.Indent()
		b.Printf("return memory.read_bytes(caller, ptr, length).decode(\"utf-8\")\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsListCanonLower {
		b.Printf("def list_canon_lower(v, ctype, realloc, memory, caller):\n")
		b.Indent()
		b.Printf("view = memory.array_view(ctype)\n")
		b.Printf("size = view.itemsize * len(v)\n")
		b.Printf("ptr = realloc(caller, 0, 0, view.itemsize, size)\n")
		b.Printf("assert isinstance(ptr, int)\n")
		b.Printf("memory.write_array(caller, ptr, ctype, v)\n")
		b.Printf("return ptr, len(v)\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsListCanonLift {
		b.Printf("def list_canon_lift(ptr, length, ctype, memory, caller):\n")
		b.Indent()
		b.Printf("return list(memory.read_array(caller, ptr, ctype, length))\n")
		b.Dedent()
		b.NewLine()
	}

	if d.needsResult {
		d.ImportFrom("dataclasses", "dataclass")
		d.ImportFrom("typing", "Generic")
		d.ImportFrom("typing", "TypeVar")
		d.ImportFrom("typing", "Union")
		b.Printf("T = TypeVar(\"T\")\n")
		b.Printf("E = TypeVar(\"E\")\n")
		b.NewLine()
		b.Printf("@dataclass\n")
		b.Printf("class Ok(Generic[T]):\n")
		b.Indent()
		b.Printf("value: T\n")
		b.Dedent()
		b.NewLine()
		b.Printf("@dataclass\n")
		b.Printf("class Err(Generic[E]):\n")
		b.Indent()
		b.Printf("value: E\n")
		b.Dedent()
		b.NewLine()
		b.Printf("Result = Union[Ok[T], Err[E]]\n")
		b.NewLine()
	}
}

func writeBitcast(b *buffer, name, param, packFmt, unpackFmt string) {
	b.Printf("def %s(%s):\n", name, param)
	b.Indent()
	b.Printf("return struct.unpack(%q, struct.pack(%q, %s))[0]\n", unpackFmt, packFmt, param)
	b.Dedent()
	b.NewLine()
}

// needsAnyBitcast reports whether any of the four bitcast intrinsics are
// required, used by the module finisher to decide whether to import struct.
func needsAnyBitcast(d *deps) bool {
	return d.needsI32ToF32 || d.needsF32ToI32 || d.needsI64ToF64 || d.needsF64ToI64
}
