package pybindgen

import (
	"testing"

	"github.com/component-model/witpy/wit"
)

func TestFieldOffsets(t *testing.T) {
	// {tag: u8, _pad, value: u32, big: u64} — a u8 followed by a u32 forces
	// 3 bytes of padding before the u32, which then ends at offset 8, already
	// aligned for the u64.
	fields := []wit.Field{
		{Name: "tag", Type: wit.U8{}},
		{Name: "value", Type: wit.U32{}},
		{Name: "big", Type: wit.U64{}},
	}

	got := fieldOffsets(fields)
	want := []uintptr{0, 4, 8}
	if len(got) != len(want) {
		t.Fatalf("fieldOffsets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fieldOffsets()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align uintptr
		want          uintptr
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
	}
	for _, tt := range tests {
		if got := alignTo(tt.offset, tt.align); got != tt.want {
			t.Errorf("alignTo(%d, %d) = %d, want %d", tt.offset, tt.align, got, tt.want)
		}
	}
}
