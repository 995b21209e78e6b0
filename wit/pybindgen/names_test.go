package pybindgen

import "testing"

func TestExportedName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"cabi", "CABI"},
		{"datetime", "DateTime"},
		{"fast-api", "FastAPI"},
		{"blocking-read", "BlockingRead"},
		{"ipv4-socket", "IPv4Socket"},
		{"via-ipv6", "ViaIPv6"},
		{"metadata-hash-value", "MetadataHashValue"},
		{"2big", "_2big"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportedName(tt.name); got != tt.want {
				t.Errorf("ExportedName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"blocking-read", "blocking_read"},
		{"fast-api", "fast_api"},
		{"2big", "_2big"},
		{"ok", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldName(tt.name); got != tt.want {
				t.Errorf("FieldName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestShoutyName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"blocking-read", "BLOCKING_READ"},
		{"low-power", "LOW_POWER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShoutyName(tt.name); got != tt.want {
				t.Errorf("ShoutyName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestModuleName(t *testing.T) {
	if got, want := ModuleName("blocking-read"), "blocking_read"; got != want {
		t.Errorf("ModuleName(%q) = %q, want %q", "blocking-read", got, want)
	}
}

func TestIsReservedPython(t *testing.T) {
	for _, name := range []string{"class", "import", "self", "list", "True"} {
		if !IsReservedPython(name) {
			t.Errorf("IsReservedPython(%q) = false, want true", name)
		}
	}
	if IsReservedPython("blocking_read") {
		t.Errorf("IsReservedPython(%q) = true, want false", "blocking_read")
	}
}

func TestUniqueName(t *testing.T) {
	taken := map[string]bool{"read": true, "read_": true}
	got := UniqueName("read", func(s string) bool { return taken[s] })
	if want := "read__"; got != want {
		t.Errorf("UniqueName(%q) = %q, want %q", "read", got, want)
	}
}
