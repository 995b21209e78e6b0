package pybindgen

import (
	"strings"
	"testing"

	"github.com/component-model/witpy/wit"
	"github.com/component-model/witpy/wit/ordered"
)

// testWorld builds a minimal two-interface world: one imported interface
// ("host") with a function the host must implement, and one exported
// interface ("guest") with a function the guest must implement. Grounded on
// the donor's wit/bindgen/testdata_test.go pattern of hand-built Resolve
// fixtures rather than full WIT source, since no .wit parser front end is
// exercised by this package.
func testWorld() *wit.Resolve {
	name := "host"
	hostIface := &wit.Interface{
		Name: &name,
	}
	hostIface.Functions.Set("greet", &wit.Function{
		Name: "greet",
		Kind: &wit.Freestanding{},
		Params: []wit.Param{
			{Name: "name", Type: wit.String{}},
		},
		Results: []wit.Param{
			{Name: "", Type: wit.U32{}},
		},
	})

	guestName := "guest"
	guestIface := &wit.Interface{
		Name: &guestName,
	}
	guestIface.Functions.Set("run", &wit.Function{
		Name: "run",
		Kind: &wit.Freestanding{},
		Params: []wit.Param{
			{Name: "count", Type: wit.U32{}},
		},
		Results: []wit.Param{
			{Name: "", Type: wit.U32{}},
		},
	})

	w := &wit.World{Name: "example"}
	w.Imports.Set(name, &wit.InterfaceRef{Interface: hostIface})
	w.Exports.Set(guestName, &wit.InterfaceRef{Interface: guestIface})

	return &wit.Resolve{Worlds: []*wit.World{w}}
}

func TestGenerateProducesImportAndExportFiles(t *testing.T) {
	out, err := Generate(testWorld())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	importSrc, ok := out.Files["example_import.py"]
	if !ok {
		t.Fatalf("missing example_import.py, got files: %v", keysOf(out.Files))
	}
	exportSrc, ok := out.Files["example_export.py"]
	if !ok {
		t.Fatalf("missing example_export.py, got files: %v", keysOf(out.Files))
	}

	if !strings.Contains(string(importSrc), "class HostHost(Protocol):") {
		t.Errorf("import file missing Protocol class:\n%s", importSrc)
	}
	if !strings.Contains(string(importSrc), "def greet(self") {
		t.Errorf("import file missing greet protocol stub:\n%s", importSrc)
	}
	if !strings.Contains(string(importSrc), "def add_host_to_linker(linker, store, host):") {
		t.Errorf("import file missing linker wiring function:\n%s", importSrc)
	}

	if !strings.Contains(string(exportSrc), "class Guest:") {
		t.Errorf("export file missing wrapper class:\n%s", exportSrc)
	}
	if !strings.Contains(string(exportSrc), "def run(self, caller") {
		t.Errorf("export file missing run wrapper method:\n%s", exportSrc)
	}
	if !strings.Contains(string(exportSrc), "self.memory = exports[\"memory\"]") {
		t.Errorf("export file missing memory export wiring:\n%s", exportSrc)
	}
}

func keysOf(m map[string][]byte) []string {
	var ks []string
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}

func TestWorldItemInterfacesSkipsNonInterfaceItems(t *testing.T) {
	var items ordered.Map[string, wit.WorldItem]
	name := "iface"
	items.Set("a", &wit.InterfaceRef{Interface: &wit.Interface{Name: &name}})
	items.Set("b", &wit.Function{Name: "f", Kind: &wit.Freestanding{}})

	ifaces := worldItemInterfaces(items)
	if len(ifaces) != 1 {
		t.Fatalf("worldItemInterfaces() returned %d interfaces, want 1", len(ifaces))
	}
	if ifaces[0].Name == nil || *ifaces[0].Name != name {
		t.Errorf("worldItemInterfaces()[0].Name = %v, want %q", ifaces[0].Name, name)
	}
}
