package pybindgen

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/tools/txtar"

	"github.com/component-model/witpy/internal/codec"
	"github.com/component-model/witpy/internal/testutil"
	"github.com/component-model/witpy/wit"
)

// update rewrites every golden fixture archive from the current generator
// output instead of checking against it. Grounded on the donor's own
// wit/testdata_test.go -update flag.
var update = flag.Bool("update", false, "update golden fixture archives")

// recordWorld builds a world whose imported interface both takes and
// returns a record, exercising liftRecord's dataclass construction on the
// argument the linker trampoline lifts from the guest.
func recordWorld() *wit.Resolve {
	recordName := "point"
	recordType := &wit.TypeDef{
		Name: &recordName,
		Kind: &wit.Record{
			Fields: []wit.Field{
				{Name: "x", Type: wit.U32{}},
				{Name: "y", Type: wit.U32{}},
			},
		},
	}

	ifaceName := "shapes"
	iface := &wit.Interface{Name: &ifaceName}
	iface.TypeDefs.Set(recordName, recordType)
	iface.Functions.Set("translate", &wit.Function{
		Name: "translate",
		Kind: &wit.Freestanding{},
		Params: []wit.Param{
			{Name: "p", Type: recordType},
			{Name: "dx", Type: wit.U32{}},
		},
		Results: []wit.Param{
			{Name: "", Type: recordType},
		},
	})

	w := &wit.World{Name: "shapeworld"}
	w.Imports.Set(ifaceName, &wit.InterfaceRef{Interface: iface})

	return &wit.Resolve{Worlds: []*wit.World{w}}
}

// goldenWorlds maps each golden fixture name to the hand-built Resolve it is
// generated from. Each entry's output is checked against (or, with -update,
// used to overwrite) testdata/golden/<name>.txtar.
func goldenWorlds() map[string]*wit.Resolve {
	return map[string]*wit.Resolve{
		"example": testWorld(),
		"record":  recordWorld(),
	}
}

// TestGoldenFixtures checks generated output against committed golden
// archives. Generated files for a world are bundled into a single txtar
// archive (one archive per world, one section per generated file) rather
// than one golden file per generated file, since a world's import/export
// pair is the natural unit of comparison. Grounded on the donor's
// wit/testdata_test.go compareOrWrite pattern, adapted from per-file golden
// text to a multi-file archive since this backend emits more than one file
// per world.
func TestGoldenFixtures(t *testing.T) {
	for name, res := range goldenWorlds() {
		t.Run(name, func(t *testing.T) {
			out, err := Generate(res)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			got := &txtar.Archive{}
			for _, fname := range codec.SortedKeys(out.Files) {
				got.Files = append(got.Files, txtar.File{Name: fname, Data: out.Files[fname]})
			}

			goldenPath := testutil.Path(filepath.Join("testdata", "golden", name+".txtar"))
			if *update {
				if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(goldenPath, txtar.Format(got), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := txtar.ParseFile(goldenPath)
			if err != nil {
				t.Fatalf("reading golden fixture %s (run with -update to seed it): %v", goldenPath, err)
			}
			compareArchives(t, want, got)
		})
	}
}

// compareArchives diffs two txtar archives file by file, reporting
// mismatches with a readable inline diff rather than a raw byte dump.
func compareArchives(t *testing.T, want, got *txtar.Archive) {
	t.Helper()

	index := make(map[string][]byte, len(want.Files))
	for _, f := range want.Files {
		index[f.Name] = f.Data
	}

	seen := make(map[string]bool, len(got.Files))
	for _, f := range got.Files {
		seen[f.Name] = true
		wantData, ok := index[f.Name]
		if !ok {
			t.Errorf("generated file %s has no golden entry (run with -update)", f.Name)
			continue
		}
		if !bytes.Equal(wantData, f.Data) {
			dmp := diffmatchpatch.New()
			dmp.PatchMargin = 3
			diffs := dmp.DiffMain(string(wantData), string(f.Data), false)
			t.Errorf("%s does not match golden fixture:\n%s", f.Name, dmp.DiffPrettyText(diffs))
		}
	}
	for _, f := range want.Files {
		if !seen[f.Name] {
			t.Errorf("golden fixture has %s, generator no longer produces it", f.Name)
		}
	}
}
