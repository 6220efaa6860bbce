package converter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"aeropack/contracts"
)

func TestPoolSize(t *testing.T) {
	cases := []struct {
		cpus, want int
	}{
		{1, 1},
		{2, 1},
		{4, 3},
		{8, 7},
		{9, 8},
		{16, 8},
		{64, 8},
	}
	for _, c := range cases {
		if got := PoolSize(c.cpus); got != c.want {
			t.Errorf("PoolSize(%d) = %d, want %d", c.cpus, got, c.want)
		}
	}
}

// seedBatch registers n sources, of which every third is unreadable, and
// returns the matching work items.
func seedBatch(lib *fakeLibrary, n int) []contracts.WorkItem {
	items := make([]contracts.WorkItem, 0, n)
	for i := 0; i < n; i++ {
		src := fmt.Sprintf("in/img%02d.tif", i)
		if i%3 != 0 {
			lib.sources[src] = newFakeDataset(4, 4, 1, testWKT, testGT)
		}
		items = append(items, contracts.WorkItem{
			SourcePath: src,
			DestPath:   fmt.Sprintf("out/img%02d.tif", i),
		})
	}
	return items
}

func successSet(outcomes []contracts.ConversionOutcome) []string {
	var paths []string
	for _, o := range outcomes {
		if o.Succeeded {
			paths = append(paths, o.Item.SourcePath)
		}
	}
	sort.Strings(paths)
	return paths
}

func TestRunBatchOneOutcomePerItem(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		t.Run(fmt.Sprintf("parallel=%v", parallel), func(t *testing.T) {
			lib := newFakeLibrary()
			items := seedBatch(lib, 12)

			outcomes := RunBatch(lib, DefaultEncodeOptions(), items, parallel, 3)
			if len(outcomes) != len(items) {
				t.Fatalf("got %d outcomes for %d items", len(outcomes), len(items))
			}
			for i, o := range outcomes {
				if o.Item.SourcePath != items[i].SourcePath {
					t.Errorf("outcome %d belongs to %s, want %s", i, o.Item.SourcePath, items[i].SourcePath)
				}
			}
		})
	}
}

func TestRunBatchParallelSequentialEquivalence(t *testing.T) {
	libSeq := newFakeLibrary()
	itemsSeq := seedBatch(libSeq, 10)
	libPar := newFakeLibrary()
	itemsPar := seedBatch(libPar, 10)

	seq := successSet(RunBatch(libSeq, DefaultEncodeOptions(), itemsSeq, false, 0))
	par := successSet(RunBatch(libPar, DefaultEncodeOptions(), itemsPar, true, 0))

	if len(seq) != len(par) {
		t.Fatalf("success sets differ in size: sequential %d, parallel %d", len(seq), len(par))
	}
	for i := range seq {
		if seq[i] != par[i] {
			t.Errorf("success sets differ at %d: %s vs %s", i, seq[i], par[i])
		}
	}
}

func TestRunBatchFailureIsolation(t *testing.T) {
	lib := newFakeLibrary()
	lib.sources["in/good.tif"] = newFakeDataset(4, 4, 1, testWKT, testGT)
	items := []contracts.WorkItem{
		{SourcePath: "in/corrupt.tif", DestPath: "out/corrupt.tif"},
		{SourcePath: "in/good.tif", DestPath: "out/good.tif"},
	}

	outcomes := RunBatch(lib, DefaultEncodeOptions(), items, false, 0)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if outcomes[0].Succeeded {
		t.Error("corrupt source must fail")
	}
	if !outcomes[1].Succeeded {
		t.Errorf("second item must be unaffected by the first failure: %s", outcomes[1].ErrorDetail)
	}
}

func TestRunBatchCreateFailureIsolation(t *testing.T) {
	// Destinations the library refuses to create (disk full, bad option
	// combination) fail as create-stage outcomes without aborting siblings.
	lib := newFakeLibrary()
	lib.sources["in/a.tif"] = newFakeDataset(4, 4, 1, testWKT, testGT)
	lib.sources["in/b.tif"] = newFakeDataset(4, 4, 1, testWKT, testGT)
	lib.createErr = errors.New("no space left on device")
	items := []contracts.WorkItem{
		{SourcePath: "in/a.tif", DestPath: "out/a.tif"},
		{SourcePath: "in/b.tif", DestPath: "out/b.tif"},
	}

	outcomes := RunBatch(lib, DefaultEncodeOptions(), items, false, 0)
	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Succeeded {
			t.Errorf("outcome %d succeeded despite the create failure", i)
		}
		if !strings.HasPrefix(o.ErrorDetail, string(KindCreate)) {
			t.Errorf("outcome %d detail %q does not name the create stage", i, o.ErrorDetail)
		}
	}
}

func TestRunBatchEmpty(t *testing.T) {
	outcomes := RunBatch(newFakeLibrary(), DefaultEncodeOptions(), nil, true, 0)
	if len(outcomes) != 0 {
		t.Fatalf("got %d outcomes for an empty batch", len(outcomes))
	}
}
