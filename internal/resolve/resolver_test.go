package resolve_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cinelist/internal/records"
	"cinelist/internal/resolve"
)

func TestResolveOrCreateIsIdempotent(t *testing.T) {
	r := resolve.New("", nil)

	first, created := r.ResolveOrCreate(records.EntityProductions, "die hard")
	if !created || first != 1 {
		t.Fatalf("first sight = %d, created=%v", first, created)
	}
	second, created := r.ResolveOrCreate(records.EntityProductions, "die hard")
	if created || second != first {
		t.Fatalf("second sight = %d, created=%v, want %d", second, created, first)
	}
}

func TestAllocationIsMonotonicPerKind(t *testing.T) {
	r := resolve.New("", nil)

	var last int64
	for i := 0; i < 100; i++ {
		id, created := r.ResolveOrCreate(records.EntityPeople, fmt.Sprintf("person-%d", i))
		if !created {
			t.Fatalf("key person-%d already existed", i)
		}
		if id <= last {
			t.Fatalf("id %d not greater than previous %d", id, last)
		}
		last = id
	}

	// A different kind has its own ID space starting at 1.
	if id, _ := r.ResolveOrCreate(records.EntityProductions, "unrelated"); id != 1 {
		t.Fatalf("production ids must start at 1, got %d", id)
	}
}

func TestLookupNeverCreates(t *testing.T) {
	r := resolve.New("", nil)

	if _, ok := r.Lookup(records.EntityProductions, "missing"); ok {
		t.Fatal("lookup of unseen key should miss")
	}
	if r.Count(records.EntityProductions) != 0 {
		t.Fatal("lookup must not create entries")
	}

	id, _ := r.ResolveOrCreate(records.EntityProductions, "seen")
	got, ok := r.Lookup(records.EntityProductions, "seen")
	if !ok || got != id {
		t.Fatalf("Lookup = %d, %v; want %d", got, ok, id)
	}
}

func TestAdoptMovesCounterPast(t *testing.T) {
	r := resolve.New("", nil)

	r.Adopt(records.EntityPeople, "from-store", 40)
	if id, ok := r.Lookup(records.EntityPeople, "from-store"); !ok || id != 40 {
		t.Fatalf("adopted id = %d, %v", id, ok)
	}
	if id, _ := r.ResolveOrCreate(records.EntityPeople, "fresh"); id != 41 {
		t.Fatalf("fresh id after adopt = %d, want 41", id)
	}

	// Adopting an existing key must not overwrite it.
	r.Adopt(records.EntityPeople, "fresh", 99)
	if id, _ := r.Lookup(records.EntityPeople, "fresh"); id != 41 {
		t.Fatalf("adopt overwrote existing key: %d", id)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := resolve.New(dir, nil)

	keys := []string{"alpha", "beta", "gamma"}
	for _, k := range keys {
		r.ResolveOrCreate(records.EntityProductions, k)
	}
	if err := r.Snapshot(records.EntityProductions); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	fresh := resolve.New(dir, nil)
	loaded, err := fresh.Restore(records.EntityProductions, false)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !loaded {
		t.Fatal("expected snapshot to load")
	}
	for i, k := range keys {
		id, ok := fresh.Lookup(records.EntityProductions, k)
		if !ok || id != int64(i+1) {
			t.Fatalf("restored %q = %d, %v; want %d", k, id, ok, i+1)
		}
	}
	if fresh.NextID(records.EntityProductions) != r.NextID(records.EntityProductions) {
		t.Fatal("next-id counter did not round-trip")
	}

	// New creations continue where the snapshot left off.
	if id, _ := fresh.ResolveOrCreate(records.EntityProductions, "delta"); id != 4 {
		t.Fatalf("post-restore id = %d, want 4", id)
	}
}

func TestRestoreIsNoOpWhenWarm(t *testing.T) {
	dir := t.TempDir()
	r := resolve.New(dir, nil)
	r.ResolveOrCreate(records.EntityPeople, "snap")
	if err := r.Snapshot(records.EntityPeople); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	warm := resolve.New(dir, nil)
	warm.ResolveOrCreate(records.EntityPeople, "other")
	loaded, err := warm.Restore(records.EntityPeople, false)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if loaded {
		t.Fatal("warm kind must not be overwritten without force")
	}

	loaded, err = warm.Restore(records.EntityPeople, true)
	if err != nil {
		t.Fatalf("forced Restore: %v", err)
	}
	if !loaded {
		t.Fatal("forced restore should load")
	}
	if _, ok := warm.Lookup(records.EntityPeople, "snap"); !ok {
		t.Fatal("forced restore should replace the map")
	}
}

func TestRestoreCorruptSnapshotStartsCold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "productions.resolver.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := resolve.New(dir, nil)
	loaded, err := r.Restore(records.EntityProductions, false)
	if err != nil {
		t.Fatalf("corrupt snapshot must not be fatal: %v", err)
	}
	if loaded {
		t.Fatal("corrupt snapshot should not report as loaded")
	}
	if id, _ := r.ResolveOrCreate(records.EntityProductions, "cold"); id != 1 {
		t.Fatalf("cold start should allocate from 1, got %d", id)
	}
}

func TestResolveOrCreateSingleWriter(t *testing.T) {
	r := resolve.New("", nil)

	const workers = 8
	var wg sync.WaitGroup
	ids := make([]int64, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			id, _ := r.ResolveOrCreate(records.EntityProductions, "contended")
			ids[w] = id
		}(w)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("concurrent creations disagreed: %v", ids)
		}
	}
	if r.Count(records.EntityProductions) != 1 {
		t.Fatalf("expected one entry, got %d", r.Count(records.EntityProductions))
	}
}

func TestAllocateSkipsKeyRegistration(t *testing.T) {
	r := resolve.New("", nil)

	first := r.Allocate(records.EntityRatings)
	second := r.Allocate(records.EntityRatings)
	if first != 1 || second != 2 {
		t.Fatalf("expected sequential ids, got %d then %d", first, second)
	}
	if r.Count(records.EntityRatings) != 0 {
		t.Fatalf("Allocate must not register keys, count=%d", r.Count(records.EntityRatings))
	}
	if id, _ := r.ResolveOrCreate(records.EntityRatings, "keyed"); id != 3 {
		t.Fatalf("creation after Allocate should continue the sequence, got %d", id)
	}
}

func TestSeedAdvancesCounterOnly(t *testing.T) {
	r := resolve.New("", nil)

	r.Seed(records.EntityPeople, 100)
	if id, _ := r.ResolveOrCreate(records.EntityPeople, "after-seed"); id != 100 {
		t.Fatalf("expected seeded id 100, got %d", id)
	}

	// Seeding backwards never lowers the counter.
	r.Seed(records.EntityPeople, 5)
	if next := r.NextID(records.EntityPeople); next != 101 {
		t.Fatalf("backward seed must be ignored, next=%d", next)
	}
}
