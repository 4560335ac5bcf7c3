package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"cinelist/internal/records"
	"cinelist/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenPath(filepath.Join(t.TempDir(), "cinelist.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndFindPerson(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	person := records.Person{
		ID:        1,
		LastName:  "Willis",
		FirstName: "Bruce",
		Gender:    records.GenderMale,
		Index:     1,
	}

	batch, err := s.NewBatch(ctx, 0)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	if err := batch.InsertPerson(ctx, person); err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	id, found, err := s.FindPersonID(ctx, person)
	if err != nil {
		t.Fatalf("FindPersonID: %v", err)
	}
	if !found || id != 1 {
		t.Fatalf("expected id 1, got id=%d found=%v", id, found)
	}

	other := person
	other.Gender = records.GenderFemale
	if _, found, err := s.FindPersonID(ctx, other); err != nil || found {
		t.Fatalf("gender should partition identity, found=%v err=%v", found, err)
	}
}

func TestInsertAndFindProduction(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := records.Production{
		ID:            1,
		Title:         "Some Show",
		Year:          1994,
		Index:         1,
		Kind:          records.KindTelevision,
		EpisodeTitle:  records.NoEpisodeTitle,
		Season:        records.NoSeason,
		EpisodeNumber: records.NoEpisodeNumber,
	}
	episode := base
	episode.ID = 2
	episode.EpisodeTitle = "Pilot"
	episode.Season = 1
	episode.EpisodeNumber = 1

	batch, err := s.NewBatch(ctx, 0)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	for _, p := range []records.Production{base, episode} {
		if err := batch.InsertProduction(ctx, p); err != nil {
			t.Fatalf("InsertProduction: %v", err)
		}
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	id, found, err := s.FindProductionID(ctx, episode)
	if err != nil || !found || id != 2 {
		t.Fatalf("episode lookup: id=%d found=%v err=%v", id, found, err)
	}
	id, found, err = s.FindProductionID(ctx, base)
	if err != nil || !found || id != 1 {
		t.Fatalf("series lookup: id=%d found=%v err=%v", id, found, err)
	}
}

func TestBatchRotationPersistsEarlierRows(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	batch, err := s.NewBatch(ctx, 2)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	for i := int64(1); i <= 3; i++ {
		p := records.Person{ID: i, LastName: "Doe", FirstName: "J.", Gender: records.GenderMale, Index: int(i)}
		if err := batch.InsertPerson(ctx, p); err != nil {
			t.Fatalf("InsertPerson %d: %v", i, err)
		}
	}
	// Two rows committed by rotation; the third is pending and discarded.
	if err := batch.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["people"] != 2 {
		t.Fatalf("expected 2 committed people, got %d", counts["people"])
	}
}

func TestMaxIDSeedsFromCommittedRows(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	maxID, err := s.MaxID(ctx, records.EntityProductions)
	if err != nil {
		t.Fatalf("MaxID on empty table: %v", err)
	}
	if maxID != 0 {
		t.Fatalf("empty table should report 0, got %d", maxID)
	}

	batch, err := s.NewBatch(ctx, 0)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	p := records.Production{ID: 41, Title: "Die Hard", Year: 1988, Index: 1, Kind: records.KindFeature,
		Season: records.NoSeason, EpisodeNumber: records.NoEpisodeNumber}
	if err := batch.InsertProduction(ctx, p); err != nil {
		t.Fatalf("InsertProduction: %v", err)
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	maxID, err = s.MaxID(ctx, records.EntityProductions)
	if err != nil {
		t.Fatalf("MaxID: %v", err)
	}
	if maxID != 41 {
		t.Fatalf("expected max id 41, got %d", maxID)
	}
}

func TestDependentRowsRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	batch, err := s.NewBatch(ctx, 0)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	production := records.Production{ID: 1, Title: "Die Hard", Year: 1988, Index: 1, Kind: records.KindFeature,
		Season: records.NoSeason, EpisodeNumber: records.NoEpisodeNumber}
	person := records.Person{ID: 1, LastName: "Willis", FirstName: "Bruce", Gender: records.GenderMale, Index: 1}
	if err := batch.InsertProduction(ctx, production); err != nil {
		t.Fatalf("InsertProduction: %v", err)
	}
	if err := batch.InsertPerson(ctx, person); err != nil {
		t.Fatalf("InsertPerson: %v", err)
	}

	inserts := []struct {
		name string
		err  error
	}{
		{"credit", batch.InsertCastCredit(ctx, records.CastCredit{ProductionID: 1, PersonID: 1, Character: "John McClane", Billing: 1})},
		{"rating", batch.InsertRating(ctx, records.Rating{ID: 1, ProductionID: 1, Distribution: "0000000125", Votes: 1084, Rating: 8.1})},
		{"business", batch.InsertBusinessEvent(ctx, records.BusinessEvent{ID: 1, ProductionID: 1, Kind: records.BusinessBudget, Currency: "USD", Amount: 28000000, Screens: records.NoScreens})},
		{"location", batch.InsertLocation(ctx, records.Location{ID: 1, ProductionID: 1, Location: "Los Angeles, California, USA"})},
		{"biography", batch.InsertBiographyFact(ctx, records.BiographyFact{ID: 1, PersonID: 1, Kind: records.BiographyBorn, Date: "19 March 1955", Place: "Idar-Oberstein, Germany"})},
	}
	for _, ins := range inserts {
		if ins.err != nil {
			t.Fatalf("insert %s: %v", ins.name, ins.err)
		}
	}
	if err := batch.Commit(ctx); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	for _, key := range []string{"ratings", "business", "locations", "biographies", "credits"} {
		if counts[key] != 1 {
			t.Fatalf("expected 1 %s row, got %d", key, counts[key])
		}
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cinelist.db")

	first, err := store.OpenPath(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := store.OpenPath(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	if _, err := second.Counts(context.Background()); err != nil {
		t.Fatalf("Counts after reopen: %v", err)
	}
}
