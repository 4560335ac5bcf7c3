package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cinelist/internal/config"
	"cinelist/internal/ingest"
	"cinelist/internal/logging"
	"cinelist/internal/store"
	"cinelist/internal/testsupport"
)

func dashes(n int) string {
	return strings.Repeat("-", n)
}

func writeCastFiles(t *testing.T, cfg *config.Config) {
	t.Helper()
	testsupport.WriteList(t, cfg, "actors",
		"THE ACTORS LIST",
		"----\t\t\t------",
		"Willis, Bruce\t\tDie Hard (1988)  [John McClane]  <1>",
		"\t\t\tDie Hard 2: Die Harder (1990)  (as Bruce)  [John McClane]  <1>",
		"",
		"Hamill, Mark\t\tStar Wars (1977)  [Luke Skywalker]  <1>",
		dashes(77),
		"junk after the data section",
	)
	testsupport.WriteList(t, cfg, "actresses",
		"----\t\t\t------",
		"Fisher, Carrie\t\tStar Wars (1977)  [Leia]  <2>",
		dashes(77),
	)
}

func writeAllFixtures(t *testing.T, cfg *config.Config) {
	t.Helper()
	writeCastFiles(t, cfg)
	testsupport.WriteList(t, cfg, "movies",
		"MOVIES LIST",
		"===========",
		"",
		"Die Hard (1988)\t\t\t1988",
		"Blade Runner (1982)\t\t1982",
		dashes(80),
		"and a pile of junk",
	)
	testsupport.WriteList(t, cfg, "ratings",
		"MOVIE RATINGS REPORT",
		"New  Distribution  Votes  Rank  Title",
		"",
		"      0000000125  1084   8.1  Die Hard (1988)",
		"      0000000125   104   7.9  Missing Movie (1999)",
		dashes(78),
	)
	testsupport.WriteList(t, cfg, "business",
		"BUSINESS LIST",
		"=============",
		"",
		"MV: Die Hard (1988)",
		"",
		"BT: USD 28,000,000",
		"",
		"GR: USD 83,008,852 (USA) (11 July 1989)",
		dashes(79),
		"MV: Missing Movie (1999)",
		"",
		"BT: USD 1,000,000",
		dashes(79),
	)
	testsupport.WriteList(t, cfg, "locations",
		"LOCATIONS LIST",
		"==============",
		"",
		"Die Hard (1988)\t\t\tLos Angeles, California, USA",
		"Missing Movie (1999)\t\tNowhere, At All",
		dashes(79),
	)
	testsupport.WriteList(t, cfg, "biographies",
		"BIOGRAPHY LIST",
		"==============",
		"",
		"NM: Willis, Bruce",
		"RN: Walter Bruce Willis",
		"DB: 19 March 1955, Idar-Oberstein, West Germany",
		"",
		dashes(79),
		"NM: Unknown, Totally",
		"DB: 1 January 1900, Nowhere",
		dashes(79),
	)
}

func newPipeline(t *testing.T, cfg *config.Config) (*ingest.Pipeline, *store.Store) {
	t.Helper()
	st := testsupport.MustOpenStore(t, cfg)
	return ingest.New(cfg, logging.NewNop(), st), st
}

func summaryFor(t *testing.T, summaries []ingest.Summary, source string) ingest.Summary {
	t.Helper()
	for _, s := range summaries {
		if s.Source == source {
			return s
		}
	}
	t.Fatalf("no summary for %s in %+v", source, summaries)
	return ingest.Summary{}
}

func TestFullIngestRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeAllFixtures(t, cfg)
	p, st := newPipeline(t, cfg)

	summaries, err := p.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(summaries) != 7 {
		t.Fatalf("expected 7 summaries, got %d", len(summaries))
	}
	if p.RunID() == "" {
		t.Fatal("expected a run ID")
	}

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	want := map[string]int64{
		"people":      3, // Willis, Hamill, Fisher
		"productions": 4, // Die Hard, Die Hard 2, Star Wars, Blade Runner
		"credits":     4,
		"ratings":     1,
		"business":    2,
		"locations":   1,
		"biographies": 1,
	}
	for key, expected := range want {
		if counts[key] != expected {
			t.Errorf("%s: got %d rows, want %d", key, counts[key], expected)
		}
	}

	// Every reference to a missing production or person is a diagnostic,
	// never a fabricated owner.
	for _, source := range []string{"ratings", "business", "locations", "biographies"} {
		if s := summaryFor(t, summaries, source); s.Diagnostics != 1 {
			t.Errorf("%s: expected 1 owner-miss diagnostic, got %d", source, s.Diagnostics)
		}
	}
}

func TestRatingOwnerMissWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteList(t, cfg, "ratings",
		"MOVIE RATINGS REPORT",
		"",
		"",
		"      0000000125  1084   8.1  Never Ingested (1988)",
		dashes(78),
	)
	p, st := newPipeline(t, cfg)

	summaries, err := p.Run(context.Background(), []string{"ratings"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	summary := summaryFor(t, summaries, "ratings")
	if summary.Written != 0 || summary.Diagnostics != 1 {
		t.Fatalf("expected 0 written and 1 diagnostic, got %+v", summary)
	}
	if len(summary.Samples) != 1 || summary.Samples[0].Line == 0 {
		t.Fatalf("expected a sampled diagnostic with a line number, got %+v", summary.Samples)
	}

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["ratings"] != 0 || counts["productions"] != 0 {
		t.Fatalf("owner miss must not write or fabricate rows: %+v", counts)
	}
}

func TestBiographyGroupIsolation(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeCastFiles(t, cfg)
	testsupport.WriteList(t, cfg, "biographies",
		"BIOGRAPHY LIST",
		"==============",
		"",
		"NM: Unknown, Totally",
		"DB: 1 January 1900, Nowhere",
		"DD: 2 February 1980, Nowhere (old age)",
		dashes(79),
		"NM: Willis, Bruce",
		"DB: 19 March 1955, Idar-Oberstein, West Germany",
		dashes(79),
	)
	p, st := newPipeline(t, cfg)

	summaries, err := p.Run(context.Background(), []string{"actors", "actresses", "biographies"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	summary := summaryFor(t, summaries, "biographies")
	if summary.Written != 1 {
		t.Fatalf("expected only the resolvable group to write, got %+v", summary)
	}
	// One owner-miss diagnostic for the unknown name, and its two fact
	// lines dropped without further diagnostics.
	if summary.Diagnostics != 1 || summary.Skipped != 3 {
		t.Fatalf("expected 1 diagnostic and 3 skipped lines, got %+v", summary)
	}

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["biographies"] != 1 {
		t.Fatalf("expected 1 biography row, got %d", counts["biographies"])
	}
}

func TestFatalYearAbortsFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteList(t, cfg, "ratings",
		"MOVIE RATINGS REPORT",
		"",
		"",
		"      0000000125  1084   8.1  Overflow Movie (99999999999999999999)",
		dashes(78),
	)
	p, _ := newPipeline(t, cfg)

	_, err := p.Run(context.Background(), []string{"ratings"})
	if !errors.Is(err, ingest.ErrFatalField) {
		t.Fatalf("expected fatal-field error, got %v", err)
	}
}

func TestSnapshotResumeServesLookups(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeAllFixtures(t, cfg)

	p, _ := newPipeline(t, cfg)
	if _, err := p.Run(context.Background(), []string{"actors", "actresses", "movies"}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Cache-only mode on the second run proves the productions came back
	// from the snapshot, not from a store query.
	cfg.Ingest.CacheOnly = true
	second, _ := newPipeline(t, cfg)
	summaries, err := second.Run(context.Background(), []string{"ratings"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if s := summaryFor(t, summaries, "ratings"); s.Written != 1 {
		t.Fatalf("expected snapshot-backed lookup to resolve, got %+v", s)
	}
}

func TestStoreFallbackAdoptsCommittedRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Ingest.CacheEnabled = false
	writeAllFixtures(t, cfg)

	p, _ := newPipeline(t, cfg)
	if _, err := p.Run(context.Background(), []string{"actors", "actresses", "movies"}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// No snapshots exist; the second run starts cold and must fall back to
	// the destination store for owners.
	second, st := newPipeline(t, cfg)
	summaries, err := second.Run(context.Background(), []string{"ratings"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if s := summaryFor(t, summaries, "ratings"); s.Written != 1 {
		t.Fatalf("expected store fallback to resolve, got %+v", s)
	}

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["ratings"] != 1 {
		t.Fatalf("expected 1 rating row, got %d", counts["ratings"])
	}
}

func TestHeaderSeekingIgnoresPreambleAndTrailer(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteList(t, cfg, "movies",
		"CRC: 0x1234",
		"some prose about the list",
		"===========",
		"",
		"Blade Runner (1982)\t\t1982",
		dashes(80),
		"this junk would not parse",
		"neither (would) this",
	)
	p, st := newPipeline(t, cfg)

	summaries, err := p.Run(context.Background(), []string{"movies"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	summary := summaryFor(t, summaries, "movies")
	if summary.Written != 1 || summary.Diagnostics != 0 {
		t.Fatalf("preamble and trailer must not produce diagnostics: %+v", summary)
	}

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts["productions"] != 1 {
		t.Fatalf("expected 1 production, got %d", counts["productions"])
	}
}

func TestUnknownSourceRejected(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	p, _ := newPipeline(t, cfg)
	if _, err := p.Run(context.Background(), []string{"subtitles"}); err == nil {
		t.Fatal("expected unknown source to be rejected")
	}
}
