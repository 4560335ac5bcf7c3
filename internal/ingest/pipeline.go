package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cinelist/internal/config"
	"cinelist/internal/logging"
	"cinelist/internal/records"
	"cinelist/internal/resolve"
	"cinelist/internal/store"
)

// Source names in processing order. Cast files run first because they
// create both people and productions; the movies list adds productions the
// cast files never saw; the remaining four only look owners up.
var AllSources = []string{
	SourceActors,
	SourceActresses,
	SourceMovies,
	SourceRatings,
	SourceBusiness,
	SourceLocations,
	SourceBiographies,
}

const (
	SourceActors      = "actors"
	SourceActresses   = "actresses"
	SourceMovies      = "movies"
	SourceRatings     = "ratings"
	SourceBusiness    = "business"
	SourceLocations   = "locations"
	SourceBiographies = "biographies"
)

// Pipeline wires the resolver, the destination store, and the per-file
// drivers into one ingest run.
type Pipeline struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	resolver *resolve.Resolver
	batch    *store.Batch
	runID    string
}

// New assembles a pipeline. The caller owns the store; the pipeline owns
// the resolver snapshots under the config's cache directory.
func New(cfg *config.Config, logger *slog.Logger, st *store.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	snapshotDir := ""
	if cfg.Ingest.CacheEnabled {
		snapshotDir = cfg.Paths.CacheDir
	}
	return &Pipeline{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "ingest"),
		store:    st,
		resolver: resolve.New(snapshotDir, logger),
	}
}

// RunID returns the identity of the current or last run, empty before the
// first Run call.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run ingests the named sources. Unknown names are rejected; an empty
// selection means every source. Summaries come back in processing order,
// covering the sources that ran before any fatal error.
func (p *Pipeline) Run(ctx context.Context, selection []string) ([]Summary, error) {
	selected, err := selectSources(selection)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.CacheDir, "ingest.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	p.runID = uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRunID, p.runID))
	start := time.Now()
	logger.Info("ingest run starting", logging.Any("sources", selectionNames(selected)))

	if err := p.prepareResolver(ctx); err != nil {
		return nil, err
	}

	batch, err := p.store.NewBatch(ctx, p.cfg.Ingest.CommitEvery)
	if err != nil {
		return nil, err
	}
	p.batch = batch
	defer func() { _ = batch.Rollback() }()

	var summaries []Summary

	// Ownership phase: cast files and the movies list create entities and
	// must run in order from a single cursor each.
	for _, name := range []string{SourceActors, SourceActresses, SourceMovies} {
		if !selected[name] {
			continue
		}
		summary, err := p.runSource(ctx, name, logger)
		if err != nil {
			return append(summaries, summary), err
		}
		summaries = append(summaries, summary)
	}

	// Dependent phase: these sources only look owners up, so they can run
	// concurrently once the ownership phase is done.
	dependent := make([]string, 0, 4)
	for _, name := range []string{SourceRatings, SourceBusiness, SourceLocations, SourceBiographies} {
		if selected[name] {
			dependent = append(dependent, name)
		}
	}
	depSummaries, err := p.runConcurrent(ctx, dependent, logger)
	summaries = append(summaries, depSummaries...)
	if err != nil {
		return summaries, err
	}

	if err := batch.Commit(ctx); err != nil {
		return summaries, err
	}
	if p.cfg.Ingest.CacheEnabled {
		if err := p.resolver.SnapshotAll(); err != nil {
			return summaries, fmt.Errorf("snapshot resolver: %w", err)
		}
	}

	logger.Info("ingest run complete",
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("files", len(summaries)))
	return summaries, nil
}

// prepareResolver restores snapshots when caching is on, then moves every
// counter past the rows already committed to the store so fresh identities
// never collide on a cold cache.
func (p *Pipeline) prepareResolver(ctx context.Context) error {
	for _, kind := range records.AllEntities {
		if p.cfg.Ingest.CacheEnabled {
			if _, err := p.resolver.Restore(kind, false); err != nil {
				return err
			}
		}
		maxID, err := p.store.MaxID(ctx, kind)
		if err != nil {
			return err
		}
		p.resolver.Seed(kind, maxID+1)
	}
	return nil
}

func (p *Pipeline) runSource(ctx context.Context, name string, logger *slog.Logger) (Summary, error) {
	rep := newReporter(name, logger)
	src, err := p.newSource(name, rep)
	if err != nil {
		return Summary{Source: name}, err
	}

	path := p.cfg.ListPath(name)
	file, err := os.Open(path)
	if err != nil {
		return Summary{Source: name}, fmt.Errorf("open list file: %w", err)
	}
	defer file.Close()

	logger.Info("processing list file",
		logging.String(logging.FieldSource, name),
		logging.String(logging.FieldFile, path))

	summary, err := runFile(ctx, src, file, rep, p.cfg.Ingest.ProgressEvery)
	if err != nil {
		return summary, err
	}
	logger.Info("list file complete",
		logging.String(logging.FieldSource, name),
		logging.Int(logging.FieldRows, summary.Written),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("elapsed", summary.Duration))
	return summary, nil
}

func (p *Pipeline) runConcurrent(ctx context.Context, names []string, logger *slog.Logger) ([]Summary, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		summaries []Summary
		firstErr  error
	)
	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			summary, err := p.runSource(ctx, name, logger)
			mu.Lock()
			defer mu.Unlock()
			summaries = append(summaries, summary)
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}(name)
	}
	wg.Wait()

	sort.Slice(summaries, func(i, j int) bool {
		return sourceOrder(summaries[i].Source) < sourceOrder(summaries[j].Source)
	})
	return summaries, firstErr
}

func (p *Pipeline) newSource(name string, rep *reporter) (source, error) {
	switch name {
	case SourceActors:
		return &castSource{p: p, rep: rep, sourceName: name, gender: records.GenderMale}, nil
	case SourceActresses:
		return &castSource{p: p, rep: rep, sourceName: name, gender: records.GenderFemale}, nil
	case SourceMovies:
		return &movieSource{p: p, rep: rep}, nil
	case SourceRatings:
		return &ratingSource{p: p, rep: rep}, nil
	case SourceBusiness:
		return &businessSource{p: p, rep: rep}, nil
	case SourceLocations:
		return &locationSource{p: p, rep: rep}, nil
	case SourceBiographies:
		return &biographySource{p: p, rep: rep}, nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

func selectSources(selection []string) (map[string]bool, error) {
	selected := make(map[string]bool, len(AllSources))
	if len(selection) == 0 {
		for _, name := range AllSources {
			selected[name] = true
		}
		return selected, nil
	}
	for _, name := range selection {
		if sourceOrder(name) < 0 {
			return nil, fmt.Errorf("unknown source %q", name)
		}
		selected[name] = true
	}
	return selected, nil
}

func selectionNames(selected map[string]bool) []string {
	names := make([]string, 0, len(selected))
	for _, name := range AllSources {
		if selected[name] {
			names = append(names, name)
		}
	}
	return names
}

func sourceOrder(name string) int {
	for i, candidate := range AllSources {
		if candidate == name {
			return i
		}
	}
	return -1
}

// createPerson resolves-or-creates the person and writes the row on first
// sight.
func (p *Pipeline) createPerson(ctx context.Context, rec records.Person) (int64, error) {
	id, created := p.resolver.ResolveOrCreate(records.EntityPeople, rec.NaturalKey())
	if created {
		rec.ID = id
		if err := p.batch.InsertPerson(ctx, rec); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// createProduction resolves-or-creates the production and writes the row on
// first sight.
func (p *Pipeline) createProduction(ctx context.Context, rec records.Production) (int64, error) {
	id, created := p.resolver.ResolveOrCreate(records.EntityProductions, rec.NaturalKey())
	if created {
		rec.ID = id
		if err := p.batch.InsertProduction(ctx, rec); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// lookupProduction resolves a production reference without creating one. On
// a cache miss it falls back to the store unless cache-only mode is on;
// store hits are adopted so later references stay in memory.
func (p *Pipeline) lookupProduction(ctx context.Context, rec records.Production) (int64, bool, error) {
	key := rec.NaturalKey()
	if id, ok := p.resolver.Lookup(records.EntityProductions, key); ok {
		return id, true, nil
	}
	if p.cfg.Ingest.CacheOnly {
		return 0, false, nil
	}
	id, found, err := p.store.FindProductionID(ctx, rec)
	if err != nil || !found {
		return 0, false, err
	}
	p.resolver.Adopt(records.EntityProductions, key, id)
	return id, true, nil
}

// lookupPerson resolves a person reference without creating one, with the
// same store fallback as lookupProduction.
func (p *Pipeline) lookupPerson(ctx context.Context, rec records.Person) (int64, bool, error) {
	key := rec.NaturalKey()
	if id, ok := p.resolver.Lookup(records.EntityPeople, key); ok {
		return id, true, nil
	}
	if p.cfg.Ingest.CacheOnly {
		return 0, false, nil
	}
	id, found, err := p.store.FindPersonID(ctx, rec)
	if err != nil || !found {
		return 0, false, err
	}
	p.resolver.Adopt(records.EntityPeople, key, id)
	return id, true, nil
}
