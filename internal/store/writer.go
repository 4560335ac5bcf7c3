package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"cinelist/internal/records"
)

// Batch groups inserts into transactions. Once pending rows reach the
// commit interval the open transaction commits and a fresh one begins, so
// a crashed run loses at most one interval of work. A Batch is safe for
// concurrent use; writes are serialized internally because SQLite allows a
// single writer.
type Batch struct {
	mu      sync.Mutex
	store   *Store
	tx      *sql.Tx
	every   int
	pending int
}

// NewBatch begins a write transaction. every is the number of rows between
// commits; zero or negative keeps a single transaction open until Commit.
func (s *Store) NewBatch(ctx context.Context, every int) (*Batch, error) {
	ctx = ensureContext(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	return &Batch{store: s, tx: tx, every: every}, nil
}

func (b *Batch) exec(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tx == nil {
		return fmt.Errorf("batch is closed")
	}
	if _, err := b.tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	b.pending++
	if b.every > 0 && b.pending >= b.every {
		return b.rotateLocked(ctx)
	}
	return nil
}

func (b *Batch) rotateLocked(ctx context.Context) error {
	if err := b.tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	b.tx = nil
	b.pending = 0

	var tx *sql.Tx
	err := retryOnBusy(ctx, func() error {
		var beginErr error
		tx, beginErr = b.store.db.BeginTx(ctx, nil)
		return beginErr
	})
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	b.tx = tx
	return nil
}

// Commit flushes any pending rows and closes the batch.
func (b *Batch) Commit(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tx == nil {
		return nil
	}
	err := b.tx.Commit()
	b.tx = nil
	if err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Rollback discards pending rows and closes the batch. Calling it after
// Commit is a no-op, so it is safe to defer.
func (b *Batch) Rollback() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.tx == nil {
		return nil
	}
	err := b.tx.Rollback()
	b.tx = nil
	return err
}

func (b *Batch) InsertPerson(ctx context.Context, p records.Person) error {
	return b.exec(ctx,
		`INSERT INTO people (id, last_name, first_name, nickname, gender, disambiguator)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.LastName, p.FirstName, p.Nickname, string(p.Gender), p.Index)
}

func (b *Batch) InsertProduction(ctx context.Context, p records.Production) error {
	return b.exec(ctx,
		`INSERT INTO productions (id, title, year, disambiguator, kind, episode_title, season, episode_number)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Year, p.Index, string(p.Kind), p.EpisodeTitle, p.Season, p.EpisodeNumber)
}

func (b *Batch) InsertCastCredit(ctx context.Context, c records.CastCredit) error {
	return b.exec(ctx,
		`INSERT INTO people_x_productions (production_id, person_id, character, billing_position, special_info)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ProductionID, c.PersonID, c.Character, c.Billing, c.SpecialInfo)
}

func (b *Batch) InsertRating(ctx context.Context, r records.Rating) error {
	return b.exec(ctx,
		`INSERT INTO productions_ratings (id, production_id, distribution, votes, rating)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.ProductionID, r.Distribution, r.Votes, r.Rating)
}

func (b *Batch) InsertBusinessEvent(ctx context.Context, e records.BusinessEvent) error {
	return b.exec(ctx,
		`INSERT INTO productions_business (id, production_id, kind, currency, amount, region, date, screens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProductionID, string(e.Kind), e.Currency, e.Amount, e.Region, e.Date, e.Screens)
}

func (b *Batch) InsertLocation(ctx context.Context, l records.Location) error {
	return b.exec(ctx,
		`INSERT INTO productions_locations (id, production_id, name, location, annotation)
		 VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.ProductionID, l.Name, l.Location, l.Annotation)
}

func (b *Batch) InsertBiographyFact(ctx context.Context, f records.BiographyFact) error {
	return b.exec(ctx,
		`INSERT INTO biographies (id, person_id, kind, date, place, cause_of_death)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID, f.PersonID, string(f.Kind), f.Date, f.Place, f.CauseOfDeath)
}
