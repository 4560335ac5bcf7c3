package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinelist/internal/records"
)

// entityTables maps entity kinds to their destination tables.
var entityTables = map[records.Entity]string{
	records.EntityPeople:      "people",
	records.EntityProductions: "productions",
	records.EntityRatings:     "productions_ratings",
	records.EntityBusiness:    "productions_business",
	records.EntityLocations:   "productions_locations",
	records.EntityBiographies: "biographies",
}

// FindPersonID looks up a person by natural key in rows committed by
// earlier runs. It reports false without error when no row matches.
func (s *Store) FindPersonID(ctx context.Context, p records.Person) (int64, bool, error) {
	return s.findID(ctx,
		`SELECT id FROM people
		 WHERE last_name = ? AND first_name = ? AND nickname = ? AND gender = ? AND disambiguator = ?
		 LIMIT 1`,
		p.LastName, p.FirstName, p.Nickname, string(p.Gender), p.Index)
}

// FindProductionID looks up a production by natural key, episode identity
// included. It reports false without error when no row matches.
func (s *Store) FindProductionID(ctx context.Context, p records.Production) (int64, bool, error) {
	return s.findID(ctx,
		`SELECT id FROM productions
		 WHERE title = ? AND year = ? AND disambiguator = ? AND kind = ?
		   AND episode_title = ? AND season = ? AND episode_number = ?
		 LIMIT 1`,
		p.Title, p.Year, p.Index, string(p.Kind), p.EpisodeTitle, p.Season, p.EpisodeNumber)
}

func (s *Store) findID(ctx context.Context, query string, args ...any) (int64, bool, error) {
	ctx = ensureContext(ctx)
	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup id: %w", err)
	}
	return id, true, nil
}

// MaxID returns the highest assigned identity for an entity kind, zero when
// the table is empty. Resolvers use it to seed their counters past rows
// committed by earlier runs.
func (s *Store) MaxID(ctx context.Context, entity records.Entity) (int64, error) {
	table, ok := entityTables[entity]
	if !ok {
		return 0, fmt.Errorf("unknown entity %q", entity)
	}
	ctx = ensureContext(ctx)
	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(id) FROM "+table).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("max id for %s: %w", table, err)
	}
	return maxID.Int64, nil
}

// Counts returns the stored row count per entity kind plus the cast credit
// join table under the "credits" key.
func (s *Store) Counts(ctx context.Context) (map[string]int64, error) {
	ctx = ensureContext(ctx)
	counts := make(map[string]int64, len(entityTables)+1)

	for entity, table := range entityTables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		counts[string(entity)] = n
	}

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM people_x_productions").Scan(&n); err != nil {
		return nil, fmt.Errorf("count people_x_productions: %w", err)
	}
	counts["credits"] = n

	return counts, nil
}
