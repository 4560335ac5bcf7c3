package ingest

import (
	"context"

	"cinelist/internal/grammar"
	"cinelist/internal/normalize"
	"cinelist/internal/records"
)

// ratingSource ingests the ratings report, one record per line. Ratings
// never create productions; a reference to an unseen production drops the
// line.
type ratingSource struct {
	p   *Pipeline
	rep *reporter
}

func (s *ratingSource) name() string { return SourceRatings }

func (s *ratingSource) markers() markers {
	return markers{
		header:          ratingHeader,
		skipAfterHeader: 2,
		terminator:      ratingTerminator,
		singleRecord:    true,
	}
}

func (s *ratingSource) beginGroup(ctx context.Context, line string, _ int) error {
	parsed, ok := grammar.MatchRating(line)
	if !ok {
		return Wrap(ErrGrammar, SourceRatings, "parse rating", line, nil)
	}
	production, err := normalize.Production(parsed.TitleClause)
	if err != nil {
		return classifyClauseErr(SourceRatings, "normalize rating", err)
	}

	productionID, found, err := s.p.lookupProduction(ctx, production)
	if err != nil {
		return err
	}
	if !found {
		return Wrap(ErrOwnerMissing, SourceRatings, "resolve production", production.Title, nil)
	}

	row, err := normalize.Rating(parsed, productionID)
	if err != nil {
		return Wrap(ErrGrammar, SourceRatings, "normalize rating", line, err)
	}
	row.ID = s.p.resolver.Allocate(records.EntityRatings)
	if err := s.p.batch.InsertRating(ctx, row); err != nil {
		return err
	}
	s.rep.written()
	return nil
}

func (s *ratingSource) continueGroup(context.Context, string, int) error {
	return nil
}
