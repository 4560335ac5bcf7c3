package ingest

import (
	"context"

	"cinelist/internal/grammar"
	"cinelist/internal/normalize"
	"cinelist/internal/records"
)

// locationSource ingests the filming-locations list, one record per line.
type locationSource struct {
	p   *Pipeline
	rep *reporter
}

func (s *locationSource) name() string { return SourceLocations }

func (s *locationSource) markers() markers {
	return markers{
		header:          locationHeader,
		skipAfterHeader: 2,
		terminator:      locationTerminator,
		singleRecord:    true,
	}
}

func (s *locationSource) beginGroup(ctx context.Context, line string, _ int) error {
	parsed, ok := grammar.MatchLocation(line)
	if !ok {
		return Wrap(ErrGrammar, SourceLocations, "parse location", line, nil)
	}
	production, err := normalize.Production(parsed.TitleClause)
	if err != nil {
		return classifyClauseErr(SourceLocations, "normalize location", err)
	}

	productionID, found, err := s.p.lookupProduction(ctx, production)
	if err != nil {
		return err
	}
	if !found {
		return Wrap(ErrOwnerMissing, SourceLocations, "resolve production", production.Title, nil)
	}

	row := normalize.Location(parsed, productionID)
	row.ID = s.p.resolver.Allocate(records.EntityLocations)
	if err := s.p.batch.InsertLocation(ctx, row); err != nil {
		return err
	}
	s.rep.written()
	return nil
}

func (s *locationSource) continueGroup(context.Context, string, int) error {
	return nil
}
