package ingest

import (
	"context"

	"cinelist/internal/grammar"
	"cinelist/internal/normalize"
)

// movieSource ingests the productions list, one record per line. It mostly
// re-sees productions the cast files already created; new ones are titles
// with no credited cast.
type movieSource struct {
	p   *Pipeline
	rep *reporter
}

func (s *movieSource) name() string { return SourceMovies }

func (s *movieSource) markers() markers {
	return markers{
		header:          movieHeader,
		skipAfterHeader: 1,
		terminator:      movieTerminator,
		singleRecord:    true,
	}
}

func (s *movieSource) beginGroup(ctx context.Context, line string, _ int) error {
	clause, ok := grammar.MatchProduction(line)
	if !ok {
		return Wrap(ErrGrammar, SourceMovies, "parse production", line, nil)
	}
	production, err := normalize.Production(clause)
	if err != nil {
		return classifyClauseErr(SourceMovies, "normalize production", err)
	}
	if _, err := s.p.createProduction(ctx, production); err != nil {
		return err
	}
	s.rep.written()
	return nil
}

func (s *movieSource) continueGroup(context.Context, string, int) error {
	return nil
}
