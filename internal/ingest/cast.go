package ingest

import (
	"context"
	"errors"
	"strings"

	"cinelist/internal/grammar"
	"cinelist/internal/normalize"
	"cinelist/internal/records"
)

// castSource ingests the actors or actresses file. A group starts with a
// name column, a tab run, and the first credit on the same line; the
// remaining credits follow one per line. Gender comes from the file, so the
// same name in both files stays two people.
type castSource struct {
	p          *Pipeline
	rep        *reporter
	sourceName string
	gender     records.Gender
	person     int64
}

func (s *castSource) name() string { return s.sourceName }

func (s *castSource) markers() markers {
	return markers{
		header:           castHeader,
		terminator:       castTerminator,
		blankStartsGroup: true,
	}
}

func (s *castSource) beginGroup(ctx context.Context, line string, lineNo int) error {
	nameText, _, _ := strings.Cut(line, "\t")
	parsed, ok := grammar.MatchName(nameText)
	if !ok {
		return Wrap(ErrGrammar, s.sourceName, "parse name", nameText, nil)
	}
	person, err := normalize.Person(parsed, s.gender)
	if err != nil {
		return Wrap(ErrGrammar, s.sourceName, "normalize name", nameText, err)
	}

	id, err := s.p.createPerson(ctx, person)
	if err != nil {
		return err
	}
	s.person = id

	// The first credit shares the group line. A bad credit is its own
	// diagnostic; it does not invalidate the person's remaining credits.
	if err := s.continueGroup(ctx, lastTabField(line), lineNo); err != nil {
		if !errors.Is(err, ErrGrammar) {
			return err
		}
		s.rep.diagnostic(lineNo, line, err.Error())
	}
	return nil
}

func (s *castSource) continueGroup(ctx context.Context, line string, _ int) error {
	credit, ok := grammar.MatchCastCredit(strings.TrimSpace(line))
	if !ok {
		return Wrap(ErrGrammar, s.sourceName, "parse credit", line, nil)
	}
	production, err := normalize.Production(credit.TitleClause)
	if err != nil {
		return classifyClauseErr(s.sourceName, "normalize credit", err)
	}

	productionID, err := s.p.createProduction(ctx, production)
	if err != nil {
		return err
	}
	row := normalize.CastCredit(credit, productionID, s.person)
	if err := s.p.batch.InsertCastCredit(ctx, row); err != nil {
		return err
	}
	s.rep.written()
	return nil
}
