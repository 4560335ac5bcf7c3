package ingest

import (
	"context"

	"cinelist/internal/grammar"
	"cinelist/internal/normalize"
	"cinelist/internal/records"
)

// biographySource ingests the biography list. Groups open with an `NM:`
// name line and carry DB/DD fact lines. The file does not say which cast
// file a person came from, so the owner lookup tries the male key first and
// falls back to the female key.
type biographySource struct {
	p      *Pipeline
	rep    *reporter
	person int64
}

func (s *biographySource) name() string { return SourceBiographies }

func (s *biographySource) markers() markers {
	return markers{
		header:          biographyHeader,
		skipAfterHeader: 2,
		separator:       biographySeparator,
	}
}

func (s *biographySource) beginGroup(ctx context.Context, line string, _ int) error {
	parsed, ok := grammar.MatchBiographyName(line)
	if !ok {
		return Wrap(ErrGrammar, SourceBiographies, "parse name", line, nil)
	}

	personID, found, err := s.lookupEitherGender(ctx, parsed)
	if err != nil {
		return err
	}
	if !found {
		return Wrap(ErrOwnerMissing, SourceBiographies, "resolve person", parsed.FirstName+" "+parsed.LastName, nil)
	}
	s.person = personID
	return nil
}

func (s *biographySource) lookupEitherGender(ctx context.Context, parsed grammar.Name) (int64, bool, error) {
	for _, gender := range []records.Gender{records.GenderMale, records.GenderFemale} {
		person, err := normalize.Person(parsed, gender)
		if err != nil {
			return 0, false, Wrap(ErrGrammar, SourceBiographies, "normalize name", parsed.FirstName, err)
		}
		id, found, err := s.p.lookupPerson(ctx, person)
		if err != nil {
			return 0, false, err
		}
		if found {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *biographySource) continueGroup(ctx context.Context, line string, _ int) error {
	data, ok := grammar.MatchBiographyData(line)
	if !ok {
		// Biography groups are mostly prose (RN, BY, BG lines); only the
		// date facts are ingested.
		return nil
	}
	row, err := normalize.BiographyFact(data, s.person)
	if err != nil {
		return Wrap(ErrGrammar, SourceBiographies, "normalize fact", line, err)
	}
	row.ID = s.p.resolver.Allocate(records.EntityBiographies)
	if err := s.p.batch.InsertBiographyFact(ctx, row); err != nil {
		return err
	}
	s.rep.written()
	return nil
}
