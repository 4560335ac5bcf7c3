package ingest

import (
	"context"

	"cinelist/internal/grammar"
	"cinelist/internal/logging"
	"cinelist/internal/normalize"
	"cinelist/internal/records"
)

// businessSource ingests the business list. Groups open with an `MV:`
// production reference and carry BT/GR/OW figure lines; a dashed separator
// line closes the group. The driver drops every figure line of a group
// whose production never resolved.
type businessSource struct {
	p          *Pipeline
	rep        *reporter
	production int64
}

func (s *businessSource) name() string { return SourceBusiness }

func (s *businessSource) markers() markers {
	return markers{
		header:          businessHeader,
		skipAfterHeader: 2,
		separator:       businessSeparator,
	}
}

func (s *businessSource) beginGroup(ctx context.Context, line string, _ int) error {
	clause, ok := grammar.MatchBusinessHeader(line)
	if !ok {
		return Wrap(ErrGrammar, SourceBusiness, "parse group header", line, nil)
	}
	production, err := normalize.Production(clause)
	if err != nil {
		return classifyClauseErr(SourceBusiness, "normalize group header", err)
	}

	productionID, found, err := s.p.lookupProduction(ctx, production)
	if err != nil {
		return err
	}
	if !found {
		return Wrap(ErrOwnerMissing, SourceBusiness, "resolve production", production.Title, nil)
	}
	s.production = productionID
	return nil
}

func (s *businessSource) continueGroup(ctx context.Context, line string, lineNo int) error {
	data, ok := grammar.MatchBusinessData(line)
	if !ok {
		// Groups carry many free-text lines (AD, SD, notes) between the
		// figures; they are not failures.
		return nil
	}
	row, overflow, err := normalize.BusinessEvent(data, s.production)
	if err != nil {
		return Wrap(ErrGrammar, SourceBusiness, "normalize figure", line, err)
	}
	if overflow {
		s.rep.logger.Warn("amount not representable, storing sentinel",
			logging.String(logging.FieldSource, SourceBusiness),
			logging.Int(logging.FieldLine, lineNo),
			logging.String("amount", data.AmountText))
	}
	row.ID = s.p.resolver.Allocate(records.EntityBusiness)
	if err := s.p.batch.InsertBusinessEvent(ctx, row); err != nil {
		return err
	}
	s.rep.written()
	return nil
}
