package ingest

import (
	"errors"
	"strings"

	"cinelist/internal/normalize"
)

// Section markers as the dumps actually spell them. The dash runs differ
// per file and are compared exactly, like the rest of the markers.
const (
	castHeader     = "----\t\t\t------"
	castTerminator = "-----------------------------------------------------------------------------"

	movieHeader     = "==========="
	movieTerminator = "--------------------------------------------------------------------------------"

	ratingHeader     = "MOVIE RATINGS REPORT"
	ratingTerminator = "------------------------------------------------------------------------------"

	businessHeader    = "BUSINESS LIST"
	businessSeparator = "-------------------------------------------------------------------------------"

	locationHeader     = "LOCATIONS LIST"
	locationTerminator = "-------------------------------------------------------------------------------"

	biographyHeader    = "BIOGRAPHY LIST"
	biographySeparator = "-------------------------------------------------------------------------------"
)

// classifyClauseErr sorts a title-clause normalization failure into the
// error taxonomy: a malformed year is fatal for the file, anything else
// (a bad roman disambiguator) is a per-line grammar failure.
func classifyClauseErr(sourceName, op string, err error) error {
	if errors.Is(err, normalize.ErrYear) {
		return Wrap(ErrFatalField, sourceName, op, "", err)
	}
	return Wrap(ErrGrammar, sourceName, op, "", err)
}

// lastTabField returns the text after the final tab, the whole line when it
// has none. Cast group lines put the name before the tabs and the first
// credit after them.
func lastTabField(line string) string {
	if i := strings.LastIndexByte(line, '\t'); i >= 0 {
		return line[i+1:]
	}
	return line
}
