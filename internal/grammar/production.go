package grammar

import (
	"regexp"
	"strings"
)

var (
	// productionRE matches one line of the productions list. The trailing
	// column repeats the publish year (or a year range); it carries no new
	// information and is not extracted.
	productionRE  = regexp.MustCompile(`^` + titleClause + `(?:\s*(?:\?{4}|\d{4}(?:-\d{4})?))?`)
	productionIdx = clauseIdx(productionRE)

	akaNameRE = regexp.MustCompile(`^\s*\(aka (?P<alias>[^)]+)\)`)

	akaTitleHeaderRE = regexp.MustCompile(
		`^"?(?P<title>[^"]*)"?\s*\((?P<year>\d{4}|\?{4})(?:/(?P<roman>\w*))?\)\s*(?:\((?P<kind>T?VG?)\))?`)

	akaTitleAliasRE = regexp.MustCompile(
		`^\(aka\s+"?(?P<title>[^"]*)"?\s+\((?P<year>\d{4}|\?{4})\)\s*\)\s*(?:\((?P<location>[^)]*)\))?\s*(?:\((?P<reason>[^)]*)\))?`)

	titleGenreRE = regexp.MustCompile(`^"?(?P<title>[^"]*)"?\s*` +
		`\((?P<year>\d{4}|\?{4})(?:/(?P<roman>\w*))?\)` +
		fragKind + fragEpisode + fragSuspended +
		`\s*(?P<genre>[-.'$\w]+)`)
	titleGenreIdx = clauseIdx(titleGenreRE)
)

// MatchProduction parses a line of the productions (movies) list.
func MatchProduction(line string) (TitleClause, bool) {
	m := productionRE.FindStringSubmatch(line)
	if m == nil {
		return TitleClause{}, false
	}
	c := productionIdx.clause(m)
	if c.Title == "" {
		return TitleClause{}, false
	}
	return c, true
}

// MatchAkaName parses an alias line from the aka-names file and returns the
// alias text.
func MatchAkaName(line string) (string, bool) {
	m := akaNameRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[akaNameRE.SubexpIndex("alias")]), true
}

// AkaTitleHeader is the owning-title line of an aka-titles group.
type AkaTitleHeader struct {
	Title    string
	YearText string
	Roman    string
	KindCode string
}

// MatchAkaTitleHeader parses the group-start line of the aka-titles file.
func MatchAkaTitleHeader(line string) (AkaTitleHeader, bool) {
	m := akaTitleHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return AkaTitleHeader{}, false
	}
	h := AkaTitleHeader{
		Title:    strings.TrimSpace(m[akaTitleHeaderRE.SubexpIndex("title")]),
		YearText: m[akaTitleHeaderRE.SubexpIndex("year")],
		Roman:    m[akaTitleHeaderRE.SubexpIndex("roman")],
		KindCode: m[akaTitleHeaderRE.SubexpIndex("kind")],
	}
	if h.Title == "" {
		return AkaTitleHeader{}, false
	}
	return h, true
}

// AkaTitleAlias is one alias line of an aka-titles group.
type AkaTitleAlias struct {
	Title    string
	YearText string
	Location string
	Reason   string
}

// MatchAkaTitleAlias parses a continuation line of the aka-titles file.
func MatchAkaTitleAlias(line string) (AkaTitleAlias, bool) {
	m := akaTitleAliasRE.FindStringSubmatch(line)
	if m == nil {
		return AkaTitleAlias{}, false
	}
	a := AkaTitleAlias{
		Title:    strings.TrimSpace(m[akaTitleAliasRE.SubexpIndex("title")]),
		YearText: m[akaTitleAliasRE.SubexpIndex("year")],
		Location: strings.TrimSpace(m[akaTitleAliasRE.SubexpIndex("location")]),
		Reason:   strings.TrimSpace(m[akaTitleAliasRE.SubexpIndex("reason")]),
	}
	if a.Title == "" {
		return AkaTitleAlias{}, false
	}
	return a, true
}

// TitleGenre is a production reference with its trailing genre token.
type TitleGenre struct {
	TitleClause
	Genre string
}

// MatchTitleGenre parses a line of the genres list.
func MatchTitleGenre(line string) (TitleGenre, bool) {
	m := titleGenreRE.FindStringSubmatch(line)
	if m == nil {
		return TitleGenre{}, false
	}
	g := TitleGenre{
		TitleClause: titleGenreIdx.clause(m),
		Genre:       m[titleGenreRE.SubexpIndex("genre")],
	}
	if g.Title == "" || g.Genre == "" {
		return TitleGenre{}, false
	}
	return g, true
}
