package grammar

import (
	"regexp"
	"strings"
)

// Title clause fragments. Composed (not nested) per grammar so every
// matcher shares one definition of a production reference.
const (
	// fragTitle matches the leading title, quoted for TV shows.
	fragTitle = `"?(?P<title>[^"]*?)"?\s+`
	// fragYear matches the year parenthetical with its optional roman
	// disambiguator; trailing annotation inside the paren is ignored.
	fragYear = `\((?P<year>\?{4}|\d+)(?:/(?P<roman>\w+))?[^)]*\)`
	// fragKind matches the production kind code: (TV), (V) or (VG).
	fragKind = `(?:\s*\((?P<kind>T?VG?)\))?`
	// fragEpisode matches the braced episode block. The block carries an
	// episode title and either a (#season.episode) marker or a broadcast
	// date parenthetical. The whole block is captured so presence can be
	// told apart from an empty title.
	fragEpisode = `(?P<epblock>\s*\{(?P<eptitle>[^{]*?)(?:\s*\(#(?P<season>\d+)\.(?P<epnum>\d+)\)|(?P<broadcast>\([\d-]*\)))?\})?`
	// fragSuspended matches the {{SUSPENDED}} marker.
	fragSuspended = `(?:\s*(?P<suspended>\{\{SUSPENDED\}\}))?`

	// titleClause is the full clause used by the cast, production,
	// business-header and location grammars.
	titleClause = fragTitle + fragYear + fragKind + fragEpisode + fragSuspended
)

// TitleClause holds the raw fields of one production reference. Text fields
// are as matched (whitespace-trimmed); conversion and sentinel substitution
// happen in the normalize package.
type TitleClause struct {
	Title    string
	YearText string // four digits or "????"
	Roman    string // roman numeral token, "" when absent
	KindCode string // "TV", "V", "VG"; "" when absent

	HasEpisode     bool
	EpisodeTitle   string
	SeasonText     string // digits, "" when absent
	EpisodeNumText string // digits, "" when absent
	BroadcastDate  string // date text without parens, "" when absent

	Suspended bool
}

// clauseIndexes caches the submatch positions of the clause groups inside a
// compiled grammar.
type clauseIndexes struct {
	title, year, roman, kind        int
	epblock, eptitle, season, epnum int
	broadcast, suspended            int
}

func clauseIdx(re *regexp.Regexp) clauseIndexes {
	return clauseIndexes{
		title:     re.SubexpIndex("title"),
		year:      re.SubexpIndex("year"),
		roman:     re.SubexpIndex("roman"),
		kind:      re.SubexpIndex("kind"),
		epblock:   re.SubexpIndex("epblock"),
		eptitle:   re.SubexpIndex("eptitle"),
		season:    re.SubexpIndex("season"),
		epnum:     re.SubexpIndex("epnum"),
		broadcast: re.SubexpIndex("broadcast"),
		suspended: re.SubexpIndex("suspended"),
	}
}

func (ix clauseIndexes) clause(m []string) TitleClause {
	c := TitleClause{
		Title:    strings.TrimSpace(m[ix.title]),
		YearText: m[ix.year],
	}
	if ix.roman >= 0 {
		c.Roman = m[ix.roman]
	}
	if ix.kind >= 0 {
		c.KindCode = m[ix.kind]
	}
	if ix.epblock >= 0 && m[ix.epblock] != "" {
		c.HasEpisode = true
		c.EpisodeTitle = strings.TrimSpace(m[ix.eptitle])
		c.SeasonText = m[ix.season]
		c.EpisodeNumText = m[ix.epnum]
		if raw := m[ix.broadcast]; raw != "" {
			c.BroadcastDate = strings.Trim(raw, "()")
		}
	}
	if ix.suspended >= 0 && m[ix.suspended] != "" {
		c.Suspended = true
	}
	return c
}
