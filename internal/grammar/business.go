package grammar

import (
	"regexp"
	"strings"
)

var (
	// businessHeaderRE matches the `MV:` group-start line of the business
	// file. The business file never suspends titles on the MV line.
	businessHeaderRE  = regexp.MustCompile(`^MV:\s+` + fragTitle + fragYear + fragKind + fragEpisode)
	businessHeaderIdx = clauseIdx(businessHeaderRE)

	// businessDataRE matches a BT/GR/OW continuation line. The first
	// parenthetical after the amount is the region, the second the date,
	// and an optional `(N screens)` suffix closes the line. OW lines carry
	// all three; BT/GR usually only the amount.
	businessDataRE = regexp.MustCompile(`^(?P<prefix>BT|GR|OW):` +
		`\s+(?P<currency>[A-Z]{3})` +
		`\s+(?P<amount>[0-9,]+)` +
		`(?:\s+\((?P<region>[\w\s-]*)\))?` +
		`(?:\s+\((?P<date>[\w\s]*)\))?` +
		`(?:\s+\((?P<screens>[\w\s,]*) screens\))?`)
)

// MatchBusinessHeader parses the `MV:` line that opens a business group.
func MatchBusinessHeader(line string) (TitleClause, bool) {
	m := businessHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return TitleClause{}, false
	}
	c := businessHeaderIdx.clause(m)
	if c.Title == "" {
		return TitleClause{}, false
	}
	return c, true
}

// BusinessData holds one raw BT/GR/OW line.
type BusinessData struct {
	Prefix      string // "BT", "GR" or "OW"
	Currency    string
	AmountText  string // digits with thousands separators
	Region      string // "" when absent
	Date        string // "" when absent
	ScreensText string // digits with thousands separators, "" when absent
}

// MatchBusinessData parses a business continuation line.
func MatchBusinessData(line string) (BusinessData, bool) {
	m := businessDataRE.FindStringSubmatch(line)
	if m == nil {
		return BusinessData{}, false
	}
	d := BusinessData{
		Prefix:      m[businessDataRE.SubexpIndex("prefix")],
		Currency:    m[businessDataRE.SubexpIndex("currency")],
		AmountText:  m[businessDataRE.SubexpIndex("amount")],
		Region:      strings.TrimSpace(m[businessDataRE.SubexpIndex("region")]),
		Date:        strings.TrimSpace(m[businessDataRE.SubexpIndex("date")]),
		ScreensText: strings.TrimSpace(m[businessDataRE.SubexpIndex("screens")]),
	}
	if d.AmountText == "" {
		return BusinessData{}, false
	}
	return d, true
}
