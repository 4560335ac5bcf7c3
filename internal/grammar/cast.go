package grammar

import (
	"regexp"
	"strings"
)

// castRE extends the title clause with the credit suffixes of the cast
// files: an optional parenthetical note (e.g. voice, uncredited), the
// [character] block, and the <billing position> block.
var castRE = regexp.MustCompile(`^` + titleClause +
	`(?:\s*\((?P<special>[\w ,.-]*)\))?` +
	`(?:\s*\[(?P<character>.*)\])?` +
	`(?:\s*<(?P<billing>\d+)>)?`)

var castIdx = clauseIdx(castRE)

// CastCredit holds one parsed credit line: the production reference plus
// the role fields.
type CastCredit struct {
	TitleClause
	SpecialInfo string
	Character   string
	BillingText string // digits, "" when absent
}

// MatchCastCredit parses one credit line from an actors/actresses file.
func MatchCastCredit(line string) (CastCredit, bool) {
	m := castRE.FindStringSubmatch(line)
	if m == nil {
		return CastCredit{}, false
	}
	c := CastCredit{
		TitleClause: castIdx.clause(m),
		SpecialInfo: strings.TrimSpace(m[castRE.SubexpIndex("special")]),
		Character:   strings.TrimSpace(m[castRE.SubexpIndex("character")]),
		BillingText: m[castRE.SubexpIndex("billing")],
	}
	if c.Title == "" {
		return CastCredit{}, false
	}
	return c, true
}
