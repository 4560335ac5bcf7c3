package grammar

import (
	"regexp"
	"strings"
)

// bioDataRE matches a DB/DD continuation line of the biography file:
// a date as "dd Month yyyy" (day and month optional), a comma, then the
// place and an optional cause-of-death parenthetical.
var bioDataRE = regexp.MustCompile(`^(?P<prefix>DB|DD):` +
	`(?P<date>(?:\s\d{1,2})?(?:\s\w+)?\s\d{4})` +
	`,(?P<place>[^()]+)?` +
	`(?:\((?P<cause>.*?)\))?`)

// BiographyData holds one raw DB/DD line.
type BiographyData struct {
	Prefix string // "DB" (born) or "DD" (died)
	Date   string
	Place  string // "" when absent
	Cause  string // "" when absent; died lines only
}

// MatchBiographyData parses a biography continuation line.
func MatchBiographyData(line string) (BiographyData, bool) {
	m := bioDataRE.FindStringSubmatch(line)
	if m == nil {
		return BiographyData{}, false
	}
	d := BiographyData{
		Prefix: m[bioDataRE.SubexpIndex("prefix")],
		Date:   strings.TrimSpace(m[bioDataRE.SubexpIndex("date")]),
		Place:  strings.TrimSpace(m[bioDataRE.SubexpIndex("place")]),
		Cause:  strings.TrimSpace(m[bioDataRE.SubexpIndex("cause")]),
	}
	if d.Date == "" {
		return BiographyData{}, false
	}
	return d, true
}
