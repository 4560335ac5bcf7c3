package grammar

import (
	"regexp"
	"strings"
)

// fragName matches a person name as the cast and biography files spell it:
// optional quoted nickname, optional "last," part, required first name,
// optional roman disambiguator in parens. The nickname keeps its quotes;
// that is how the source stores it.
const fragName = `(?P<nick>'.+')?\s*(?:(?P<last>[^,']*),)?\s*(?P<first>[^(]+)(?:\((?P<num>\w+)\))?`

var (
	nameRE    = regexp.MustCompile(`^` + fragName)
	bioNameRE = regexp.MustCompile(`^NM:\s+` + fragName)
)

// Name holds the raw parts of a person-name line.
type Name struct {
	Nickname  string // including quotes, "" when absent
	LastName  string
	FirstName string
	Roman     string // roman numeral token, "" when absent
}

func matchName(re *regexp.Regexp, line string) (Name, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Name{}, false
	}
	n := Name{
		Nickname:  strings.TrimSpace(m[re.SubexpIndex("nick")]),
		LastName:  strings.TrimSpace(m[re.SubexpIndex("last")]),
		FirstName: strings.TrimSpace(m[re.SubexpIndex("first")]),
		Roman:     m[re.SubexpIndex("num")],
	}
	if n.FirstName == "" {
		return Name{}, false
	}
	return n, true
}

// MatchName parses the name column of a cast-file group line.
func MatchName(line string) (Name, bool) {
	return matchName(nameRE, line)
}

// MatchBiographyName parses an `NM:` line from the biography file.
func MatchBiographyName(line string) (Name, bool) {
	return matchName(bioNameRE, line)
}
