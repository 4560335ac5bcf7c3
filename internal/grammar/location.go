package grammar

import (
	"regexp"
	"strings"
)

// locationRE extends the title clause with the location suffix:
// `name - location (annotation)` where name and annotation are optional.
var locationRE = regexp.MustCompile(`^` + titleClause +
	`\s*(?:(?P<locname>.*?) - )?(?P<location>[^()]*)(?:\((?P<locinfo>.*?)\))?`)

var locationIdx = clauseIdx(locationRE)

// Location holds one parsed filming-location line.
type Location struct {
	TitleClause
	LocationName string
	Location     string
	Annotation   string
}

// MatchLocation parses a line of the locations list.
func MatchLocation(line string) (Location, bool) {
	m := locationRE.FindStringSubmatch(line)
	if m == nil {
		return Location{}, false
	}
	l := Location{
		TitleClause:  locationIdx.clause(m),
		LocationName: strings.TrimSpace(m[locationRE.SubexpIndex("locname")]),
		Location:     strings.TrimSpace(m[locationRE.SubexpIndex("location")]),
		Annotation:   strings.TrimSpace(m[locationRE.SubexpIndex("locinfo")]),
	}
	if l.Title == "" {
		return Location{}, false
	}
	return l, true
}
