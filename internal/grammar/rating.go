package grammar

import (
	"regexp"
)

// ratingRE matches one line of the ratings report: the distribution
// histogram (with *-marks for new titles), vote count and average rating,
// followed by the production reference. The ratings report never carries a
// suspension marker.
var ratingRE = regexp.MustCompile(
	`^\s*(?P<distribution>[\d.*]+)\s+(?P<votes>\d+)\s+(?P<rating>[\d.]+)\s+` +
		fragTitle + fragYear + fragKind + fragEpisode)

var ratingIdx = clauseIdx(ratingRE)

// Rating holds one parsed ratings line.
type Rating struct {
	TitleClause
	Distribution string
	VotesText    string
	RatingText   string
}

// MatchRating parses a line of the ratings list.
func MatchRating(line string) (Rating, bool) {
	m := ratingRE.FindStringSubmatch(line)
	if m == nil {
		return Rating{}, false
	}
	r := Rating{
		TitleClause:  ratingIdx.clause(m),
		Distribution: m[ratingRE.SubexpIndex("distribution")],
		VotesText:    m[ratingRE.SubexpIndex("votes")],
		RatingText:   m[ratingRE.SubexpIndex("rating")],
	}
	if r.Title == "" {
		return Rating{}, false
	}
	return r, true
}
