package normalize

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cinelist/internal/grammar"
	"cinelist/internal/records"
	"cinelist/internal/roman"
	"cinelist/internal/textutil"
)

// FarFutureDate is the placeholder for an opening-weekend line that carries
// no date. The value is stored verbatim, so it must stay stable.
const FarFutureDate = "31 December 2100"

// DefaultCurrency is substituted when a business line carries no currency.
const DefaultCurrency = "USD"

// MediaKindFromCode maps a production kind code to its enum. Unknown and
// absent codes default to feature/series, which the list format leaves
// unmarked.
func MediaKindFromCode(code string) records.MediaKind {
	switch code {
	case "TV":
		return records.KindTelevision
	case "V":
		return records.KindVideo
	case "VG":
		return records.KindVideoGame
	default:
		return records.KindFeature
	}
}

// BusinessKindFromPrefix maps a BT/GR/OW prefix to its enum.
func BusinessKindFromPrefix(prefix string) (records.BusinessKind, bool) {
	switch prefix {
	case "BT":
		return records.BusinessBudget, true
	case "GR":
		return records.BusinessGross, true
	case "OW":
		return records.BusinessOpeningWeekend, true
	default:
		return "", false
	}
}

// BiographyKindFromPrefix maps a DB/DD prefix to its enum.
func BiographyKindFromPrefix(prefix string) (records.BiographyKind, bool) {
	switch prefix {
	case "DB":
		return records.BiographyBorn, true
	case "DD":
		return records.BiographyDied, true
	default:
		return "", false
	}
}

// ErrYear marks a year token that is neither the unknown-year sentinel nor
// an integer. There is no safe default for a malformed year, so callers
// treat it as fatal for the current file.
var ErrYear = errors.New("invalid year")

// Year converts a year token to an integer. "????" becomes the unknown-year
// sentinel.
func Year(text string) (int, error) {
	if text == "????" {
		return records.YearUnknown, nil
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("normalize: year %q: %w", text, ErrYear)
	}
	return year, nil
}

// Index converts a roman disambiguator token to the 1-based index. An
// absent token means first entry, index 1.
func Index(token string) (int, error) {
	if token == "" {
		return 1, nil
	}
	value, err := roman.Convert(token)
	if err != nil {
		return 0, err
	}
	return value + 1, nil
}

// Amount parses a currency amount with thousands separators. A value beyond
// int64 becomes the AmountUnrepresentable sentinel with overflow reported;
// it is never truncated to a plausible-looking number.
func Amount(text string) (value int64, overflow bool, err error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	if cleaned == "" {
		return 0, false, errors.New("normalize: empty amount")
	}
	value, err = strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return records.AmountUnrepresentable, true, nil
		}
		return 0, false, fmt.Errorf("normalize: amount %q: %w", text, err)
	}
	return value, false, nil
}

// Screens parses the screen count of an opening-weekend line. Absent counts
// map to the NoScreens sentinel; out-of-range counts behave like amounts.
func Screens(text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return records.NoScreens, nil
	}
	value, overflow, err := Amount(text)
	if err != nil {
		return 0, err
	}
	if overflow {
		return records.NoScreens, nil
	}
	return value, nil
}

// episodeFields applies the episode substitution rule and parses the season
// and episode numbers from a matched clause.
func episodeFields(c grammar.TitleClause) (title string, season, number int) {
	season, number = records.NoSeason, records.NoEpisodeNumber
	title = records.NoEpisodeTitle
	if !c.HasEpisode {
		return title, season, number
	}
	switch {
	case c.EpisodeTitle != "":
		title = textutil.CollapseWhitespace(c.EpisodeTitle)
	case c.BroadcastDate != "":
		title = c.BroadcastDate
	}
	if c.SeasonText != "" {
		if v, err := strconv.Atoi(c.SeasonText); err == nil {
			season = v
		}
	}
	if c.EpisodeNumText != "" {
		if v, err := strconv.Atoi(c.EpisodeNumText); err == nil {
			number = v
		}
	}
	return title, season, number
}

// Production builds the production record implied by a title clause. The
// returned record carries no ID; resolution assigns one.
func Production(c grammar.TitleClause) (records.Production, error) {
	year, err := Year(c.YearText)
	if err != nil {
		return records.Production{}, err
	}
	index, err := Index(c.Roman)
	if err != nil {
		return records.Production{}, fmt.Errorf("normalize: disambiguator: %w", err)
	}
	episodeTitle, season, number := episodeFields(c)
	// Variant internal spacing in source lines must still resolve to one
	// natural key.
	return records.Production{
		Title:         textutil.CollapseWhitespace(c.Title),
		Year:          year,
		Index:         index,
		Kind:          MediaKindFromCode(c.KindCode),
		EpisodeTitle:  episodeTitle,
		Season:        season,
		EpisodeNumber: number,
	}, nil
}

// Person builds the person record implied by a name match. Gender comes
// from the file of origin, not the line.
func Person(n grammar.Name, gender records.Gender) (records.Person, error) {
	index, err := Index(n.Roman)
	if err != nil {
		return records.Person{}, fmt.Errorf("normalize: disambiguator: %w", err)
	}
	return records.Person{
		LastName:  textutil.CollapseWhitespace(n.LastName),
		FirstName: textutil.CollapseWhitespace(n.FirstName),
		Nickname:  n.Nickname,
		Gender:    gender,
		Index:     index,
	}, nil
}

// BusinessEvent builds the business row for a data line owned by
// productionID. Returns overflow=true when the amount was not
// representable.
func BusinessEvent(d grammar.BusinessData, productionID int64) (records.BusinessEvent, bool, error) {
	kind, ok := BusinessKindFromPrefix(d.Prefix)
	if !ok {
		return records.BusinessEvent{}, false, fmt.Errorf("normalize: unknown business prefix %q", d.Prefix)
	}
	amount, overflow, err := Amount(d.AmountText)
	if err != nil {
		return records.BusinessEvent{}, false, err
	}
	screens, err := Screens(d.ScreensText)
	if err != nil {
		return records.BusinessEvent{}, false, err
	}
	currency := d.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	date := d.Date
	if date == "" {
		date = FarFutureDate
	}
	return records.BusinessEvent{
		ProductionID: productionID,
		Kind:         kind,
		Currency:     currency,
		Amount:       amount,
		Region:       d.Region,
		Date:         date,
		Screens:      screens,
	}, overflow, nil
}

// Rating builds the rating row for a matched ratings line owned by
// productionID.
func Rating(r grammar.Rating, productionID int64) (records.Rating, error) {
	votes, err := strconv.ParseInt(r.VotesText, 10, 64)
	if err != nil {
		return records.Rating{}, fmt.Errorf("normalize: votes %q: %w", r.VotesText, err)
	}
	average, err := strconv.ParseFloat(r.RatingText, 64)
	if err != nil {
		return records.Rating{}, fmt.Errorf("normalize: rating %q: %w", r.RatingText, err)
	}
	return records.Rating{
		ProductionID: productionID,
		Distribution: r.Distribution,
		Votes:        votes,
		Rating:       average,
	}, nil
}

// BiographyFact builds the born/died row for a data line owned by personID.
func BiographyFact(d grammar.BiographyData, personID int64) (records.BiographyFact, error) {
	kind, ok := BiographyKindFromPrefix(d.Prefix)
	if !ok {
		return records.BiographyFact{}, fmt.Errorf("normalize: unknown biography prefix %q", d.Prefix)
	}
	return records.BiographyFact{
		PersonID:     personID,
		Kind:         kind,
		Date:         d.Date,
		Place:        d.Place,
		CauseOfDeath: d.Cause,
	}, nil
}

// Location builds the location row for a matched line owned by
// productionID.
func Location(l grammar.Location, productionID int64) records.Location {
	return records.Location{
		ProductionID: productionID,
		Name:         l.LocationName,
		Location:     l.Location,
		Annotation:   l.Annotation,
	}
}

// CastCredit builds the join row for a credit line.
func CastCredit(c grammar.CastCredit, productionID, personID int64) records.CastCredit {
	billing := records.NoBilling
	if c.BillingText != "" {
		if v, err := strconv.Atoi(c.BillingText); err == nil {
			billing = v
		}
	}
	return records.CastCredit{
		ProductionID: productionID,
		PersonID:     personID,
		Character:    c.Character,
		Billing:      billing,
		SpecialInfo:  c.SpecialInfo,
	}
}
