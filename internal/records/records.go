package records

import (
	"strconv"
	"strings"
)

// Entity identifies a resolver/store entity kind.
type Entity string

const (
	EntityPeople      Entity = "people"
	EntityProductions Entity = "productions"
	EntityRatings     Entity = "ratings"
	EntityBusiness    Entity = "business"
	EntityLocations   Entity = "locations"
	EntityBiographies Entity = "biographies"
)

// AllEntities lists every entity kind in resolver snapshot order.
var AllEntities = []Entity{
	EntityPeople,
	EntityProductions,
	EntityRatings,
	EntityBusiness,
	EntityLocations,
	EntityBiographies,
}

// Gender partitions people by file of origin (actors vs. actresses list).
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MediaKind classifies a production. The values match what the destination
// schema stores.
type MediaKind string

const (
	KindTelevision MediaKind = "TV production"
	KindVideo      MediaKind = "video production"
	KindVideoGame  MediaKind = "video game"
	KindFeature    MediaKind = "movie/series"
)

// BusinessKind classifies a business data line.
type BusinessKind string

const (
	BusinessBudget         BusinessKind = "budget"
	BusinessGross          BusinessKind = "box office gross"
	BusinessOpeningWeekend BusinessKind = "opening weekend box office take"
)

// BiographyKind classifies a biography data line.
type BiographyKind string

const (
	BiographyBorn BiographyKind = "born"
	BiographyDied BiographyKind = "died"
)

// Sentinel values for fields the list format leaves absent. They take part
// in natural keys like real values, so they must be stable.
const (
	YearUnknown           = -1
	NoSeason              = -1
	NoEpisodeNumber       = -1
	NoScreens             = -1
	NoBilling             = 0
	AmountUnrepresentable = -1
)

// NoEpisodeTitle is the canonical "this is not an episode" key component.
// A production line with a broadcast date but no episode title substitutes
// the date text instead, so both spellings of episode identity compare equal.
const NoEpisodeTitle = ""

// keySep joins natural key fields. A unit separator cannot appear in list
// text, so joined keys never collide across field boundaries.
const keySep = "\x1f"

// Person is an owning entity created from the cast list files.
type Person struct {
	ID        int64
	LastName  string
	FirstName string
	Nickname  string
	Gender    Gender
	Index     int
}

// NaturalKey returns the canonical dedup key for the person.
func (p Person) NaturalKey() string {
	return strings.Join([]string{
		p.LastName,
		p.FirstName,
		p.Nickname,
		string(p.Gender),
		strconv.Itoa(p.Index),
	}, keySep)
}

// Production is an owning entity created from the cast or movie list files.
type Production struct {
	ID            int64
	Title         string
	Year          int
	Index         int
	Kind          MediaKind
	EpisodeTitle  string
	Season        int
	EpisodeNumber int
}

// NaturalKey returns the canonical dedup key for the production, episode
// identity included.
func (p Production) NaturalKey() string {
	return strings.Join([]string{
		p.Title,
		strconv.Itoa(p.Year),
		strconv.Itoa(p.Index),
		string(p.Kind),
		p.EpisodeTitle,
		strconv.Itoa(p.Season),
		strconv.Itoa(p.EpisodeNumber),
	}, keySep)
}

// Rating is one observed rating row for a production.
type Rating struct {
	ID           int64
	ProductionID int64
	Distribution string
	Votes        int64
	Rating       float64
}

// BusinessEvent is one budget/gross/opening-weekend figure for a production.
type BusinessEvent struct {
	ID           int64
	ProductionID int64
	Kind         BusinessKind
	Currency     string
	Amount       int64
	Region       string
	Date         string
	Screens      int64
}

// Location is one filming location row for a production.
type Location struct {
	ID           int64
	ProductionID int64
	Name         string
	Location     string
	Annotation   string
}

// BiographyFact is one born/died row for a person.
type BiographyFact struct {
	ID           int64
	PersonID     int64
	Kind         BiographyKind
	Date         string
	Place        string
	CauseOfDeath string
}

// CastCredit joins a person to a production with billing details.
// Billing is NoBilling when the credit line carried no <position> suffix.
type CastCredit struct {
	ProductionID int64
	PersonID     int64
	Character    string
	Billing      int
	SpecialInfo  string
}
