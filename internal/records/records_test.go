package records_test

import (
	"testing"

	"cinelist/internal/records"
)

func TestProductionNaturalKeyDistinguishesEpisodes(t *testing.T) {
	base := records.Production{
		Title: "Some Show",
		Year:  1995,
		Index: 1,
		Kind:  records.KindFeature,
	}

	pilot := base
	pilot.EpisodeTitle = "Pilot"
	pilot.Season = 1
	pilot.EpisodeNumber = 1

	seriesKey := base.NaturalKey()
	pilotKey := pilot.NaturalKey()
	if seriesKey == pilotKey {
		t.Fatalf("series and episode keys collide: %q", seriesKey)
	}

	again := pilot
	if again.NaturalKey() != pilotKey {
		t.Fatal("identical productions must share a natural key")
	}
}

func TestProductionNaturalKeyFieldBoundaries(t *testing.T) {
	a := records.Production{Title: "AB", Year: 1, Index: 1, Kind: records.KindFeature}
	b := records.Production{Title: "A", Year: 1, Index: 1, Kind: records.KindFeature, EpisodeTitle: "B"}
	if a.NaturalKey() == b.NaturalKey() {
		t.Fatal("keys must not collide across field boundaries")
	}
}

func TestPersonNaturalKeyIncludesGender(t *testing.T) {
	p := records.Person{LastName: "Blanchett", FirstName: "Cate", Gender: records.GenderFemale, Index: 1}
	q := p
	q.Gender = records.GenderMale
	if p.NaturalKey() == q.NaturalKey() {
		t.Fatal("gender must participate in the person key")
	}
}
