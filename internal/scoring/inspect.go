// internal/scoring/inspect.go
package scoring

import (
	"fmt"
	"math"

	"civic-relevance-workers/internal/models"
)

const (
	sectorSize = 50.0

	radarAgeScale       = 90.0
	radarIncomeScale    = 210000.0
	radarSocialScale    = 60.0
	radarInterestScale  = 8.0
	radarFamilyPerHead  = 25.0
	radarFamilyNone     = 10.0
	radarFamilyPresent  = 80.0
	radarFamilyAbsent   = 30.0
	radarAxisMax        = 100.0
	radarLocationCenter = 50.0
)

// RadarAxes holds six abstract axes per factor, giving each profile a shape.
type RadarAxes struct {
	D [6]float64 `json:"D"`
	G [6]float64 `json:"G"`
	S [6]float64 `json:"S"`
	X [6]float64 `json:"X"`
}

type Inspection struct {
	ProfileID      string    `json:"profileId"`
	Name           string    `json:"name"`
	Sector         string    `json:"sector"`
	ExpertiseLevel string    `json:"expertiseLevel"`
	ExpertiseField string    `json:"expertiseField"`
	RelativesLabel string    `json:"relativesLabel"`
	Radar          RadarAxes `json:"radar"`
}

func Inspect(p *models.Profile) (*Inspection, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}

	in := &Inspection{
		ProfileID:      p.ID,
		Name:           p.Name,
		Sector:         Sector(*p.Location),
		ExpertiseLevel: "N/A",
		ExpertiseField: "General",
		RelativesLabel: "No Direct Relatives",
		Radar:          Radar(p),
	}
	if p.Expertise != nil && len(p.Expertise.Education) > 0 {
		in.ExpertiseLevel = p.Expertise.Education[0].Level
		in.ExpertiseField = p.Expertise.Education[0].Degree
	}
	if p.Demographics.Family != nil {
		in.RelativesLabel = fmt.Sprintf("%d Relatives", len(p.Demographics.Family))
	}
	return in, nil
}

// Sector buckets the 0-100 plane into 50-unit cells, e.g. "1-0".
func Sector(loc models.Point) string {
	return fmt.Sprintf("%d-%d", int(math.Floor(loc.X/sectorSize)), int(math.Floor(loc.Y/sectorSize)))
}

func Radar(p *models.Profile) RadarAxes {
	demo := p.Demographics
	loc := p.Location

	ageRatio := float64(demo.Age) / radarAgeScale
	incomeRatio := demo.Income / radarIncomeScale
	familySize := radarFamilyNone
	familyPresence := radarFamilyAbsent
	if demo.Family != nil {
		familySize = math.Min(radarAxisMax, float64(len(demo.Family))*radarFamilyPerHead)
		familyPresence = radarFamilyPresent
	}

	sBase := float64(p.SocialConnections) / radarSocialScale * 100
	xBase := float64(len(p.Interests)) / radarInterestScale * 100

	return RadarAxes{
		D: [6]float64{
			ageRatio * 100,
			incomeRatio * 100,
			familySize,
			ageRatio * 80,
			(incomeRatio/3)*90 + 30,
			familyPresence,
		},
		G: [6]float64{
			loc.X, loc.Y,
			radarAxisMax - loc.X, radarAxisMax - loc.Y,
			(loc.X + loc.Y) / 2, radarLocationCenter,
		},
		S: [6]float64{sBase, 100 - sBase*0.8, sBase * 1.1, sBase * 0.9, sBase, 100 - sBase*0.7},
		X: [6]float64{xBase, xBase * 1.2, xBase * 0.8, xBase, xBase * 0.5, xBase * 1.1},
	}
}
