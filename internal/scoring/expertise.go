// internal/scoring/expertise.go
package scoring

import (
	"math"
	"math/big"
	"strings"

	"civic-relevance-workers/internal/models"
)

const (
	adjacentBandDegrees = 45.0
	experienceCap       = 1.5

	powerPhD      = 1.5
	powerMaster   = 1.2
	powerBachelor = 1.0
	powerOther    = 0.5
)

// ScoreExpertise ranks fit to an issue's requirements. It does not check
// relevance; callers pass only profiles that already cleared the threshold.
func ScoreExpertise(p *models.Profile, is *models.Issue) *models.ExpertiseResult {
	res := &models.ExpertiseResult{}
	if p == nil || is == nil {
		return res
	}

	if p.Expertise != nil {
		for _, edu := range p.Expertise.Education {
			res.Education += EducationSimilarity(edu.Angle, is) * LevelPower(edu.Level)
		}
		if is.RequiredExperienceYears > 0 {
			res.Experience = math.Min(experienceCap, p.TotalYears()/is.RequiredExperienceYears)
		}
		for _, r := range p.Expertise.Resources {
			if ResourceMatches(r.Name, is.RequiredResources) {
				res.Resources++
			}
		}
	}

	res.Total = roundTo(res.Education+res.Experience+res.Resources, 1)
	return res
}

// AngularDiff returns the distance between two bearings in [0,180].
func AngularDiff(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// EducationSimilarity is 1 inside the required span, 0.5 in the adjacent
// band, and 0 beyond it.
func EducationSimilarity(angle float64, is *models.Issue) float64 {
	diff := AngularDiff(angle, is.RequiredEducationAngle)
	half := is.RequiredWidth / 2
	switch {
	case diff <= half:
		return 1.0
	case diff <= half+adjacentBandDegrees:
		return 0.5
	default:
		return 0
	}
}

// EducationHit reports whether an entry falls within the required span or
// its adjacent band.
func EducationHit(angle float64, is *models.Issue) bool {
	return AngularDiff(angle, is.RequiredEducationAngle) <= is.RequiredWidth/2+adjacentBandDegrees
}

func LevelPower(level string) float64 {
	l := strings.ToLower(level)
	switch {
	case strings.Contains(l, "phd"):
		return powerPhD
	case strings.Contains(l, "master"):
		return powerMaster
	case strings.Contains(l, "bachelor"):
		return powerBachelor
	default:
		return powerOther
	}
}

// ResourceMatches checks name against required entries by case-insensitive
// substring in either direction.
func ResourceMatches(name string, required []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, req := range required {
		r := strings.ToLower(strings.TrimSpace(req))
		if r == "" {
			continue
		}
		if strings.Contains(r, n) || strings.Contains(n, r) {
			return true
		}
	}
	return false
}

// roundTo rounds half away from zero on the exact binary value of v, so
// 0.15 (stored just below) goes to 0.1 while 0.25 goes to 0.3.
func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)

	x := new(big.Float).SetPrec(512).SetFloat64(math.Abs(v))
	x.Mul(x, new(big.Float).SetInt(scale))
	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(512).Sub(x, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	r, _ := new(big.Rat).SetFrac(n, scale).Float64()
	return math.Copysign(r, v)
}
