// internal/scoring/relevance.go
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"civic-relevance-workers/internal/models"
)

const (
	DefaultThreshold = 0.5

	demographicRuleScore = 0.5
	demographicCap       = 1.0
	demographicFloor     = 0.1

	geoFalloffFactor = 1.5

	interestFloor = 0.4

	socialSaturation = 40.0
	socialCap        = 0.8

	reasonCutoff = 0.6
	interestCut  = 0.5

	familyTargetKids = "kids"
)

var kinshipMarkers = []string{"son", "daughter", "child", "grand"}

const (
	ReasonAgeMatch        = "Age match"
	ReasonFamilyMatch     = "Family match (Has children/grandkids)"
	ReasonEmploymentMatch = "Employment match"
)

// ScoreRelevance scores one profile against one issue. The total is the raw
// weighted sum and is not normalized; included compares it to threshold.
func ScoreRelevance(p *models.Profile, is *models.Issue, threshold float64) (*models.RelevanceResult, error) {
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}
	if err := ValidateIssue(is); err != nil {
		return nil, err
	}
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	d, dRules := demographicScore(p.Demographics, is.TargetDemo)
	g, dist := geospatialScore(p.Location, is.Location)
	x, matches := interestScore(p.Interests, is.Tags)
	s := socialScore(p.SocialConnections)

	w := *is.Weights
	contrib := models.Factors{D: d * w.D, G: g * w.G, S: s * w.S, X: x * w.X}
	total := contrib.D + contrib.G + contrib.S + contrib.X

	reasons := make([]string, 0, 4)
	if g > reasonCutoff && w.G > 0 {
		reasons = append(reasons, fmt.Sprintf("Geospatial: Close proximity (%d units).", roundHalfUp(dist)))
	}
	if d > reasonCutoff && w.D > 0 {
		reasons = append(reasons, fmt.Sprintf("Demographics: %s.", strings.Join(dRules, ", ")))
	}
	if x > interestCut && w.X > 0 {
		reasons = append(reasons, fmt.Sprintf("Interests: Matches '%s'.", strings.Join(matches, ", ")))
	}
	if total < threshold {
		reasons = append(reasons, fmt.Sprintf("Score too low based on current weights (%s).", is.Title))
	}

	return &models.RelevanceResult{
		Total:         total,
		TotalDisplay:  strconv.FormatFloat(total, 'f', 2, 64),
		Breakdown:     models.Factors{D: d, G: g, S: s, X: x},
		Contributions: contrib,
		Weights:       w,
		Reasons:       reasons,
		Included:      total >= threshold,
		Distance:      dist,
	}, nil
}

func demographicScore(demo *models.Demographics, target *models.TargetDemo) (float64, []string) {
	score := 0.0
	var rules []string

	if target.MinAge > 0 && demo.Age >= target.MinAge {
		score += demographicRuleScore
		rules = append(rules, ReasonAgeMatch)
	}
	if target.Family == familyTargetKids && hasKin(demo.Family) {
		score += demographicRuleScore
		rules = append(rules, ReasonFamilyMatch)
	}
	if target.Employment != "" && demo.Employment == target.Employment {
		score += demographicRuleScore
		rules = append(rules, ReasonEmploymentMatch)
	}

	score = math.Min(score, demographicCap)
	// floor is applied after the cap and only when nothing fired
	if len(rules) == 0 {
		score = demographicFloor
	}
	return score, rules
}

func hasKin(family []string) bool {
	for _, f := range family {
		lower := strings.ToLower(f)
		for _, marker := range kinshipMarkers {
			if strings.Contains(lower, marker) {
				return true
			}
		}
	}
	return false
}

func geospatialScore(loc *models.Point, zone *models.Zone) (float64, float64) {
	dist := math.Hypot(loc.X-zone.X, loc.Y-zone.Y)
	if zone.Radius <= 0 {
		return 0, dist
	}
	return math.Max(0, 1-dist/(zone.Radius*geoFalloffFactor)), dist
}

func interestScore(interests, tags []string) (float64, []string) {
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[t] = struct{}{}
	}

	var matches []string
	for _, i := range interests {
		if _, ok := tagSet[i]; ok {
			matches = append(matches, i)
			// a repeated interest must not push X above 1
			delete(tagSet, i)
		}
	}

	score := float64(len(matches)) / math.Max(1, float64(len(tags)))
	if len(matches) > 0 {
		score = math.Max(score, interestFloor)
	}
	return score, matches
}

func socialScore(connections int) float64 {
	ratio := math.Min(1, float64(connections)/socialSaturation)
	return math.Max(0, ratio) * socialCap
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

const (
	StatusIncluded    = "Included"
	StatusExcluded    = "Excluded"
	ModerateRelevance = "Moderate relevance."
)

// Status labels a result for the factor breakdown view.
func Status(res *models.RelevanceResult) string {
	if res.Included {
		return StatusIncluded
	}
	return StatusExcluded
}

// ReasonsOrDefault never returns an empty list.
func ReasonsOrDefault(res *models.RelevanceResult) []string {
	if len(res.Reasons) == 0 {
		return []string{ModerateRelevance}
	}
	return res.Reasons
}
