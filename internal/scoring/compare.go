// internal/scoring/compare.go
package scoring

import (
	"math"
	"strconv"
	"strings"

	"civic-relevance-workers/internal/models"
)

const (
	waterfallMinScaleYears = 50.0
	techCategory           = "Tech"
)

var techRoleMarkers = []string{"developer", "engineer", "software"}

type ResourceFit struct {
	Name     string `json:"name"`
	Weight   int    `json:"weight"`
	Relevant bool   `json:"relevant"`
}

type EducationFit struct {
	Degree string  `json:"degree"`
	Level  string  `json:"level"`
	Angle  float64 `json:"angle"`
	Hit    bool    `json:"hit"`
}

type ExperienceFit struct {
	Role     string  `json:"role"`
	Years    float64 `json:"years"`
	Relevant bool    `json:"relevant"`
}

// Comparison lines a single expert up against an issue's requirements.
// Experience is oldest first, the order the career waterfall stacks it in;
// profiles list the current role first.
type Comparison struct {
	ProfileID     string                  `json:"profileId"`
	Name          string                  `json:"name"`
	Expertise     *models.ExpertiseResult `json:"expertise"`
	EduDisplay    string                  `json:"eduDisplay"`
	ExpDisplay    string                  `json:"expDisplay"`
	ResDisplay    string                  `json:"resDisplay"`
	UserYears     float64                 `json:"userYears"`
	RequiredYears float64                 `json:"requiredYears"`
	YearsDeficit  bool                    `json:"yearsDeficit"`
	YearsGap      float64                 `json:"yearsGap"`
	ScaleYears    float64                 `json:"scaleYears"`
	Education     []EducationFit          `json:"education"`
	Experience    []ExperienceFit         `json:"experience"`
	Resources     []ResourceFit           `json:"resources"`
}

func Compare(p *models.Profile, is *models.Issue) *Comparison {
	exp := ScoreExpertise(p, is)
	userYears := p.TotalYears()

	c := &Comparison{
		ProfileID:     p.ID,
		Name:          p.Name,
		Expertise:     exp,
		EduDisplay:    oneDecimal(exp.Education),
		ExpDisplay:    oneDecimal(exp.Experience),
		ResDisplay:    oneDecimal(exp.Resources),
		UserYears:     userYears,
		RequiredYears: is.RequiredExperienceYears,
		YearsDeficit:  userYears < is.RequiredExperienceYears,
		YearsGap:      math.Max(0, is.RequiredExperienceYears-userYears),
		ScaleYears:    math.Max(userYears, waterfallMinScaleYears),
		Education:     []EducationFit{},
		Experience:    []ExperienceFit{},
		Resources:     []ResourceFit{},
	}

	if p.Expertise == nil {
		return c
	}
	for _, e := range p.Expertise.Education {
		c.Education = append(c.Education, EducationFit{
			Degree: e.Degree,
			Level:  e.Level,
			Angle:  e.Angle,
			Hit:    EducationHit(e.Angle, is),
		})
	}
	for i := len(p.Expertise.Experience) - 1; i >= 0; i-- {
		e := p.Expertise.Experience[i]
		c.Experience = append(c.Experience, ExperienceFit{
			Role:     e.Role,
			Years:    e.Years,
			Relevant: ExperienceRelevant(e, is),
		})
	}
	for _, r := range p.Expertise.Resources {
		c.Resources = append(c.Resources, ResourceFit{
			Name:     r.Name,
			Weight:   r.EffectiveWeight(),
			Relevant: ResourceMatches(r.Name, is.RequiredResources),
		})
	}
	return c
}

// ExperienceRelevant decides whether a career entry counts toward an issue.
// Explicit tags are checked first; free text is the fallback.
func ExperienceRelevant(e models.Experience, is *models.Issue) bool {
	for _, t := range e.Tags {
		for _, it := range is.Tags {
			if strings.EqualFold(it, t) {
				return true
			}
		}
		if is.Category != "" && strings.EqualFold(is.Category, t) {
			return true
		}
	}

	text := strings.ToLower(e.Role + " " + e.Desc)
	for _, t := range is.Tags {
		if strings.Contains(text, strings.ToLower(t)) {
			return true
		}
	}
	for _, r := range is.RequiredResources {
		if strings.Contains(text, strings.ToLower(r)) {
			return true
		}
	}
	if is.Category == techCategory {
		for _, m := range techRoleMarkers {
			if strings.Contains(text, m) {
				return true
			}
		}
	}
	return false
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
