package scoring

import (
	"strconv"
	"testing"

	"civic-relevance-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func newExpertiseIssue() *models.Issue {
	is := newTestIssue()
	is.RequiredEducationAngle = 90
	is.RequiredWidth = 30
	is.RequiredExperienceYears = 5
	is.RequiredResources = []string{"Python Programming", "Writing", "Van"}
	return is
}

func TestAngularDiff(t *testing.T) {
	tests := []struct {
		a, b     float64
		expected float64
	}{
		{90, 90, 0},
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
		{45, 300, 105},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, AngularDiff(tt.a, tt.b), 1e-9, "%v vs %v", tt.a, tt.b)
	}
}

func TestLevelPower(t *testing.T) {
	tests := map[string]float64{
		"PhD":           1.5,
		"phd candidate": 1.5,
		"Master's":      1.2,
		"MASTER":        1.2,
		"Bachelor's":    1.0,
		"Associate":     0.5,
		"":              0.5,
		"High School":   0.5,
	}
	for level, expected := range tests {
		assert.Equal(t, expected, LevelPower(level), level)
	}
}

func TestScoreExpertise_Education(t *testing.T) {
	tests := []struct {
		name      string
		education []models.Education
		expected  float64
	}{
		{
			name:      "centered phd",
			education: []models.Education{{Level: "PhD", Degree: "Urban Planning", Angle: 90}},
			expected:  1.5,
		},
		{
			name:      "edge of span is full credit",
			education: []models.Education{{Level: "Bachelor's", Angle: 105}},
			expected:  1.0,
		},
		{
			name:      "adjacent master",
			education: []models.Education{{Level: "Master's", Angle: 130}},
			expected:  0.6,
		},
		{
			name:      "outside adjacent band",
			education: []models.Education{{Level: "PhD", Angle: 200}},
			expected:  0,
		},
		{
			name: "multiple degrees accumulate",
			education: []models.Education{
				{Level: "Bachelor's", Angle: 80},
				{Level: "PhD", Angle: 95},
				{Level: "Certificate", Angle: 60},
			},
			expected: 1.0 + 1.5 + 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProfile("p1")
			p.Expertise = &models.ExpertiseData{Education: tt.education}
			res := ScoreExpertise(p, newExpertiseIssue())
			assert.InDelta(t, tt.expected, res.Education, 1e-9)
		})
	}
}

func TestScoreExpertise_Experience(t *testing.T) {
	tests := []struct {
		name     string
		years    []float64
		required float64
		expected float64
	}{
		{name: "ratio", years: []float64{1, 2}, required: 6, expected: 0.5},
		{name: "capped long career", years: []float64{25, 15}, required: 5, expected: 1.5},
		{name: "no requirement", years: []float64{10}, required: 0, expected: 0},
		{name: "no experience", years: nil, required: 5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exp []models.Experience
			for _, y := range tt.years {
				exp = append(exp, models.Experience{Role: "Volunteer", Years: y})
			}
			p := newTestProfile("p1")
			p.Expertise = &models.ExpertiseData{Experience: exp}
			is := newExpertiseIssue()
			is.RequiredExperienceYears = tt.required

			res := ScoreExpertise(p, is)
			assert.InDelta(t, tt.expected, res.Experience, 1e-9)
		})
	}
}

func TestScoreExpertise_Resources(t *testing.T) {
	p := newTestProfile("p1")
	p.Expertise = &models.ExpertiseData{
		Resources: []models.Resource{
			{Name: "python", Weight: 9},
			{Name: "Grant writing toolkit", Weight: 2},
			{Name: "Truck", Legacy: true},
			{Name: "VAN"},
		},
	}

	res := ScoreExpertise(p, newExpertiseIssue())
	assert.Equal(t, 3.0, res.Resources)
}

func TestScoreExpertise_TotalRoundedToOneDecimal(t *testing.T) {
	p := newTestProfile("p1")
	p.Expertise = &models.ExpertiseData{
		Education:  []models.Education{{Level: "Master's", Angle: 130}},
		Experience: []models.Experience{{Role: "Organizer", Years: 1}},
		Resources:  []models.Resource{{Name: "Python"}},
	}
	is := newExpertiseIssue()
	is.RequiredExperienceYears = 3

	res := ScoreExpertise(p, is)
	// 0.6 + 0.333... + 1
	assert.Equal(t, 1.9, res.Total)
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{in: 0.15, expected: 0.1}, // stored as 0.1499999...
		{in: 0.25, expected: 0.3},
		{in: 0.35, expected: 0.3},
		{in: 0.45, expected: 0.5},
		{in: 1.25, expected: 1.3},
		{in: 1.95, expected: 1.9},
		{in: 2, expected: 2},
		{in: 1.0 / 3, expected: 0.3},
		{in: -0.25, expected: -0.3},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.in, 'g', -1, 64), func(t *testing.T) {
			assert.Equal(t, tt.expected, roundTo(tt.in, 1))
		})
	}
}

func TestScoreExpertise_TotalRoundsExactValue(t *testing.T) {
	p := newTestProfile("p1")
	p.Expertise = &models.ExpertiseData{
		Experience: []models.Experience{{Role: "Volunteer", Years: 3}},
	}
	is := newExpertiseIssue()
	is.RequiredExperienceYears = 20

	res := ScoreExpertise(p, is)
	assert.Equal(t, 3.0/20, res.Experience)
	assert.Equal(t, 0.1, res.Total)
}

func TestScoreExpertise_NoExpertiseData(t *testing.T) {
	res := ScoreExpertise(newTestProfile("p1"), newExpertiseIssue())
	assert.Equal(t, &models.ExpertiseResult{}, res)
}

func TestEducationHit(t *testing.T) {
	is := newExpertiseIssue()
	assert.True(t, EducationHit(90, is))
	assert.True(t, EducationHit(150, is))
	assert.False(t, EducationHit(151, is))
	assert.True(t, EducationHit(30, is))
}
