package scoring

import (
	"testing"

	"civic-relevance-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSector(t *testing.T) {
	tests := []struct {
		loc      models.Point
		expected string
	}{
		{models.Point{X: 0, Y: 0}, "0-0"},
		{models.Point{X: 49.9, Y: 50}, "0-1"},
		{models.Point{X: 75, Y: 10}, "1-0"},
		{models.Point{X: 100, Y: 100}, "2-2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sector(tt.loc))
	}
}

func TestInspect(t *testing.T) {
	p := newTestProfile("p1")
	p.Demographics.Family = []string{"Daughter", "Son"}
	p.Expertise = &models.ExpertiseData{
		Education: []models.Education{{Level: "Master's", Degree: "Public Health", Angle: 40}},
	}

	in, err := Inspect(p)
	require.NoError(t, err)

	assert.Equal(t, "p1", in.ProfileID)
	assert.Equal(t, "1-1", in.Sector)
	assert.Equal(t, "Master's", in.ExpertiseLevel)
	assert.Equal(t, "Public Health", in.ExpertiseField)
	assert.Equal(t, "2 Relatives", in.RelativesLabel)
}

func TestInspect_Defaults(t *testing.T) {
	in, err := Inspect(newTestProfile("p1"))
	require.NoError(t, err)

	assert.Equal(t, "N/A", in.ExpertiseLevel)
	assert.Equal(t, "General", in.ExpertiseField)
	assert.Equal(t, "No Direct Relatives", in.RelativesLabel)
}

func TestInspect_InvalidProfile(t *testing.T) {
	p := newTestProfile("p1")
	p.Location = nil

	_, err := Inspect(p)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestRadar(t *testing.T) {
	p := newTestProfile("p1")
	p.Demographics.Age = 45
	p.Demographics.Income = 105000
	p.Demographics.Family = []string{"Son"}
	p.Location = &models.Point{X: 20, Y: 60}
	p.SocialConnections = 30
	p.Interests = []string{"Parks", "Art"}

	r := Radar(p)

	assert.InDelta(t, 50, r.D[0], 1e-9)
	assert.InDelta(t, 50, r.D[1], 1e-9)
	assert.InDelta(t, 25, r.D[2], 1e-9)
	assert.InDelta(t, 40, r.D[3], 1e-9)
	assert.InDelta(t, 45, r.D[4], 1e-9)
	assert.InDelta(t, 80, r.D[5], 1e-9)

	assert.Equal(t, [6]float64{20, 60, 80, 40, 40, 50}, r.G)

	assert.InDelta(t, 50, r.S[0], 1e-9)
	assert.InDelta(t, 60, r.S[1], 1e-9)
	assert.InDelta(t, 65, r.S[5], 1e-9)

	assert.InDelta(t, 25, r.X[0], 1e-9)
	assert.InDelta(t, 30, r.X[1], 1e-9)
	assert.InDelta(t, 12.5, r.X[4], 1e-9)
}

func TestRadar_NoFamily(t *testing.T) {
	r := Radar(newTestProfile("p1"))
	assert.Equal(t, 10.0, r.D[2])
	assert.Equal(t, 30.0, r.D[5])
}
