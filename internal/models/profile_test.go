package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Resource
		wantErr  bool
	}{
		{
			name:     "legacy string",
			input:    `"Van"`,
			expected: Resource{Name: "Van", Legacy: true},
		},
		{
			name:     "object with weight",
			input:    `{"name": "Python", "weight": 7}`,
			expected: Resource{Name: "Python", Weight: 7},
		},
		{
			name:     "object without weight",
			input:    ` {"name": "Ladder"}`,
			expected: Resource{Name: "Ladder"},
		},
		{
			name:    "number is rejected",
			input:   `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Resource
			err := json.Unmarshal([]byte(tt.input), &r)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

func TestResource_EffectiveWeight(t *testing.T) {
	assert.Equal(t, 1, Resource{Name: "Van", Legacy: true}.EffectiveWeight())
	assert.Equal(t, 1, Resource{Name: "Van", Weight: -3}.EffectiveWeight())
	assert.Equal(t, 9, Resource{Name: "Van", Weight: 9}.EffectiveWeight())
}

func TestProfile_MixedResourcesDecode(t *testing.T) {
	raw := `{
		"id": "p7",
		"name": "Ada",
		"demographics": {"age": 41, "income": 72000, "employment": "Employed", "family": ["Son"]},
		"location": {"x": 12.5, "y": 80},
		"interests": ["Tech"],
		"socialConnections": 12,
		"expertise_data": {
			"experience": [{"role": "Engineer", "years": 6}, {"role": "Mentor", "years": 2.5}],
			"resources": ["Laptop", {"name": "Python", "weight": 8}]
		}
	}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	require.NotNil(t, p.Expertise)
	require.Len(t, p.Expertise.Resources, 2)
	assert.True(t, p.Expertise.Resources[0].Legacy)
	assert.False(t, p.Expertise.Resources[1].Legacy)
	assert.Equal(t, 8, p.Expertise.Resources[1].Weight)
	assert.Equal(t, 8.5, p.TotalYears())
	assert.Equal(t, 12.5, p.Location.X)
}

func TestResource_MarshalKeepsForm(t *testing.T) {
	out, err := json.Marshal([]Resource{
		{Name: "Van", Legacy: true},
		{Name: "Sewing", Weight: 7},
		{Name: "Tools"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `["Van", {"name": "Sewing", "weight": 7}, {"name": "Tools"}]`, string(out))

	var back []Resource
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, back[0].Legacy)
	assert.False(t, back[2].Legacy)
}

func TestDemographics_FamilyKeepsEmptyList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty list", input: `{"age":70,"family":[]}`, expected: `"family":[]`},
		{name: "absent", input: `{"age":19}`, expected: `"family":null`},
		{name: "members", input: `{"age":41,"family":["Son"]}`, expected: `"family":["Son"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Demographics
			require.NoError(t, json.Unmarshal([]byte(tt.input), &d))

			out, err := json.Marshal(d)
			require.NoError(t, err)
			assert.Contains(t, string(out), tt.expected)

			var again Demographics
			require.NoError(t, json.Unmarshal(out, &again))
			assert.Equal(t, d.Family == nil, again.Family == nil)
			assert.Len(t, again.Family, len(d.Family))
		})
	}
}

func TestProfile_TotalYearsWithoutExpertise(t *testing.T) {
	assert.Equal(t, 0.0, (&Profile{ID: "p1"}).TotalYears())
}
