// internal/models/issue.go
package models

// Issue is a civic scenario with targeting criteria, factor weights and
// expertise requirements.
type Issue struct {
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Logic    string   `json:"logic,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`

	TargetDemo *TargetDemo `json:"targetDemo"`
	Location   *Zone       `json:"location"`
	Weights    *Weights    `json:"weights"`

	RequiredEducationAngle  float64  `json:"required_education_angle"`
	RequiredWidth           float64  `json:"required_width"`
	RequiredExperienceYears float64  `json:"required_experience_years"`
	RequiredResources       []string `json:"required_resources"`
}

// TargetDemo fields are optional; zero values mean "not targeted".
type TargetDemo struct {
	MinAge     int    `json:"minAge,omitempty"`
	Family     string `json:"family,omitempty"`
	Employment string `json:"employment,omitempty"`
}

type Zone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Weights are the per-factor coefficients. They need not sum to 1.
type Weights struct {
	D float64 `json:"D"`
	G float64 `json:"G"`
	S float64 `json:"S"`
	X float64 `json:"X"`
}
