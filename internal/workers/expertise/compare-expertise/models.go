// internal/workers/expertise/compare-expertise/models.go
package compareexpertise

import "civic-relevance-workers/internal/scoring"

type Input struct {
	IssueIndex int    `json:"issueIndex"`
	ProfileID  string `json:"profileId"`
}

// Requirements echoes what the issue asks for next to the comparison.
type Requirements struct {
	EducationAngle  float64  `json:"educationAngle"`
	Width           float64  `json:"width"`
	ExperienceYears float64  `json:"experienceYears"`
	Resources       []string `json:"resources"`
}

type Output struct {
	IssueTitle   string              `json:"issueTitle"`
	Requirements Requirements        `json:"requirements"`
	Comparison   *scoring.Comparison `json:"comparison"`
}
