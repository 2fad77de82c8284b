// internal/workers/explorer/inspect-profile/models.go
package inspectprofile

import (
	"civic-relevance-workers/internal/models"
	"civic-relevance-workers/internal/scoring"
)

type Input struct {
	ProfileID string `json:"profileId"`
	// IssueIndex, when set, adds the profile's relevance for that issue.
	IssueIndex *int     `json:"issueIndex,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

type Output struct {
	*scoring.Inspection
	IssueTitle string                  `json:"issueTitle,omitempty"`
	Relevance  *models.RelevanceResult `json:"relevance,omitempty"`
	Status     string                  `json:"status,omitempty"`
}
