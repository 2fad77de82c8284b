// internal/workers/explorer/score-relevance/models.go
package scorerelevance

import "civic-relevance-workers/internal/models"

type Input struct {
	IssueIndex int      `json:"issueIndex"`
	ProfileID  string   `json:"profileId"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

type Output struct {
	ProfileID  string                  `json:"profileId"`
	Name       string                  `json:"name"`
	IssueTitle string                  `json:"issueTitle"`
	Threshold  float64                 `json:"threshold"`
	Relevance  *models.RelevanceResult `json:"relevance"`
	Status     string                  `json:"status"`
	Reasons    []string                `json:"reasons"`
}
