// internal/workers/expertise/score-expertise/models.go
package scoreexpertise

import "civic-relevance-workers/internal/models"

type Input struct {
	IssueIndex int    `json:"issueIndex"`
	ProfileID  string `json:"profileId"`
}

type Output struct {
	ProfileID    string                  `json:"profileId"`
	Name         string                  `json:"name"`
	IssueTitle   string                  `json:"issueTitle"`
	Expertise    *models.ExpertiseResult `json:"expertise"`
	TotalDisplay string                  `json:"totalDisplay"`
}
