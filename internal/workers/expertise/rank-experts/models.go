// internal/workers/expertise/rank-experts/models.go
package rankexperts

import "civic-relevance-workers/internal/scoring"

type Input struct {
	IssueIndex int      `json:"issueIndex"`
	Threshold  *float64 `json:"threshold,omitempty"`
	// Limit truncates the ranking; zero returns everyone.
	Limit int `json:"limit,omitempty"`
}

type Output struct {
	IssueTitle  string                 `json:"issueTitle"`
	Threshold   float64                `json:"threshold"`
	Experts     []scoring.RankedExpert `json:"experts"`
	Count       int                    `json:"count"`
	TopExpertID string                 `json:"topExpertId,omitempty"`
	Message     string                 `json:"message,omitempty"`
}
