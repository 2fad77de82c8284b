// internal/workers/explorer/build-micro-community/models.go
package buildmicrocommunity

import "civic-relevance-workers/internal/scoring"

type Input struct {
	IssueIndex int      `json:"issueIndex"`
	Threshold  *float64 `json:"threshold,omitempty"`
}

type Output struct {
	SnapshotID string           `json:"snapshotId"`
	IssueIndex int              `json:"issueIndex"`
	IssueTitle string           `json:"issueTitle"`
	Threshold  float64          `json:"threshold"`
	Summary    string           `json:"summary"`
	Count      int              `json:"count"`
	Total      int              `json:"total"`
	Members    []scoring.Member `json:"members"`
}
