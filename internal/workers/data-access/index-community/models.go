// internal/workers/data-access/index-community/models.go
package indexcommunity

type Input struct {
	IssueIndex int      `json:"issueIndex"`
	Threshold  *float64 `json:"threshold,omitempty"`
	// SnapshotID lets a process reuse the id from build-micro-community.
	SnapshotID string `json:"snapshotId,omitempty"`
}

type Output struct {
	SnapshotID string `json:"snapshotId"`
	Index      string `json:"index"`
	IssueTitle string `json:"issueTitle"`
	Summary    string `json:"summary"`
	Count      int    `json:"count"`
	Indexed    bool   `json:"indexed"`
}
