// internal/models/snapshot.go
package models

import "time"

// CommunitySnapshot is one computed micro-community as it is indexed and
// announced.
type CommunitySnapshot struct {
	SnapshotID string           `json:"snapshotId"`
	IssueIndex int              `json:"issueIndex"`
	IssueTitle string           `json:"issueTitle"`
	Category   string           `json:"category,omitempty"`
	Threshold  float64          `json:"threshold"`
	Count      int              `json:"count"`
	Total      int              `json:"total"`
	Summary    string           `json:"summary"`
	Members    []SnapshotMember `json:"members"`
	CreatedAt  time.Time        `json:"createdAt"`
}

type SnapshotMember struct {
	ProfileID    string  `json:"profileId"`
	Name         string  `json:"name"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"totalDisplay"`
}
