// internal/workers/data-access/load-dataset/models.go
package loaddataset

import "time"

type Input struct {
	// Refresh bypasses the Redis copy and rewrites it from the backing source.
	Refresh bool `json:"refresh,omitempty"`
}

type Output struct {
	Source          string    `json:"source"`
	ProfileCount    int       `json:"profileCount"`
	IssueCount      int       `json:"issueCount"`
	IssueTitles     []string  `json:"issueTitles"`
	LegacyResources int       `json:"legacyResources"`
	LoadedAt        time.Time `json:"loadedAt"`
}
