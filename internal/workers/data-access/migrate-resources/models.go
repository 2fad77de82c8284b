// internal/workers/data-access/migrate-resources/models.go
package migrateresources

type Input struct {
	DryRun bool `json:"dryRun,omitempty"`
}

type Output struct {
	Migrated     int  `json:"migrated"`
	ProfileCount int  `json:"profileCount"`
	Persisted    bool `json:"persisted"`
	DryRun       bool `json:"dryRun"`
}
