package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"civic-relevance-workers/internal/models"
)

// FileSource reads profiles.json and issues.json from disk.
type FileSource struct {
	ProfilesPath string
	IssuesPath   string
}

func NewFileSource(profilesPath, issuesPath string) *FileSource {
	return &FileSource{ProfilesPath: profilesPath, IssuesPath: issuesPath}
}

func (s *FileSource) Name() string {
	return "file"
}

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	return fetchBoth(ctx, readFile(s.ProfilesPath), readFile(s.IssuesPath))
}

// SaveProfiles rewrites the profiles file in place.
func (s *FileSource) SaveProfiles(ctx context.Context, profiles []*models.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return WriteProfilesFile(s.ProfilesPath, profiles)
}

func readFile(path string) fetchFunc {
	return func(ctx context.Context) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
}

// WriteProfilesFile rewrites path with profiles, indented. Resources keep
// the form they were decoded in until MigrateResources converts them.
func WriteProfilesFile(path string, profiles []*models.Profile) error {
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	info, err := os.Stat(path)
	mode := os.FileMode(0o644)
	if err == nil {
		mode = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), mode); err != nil {
		return fmt.Errorf("write profiles: %w", err)
	}
	return os.Rename(tmp, path)
}
