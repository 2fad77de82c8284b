// Package dataset loads the explorer's profile and issue collections from a
// file, HTTP or Postgres source and keeps a Redis copy warm.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	apperrors "civic-relevance-workers/internal/common/errors"
	"civic-relevance-workers/internal/common/metrics"
	"civic-relevance-workers/internal/common/validation"
	"civic-relevance-workers/internal/models"
)

var ErrInvalidDocument = errors.New("dataset document failed validation")

// Dataset is one loaded snapshot of profiles and issues. It is treated as
// read-only once returned.
type Dataset struct {
	Profiles []*models.Profile `json:"profiles"`
	Issues   []*models.Issue   `json:"issues"`
	LoadedAt time.Time         `json:"loadedAt"`
}

// Issue returns the issue at index.
func (d *Dataset) Issue(index int) (*models.Issue, error) {
	if index < 0 || index >= len(d.Issues) {
		return nil, apperrors.NewIssueNotFoundError(index, len(d.Issues))
	}
	return d.Issues[index], nil
}

// Profile looks a profile up by id.
func (d *Dataset) Profile(id string) (*models.Profile, error) {
	for _, p := range d.Profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NewProfileNotFoundError(id)
}

func (d *Dataset) IssueTitles() []string {
	titles := make([]string, len(d.Issues))
	for i, is := range d.Issues {
		titles[i] = is.Title
	}
	return titles
}

// Source produces a Dataset.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Dataset, error)
}

// Load reads src once. Failures are reported as DATASET_LOAD_FAILED and
// counted per source; the caller decides whether to retry.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	ds, err := src.Load(ctx)
	metrics.ObserveDatasetLoad(src.Name(), err)
	if err != nil {
		return nil, apperrors.NewDatasetLoadFailedError(src.Name(), err)
	}
	return ds, nil
}

type fetchFunc func(ctx context.Context) ([]byte, error)

// fetchBoth retrieves the two documents concurrently and decodes them.
func fetchBoth(ctx context.Context, profiles, issues fetchFunc) (*Dataset, error) {
	var (
		wg         sync.WaitGroup
		rawP, rawI []byte
		errP, errI error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		rawP, errP = profiles(ctx)
	}()
	go func() {
		defer wg.Done()
		rawI, errI = issues(ctx)
	}()
	wg.Wait()

	if errP != nil {
		return nil, fmt.Errorf("profiles: %w", errP)
	}
	if errI != nil {
		return nil, fmt.Errorf("issues: %w", errI)
	}
	return Decode(rawP, rawI)
}

// Decode validates both documents against the embedded schemas and
// unmarshals them.
func Decode(profilesJSON, issuesJSON []byte) (*Dataset, error) {
	profiles, err := DecodeProfiles(profilesJSON)
	if err != nil {
		return nil, err
	}

	var issues []*models.Issue
	if err := decodeDocument(validation.IssuesSchemaName, issuesJSON, &issues); err != nil {
		return nil, err
	}

	return &Dataset{Profiles: profiles, Issues: issues, LoadedAt: time.Now().UTC()}, nil
}

func DecodeProfiles(raw []byte) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := decodeDocument(validation.ProfilesSchemaName, raw, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func decodeDocument(schemaName string, raw []byte, v interface{}) error {
	schema, err := validation.Builtin(schemaName)
	if err != nil {
		return err
	}

	res, err := schema.ValidateBytes(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidDocument, schemaName, err)
	}
	if !res.Valid {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, schemaName, res.Error())
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", schemaName, err)
	}
	return nil
}

type refresher interface {
	Refresh(ctx context.Context) (*Dataset, error)
}

// Reload is Load, except that a caching source is bypassed and rewritten.
func Reload(ctx context.Context, src Source) (*Dataset, error) {
	r, ok := src.(refresher)
	if !ok {
		return Load(ctx, src)
	}
	ds, err := r.Refresh(ctx)
	metrics.ObserveDatasetLoad(src.Name(), err)
	if err != nil {
		return nil, apperrors.NewDatasetLoadFailedError(src.Name(), err)
	}
	return ds, nil
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Invalidate drops any cached copy held by src. Sources without a cache
// are a no-op.
func Invalidate(ctx context.Context, src Source) error {
	if inv, ok := src.(invalidator); ok {
		return inv.Invalidate(ctx)
	}
	return nil
}
