// Package datasettest provides the four-profile, two-issue fixture used by
// worker tests, plus an in-memory dataset.Source.
package datasettest

import (
	"context"
	_ "embed"
	"sync/atomic"
	"testing"

	"civic-relevance-workers/internal/dataset"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/profiles.json
var ProfilesJSON []byte

//go:embed testdata/issues.json
var IssuesJSON []byte

// Issue indexes in the fixture.
const (
	ParkRenovation = 0
	SeniorTechHelp = 1
)

// New decodes a fresh copy of the fixture. Callers may mutate it.
func New(t testing.TB) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Decode(ProfilesJSON, IssuesJSON)
	require.NoError(t, err)
	return ds
}

// Source serves a fixed dataset or a fixed error.
type Source struct {
	Dataset *dataset.Dataset
	Err     error
	calls   atomic.Int32
}

func NewSource(t testing.TB) *Source {
	return &Source{Dataset: New(t)}
}

func Failing(err error) *Source {
	return &Source{Err: err}
}

func (s *Source) Name() string {
	return "memory"
}

func (s *Source) Load(ctx context.Context) (*dataset.Dataset, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Dataset, nil
}

// Calls reports how many times Load ran.
func (s *Source) Calls() int {
	return int(s.calls.Load())
}
